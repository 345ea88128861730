// This file is part of Tapedeck.
//
// Tapedeck is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tapedeck is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Tapedeck.  If not, see <https://www.gnu.org/licenses/>.

// Package host defines the interfaces the cassette subsystem requires of the
// emulated machine.
package host

// CPU gives access to the 6809 registers and to memory.
type CPU interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)

	CC() uint8
	SetCC(cc uint8)
	A() uint8
	SetA(a uint8)
	SetX(x uint16)

	// RTS performs a return from subroutine. Used by intercepted routines to
	// return to their caller.
	RTS()

	// Credit advances the machine clock by the number of CPU cycles. The new
	// time is visible through Scheduler.Now() on return.
	Credit(cycles int)
}

// Hook is an intercepted ROM address. The handler is called when the CPU
// reaches the address.
type Hook struct {
	Family  string
	Address uint16
	Handler func()
}

// Breakpoints installs and removes hooks.
type Breakpoints interface {
	Install(hooks []Hook) error
	Remove(hooks []Hook)
}

// Event is a scheduled callback.
type Event struct {
	Name     string
	Dispatch func()

	// the time the event is scheduled for and whether it is currently
	// scheduled. maintained by the Scheduler
	At     uint64
	Queued bool
}

// Scheduler is the machine's event queue. Time is measured in ticks.
//
// Schedule() sets the At and Queued fields of the event. Cancel() clears the
// Queued field, as does the dispatch of the event. Scheduling an event that is
// already queued moves it to the new time.
type Scheduler interface {
	Now() uint64
	Schedule(ev *Event, at uint64)
	Cancel(ev *Event)
}

// Keyboard accepts keystrokes to be typed into the machine.
type Keyboard interface {
	QueueKeystrokes(text string)
}

// Host collates the interfaces of the machine.
type Host struct {
	CPU         CPU
	Breakpoints Breakpoints
	Scheduler   Scheduler
	Keyboard    Keyboard
}
