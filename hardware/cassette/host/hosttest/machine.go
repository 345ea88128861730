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

// Package hosttest provides an in-memory machine that implements all the
// interfaces in the host package. Used for testing.
package hosttest

import (
	"fmt"
	"sort"

	"github.com/jetsetilly/tapedeck/hardware/cassette/host"
)

// TicksPerCycle is the number of scheduler ticks in one CPU cycle.
const TicksPerCycle = 16

// Registers of the CPU.
type Registers struct {
	A, B uint8
	X    uint16
	CC   uint8
}

// Machine implements the host.CPU, host.Breakpoints, host.Scheduler and
// host.Keyboard interfaces.
type Machine struct {
	Mem [0x10000]uint8
	Reg Registers

	// number of times RTS() has been called
	RTSCount int

	// total cycles credited
	Cycles int

	// installed hooks keyed by address
	Hooks map[uint16]host.Hook

	// number of calls to Install() and Remove()
	Installs int
	Removes  int

	// if set, Install() fails for any hook at this address
	FailAddress uint16
	FailInstall bool

	// keystrokes queued by QueueKeystrokes() in the order they were queued
	Keystrokes []string

	clock  uint64
	events []*host.Event
}

// NewMachine is the preferred method of initialisation for the Machine type.
func NewMachine() *Machine {
	return &Machine{
		Hooks: make(map[uint16]host.Hook),
	}
}

// Host returns the machine as a host.Host.
func (m *Machine) Host() host.Host {
	return host.Host{
		CPU:         m,
		Breakpoints: m,
		Scheduler:   m,
		Keyboard:    m,
	}
}

// Read implements the host.CPU interface.
func (m *Machine) Read(address uint16) uint8 {
	return m.Mem[address]
}

// Write implements the host.CPU interface.
func (m *Machine) Write(address uint16, data uint8) {
	m.Mem[address] = data
}

// CC implements the host.CPU interface.
func (m *Machine) CC() uint8 { return m.Reg.CC }

// SetCC implements the host.CPU interface.
func (m *Machine) SetCC(cc uint8) { m.Reg.CC = cc }

// A implements the host.CPU interface.
func (m *Machine) A() uint8 { return m.Reg.A }

// SetA implements the host.CPU interface.
func (m *Machine) SetA(a uint8) { m.Reg.A = a }

// SetX implements the host.CPU interface.
func (m *Machine) SetX(x uint16) { m.Reg.X = x }

// RTS implements the host.CPU interface.
func (m *Machine) RTS() {
	m.RTSCount++
}

// Credit implements the host.CPU interface. Events that fall due during the
// credited cycles are not dispatched; call Advance() for that.
func (m *Machine) Credit(cycles int) {
	m.Cycles += cycles
	m.clock += uint64(cycles) * TicksPerCycle
}

// Install implements the host.Breakpoints interface.
func (m *Machine) Install(hooks []host.Hook) error {
	for _, h := range hooks {
		if m.FailInstall && h.Address == m.FailAddress {
			return fmt.Errorf("hosttest: cannot install hook at %04x", h.Address)
		}
	}
	for _, h := range hooks {
		m.Hooks[h.Address] = h
	}
	m.Installs++
	return nil
}

// Remove implements the host.Breakpoints interface.
func (m *Machine) Remove(hooks []host.Hook) {
	for _, h := range hooks {
		delete(m.Hooks, h.Address)
	}
	m.Removes++
}

// Installed returns the sorted addresses of the installed hooks.
func (m *Machine) Installed() []uint16 {
	a := make([]uint16, 0, len(m.Hooks))
	for k := range m.Hooks {
		a = append(a, k)
	}
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	return a
}

// Call the hook installed at the address. Returns false if there is no hook.
func (m *Machine) Call(address uint16) bool {
	h, ok := m.Hooks[address]
	if !ok {
		return false
	}
	h.Handler()
	return true
}

// Now implements the host.Scheduler interface.
func (m *Machine) Now() uint64 {
	return m.clock
}

// Schedule implements the host.Scheduler interface.
func (m *Machine) Schedule(ev *host.Event, at uint64) {
	m.Cancel(ev)
	ev.At = at
	ev.Queued = true
	m.events = append(m.events, ev)
}

// Cancel implements the host.Scheduler interface.
func (m *Machine) Cancel(ev *host.Event) {
	ev.Queued = false
	for i, e := range m.events {
		if e == ev {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return
		}
	}
}

// Scheduled returns true if the event is in the queue.
func (m *Machine) Scheduled(ev *host.Event) bool {
	for _, e := range m.events {
		if e == ev {
			return true
		}
	}
	return false
}

// Pending returns the number of events in the queue.
func (m *Machine) Pending() int {
	return len(m.events)
}

// Advance the clock by the number of ticks, dispatching events as they fall
// due.
func (m *Machine) Advance(ticks uint64) {
	end := m.clock + ticks
	for {
		next := m.next()
		if next == nil || next.At > end {
			break
		}
		m.Cancel(next)
		if next.At > m.clock {
			m.clock = next.At
		}
		next.Dispatch()
	}
	m.clock = end
}

// earliest scheduled event.
func (m *Machine) next() *host.Event {
	var n *host.Event
	for _, e := range m.events {
		if n == nil || e.At < n.At {
			n = e
		}
	}
	return n
}

// QueueKeystrokes implements the host.Keyboard interface.
func (m *Machine) QueueKeystrokes(text string) {
	m.Keystrokes = append(m.Keystrokes, text)
}
