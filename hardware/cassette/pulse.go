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

package cassette

import (
	"github.com/jetsetilly/tapedeck/logger"
)

// pulseState is the position of the input within the current pulse.
type pulseState struct {
	// phase of the current pulse. -1 if there is no input or the end of the
	// input has been reached
	phase int

	// ticks remaining of the current pulse. while the waggle event is queued
	// the event time is used instead
	remaining int
}

// Input returns the signal read from the input medium as seen by the
// machine's tape input bit.
func (s *Session) Input() uint8 {
	if s.pulse.phase == 1 {
		return 1
	}
	return 0
}

// nextPulse reads the next pulse from the input. Returns false at the end of
// the input.
func (s *Session) nextPulse() bool {
	if s.reader == nil {
		s.pulse = pulseState{phase: -1}
		return false
	}

	p, err := s.reader.ReadPulse()
	if err != nil {
		if s.pulse.phase >= 0 {
			logger.Log(s.env, logTag, err)
		}
		s.pulse = pulseState{phase: -1}
		return false
	}

	s.pulse.phase = p.Phase
	s.pulse.remaining = p.Width
	return true
}

// startWaggle queues the waggle event for the end of the current pulse. The
// event is only queued while the motor is on.
func (s *Session) startWaggle() {
	if !s.motor || s.pulse.phase < 0 {
		return
	}
	sched := s.host.Scheduler
	sched.Schedule(&s.waggle, sched.Now()+uint64(s.pulse.remaining))
}

// stopWaggle dequeues the waggle event. The time remaining of the current
// pulse is remembered.
func (s *Session) stopWaggle() {
	if !s.waggle.Queued {
		return
	}
	sched := s.host.Scheduler
	s.pulse.remaining = 0
	if now := sched.Now(); s.waggle.At > now {
		s.pulse.remaining = int(s.waggle.At - now)
	}
	sched.Cancel(&s.waggle)
}

// advancePulse is the dispatch function of the waggle event.
func (s *Session) advancePulse() {
	if s.nextPulse() {
		s.startWaggle()
	}
}

// fastTape is the input as seen by the fastload emulator.
type fastTape struct {
	s *Session
}

// Begin implements the fastload.Tape interface. The waggle event is not
// needed while the replaced routine is running.
func (t *fastTape) Begin() {
	t.s.stopWaggle()
}

// Sample implements the fastload.Tape interface.
func (t *fastTape) Sample(ticks int) int {
	p := &t.s.pulse
	for p.phase >= 0 {
		if ticks < p.remaining {
			p.remaining -= ticks
			return p.phase
		}
		ticks -= p.remaining
		t.s.nextPulse()
	}
	return -1
}

// Commit implements the fastload.Tape interface. The CPU is credited with the
// cycles taken by the routine and the waggle event is requeued for the new
// end of the current pulse.
func (t *fastTape) Commit(cycles int) {
	t.s.host.CPU.Credit(cycles)
	t.s.startWaggle()
}
