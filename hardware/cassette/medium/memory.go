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

package medium

import (
	"github.com/jetsetilly/tapedeck/hardware/cassette/codec"
)

// Sample is a single recorded sample of a Memory medium.
type Sample struct {
	Level uint8
	Ticks int
}

// Memory is a medium that exists only in memory. It can be read and written at
// the same time: reading plays back the pulses it was created with and writing
// records samples.
type Memory struct {
	pulseList

	// recorded samples in the order they were written
	Samples []Sample

	// number of times the motor off notification has been received
	MotorOffCount int

	// set by Close()
	Closed bool
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory(pulses []codec.Pulse) *Memory {
	return &Memory{
		pulseList: pulseList{pulses: pulses},
	}
}

// WriteSample implements the codec.Sink interface.
func (m *Memory) WriteSample(level uint8, ticks int) error {
	m.Samples = append(m.Samples, Sample{Level: level, Ticks: ticks})
	return nil
}

// MotorOff implements the MotorOffNotifier interface.
func (m *Memory) MotorOff() {
	m.MotorOffCount++
}

// Close implements the Medium interface.
func (m *Memory) Close() error {
	m.Closed = true
	return nil
}

// Playback returns a new Memory medium that plays back the samples recorded by
// this medium.
func (m *Memory) Playback() *Memory {
	var pulses []codec.Pulse
	phase := -1
	for _, s := range m.Samples {
		p := codec.PhaseOfLevel(s.Level, phase)
		if p == -1 {
			continue
		}
		if p == phase {
			pulses[len(pulses)-1].Width += s.Ticks
			continue
		}
		phase = p
		pulses = append(pulses, codec.Pulse{Phase: p, Width: s.Ticks})
	}
	return NewMemory(pulses)
}

// Duration returns the total number of ticks recorded.
func (m *Memory) Duration() int {
	var t int
	for _, s := range m.Samples {
		t += s.Ticks
	}
	return t
}
