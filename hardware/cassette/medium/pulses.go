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
	"io"

	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/hardware/cassette/codec"
)

// pulseList is the read side of every medium that decodes its entire content
// into pulses when it is opened.
type pulseList struct {
	pulses []codec.Pulse
	pos    int64
}

func (l *pulseList) ReadPulse() (codec.Pulse, error) {
	if l.pos >= int64(len(l.pulses)) {
		return codec.Pulse{}, curated.Errorf(codec.EndOfMedium)
	}
	p := l.pulses[l.pos]
	l.pos++
	return p, nil
}

func (l *pulseList) Seek(offset int64, whence int) (int64, error) {
	return seek(&l.pos, int64(len(l.pulses)), offset, whence)
}

func (l *pulseList) Tell() int64 {
	return l.pos
}

// duration returns the number of ticks up to the pulse index.
func (l *pulseList) duration(idx int64) int64 {
	var t int64
	for i := int64(0); i < idx && i < int64(len(l.pulses)); i++ {
		t += int64(l.pulses[i].Width)
	}
	return t
}

// index returns the index of the pulse being read at the tick.
func (l *pulseList) index(ticks int64) int64 {
	var t int64
	for i := range l.pulses {
		t += int64(l.pulses[i].Width)
		if t > ticks {
			return int64(i)
		}
	}
	return int64(len(l.pulses))
}

// seek moves pos in the same way as io.Seeker. the new position is clamped to
// the range 0 to length.
func seek(pos *int64, length int64, offset int64, whence int) (int64, error) {
	var n int64
	switch whence {
	case io.SeekStart:
		n = offset
	case io.SeekCurrent:
		n = *pos + offset
	case io.SeekEnd:
		n = length + offset
	default:
		return *pos, curated.Errorf(MediumError, "invalid whence for seek")
	}
	if n < 0 {
		n = 0
	}
	if n > length {
		n = length
	}
	*pos = n
	return n, nil
}

// samplesToPulses converts PCM sample data into pulses. samples equal to the
// centre value continue the current pulse.
func samplesToPulses(samples []int, centre int, sampleRate int) []codec.Pulse {
	var pulses []codec.Pulse

	if sampleRate <= 0 {
		return pulses
	}

	// tick at which sample i starts
	tick := func(i int) int64 {
		return int64(i) * codec.TickRate / int64(sampleRate)
	}

	phase := -1
	start := 0
	for i, s := range samples {
		p := phase
		switch {
		case s > centre:
			p = 1
		case s < centre:
			p = 0
		}
		if p == phase {
			continue
		}
		if phase != -1 {
			pulses = append(pulses, codec.Pulse{Phase: phase, Width: int(tick(i) - tick(start))})
		}
		phase = p
		start = i
	}

	if phase != -1 {
		pulses = append(pulses, codec.Pulse{Phase: phase, Width: int(tick(len(samples)) - tick(start))})
	}

	return pulses
}

// sampleClock converts durations in ticks to a whole number of samples. the
// fractional part is carried to the next conversion.
type sampleClock struct {
	rate int64
	rem  int64
}

func (c *sampleClock) samples(ticks int) int {
	c.rem += int64(ticks) * c.rate
	n := c.rem / codec.TickRate
	c.rem %= codec.TickRate
	return int(n)
}
