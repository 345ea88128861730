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
	"math"

	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/hardware/cassette/codec"
)

// audioReader is the readable medium for all audio formats. the entire
// recording is decoded when the medium is opened.
type audioReader struct {
	pulseList

	left  []int
	right []int

	// the sample value that represents silence
	centre int

	sampleRate int

	pan float64
}

func newAudioReader(left []int, right []int, centre int, sampleRate int) *audioReader {
	a := &audioReader{
		left:       left,
		right:      right,
		centre:     centre,
		sampleRate: sampleRate,
	}
	a.build()
	return a
}

func (a *audioReader) build() {
	mono := a.left
	if a.pan != 0.0 {
		mono = make([]int, len(a.left))
		for i := range a.left {
			mono[i] = int(math.Round(float64(a.left[i])*(1.0-a.pan) + float64(a.right[i])*a.pan))
		}
	}
	a.pulses = samplesToPulses(mono, a.centre, a.sampleRate)
}

// SetPanning implements the Panner interface. The read position is kept at
// the same point in time.
func (a *audioReader) SetPanning(pan float64) {
	pan = math.Max(0.0, math.Min(1.0, pan))
	if pan == a.pan {
		return
	}
	t := a.duration(a.pos)
	a.pan = pan
	a.build()
	a.pos = a.index(t)
}

func (a *audioReader) WriteSample(_ uint8, _ int) error {
	return curated.Errorf(NotWritable)
}

func (a *audioReader) Close() error {
	return nil
}

// length of recording in ticks.
func (a *audioReader) length() int64 {
	return a.duration(int64(len(a.pulses)))
}

// seconds converts ticks to seconds.
func seconds(ticks int64) float64 {
	return float64(ticks) / codec.TickRate
}
