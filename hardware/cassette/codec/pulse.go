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

package codec

import "fmt"

// TickRate is the number of ticks in one second. All pulse widths are
// measured in ticks.
const TickRate = 14318180

// Nominal cycle widths for the two bit values and the threshold used to
// distinguish between them.
const (
	Bit0Length  = TickRate / 1200
	Bit1Length  = TickRate / 2400
	AvBitLength = (Bit0Length + Bit1Length) / 2
)

// Centre is the sample level that represents no signal.
const Centre = 0x80

// EndOfMedium is returned when a Source has no more pulses.
const EndOfMedium = "end of medium"

// Pulse is a single magnetic pulse.
type Pulse struct {
	// 1 for a positive pulse and 0 for a negative pulse
	Phase int

	// width in ticks
	Width int
}

func (p Pulse) String() string {
	return fmt.Sprintf("%d:%d", p.Phase, p.Width)
}

// Source is the read half of a tape medium.
type Source interface {
	ReadPulse() (Pulse, error)
}

// SeekSource is a Source with a position that can be queried and changed. The
// unit of the position is defined by the implementation.
type SeekSource interface {
	Source
	Seek(offset int64, whence int) (int64, error)
	Tell() int64
}

// Sink is the write half of a tape medium. A sample is a signal level held for
// the number of ticks specified.
type Sink interface {
	WriteSample(level uint8, ticks int) error
}

// PhaseOfLevel returns the phase of a sample level. Samples at the Centre
// level have no phase of their own and the previous phase is returned.
func PhaseOfLevel(level uint8, previous int) int {
	switch {
	case level > Centre:
		return 1
	case level < Centre:
		return 0
	}
	return previous
}
