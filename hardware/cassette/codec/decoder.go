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

// BitDecoder classifies a stream of pulses into bits. Pulses are paired so
// that the second pulse of each pair is a negative pulse. Pairs that are
// shorter than half a one-bit cycle or longer than two zero-bit cycles are
// noise and the decoder moves on by a single pulse.
//
// The zero value is ready to use.
type BitDecoder struct {
	prev     int
	havePrev bool
}

// Push a pulse into the decoder. The ok return value is true when a bit has
// been decoded.
func (d *BitDecoder) Push(p Pulse) (bit int, ok bool) {
	if !d.havePrev {
		d.prev = p.Width
		d.havePrev = true
		return 0, false
	}

	cycle := d.prev + p.Width
	d.prev = p.Width

	if p.Phase != 0 {
		return 0, false
	}

	if cycle < Bit1Length/2 || cycle > Bit0Length*2 {
		return 0, false
	}

	// the next bit starts with a fresh pair of pulses
	d.havePrev = false

	if cycle < AvBitLength {
		return 1, true
	}
	return 0, true
}

// Reset forgets any pulse waiting to be paired.
func (d *BitDecoder) Reset() {
	d.prev = 0
	d.havePrev = false
}
