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

import (
	"io"

	"github.com/jetsetilly/tapedeck/curated"
)

// Reader reads pulses, bits and bytes from a Source.
type Reader struct {
	src Source
	dec BitDecoder
}

// NewReader is the preferred method of initialisation for the Reader type.
func NewReader(src Source) *Reader {
	return &Reader{src: src}
}

// ReadPulse returns the next pulse from the Source.
func (r *Reader) ReadPulse() (Pulse, error) {
	return r.src.ReadPulse()
}

// ReadBit returns the next bit from the Source. Noise is skipped.
func (r *Reader) ReadBit() (int, error) {
	for {
		p, err := r.src.ReadPulse()
		if err != nil {
			return 0, err
		}
		if b, ok := r.dec.Push(p); ok {
			return b, nil
		}
	}
}

// ReadByte assembles eight bits, least significant bit first.
func (r *Reader) ReadByte() (byte, error) {
	var v uint8
	for i := 0; i < 8; i++ {
		b, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		v >>= 1
		if b == 1 {
			v |= 0x80
		}
	}
	return v, nil
}

// Seek changes the position of the underlying Source. It fails if the Source
// does not implement the SeekSource interface.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	s, ok := r.src.(SeekSource)
	if !ok {
		return 0, curated.Errorf("codec: %v", "source cannot seek")
	}
	r.dec.Reset()
	return s.Seek(offset, whence)
}

// Rewind is a convenience function equivalent to Seek(0, io.SeekStart).
func (r *Reader) Rewind() error {
	_, err := r.Seek(0, io.SeekStart)
	return err
}

// Tell returns the position of the underlying Source. Sources that don't
// implement the SeekSource interface always return zero.
func (r *Reader) Tell() int64 {
	if s, ok := r.src.(SeekSource); ok {
		return s.Tell()
	}
	return 0
}
