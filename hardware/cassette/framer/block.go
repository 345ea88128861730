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

package framer

import (
	"fmt"

	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/hardware/cassette/codec"
)

// NoSync is returned by FindSync() when the medium ends before a sync byte is
// found.
const NoSync = "framer: no sync byte found"

// BlockError is used to wrap errors encountered while reading a block.
const BlockError = "framer: block: %v"

// Values of bytes with special meaning.
const (
	LeaderByte = 0x55
	SyncByte   = 0x3c
)

// Block types.
const (
	BlockNamefile = 0x00
	BlockData     = 0x01
	BlockEOF      = 0xff
)

// Block is a single block read from tape.
type Block struct {
	Type uint8
	Data []uint8

	// the checksum as recorded on tape
	Checksum uint8

	// the sum of type, size and payload minus the recorded checksum. zero if
	// the block is good
	Sum uint8
}

// Good returns true if the recorded checksum matches the content of the block.
func (b Block) Good() bool {
	return b.Sum == 0
}

func (b Block) String() string {
	s := fmt.Sprintf("type %02x: %d bytes", b.Type, len(b.Data))
	if !b.Good() {
		s = fmt.Sprintf("%s (checksum error)", s)
	}
	return s
}

// FindSync reads bits until the sync byte is found. The number of bits read
// before the sync byte is returned. Bytes are assembled from the bit stream
// one bit at a time so sync is found regardless of byte alignment.
func FindSync(r *codec.Reader) (int, error) {
	var sr uint8
	var n int
	for {
		b, err := r.ReadBit()
		if err != nil {
			if curated.Is(err, codec.EndOfMedium) {
				return n, curated.Errorf(NoSync)
			}
			return n, err
		}
		n++

		sr >>= 1
		if b == 1 {
			sr |= 0x80
		}

		if n >= 8 && sr == SyncByte {
			return n - 8, nil
		}
	}
}

// ReadBlock reads the block that immediately follows a sync byte.
func ReadBlock(r *codec.Reader) (Block, error) {
	var b Block
	var err error

	b.Type, err = r.ReadByte()
	if err != nil {
		return b, curated.Errorf(BlockError, err)
	}
	size, err := r.ReadByte()
	if err != nil {
		return b, curated.Errorf(BlockError, err)
	}

	sum := b.Type + size

	b.Data = make([]uint8, size)
	for i := range b.Data {
		b.Data[i], err = r.ReadByte()
		if err != nil {
			return b, curated.Errorf(BlockError, err)
		}
		sum += b.Data[i]
	}

	b.Checksum, err = r.ReadByte()
	if err != nil {
		return b, curated.Errorf(BlockError, err)
	}
	b.Sum = sum - b.Checksum

	return b, nil
}

// WriteLeader writes the number of leader bytes.
func WriteLeader(w *codec.Writer, n int) error {
	for i := 0; i < n; i++ {
		if err := w.WriteByte(LeaderByte); err != nil {
			return err
		}
	}
	return nil
}

// WriteBlock writes a leader of the specified length followed by the sync
// byte, the block and its checksum. A single leader byte is written after the
// block as a trailer.
func WriteBlock(w *codec.Writer, leader int, typ uint8, data []uint8) error {
	if len(data) > 255 {
		return curated.Errorf(BlockError, "payload too large")
	}

	if err := WriteLeader(w, leader); err != nil {
		return err
	}

	sum := typ + uint8(len(data))
	out := make([]uint8, 0, len(data)+4)
	out = append(out, SyncByte, typ, uint8(len(data)))
	for _, v := range data {
		out = append(out, v)
		sum += v
	}
	out = append(out, sum, LeaderByte)

	for _, v := range out {
		if err := w.WriteByte(v); err != nil {
			return err
		}
	}

	return nil
}
