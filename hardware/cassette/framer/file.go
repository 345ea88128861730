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
	"io"
	"strings"

	"github.com/jetsetilly/tapedeck/hardware/cassette/codec"
)

// FileType is the type of file recorded in a namefile block.
type FileType uint8

// List of valid FileType values.
const (
	FileBASIC       FileType = 0x00
	FileData        FileType = 0x01
	FileMachineCode FileType = 0x02
)

func (t FileType) String() string {
	switch t {
	case FileBASIC:
		return "BASIC"
	case FileData:
		return "data"
	case FileMachineCode:
		return "machine code"
	}
	return fmt.Sprintf("unknown (%02x)", uint8(t))
}

// the minimum size of a well formed namefile block
const namefileSize = 15

// TapeFile describes a file found on tape.
type TapeFile struct {
	Name         string
	Type         FileType
	ASCII        bool
	Gap          bool
	StartAddress uint16
	LoadAddress  uint16

	// position of the medium at which the search for the namefile block
	// started. seeking to this position and searching for sync will find the
	// namefile block
	Offset int64

	ChecksumError bool

	// size and CRC of the namefile block payload. used to identify files
	FnBlockSize int
	FnBlockCRC  uint16
}

func (f *TapeFile) String() string {
	s := fmt.Sprintf("%-8s  %-12s  load=%04x exec=%04x", f.Name, f.Type, f.LoadAddress, f.StartAddress)
	if f.ASCII {
		s += " ascii"
	}
	if f.Gap {
		s += " gapped"
	}
	if f.ChecksumError {
		s += " (checksum error)"
	}
	return s
}

func newTapeFile(offset int64, b Block) *TapeFile {
	d := b.Data
	return &TapeFile{
		Name:          strings.TrimRight(string(d[0:8]), " "),
		Type:          FileType(d[8]),
		ASCII:         d[9] != 0,
		Gap:           d[10] != 0,
		StartAddress:  uint16(d[11])<<8 | uint16(d[12]),
		LoadAddress:   uint16(d[13])<<8 | uint16(d[14]),
		Offset:        offset,
		ChecksumError: !b.Good(),
		FnBlockSize:   len(d),
		FnBlockCRC:    CRC16(d),
	}
}

// NextFile searches for the next namefile block and returns the file it
// describes. Returns nil if there are no more files.
//
// A namefile block that is too short to be a header is malformed. If skipBad
// is true a namefile block with a checksum error is also treated as
// malformed. The search continues past malformed blocks if skipBad is true.
// Otherwise a malformed block ends the search and nil is returned.
func NextFile(r *codec.Reader, skipBad bool) *TapeFile {
	for {
		offset := r.Tell()

		if _, err := FindSync(r); err != nil {
			return nil
		}
		synced := r.Tell()

		b, err := ReadBlock(r)
		if err != nil {
			return nil
		}

		if b.Type != BlockNamefile {
			continue
		}

		if len(b.Data) < namefileSize || (skipBad && !b.Good()) {
			if !skipBad {
				return nil
			}
			if _, err := r.Seek(synced, io.SeekStart); err != nil {
				return nil
			}
			continue
		}

		return newTapeFile(offset, b)
	}
}

// LeaderLength returns the number of leader bytes before the first sync byte
// on the medium. The position of the medium is restored before returning. A
// failure to restore the position is returned if there is no other error.
func LeaderLength(r *codec.Reader) (n int, err error) {
	pos := r.Tell()
	defer func() {
		if _, serr := r.Seek(pos, io.SeekStart); serr != nil && err == nil {
			n = 0
			err = serr
		}
	}()

	if err := r.Rewind(); err != nil {
		return 0, err
	}

	n, err = FindSync(r)
	if err != nil {
		return 0, err
	}

	return n / 8, nil
}

// NamefileData returns the payload of a namefile block for the file. Used
// when creating tapes.
func NamefileData(f *TapeFile) []uint8 {
	d := make([]uint8, namefileSize)
	copy(d, fmt.Sprintf("%-8.8s", f.Name))
	d[8] = uint8(f.Type)
	if f.ASCII {
		d[9] = 0xff
	}
	if f.Gap {
		d[10] = 0xff
	}
	d[11] = uint8(f.StartAddress >> 8)
	d[12] = uint8(f.StartAddress)
	d[13] = uint8(f.LoadAddress >> 8)
	d[14] = uint8(f.LoadAddress)
	return d
}
