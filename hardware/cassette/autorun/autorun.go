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

package autorun

import (
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/tapedeck/environment"
	"github.com/jetsetilly/tapedeck/hardware/cassette/codec"
	"github.com/jetsetilly/tapedeck/hardware/cassette/framer"
	"github.com/jetsetilly/tapedeck/hardware/cassette/host"
	"github.com/jetsetilly/tapedeck/logger"
)

// tag string used in calls to Log().
const logTag = "cassette: autorun"

// Break is the keyboard code for the BREAK key. Commands are preceded by a
// break so that they are typed at a fresh prompt.
const Break = "\003"

// machine code loaded below this address is started with EXEC.
const execThreshold = 0x01a9

type special struct {
	name string
	size int
	crc  uint16
	keys []string
}

// tapes that need to be loaded in a special way. a namefile block is matched
// by its size and CRC.
var specials = []special{
	{
		name: "Dungeon Raid",
		size: 15,
		crc:  0x8866,
		keys: []string{Break + "CLEAR20,23295:CLOADM:EXEC\r"},
	},
}

// Result is the outcome of choosing how to run a file.
type Result struct {
	File *framer.TapeFile

	// the name of the special table entry the file matched. empty if the
	// file did not match a special entry
	Special string

	// the keystrokes to type. each entry is queued separately. empty if the
	// file can not be run
	Keys []string
}

func (r Result) String() string {
	if r.File == nil {
		return "no file"
	}
	if len(r.Keys) == 0 {
		return r.File.Name + ": not runnable"
	}
	s := strings.Builder{}
	s.WriteString(r.File.Name)
	if r.Special != "" {
		s.WriteString(" (")
		s.WriteString(r.Special)
		s.WriteString(")")
	}
	for _, k := range r.Keys {
		s.WriteString(" ")
		s.WriteString(strconv.Quote(k))
	}
	return s.String()
}

// Choose decides the keystrokes required to load and run the file. Choose
// does not need access to the medium.
func Choose(f *framer.TapeFile) Result {
	res := Result{File: f}
	if f == nil {
		return res
	}

	for _, sp := range specials {
		if f.FnBlockSize == sp.size && f.FnBlockCRC == sp.crc {
			res.Special = sp.name
			res.Keys = append(res.Keys, sp.keys...)
			return res
		}
	}

	switch f.Type {
	case framer.FileBASIC:
		res.Keys = []string{Break + "CLOAD\r", "RUN\r"}
	case framer.FileMachineCode:
		res.Keys = []string{Break + "CLOADM\r"}
		if f.LoadAddress < execThreshold {
			res.Keys = append(res.Keys, "EXEC\r")
		}
	}

	return res
}

// Run reads the first file on the medium and queues the keystrokes that will
// load and run it. The position of the medium is the same on return as it was
// on entry.
func Run(env *environment.Environment, r *codec.Reader, kb host.Keyboard) (Result, error) {
	pos := r.Tell()
	if err := r.Rewind(); err != nil {
		return Result{}, err
	}
	f := framer.NextFile(r, false)
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return Result{}, err
	}

	res := Choose(f)
	if res.File == nil {
		logger.Log(env, logTag, "no file found")
		return res, nil
	}

	if len(res.Keys) == 0 {
		logger.Logf(env, logTag, "%s: not a runnable file type (%s)", f.Name, f.Type)
		return res, nil
	}

	if res.Special != "" {
		logger.Logf(env, logTag, "%s: using special commands for %s", f.Name, res.Special)
	}

	for _, k := range res.Keys {
		kb.QueueKeystrokes(k)
	}

	return res, nil
}
