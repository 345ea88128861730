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

package rewrite

import (
	"github.com/jetsetilly/tapedeck/environment"
	"github.com/jetsetilly/tapedeck/hardware/cassette/codec"
	"github.com/jetsetilly/tapedeck/hardware/cassette/framer"
	"github.com/jetsetilly/tapedeck/logger"
)

// tag string used in calls to Log().
const logTag = "cassette: rewrite"

// Default leader lengths in bytes.
const (
	DefaultLongLeader  = 256
	DefaultShortLeader = 2
)

// ClosingSilence is the number of ticks of silence written when the output is
// closed.
const ClosingSilence = codec.TickRate / 5

// Output is the write half of a tape as required by the Synchronizer. It is
// satisfied by codec.Writer.
type Output interface {
	WriteBit(bit int) error
	WriteByte(v byte) error
	WriteSilence(ticks int) error
	Silent() bool
}

// Synchronizer writes a standard tape image to an Output.
type Synchronizer struct {
	env *environment.Environment
	out Output

	// leader lengths in bytes
	LongLeader  int
	ShortLeader int

	// ticks of silence written when the motor is switched on
	Silence int

	// bits are being copied to the output
	synced bool

	// number of leader bytes to write before the next sync byte
	leader int

	// number of bits of the current byte written so far
	bits int

	// the output has had a leader written to it since it was attached
	dirty bool
}

// NewSynchronizer is the preferred method of initialisation for the
// Synchronizer type.
func NewSynchronizer(env *environment.Environment) *Synchronizer {
	return &Synchronizer{
		env:         env,
		LongLeader:  DefaultLongLeader,
		ShortLeader: DefaultShortLeader,
		leader:      DefaultLongLeader,
	}
}

// SetOutput attaches an output. A nil value detaches the current output
// without closing it.
func (s *Synchronizer) SetOutput(out Output) {
	s.out = out
	s.synced = false
	s.leader = s.LongLeader
	s.bits = 0
	s.dirty = false
}

// Synced returns true if bits are currently being copied to the output.
func (s *Synchronizer) Synced() bool {
	return s.synced
}

// MotorOn should be called when the cassette motor is switched on and when
// the ROM switches the tape on to search for a block. The next block will be
// preceded by a long leader. Silence is written unless the output is already
// silent.
func (s *Synchronizer) MotorOn() {
	s.Desync(s.LongLeader)
	if s.out == nil || s.Silence <= 0 || s.out.Silent() {
		return
	}
	s.check(s.out.WriteSilence(s.Silence))
}

// MotorOff should be called when the cassette motor is switched off.
func (s *Synchronizer) MotorOff() {
	s.Desync(s.LongLeader)
}

// EndOfBlock should be called when the ROM has finished reading a block. A
// block with a good checksum is followed by a short leader. Any other block
// is followed by a long leader because the ROM will be looking for the block
// again from scratch.
func (s *Synchronizer) EndOfBlock(ok bool) {
	if ok {
		s.Desync(s.ShortLeader)
	} else {
		s.Desync(s.LongLeader)
	}
}

// Sync should be called when the ROM has found the sync byte. If the output is
// not synchronised then the leader and the sync byte are written and the
// output becomes synchronised.
func (s *Synchronizer) Sync() {
	if s.synced || s.out == nil {
		return
	}
	for i := 0; i < s.leader; i++ {
		if !s.check(s.out.WriteByte(framer.LeaderByte)) {
			return
		}
	}
	if !s.check(s.out.WriteByte(framer.SyncByte)) {
		return
	}
	s.synced = true
	s.dirty = true
}

// BitIn should be called with every bit returned by the ROM's bit input
// routine. The bit is written to the output if it is synchronised.
func (s *Synchronizer) BitIn(bit int) {
	if !s.synced || s.out == nil {
		return
	}
	if s.check(s.out.WriteBit(bit)) {
		s.bits = (s.bits + 1) % 8
	}
}

// Desync stops bits being copied to the output. A partially written byte is
// completed with the bits of a leader byte so that the output remains byte
// aligned. The next sync byte will be preceded by a leader of the specified
// number of bytes.
func (s *Synchronizer) Desync(leader int) {
	for s.out != nil && s.bits != 0 {
		if !s.check(s.out.WriteBit((framer.LeaderByte >> s.bits) & 0x01)) {
			break
		}
		s.bits = (s.bits + 1) % 8
	}
	s.bits = 0
	s.leader = leader
	s.synced = false
}

// Close should be called before the output is closed. If anything has been
// written then the tape is finished with a trailing leader byte and a short
// period of silence. The output is detached.
func (s *Synchronizer) Close() {
	if s.out == nil {
		return
	}

	s.Desync(s.LongLeader)

	if s.dirty {
		s.check(s.out.WriteByte(framer.LeaderByte))
		if !s.out.Silent() {
			s.check(s.out.WriteSilence(ClosingSilence))
		}
	}

	s.SetOutput(nil)
}

// check logs a write error. returns false if there was an error.
func (s *Synchronizer) check(err error) bool {
	if err != nil {
		logger.Log(s.env, logTag, err)
		return false
	}
	return true
}
