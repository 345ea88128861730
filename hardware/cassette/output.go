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

package cassette

import (
	"github.com/jetsetilly/tapedeck/logger"
)

// dacState is the level of the machine's DAC and the time it was last written
// to the output.
type dacState struct {
	level uint8
	tick  uint64
}

// SetOutputLevel should be called whenever the machine's DAC changes. The
// previous level is written to the output medium for the time it was held.
func (s *Session) SetOutputLevel(level uint8) {
	s.flushOutput()
	s.dac.level = level
}

// flushOutput writes the current DAC level to the output for the time since
// the last write. Nothing is written while the motor is off or while
// rewriting.
func (s *Session) flushOutput() {
	now := s.host.Scheduler.Now()
	defer func() {
		s.dac.tick = now
	}()

	if s.writer == nil || !s.motor || s.flags.Rewrite {
		return
	}
	if now <= s.dac.tick {
		return
	}

	if err := s.writer.WriteSample(s.dac.level, int(now-s.dac.tick)); err != nil {
		logger.Log(s.env, logTag, err)
	}
}

// periodicFlush is the dispatch function of the flush event.
func (s *Session) periodicFlush() {
	s.flushOutput()
	if s.motor {
		sched := s.host.Scheduler
		sched.Schedule(&s.flush, sched.Now()+flushInterval)
	}
}
