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
	"io"

	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/hardware/cassette/autorun"
	"github.com/jetsetilly/tapedeck/hardware/cassette/codec"
	"github.com/jetsetilly/tapedeck/hardware/cassette/framer"
	"github.com/jetsetilly/tapedeck/hardware/cassette/medium"
	"github.com/jetsetilly/tapedeck/logger"
)

// OpenInput opens the file and attaches it as the input medium. On error any
// existing input medium remains attached.
func (s *Session) OpenInput(path string) error {
	m, err := medium.Open(s.env, path, medium.Read)
	if err != nil {
		return curated.Errorf(MediumOpenFailure, err)
	}
	s.AttachInput(m)
	logger.Logf(s.env, logTag, "input: %s", path)
	return nil
}

// AttachInput attaches the medium as the input. Any existing input medium is
// closed.
func (s *Session) AttachInput(m medium.Medium) {
	if err := s.CloseInput(); err != nil {
		logger.Log(s.env, logTag, err)
	}

	s.input = m
	s.reader = codec.NewReader(m)

	s.shortLeader = false
	if n, err := framer.LeaderLength(s.reader); err == nil && n < s.family.NormalLeader {
		s.shortLeader = true
		logger.Logf(s.env, logTag, "short leader (%d bytes)", n)
	}
	s.fast.ShortLeader = s.shortLeader && s.flags.PadAuto

	s.pulse = pulseState{}
	s.nextPulse()
	s.startWaggle()
	s.updateHooks()
}

// CloseInput detaches and closes the input medium.
func (s *Session) CloseInput() error {
	if s.input == nil {
		return nil
	}

	s.host.Scheduler.Cancel(&s.waggle)
	err := s.input.Close()

	s.input = nil
	s.reader = nil
	s.pulse = pulseState{phase: -1}
	s.shortLeader = false
	s.fast.ShortLeader = false
	s.updateHooks()

	if err != nil {
		return curated.Errorf(medium.MediumError, err)
	}
	return nil
}

// SeekInput changes the position of the input medium. The offset is
// interpreted according to whence as with io.Seeker.
func (s *Session) SeekInput(offset int64, whence int) (int64, error) {
	if s.reader == nil {
		return 0, curated.Errorf(NoInput)
	}

	s.stopWaggle()
	pos, err := s.reader.Seek(offset, whence)
	s.pulse = pulseState{}
	s.nextPulse()
	s.startWaggle()

	return pos, err
}

// Rewind the input medium to the start.
func (s *Session) Rewind() error {
	_, err := s.SeekInput(0, io.SeekStart)
	return err
}

// TellInput returns the position of the input medium.
func (s *Session) TellInput() int64 {
	if s.reader == nil {
		return 0
	}
	return s.reader.Tell()
}

// SetPanning changes the channel of a stereo input medium. A pan value of 0.0
// is the left channel and a value of 1.0 is the right channel. Has no effect
// if the input is not stereo.
func (s *Session) SetPanning(pan float64) {
	p, ok := s.input.(medium.Panner)
	if !ok {
		return
	}
	s.stopWaggle()
	p.SetPanning(pan)
	s.nextPulse()
	s.startWaggle()
}

// Autorun types the commands that load and run the first file of the input
// medium. The position of the input is not changed.
func (s *Session) Autorun() (autorun.Result, error) {
	if s.reader == nil {
		return autorun.Result{}, curated.Errorf(NoInput)
	}
	return autorun.Run(s.env, s.reader, s.host.Keyboard)
}

// OpenOutput creates the file and attaches it as the output medium. On error
// any existing output medium remains attached.
func (s *Session) OpenOutput(path string) error {
	m, err := medium.Open(s.env, path, medium.Write)
	if err != nil {
		return curated.Errorf(MediumOpenFailure, err)
	}
	s.AttachOutput(m)
	logger.Logf(s.env, logTag, "output: %s", path)
	return nil
}

// AttachOutput attaches the medium as the output. Any existing output medium
// is closed.
func (s *Session) AttachOutput(m medium.Medium) {
	if err := s.CloseOutput(); err != nil {
		logger.Log(s.env, logTag, err)
	}

	s.output = m
	s.writer = codec.NewWriter(m)
	s.rw.SetOutput(s.writer)
	s.dac.tick = s.host.Scheduler.Now()
}

// CloseOutput finishes, detaches and closes the output medium.
func (s *Session) CloseOutput() error {
	if s.output == nil {
		return nil
	}

	s.flushOutput()
	if s.flags.Rewrite {
		s.rw.Close()
	} else {
		s.rw.SetOutput(nil)
	}

	err := s.output.Close()
	s.output = nil
	s.writer = nil

	if err != nil {
		return curated.Errorf(medium.MediumError, err)
	}
	return nil
}
