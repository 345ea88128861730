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
	"bufio"
	"os"

	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/environment"
	"github.com/jetsetilly/tapedeck/hardware/cassette/codec"
	"github.com/jetsetilly/tapedeck/logger"
)

// number of pulses in one byte of a CAS file
const pulsesPerByte = 16

// casReader plays back a CAS file. every bit is one full cycle at the nominal
// frequency.
type casReader struct {
	data []byte
	pos  int64
}

func openCAS(env *environment.Environment, path string) (*casReader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, curated.Errorf(MediumError, err)
	}
	logger.Logf(env, logTag, "%s: %d bytes", path, len(data))
	return &casReader{data: data}, nil
}

// NewCAS returns a readable medium playing back the data as if it had been
// read from a CAS file.
func NewCAS(data []byte) Medium {
	return &casReader{data: data}
}

func (cas *casReader) ReadPulse() (codec.Pulse, error) {
	if cas.pos >= int64(len(cas.data))*pulsesPerByte {
		return codec.Pulse{}, curated.Errorf(codec.EndOfMedium)
	}

	b := cas.data[cas.pos/pulsesPerByte]
	bit := (b >> ((cas.pos % pulsesPerByte) / 2)) & 0x01

	p := codec.Pulse{Width: codec.Bit0Length / 2}
	if bit == 1 {
		p.Width = codec.Bit1Length / 2
	}
	if cas.pos%2 == 0 {
		p.Phase = 1
	}

	cas.pos++
	return p, nil
}

func (cas *casReader) WriteSample(_ uint8, _ int) error {
	return curated.Errorf(NotWritable)
}

func (cas *casReader) Seek(offset int64, whence int) (int64, error) {
	return seek(&cas.pos, int64(len(cas.data))*pulsesPerByte, offset, whence)
}

func (cas *casReader) Tell() int64 {
	return cas.pos
}

func (cas *casReader) Close() error {
	return nil
}

// casWriter records samples as a CAS file. the samples are converted back into
// pulses and then into bits.
type casWriter struct {
	env  *environment.Environment
	path string
	f    *os.File
	w    *bufio.Writer

	// the pulse being accumulated
	phase int
	width int

	dec codec.BitDecoder

	// bits of the byte being assembled
	b    uint8
	bits int

	written int64
}

func createCAS(env *environment.Environment, path string) (*casWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, curated.Errorf(MediumError, err)
	}
	cas := &casWriter{
		env:   env,
		path:  path,
		f:     f,
		w:     bufio.NewWriter(f),
		phase: -1,
	}
	return cas, nil
}

func (cas *casWriter) ReadPulse() (codec.Pulse, error) {
	return codec.Pulse{}, curated.Errorf(NotReadable)
}

func (cas *casWriter) WriteSample(level uint8, ticks int) error {
	p := codec.PhaseOfLevel(level, cas.phase)
	if p == cas.phase {
		cas.width += ticks
		return nil
	}
	if err := cas.pushPulse(); err != nil {
		return err
	}
	cas.phase = p
	cas.width = ticks
	return nil
}

func (cas *casWriter) pushPulse() error {
	if cas.phase == -1 {
		return nil
	}

	bit, ok := cas.dec.Push(codec.Pulse{Phase: cas.phase, Width: cas.width})
	if !ok {
		return nil
	}

	cas.b >>= 1
	if bit == 1 {
		cas.b |= 0x80
	}
	cas.bits++
	if cas.bits < 8 {
		return nil
	}

	cas.bits = 0
	cas.written++
	if err := cas.w.WriteByte(cas.b); err != nil {
		return curated.Errorf(MediumError, err)
	}
	return nil
}

func (cas *casWriter) Seek(_ int64, _ int) (int64, error) {
	return cas.Tell(), curated.Errorf(MediumError, "cannot seek while writing a cas file")
}

func (cas *casWriter) Tell() int64 {
	return cas.written * pulsesPerByte
}

func (cas *casWriter) Close() error {
	if err := cas.pushPulse(); err != nil {
		return err
	}
	if cas.bits > 0 {
		logger.Logf(cas.env, logTag, "%s: dropping %d bits of incomplete byte", cas.path, cas.bits)
	}
	if err := cas.w.Flush(); err != nil {
		return curated.Errorf(MediumError, err)
	}
	if err := cas.f.Close(); err != nil {
		return curated.Errorf(MediumError, err)
	}
	logger.Logf(cas.env, logTag, "%s: wrote %d bytes", cas.path, cas.written)
	return nil
}
