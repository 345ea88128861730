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
	"os"

	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/environment"
	"github.com/jetsetilly/tapedeck/hardware/cassette/codec"
	"github.com/jetsetilly/tapedeck/logger"
	"github.com/youpy/go-wav"
)

// WAVSampleRate is the sample rate of WAV files created by the package.
const WAVSampleRate = 44100

// wavWriter records samples as an eight bit mono WAV file. the WAV header
// requires the number of samples so the samples are buffered and written in
// full when the medium is closed or when the motor has been switched off.
type wavWriter struct {
	env  *environment.Environment
	path string

	clk    sampleClock
	buffer []wav.Sample

	// samples have been added since the file was last written
	dirty bool
}

func createWAV(env *environment.Environment, path string) (*wavWriter, error) {
	w := &wavWriter{
		env:  env,
		path: path,
		clk:  sampleClock{rate: WAVSampleRate},
	}

	// create the file now so that errors are reported on open
	if err := w.save(); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *wavWriter) ReadPulse() (codec.Pulse, error) {
	return codec.Pulse{}, curated.Errorf(NotReadable)
}

func (w *wavWriter) WriteSample(level uint8, ticks int) error {
	n := w.clk.samples(ticks)
	for i := 0; i < n; i++ {
		s := wav.Sample{}
		s.Values[0] = int(level)
		w.buffer = append(w.buffer, s)
	}
	w.dirty = w.dirty || n > 0
	return nil
}

func (w *wavWriter) Seek(_ int64, _ int) (int64, error) {
	return w.Tell(), curated.Errorf(MediumError, "cannot seek while writing a wav file")
}

// Tell returns the number of samples written.
func (w *wavWriter) Tell() int64 {
	return int64(len(w.buffer))
}

// MotorOff implements the MotorOffNotifier interface.
func (w *wavWriter) MotorOff() {
	if !w.dirty {
		return
	}
	if err := w.save(); err != nil {
		logger.Log(w.env, logTag, err)
	}
}

func (w *wavWriter) Close() error {
	return w.save()
}

func (w *wavWriter) save() (rerr error) {
	f, err := os.Create(w.path)
	if err != nil {
		return curated.Errorf(MediumError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = curated.Errorf(MediumError, err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(w.buffer)), 1, WAVSampleRate, 8)
	if enc == nil {
		return curated.Errorf(MediumError, "bad parameters for wav encoding")
	}

	if err := enc.WriteSamples(w.buffer); err != nil {
		return curated.Errorf(MediumError, err)
	}

	w.dirty = false
	logger.Logf(w.env, logTag, "%s: wrote %d samples", w.path, len(w.buffer))

	return nil
}
