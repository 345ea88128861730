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

import "math"

// Half widths used when synthesising pulses. The widths are deliberately
// slightly off nominal so that recordings load reliably on real hardware.
const (
	Bit0Half = 6200
	Bit1Half = 2900
)

// number of samples used to shape each pulse
const sineSteps = 16

// amplitude of the shaped pulse either side of Centre
const sineAmplitude = 0x7f

var halfSine [sineSteps]uint8

func init() {
	for i := range halfSine {
		a := math.Sin(math.Pi * (float64(i) + 0.5) / sineSteps)
		halfSine[i] = uint8(math.Round(sineAmplitude * a))
	}
}

// Writer synthesises pulses, bits and bytes for a Sink.
type Writer struct {
	sink Sink

	// fractional ticks carried between samples, in units of 1/sineSteps
	rem int

	// the most recent write was silence
	silent bool
}

// NewWriter is the preferred method of initialisation for the Writer type.
func NewWriter(sink Sink) *Writer {
	return &Writer{sink: sink}
}

// WritePulse shapes a single pulse of the specified width as a half sine
// wave. Fractional sample durations are carried to the next sample so that
// the total duration of a long stream of pulses is exact.
func (w *Writer) WritePulse(phase int, width int) error {
	w.silent = false
	for i := 0; i < sineSteps; i++ {
		w.rem += width
		d := w.rem / sineSteps
		w.rem %= sineSteps
		if d == 0 {
			continue
		}

		level := uint8(Centre) - halfSine[i]
		if phase == 1 {
			level = uint8(Centre) + halfSine[i]
		}
		if err := w.sink.WriteSample(level, d); err != nil {
			return err
		}
	}
	return nil
}

// WriteBit writes one full cycle: a positive pulse followed by a negative
// pulse.
func (w *Writer) WriteBit(bit int) error {
	half := Bit0Half
	if bit != 0 {
		half = Bit1Half
	}
	if err := w.WritePulse(1, half); err != nil {
		return err
	}
	return w.WritePulse(0, half)
}

// WriteByte writes eight bits, least significant bit first.
func (w *Writer) WriteByte(v byte) error {
	for i := 0; i < 8; i++ {
		if err := w.WriteBit(int(v & 0x01)); err != nil {
			return err
		}
		v >>= 1
	}
	return nil
}

// WriteSilence writes the specified number of ticks of silence. The silence is
// written as two samples either side of Centre so that a following positive
// pulse is always seen as a change of phase.
func (w *Writer) WriteSilence(ticks int) error {
	if err := w.sink.WriteSample(Centre+1, ticks/2); err != nil {
		return err
	}
	if err := w.sink.WriteSample(Centre-1, ticks-ticks/2); err != nil {
		return err
	}
	w.silent = true
	return nil
}

// WriteSample passes a sample directly to the Sink.
func (w *Writer) WriteSample(level uint8, ticks int) error {
	w.silent = false
	return w.sink.WriteSample(level, ticks)
}

// Silent returns true if the most recent write was silence.
func (w *Writer) Silent() bool {
	return w.silent
}
