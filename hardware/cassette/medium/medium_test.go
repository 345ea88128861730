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

package medium_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/hardware/cassette/codec"
	"github.com/jetsetilly/tapedeck/hardware/cassette/medium"
	"github.com/jetsetilly/tapedeck/test"
)

var testData = []uint8{0x55, 0x55, 0x3c, 0x00, 0x0f, 0xff, 0x81, 0xa5}

func readAll(t *testing.T, m medium.Medium, n int) []uint8 {
	t.Helper()
	r := codec.NewReader(m)
	var got []uint8
	for i := 0; i < n; i++ {
		v, err := r.ReadByte()
		test.DemandSuccess(t, err)
		got = append(got, v)
	}
	return got
}

func writeAll(t *testing.T, m medium.Medium) {
	t.Helper()
	w := codec.NewWriter(m)
	test.DemandSuccess(t, w.WriteSilence(codec.TickRate/10))
	for _, v := range testData {
		test.DemandSuccess(t, w.WriteByte(v))
	}
	test.DemandSuccess(t, w.WriteSilence(codec.TickRate/10))
}

func TestCASRead(t *testing.T) {
	m := medium.NewCAS(testData)

	p, err := m.ReadPulse()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, codec.Pulse{Phase: 1, Width: codec.Bit1Length / 2})
	p, err = m.ReadPulse()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, codec.Pulse{Phase: 0, Width: codec.Bit1Length / 2})
	p, err = m.ReadPulse()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, codec.Pulse{Phase: 1, Width: codec.Bit0Length / 2})
	test.ExpectEquality(t, m.Tell(), int64(3))

	_, err = m.Seek(0, io.SeekStart)
	test.DemandSuccess(t, err)
	if diff := cmp.Diff(testData, readAll(t, m, len(testData))); diff != "" {
		t.Errorf("unexpected data (-want +got):\n%s", diff)
	}

	_, err = m.ReadPulse()
	test.ExpectEquality(t, curated.Is(err, codec.EndOfMedium), true)

	// seeking is clamped to the length of the medium
	n, err := m.Seek(1000, io.SeekStart)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, int64(len(testData)*16))
	n, err = m.Seek(-16, io.SeekCurrent)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, int64((len(testData)-1)*16))
	test.ExpectEquality(t, readAll(t, m, 1)[0], testData[len(testData)-1])

	test.ExpectEquality(t, curated.Is(m.WriteSample(0x80, 1), medium.NotWritable), true)
}

func TestCASWrite(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.cas")

	m, err := medium.Open(nil, fn, medium.Write)
	test.DemandSuccess(t, err)
	writeAll(t, m)
	_, err = m.ReadPulse()
	test.ExpectEquality(t, curated.Is(err, medium.NotReadable), true)
	test.DemandSuccess(t, m.Close())

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	if diff := cmp.Diff(testData, data); diff != "" {
		t.Errorf("unexpected file content (-want +got):\n%s", diff)
	}

	// and read it back through the package
	m, err = medium.Open(nil, fn, medium.Read)
	test.DemandSuccess(t, err)
	if diff := cmp.Diff(testData, readAll(t, m, len(testData))); diff != "" {
		t.Errorf("unexpected data (-want +got):\n%s", diff)
	}
}

func TestWAV(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.wav")

	m, err := medium.Open(nil, fn, medium.Write)
	test.DemandSuccess(t, err)
	writeAll(t, m)
	test.DemandSuccess(t, m.Close())

	m, err = medium.Open(nil, fn, medium.Read)
	test.DemandSuccess(t, err)
	if diff := cmp.Diff(testData, readAll(t, m, len(testData))); diff != "" {
		t.Errorf("unexpected data (-want +got):\n%s", diff)
	}
	test.DemandSuccess(t, m.Close())
}

func TestMotorOffCheckpoint(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.wav")

	m, err := medium.Open(nil, fn, medium.Write)
	test.DemandSuccess(t, err)
	writeAll(t, m)

	n, ok := m.(medium.MotorOffNotifier)
	test.DemandEquality(t, ok, true)
	n.MotorOff()

	// the file can be read before the medium is closed
	r, err := medium.Open(nil, fn, medium.Read)
	test.DemandSuccess(t, err)
	if diff := cmp.Diff(testData, readAll(t, r, len(testData))); diff != "" {
		t.Errorf("unexpected data (-want +got):\n%s", diff)
	}

	test.DemandSuccess(t, m.Close())
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := medium.Open(nil, filepath.Join(dir, "test.txt"), medium.Read)
	test.ExpectEquality(t, curated.Is(err, medium.UnsupportedFormat), true)

	_, err = medium.Open(nil, filepath.Join(dir, "test.mp3"), medium.Write)
	test.ExpectEquality(t, curated.Is(err, medium.NotWritable), true)

	_, err = medium.Open(nil, filepath.Join(dir, "missing.cas"), medium.Read)
	test.ExpectEquality(t, curated.Is(err, medium.MediumError), true)

	// not a wav file
	fn := filepath.Join(dir, "bad.wav")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("not a wav file"), 0600))
	_, err = medium.Open(nil, fn, medium.Read)
	test.ExpectFailure(t, err)
}

func TestMemory(t *testing.T) {
	m := medium.NewMemory(nil)
	writeAll(t, m)

	var total int
	for _, s := range m.Samples {
		total += s.Ticks
	}
	test.ExpectEquality(t, m.Duration(), total)

	p := m.Playback()
	if diff := cmp.Diff(testData, readAll(t, p, len(testData))); diff != "" {
		t.Errorf("unexpected data (-want +got):\n%s", diff)
	}

	m.MotorOff()
	test.ExpectEquality(t, m.MotorOffCount, 1)
	test.ExpectSuccess(t, m.Close())
	test.ExpectEquality(t, m.Closed, true)
}
