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

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/environment"
	"github.com/jetsetilly/tapedeck/logger"
)

func openWAV(env *environment.Environment, path string) (*audioReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf(MediumError, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if dec == nil || !dec.IsValidFile() {
		return nil, curated.Errorf(MediumError, "not a valid wav file")
	}

	// load all data at once
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, curated.Errorf(MediumError, err)
	}

	left, right := splitChannels(buf)

	// eight bit wav data is unsigned
	centre := 0
	if dec.BitDepth == 8 {
		centre = 0x80
	}

	a := newAudioReader(left, right, centre, int(dec.SampleRate))

	logger.Logf(env, logTag, "%s: %d channels at %dHz (%d bit)", path, dec.NumChans, dec.SampleRate, dec.BitDepth)
	logger.Logf(env, logTag, "%s: %.02fs, %d pulses", path, seconds(a.length()), len(a.pulses))

	return a, nil
}

// splitChannels returns the first two channels of the buffer. for mono data
// both return values are the same slice.
func splitChannels(buf *audio.IntBuffer) ([]int, []int) {
	n := buf.Format.NumChannels
	if n <= 1 {
		return buf.Data, buf.Data
	}

	left := make([]int, 0, len(buf.Data)/n)
	right := make([]int, 0, len(buf.Data)/n)
	for i := 0; i+1 < len(buf.Data); i += n {
		left = append(left, buf.Data[i])
		right = append(right, buf.Data[i+1])
	}
	return left, right
}
