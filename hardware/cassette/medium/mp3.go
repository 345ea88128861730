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
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/environment"
	"github.com/jetsetilly/tapedeck/logger"
)

func openMP3(env *environment.Environment, path string) (*audioReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf(MediumError, err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, curated.Errorf(MediumError, err)
	}

	// the decoded stream is always 16bit little endian with two channels, even
	// if the source is a single channel
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, curated.Errorf(MediumError, err)
	}

	left := make([]int, 0, len(data)/4)
	right := make([]int, 0, len(data)/4)
	for i := 0; i+3 < len(data); i += 4 {
		left = append(left, int(int16(uint16(data[i])|uint16(data[i+1])<<8)))
		right = append(right, int(int16(uint16(data[i+2])|uint16(data[i+3])<<8)))
	}

	a := newAudioReader(left, right, 0, dec.SampleRate())

	logger.Logf(env, logTag, "%s: mp3 at %dHz", path, dec.SampleRate())
	logger.Logf(env, logTag, "%s: %.02fs, %d pulses", path, seconds(a.length()), len(a.pulses))

	return a, nil
}
