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
	"path/filepath"
	"strings"

	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/environment"
	"github.com/jetsetilly/tapedeck/hardware/cassette/codec"
)

// tag string used in calls to Log().
const logTag = "cassette: medium"

// Sentinal error patterns.
const (
	UnsupportedFormat = "medium: unsupported format (%s)"
	NotReadable       = "medium: not readable"
	NotWritable       = "medium: not writable"
	MediumError       = "medium: %v"
)

// Medium is the storage behind a virtual cassette.
type Medium interface {
	codec.Source
	codec.Sink
	Seek(offset int64, whence int) (int64, error)
	Tell() int64
	Close() error
}

// MotorOffNotifier is implemented by media that want to know when the
// cassette motor has been off for a while.
type MotorOffNotifier interface {
	MotorOff()
}

// Panner is implemented by stereo audio media. A pan value of 0.0 reads the
// left channel only and a value of 1.0 reads the right channel only. Values in
// between mix the two channels.
type Panner interface {
	SetPanning(pan float64)
}

// Mode specifies whether a medium is opened for reading or for writing.
type Mode int

// List of valid Mode values.
const (
	Read Mode = iota
	Write
)

func (m Mode) String() string {
	if m == Write {
		return "write"
	}
	return "read"
}

// Open the file at path. The format of the file is decided by the file
// extension.
func Open(env *environment.Environment, path string, mode Mode) (Medium, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".cas":
		if mode == Write {
			return createCAS(env, path)
		}
		return openCAS(env, path)
	case ".wav":
		if mode == Write {
			return createWAV(env, path)
		}
		return openWAV(env, path)
	case ".mp3":
		if mode == Write {
			return nil, curated.Errorf(NotWritable)
		}
		return openMP3(env, path)
	}

	return nil, curated.Errorf(UnsupportedFormat, ext)
}
