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

package prefs

import (
	"errors"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jetsetilly/tapedeck/curated"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences.toml"

// WarningBoilerPlate is written to the head of every preferences file.
const WarningBoilerPlate = "# this file is maintained by tapedeck. edit with care\n"

// Sentinal error patterns.
const (
	NoPrefsFile    = "prefs: no prefs file (%s)"
	DuplicateKey   = "prefs: duplicate key (%s)"
	InvalidValue   = "prefs: invalid value for %s: %v"
	PrefsFileError = "prefs: %v"
)

// Disk represents preference values as stored on disk.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	dsk := &Disk{
		path:    path,
		entries: make(map[string]pref),
	}
	return dsk, nil
}

func (dsk *Disk) String() string {
	keys := dsk.keys()
	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(k)
		s.WriteString(" :: ")
		s.WriteString(dsk.entries[k].String())
		s.WriteString("\n")
	}
	return s.String()
}

func (dsk *Disk) keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Add preference value to list of values to store/load from Disk. The key
// value is used to identify the value in the preferences file. Dots in the key
// separate TOML tables.
func (dsk *Disk) Add(key string, p pref) error {
	key = strings.TrimSpace(key)
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	dsk.entries[key] = p
	return nil
}

// Reset all entries to their reset value.
func (dsk *Disk) Reset() error {
	for _, k := range dsk.keys() {
		if err := dsk.entries[k].Reset(); err != nil {
			return curated.Errorf(InvalidValue, k, err)
		}
	}
	return nil
}

// Load preference values from disk. Values for keys that have not been added
// to this Disk instance are ignored.
//
// Values on the command line stack take priority over values on disk. If the
// preferences file does not exist the command line values are still applied
// and the NoPrefsFile error is returned.
func (dsk *Disk) Load() error {
	values, err := dsk.read()
	if err != nil && !curated.Is(err, NoPrefsFile) {
		return err
	}

	for _, k := range dsk.keys() {
		if v, ok := values[k]; ok {
			if err := dsk.entries[k].Set(v); err != nil {
				return curated.Errorf(InvalidValue, k, err)
			}
		}
	}

	for _, k := range dsk.keys() {
		if ok, v := GetCommandLinePref(k); ok {
			if err := dsk.entries[k].Set(v); err != nil {
				return curated.Errorf(InvalidValue, k, err)
			}
		}
	}

	return err
}

// Save current preference values to disk. Values in the file that don't belong
// to this Disk instance are preserved.
func (dsk *Disk) Save() error {
	values, err := dsk.read()
	if err != nil && !curated.Is(err, NoPrefsFile) {
		return err
	}

	for k, p := range dsk.entries {
		values[k] = p.Get()
	}

	tree, err := unflatten(values)
	if err != nil {
		return curated.Errorf(PrefsFileError, err)
	}

	f, err := os.Create(dsk.path)
	if err != nil {
		return curated.Errorf(PrefsFileError, err)
	}
	defer f.Close()

	if _, err := f.WriteString(WarningBoilerPlate); err != nil {
		return curated.Errorf(PrefsFileError, err)
	}
	if _, err := f.WriteString("\n"); err != nil {
		return curated.Errorf(PrefsFileError, err)
	}
	if err := toml.NewEncoder(f).Encode(tree); err != nil {
		return curated.Errorf(PrefsFileError, err)
	}

	return nil
}

// read the preferences file and return its values keyed by dotted path. the
// returned map is never nil.
func (dsk *Disk) read() (map[string]Value, error) {
	values := make(map[string]Value)

	var tree map[string]interface{}
	_, err := toml.DecodeFile(dsk.path, &tree)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return values, curated.Errorf(NoPrefsFile, dsk.path)
		}
		return values, curated.Errorf(PrefsFileError, err)
	}

	flatten("", tree, values)
	return values, nil
}

func flatten(prefix string, tree map[string]interface{}, values map[string]Value) {
	for k, v := range tree {
		if prefix != "" {
			k = prefix + "." + k
		}
		if t, ok := v.(map[string]interface{}); ok {
			flatten(k, t, values)
			continue
		}
		values[k] = v
	}
}

func unflatten(values map[string]Value) (map[string]interface{}, error) {
	tree := make(map[string]interface{})
	for k, v := range values {
		parts := strings.Split(k, ".")
		t := tree
		for _, p := range parts[:len(parts)-1] {
			switch n := t[p].(type) {
			case nil:
				m := make(map[string]interface{})
				t[p] = m
				t = m
			case map[string]interface{}:
				t = n
			default:
				return nil, curated.Errorf(InvalidValue, k, "key is also a value")
			}
		}
		t[parts[len(parts)-1]] = v
	}
	return tree, nil
}
