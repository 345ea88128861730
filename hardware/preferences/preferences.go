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

// Package preferences defines the preference values used by the emulated
// hardware.
package preferences

import (
	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/prefs"
)

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	Tape *TapePreferences
}

func (p *Preferences) String() string {
	return p.Tape.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. Values are loaded from and saved to the file at path. An empty path
// creates preferences that exist only in memory.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}

	var err error
	p.Tape, err = newTapePreferences(path)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.Tape.SetDefaults()
}

// Load all preferences from disk.
func (p *Preferences) Load() error {
	return p.Tape.Load()
}

// Save all preferences to disk.
func (p *Preferences) Save() error {
	return p.Tape.Save()
}

// load from the disk instance, ignoring missing prefs file errors.
func load(dsk *prefs.Disk) error {
	if dsk == nil {
		return nil
	}
	err := dsk.Load()
	if err != nil && !curated.Is(err, prefs.NoPrefsFile) {
		return err
	}
	return nil
}
