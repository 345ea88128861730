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

package preferences

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/tapedeck/hardware/cassette/rom"
	"github.com/jetsetilly/tapedeck/prefs"
)

// TapePreferences are the preferences of the cassette interface.
type TapePreferences struct {
	dsk *prefs.Disk

	// accelerate loading by replacing ROM routines
	FastLoad prefs.Bool

	// detect recordings with short leaders and skip the leader
	// synchronisation when one is found
	PadAuto prefs.Bool

	// rewrite the input tape to the output tape as it is read
	Rewrite prefs.Bool

	// the ROM family of the machine. one of the IDs returned by rom.IDs()
	Machine prefs.String

	// number of leader bytes written before the first block and before a block
	// that follows a gap
	LongLeader prefs.Int

	// number of leader bytes written between consecutive blocks
	ShortLeader prefs.Int

	// milliseconds of silence written when the motor is switched on while
	// rewriting
	Silence prefs.Int

	// milliseconds after the motor is switched off before the media are
	// notified
	MotorOffDelay prefs.Int
}

func (p *TapePreferences) String() string {
	if p.dsk == nil {
		return ""
	}
	return p.dsk.String()
}

func newTapePreferences(path string) (*TapePreferences, error) {
	p := &TapePreferences{}

	p.LongLeader.SetRange(1, 4096)
	p.ShortLeader.SetRange(1, 4096)
	p.Silence.SetRange(0, 10000)
	p.MotorOffDelay.SetRange(0, 10000)
	p.Machine.SetHookPre(func(v prefs.Value) error {
		id := strings.ToLower(v.(string))
		if _, err := rom.Lookup(id); err != nil {
			return fmt.Errorf("tape.machine: must be one of %s", strings.Join(rom.IDs(), ", "))
		}
		return nil
	})

	p.SetDefaults()

	if path == "" {
		return p, nil
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	if err := p.dsk.Add("tape.fastload", &p.FastLoad); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("tape.padauto", &p.PadAuto); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("tape.rewrite", &p.Rewrite); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("tape.machine", &p.Machine); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("tape.longleader", &p.LongLeader); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("tape.shortleader", &p.ShortLeader); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("tape.silence", &p.Silence); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("tape.motoroff", &p.MotorOffDelay); err != nil {
		return nil, err
	}

	if err := load(p.dsk); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all tape preferences to their default values.
func (p *TapePreferences) SetDefaults() {
	p.FastLoad.Set(true)
	p.PadAuto.Set(true)
	p.Rewrite.Set(false)
	p.Machine.Set(rom.Dragon.ID)
	p.LongLeader.Set(256)
	p.ShortLeader.Set(2)
	p.Silence.Set(500)
	p.MotorOffDelay.Set(2000)
}

// Family returns the ROM family named by the Machine preference.
func (p *TapePreferences) Family() (*rom.Family, error) {
	return rom.Lookup(strings.ToLower(p.Machine.String()))
}

// Load tape preferences from disk.
func (p *TapePreferences) Load() error {
	return load(p.dsk)
}

// Save tape preferences to disk.
func (p *TapePreferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
