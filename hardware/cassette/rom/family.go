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

package rom

import (
	"sort"

	"github.com/jetsetilly/tapedeck/curated"
)

// UnknownFamily is returned by Lookup() when the ID is not recognised.
const UnknownFamily = "rom: unknown family (%s)"

// Routine identifies a hookable ROM entry point.
type Routine int

// List of valid Routine values.
const (
	// entry points replaced entirely when fast loading
	MotorOn Routine = iota
	SyncLeader
	BitIn
	ByteIn

	// return points observed when rewriting
	RewriteTapeOn
	RewriteSync
	RewriteBitIn
	RewriteEndOfBlock
)

func (r Routine) String() string {
	switch r {
	case MotorOn:
		return "motor on"
	case SyncLeader:
		return "sync leader"
	case BitIn:
		return "bit in"
	case ByteIn:
		return "byte in"
	case RewriteTapeOn:
		return "rewrite tape on"
	case RewriteSync:
		return "rewrite sync"
	case RewriteBitIn:
		return "rewrite bit in"
	case RewriteEndOfBlock:
		return "rewrite end of block"
	}
	return "unknown routine"
}

// Vars are the addresses of the ROM work variables in RAM.
type Vars struct {
	// pulse width counter, incremented by the polling loops
	PWCount uint16

	// leader bit counter used while synchronising
	BCount uint16

	// phase of the signal determined by the leader. zero for normal phase
	Phase uint16

	// 1200 baud pulse width limits
	MinPW1200 uint16
	MaxPW1200 uint16

	// cycle width threshold between a one and a zero bit
	MinCW1200 uint16

	// 16 bit motor on delay count
	MotorDelay uint16

	// non-zero if the most recent block failed its checksum
	ChecksumError uint16
}

// Descriptor is a single hookable address.
type Descriptor struct {
	Routine Routine
	Address uint16
}

// Family describes one ROM family.
type Family struct {
	ID   string
	Name string

	// addresses of each routine
	Routines map[Routine]uint16

	Vars Vars

	// number of CPU cycles taken by one iteration of the motor on delay loop
	DelayLoopCycles int

	// number of matching leader bits required by the sync routine
	LeaderCount int

	// number of leader bytes written by the ROM. a recording with fewer
	// leader bytes than this is a short leader
	NormalLeader int
}

// Address returns the address of the routine.
func (f *Family) Address(r Routine) uint16 {
	return f.Routines[r]
}

// Hooks returns the hookable addresses of the group.
func (f *Family) Hooks(g Group) []Descriptor {
	var d []Descriptor
	for _, r := range g.Routines() {
		d = append(d, Descriptor{Routine: r, Address: f.Routines[r]})
	}
	return d
}

// Dragon is the ROM family of the Dragon 32 and Dragon 64.
var Dragon = Family{
	ID:   "dragon",
	Name: "Dragon",
	Routines: map[Routine]uint16{
		MotorOn:           0xbdd7,
		SyncLeader:        0xbded,
		BitIn:             0xbda5,
		ByteIn:            0xbdad,
		RewriteTapeOn:     0xbdeb,
		RewriteSync:       0xb94d,
		RewriteBitIn:      0xbdac,
		RewriteEndOfBlock: 0xb97e,
	},
	Vars: Vars{
		PWCount:       0x82,
		BCount:        0x83,
		Phase:         0x84,
		MinPW1200:     0x93,
		MaxPW1200:     0x94,
		MinCW1200:     0x92,
		MotorDelay:    0x95,
		ChecksumError: 0x81,
	},
	DelayLoopCycles: 8,
	LeaderCount:     0x60,
	NormalLeader:    128,
}

// CoCo is the ROM family of the Tandy Colour Computer 1 and 2.
var CoCo = Family{
	ID:   "coco",
	Name: "Tandy CoCo",
	Routines: map[Routine]uint16{
		MotorOn:           0xa7d1,
		SyncLeader:        0xa782,
		BitIn:             0xa755,
		ByteIn:            0xa749,
		RewriteTapeOn:     0xa780,
		RewriteSync:       0xa719,
		RewriteBitIn:      0xa75c,
		RewriteEndOfBlock: 0xa746,
	},
	Vars: Vars{
		PWCount:       0x83,
		BCount:        0x82,
		Phase:         0x84,
		MinPW1200:     0x91,
		MaxPW1200:     0x90,
		MinCW1200:     0x8f,
		MotorDelay:    0x8a,
		ChecksumError: 0x81,
	},
	DelayLoopCycles: 8,
	LeaderCount:     0x60,
	NormalLeader:    128,
}

var families = map[string]*Family{
	Dragon.ID: &Dragon,
	CoCo.ID:   &CoCo,
}

// Lookup returns the family with the ID.
func Lookup(id string) (*Family, error) {
	if f, ok := families[id]; ok {
		return f, nil
	}
	return nil, curated.Errorf(UnknownFamily, id)
}

// IDs returns the IDs of all families, sorted.
func IDs() []string {
	ids := make([]string, 0, len(families))
	for id := range families {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Default values of the ROM work variables as set by the ROM on reset.
const (
	DefaultMinPW1200  = 16
	DefaultMaxPW1200  = 34
	DefaultMinCW1200  = 34
	DefaultMotorDelay = 0xda5c
)

// RAM is the write half of a memory bus.
type RAM interface {
	Write(address uint16, data uint8)
}

// Reset writes the default values of the tape work variables. The ROM does
// this during its cold start.
func (f *Family) Reset(mem RAM) {
	mem.Write(f.Vars.MinPW1200, DefaultMinPW1200)
	mem.Write(f.Vars.MaxPW1200, DefaultMaxPW1200)
	mem.Write(f.Vars.MinCW1200, DefaultMinCW1200)
	mem.Write(f.Vars.MotorDelay, uint8(DefaultMotorDelay>>8))
	mem.Write(f.Vars.MotorDelay+1, uint8(DefaultMotorDelay&0xff))
	mem.Write(f.Vars.Phase, 0)
}
