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

import "strings"

// Group is a set of routines that are hooked and unhooked together.
type Group int

// List of valid Group values.
const (
	GroupLeader Group = iota
	GroupBitIn
	GroupByteIn
	GroupRewrite
	NumGroups
)

func (g Group) String() string {
	switch g {
	case GroupLeader:
		return "leader"
	case GroupBitIn:
		return "bit in"
	case GroupByteIn:
		return "byte in"
	case GroupRewrite:
		return "rewrite"
	}
	return "unknown group"
}

// Routines returns the routines in the group.
func (g Group) Routines() []Routine {
	switch g {
	case GroupLeader:
		return []Routine{MotorOn, SyncLeader}
	case GroupBitIn:
		return []Routine{BitIn}
	case GroupByteIn:
		return []Routine{ByteIn}
	case GroupRewrite:
		return []Routine{RewriteTapeOn, RewriteSync, RewriteBitIn, RewriteEndOfBlock}
	}
	return nil
}

// GroupSet is a set of groups.
type GroupSet uint8

// Has returns true if the group is in the set.
func (s GroupSet) Has(g Group) bool {
	return s&(1<<g) != 0
}

// With returns a new set with the group added.
func (s GroupSet) With(g Group) GroupSet {
	return s | (1 << g)
}

// Without returns a new set with the group removed.
func (s GroupSet) Without(g Group) GroupSet {
	return s &^ (1 << g)
}

func (s GroupSet) String() string {
	var n []string
	for g := Group(0); g < NumGroups; g++ {
		if s.Has(g) {
			n = append(n, g.String())
		}
	}
	if len(n) == 0 {
		return "none"
	}
	return strings.Join(n, ", ")
}
