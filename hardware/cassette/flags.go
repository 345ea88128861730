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

package cassette

import (
	"fmt"

	"github.com/jetsetilly/tapedeck/hardware/cassette/rom"
)

// Flags control how the cassette interface behaves.
type Flags struct {
	// replace the ROM's tape routines
	FastLoad bool

	// skip the leader synchronisation of recordings with a short leader
	PadAuto bool

	// rewrite the input to the output as it is read
	Rewrite bool
}

func (f Flags) String() string {
	return fmt.Sprintf("fastload=%v padauto=%v rewrite=%v", f.FastLoad, f.PadAuto, f.Rewrite)
}

// Acceleration is the set of ROM routines that will be replaced or observed
// when the motor is on.
type Acceleration struct {
	// motor on delay and leader synchronisation
	Leader bool
	BitIn  bool
	ByteIn bool

	// the tape is being rewritten
	Rewrite bool
}

func (a Acceleration) String() string {
	return fmt.Sprintf("leader=%v bitin=%v bytein=%v rewrite=%v", a.Leader, a.BitIn, a.ByteIn, a.Rewrite)
}

// accelerate returns the acceleration for the flags. the byte input routine
// can not be replaced while rewriting because rewriting observes every bit.
func accelerate(f Flags, shortLeader bool) Acceleration {
	return Acceleration{
		Leader:  f.FastLoad || (shortLeader && f.PadAuto),
		BitIn:   f.FastLoad,
		ByteIn:  f.FastLoad && !f.Rewrite,
		Rewrite: f.Rewrite,
	}
}

// hookState is everything that decides which hooks are installed.
type hookState struct {
	motor bool
	input bool
	acc   Acceleration
}

// wantedHooks returns the hook groups that should be installed.
func wantedHooks(st hookState) rom.GroupSet {
	var g rom.GroupSet
	if !st.motor || !st.input {
		return g
	}
	if st.acc.Leader {
		g = g.With(rom.GroupLeader)
	}
	if st.acc.BitIn {
		g = g.With(rom.GroupBitIn)
	}
	if st.acc.ByteIn {
		g = g.With(rom.GroupByteIn)
	}
	if st.acc.Rewrite {
		g = g.With(rom.GroupRewrite)
	}
	return g
}
