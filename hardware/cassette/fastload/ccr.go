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

package fastload

import "strings"

// CCR is the condition code register of the 6809.
type CCR struct {
	Entire    bool
	FIRQMask  bool
	HalfCarry bool
	IRQMask   bool
	Negative  bool
	Zero      bool
	Overflow  bool
	Carry     bool
}

// CCRFromValue converts an 8 bit value to the CCR type.
func CCRFromValue(v uint8) CCR {
	return CCR{
		Entire:    v&0x80 == 0x80,
		FIRQMask:  v&0x40 == 0x40,
		HalfCarry: v&0x20 == 0x20,
		IRQMask:   v&0x10 == 0x10,
		Negative:  v&0x08 == 0x08,
		Zero:      v&0x04 == 0x04,
		Overflow:  v&0x02 == 0x02,
		Carry:     v&0x01 == 0x01,
	}
}

// Value converts the CCR to an 8 bit value.
func (cc CCR) Value() uint8 {
	var v uint8
	if cc.Entire {
		v |= 0x80
	}
	if cc.FIRQMask {
		v |= 0x40
	}
	if cc.HalfCarry {
		v |= 0x20
	}
	if cc.IRQMask {
		v |= 0x10
	}
	if cc.Negative {
		v |= 0x08
	}
	if cc.Zero {
		v |= 0x04
	}
	if cc.Overflow {
		v |= 0x02
	}
	if cc.Carry {
		v |= 0x01
	}
	return v
}

func (cc CCR) String() string {
	s := strings.Builder{}
	flag := func(set bool, r rune) {
		if set {
			s.WriteRune(r)
		} else {
			s.WriteRune(r + 'a' - 'A')
		}
	}
	flag(cc.Entire, 'E')
	flag(cc.FIRQMask, 'F')
	flag(cc.HalfCarry, 'H')
	flag(cc.IRQMask, 'I')
	flag(cc.Negative, 'N')
	flag(cc.Zero, 'Z')
	flag(cc.Overflow, 'V')
	flag(cc.Carry, 'C')
	return s.String()
}

// HI is the condition tested by BHI. After a comparison it is true if the
// first operand was higher than the second (unsigned).
func (cc CCR) HI() bool {
	return !cc.Carry && !cc.Zero
}

// LS is the condition tested by BLS. The opposite of HI.
func (cc CCR) LS() bool {
	return !cc.HI()
}

// LO is the condition tested by BLO (also BCS). After a comparison it is true
// if the first operand was lower than the second (unsigned).
func (cc CCR) LO() bool {
	return cc.Carry
}

// EQ is the condition tested by BEQ.
func (cc CCR) EQ() bool {
	return cc.Zero
}
