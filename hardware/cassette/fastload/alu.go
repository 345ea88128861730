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

// the instructions of the ROM routines that affect the outcome. each function
// returns the result of the instruction and the new condition codes.

func (cc CCR) nz(v uint8) CCR {
	cc.Negative = v&0x80 == 0x80
	cc.Zero = v == 0
	return cc
}

// add performs ADDA/ADDB.
func add(cc CCR, a uint8, b uint8) (uint8, CCR) {
	r := uint16(a) + uint16(b)
	v := uint8(r)
	cc = cc.nz(v)
	cc.HalfCarry = (a^b^v)&0x10 == 0x10
	cc.Overflow = (a^v)&(b^v)&0x80 == 0x80
	cc.Carry = r&0x100 == 0x100
	return v, cc
}

// sub performs SUBA/SUBB and CMPA/CMPB. for CMP the result is discarded.
func sub(cc CCR, a uint8, b uint8) (uint8, CCR) {
	r := uint16(a) - uint16(b)
	v := uint8(r)
	cc = cc.nz(v)
	cc.Overflow = (a^b)&(a^v)&0x80 == 0x80
	cc.Carry = r&0x100 == 0x100
	return v, cc
}

// clr performs CLR.
func clr(cc CCR) (uint8, CCR) {
	cc.Negative = false
	cc.Zero = true
	cc.Overflow = false
	cc.Carry = false
	return 0, cc
}

// inc performs INC. the carry flag is not affected.
func inc(cc CCR, a uint8) (uint8, CCR) {
	v := a + 1
	cc = cc.nz(v)
	cc.Overflow = a == 0x7f
	return v, cc
}

// dec performs DEC. the carry flag is not affected.
func dec(cc CCR, a uint8) (uint8, CCR) {
	v := a - 1
	cc = cc.nz(v)
	cc.Overflow = a == 0x80
	return v, cc
}

// tst performs TST.
func tst(cc CCR, a uint8) CCR {
	cc = cc.nz(a)
	cc.Overflow = false
	return cc
}

// ror performs ROR. the carry flag is rotated into bit 7 and bit 0 is
// rotated into the carry flag.
func ror(cc CCR, a uint8) (uint8, CCR) {
	v := a >> 1
	if cc.Carry {
		v |= 0x80
	}
	cc = cc.nz(v)
	cc.Carry = a&0x01 == 0x01
	return v, cc
}

// CPU cycles taken by the modelled instructions.
const (
	cycINCDirect   = 6
	cycDECDirect   = 6
	cycCLRDirect   = 6
	cycTSTDirect   = 6
	cycLDADirect   = 4
	cycLDBDirect   = 4
	cycLDBExtended = 5
	cycLDBImm      = 2
	cycCMPADirect  = 4
	cycCMPBDirect  = 4
	cycCMPAImm     = 2
	cycSTADirect   = 4
	cycLDXDirect   = 5
	cycLEAX        = 5
	cycCLRA        = 2
	cycRORA        = 2
	cycRORB        = 2
	cycDECB        = 2
	cycSUBAImm     = 2
	cycBranch      = 3
	cycBSR         = 7
	cycRTS         = 5
)
