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

// the states of the leader synchronisation routine. the ROM routine counts
// consecutive leader bits up or down depending on whether the two halves of
// each cycle match. a count of +96 means the signal is in phase and a count
// of -96 means it is inverted.
type syncState int

const (
	syncClear syncState = iota
	syncWait
	syncCompare
	syncIncrement
	syncDecrement
	syncTest
	syncDone
)

func (s syncState) String() string {
	switch s {
	case syncClear:
		return "clear"
	case syncWait:
		return "wait"
	case syncCompare:
		return "compare"
	case syncIncrement:
		return "increment"
	case syncDecrement:
		return "decrement"
	case syncTest:
		return "test"
	case syncDone:
		return "done"
	}
	return "unknown"
}

// the outcome of the work done in a state.
type syncInput int

const (
	inputNone syncInput = iota

	// outcomes of the compare state
	inputMatched
	inputMismatched
	inputOutOfRange

	// outcomes of the test state
	inputNormal
	inputInverted
)

// next returns the state that follows s given the outcome of s.
func (s syncState) next(in syncInput) syncState {
	switch s {
	case syncClear:
		return syncWait
	case syncWait:
		return syncCompare
	case syncCompare:
		switch in {
		case inputMatched:
			return syncIncrement
		case inputMismatched:
			return syncDecrement
		}
		return syncClear
	case syncIncrement, syncDecrement:
		return syncTest
	case syncTest:
		if in == inputNormal || in == inputInverted {
			return syncDone
		}
		return syncCompare
	}
	return syncDone
}

// classification of a pulse width against the 1200 baud limits.
type pulseClass int

const (
	pulse1200 pulseClass = iota
	pulseShort
	pulseLong
)

// compare the classes of the two halves of a cycle.
func compare(a pulseClass, b pulseClass) syncInput {
	if a == pulseLong || b == pulseLong {
		return inputOutOfRange
	}
	if a == b {
		return inputMatched
	}
	return inputMismatched
}

// syncLeader waits for LeaderCount consecutive matching or mismatching
// cycles. The phase work variable is set accordingly. Returns false at the end
// of the medium.
func (em *Emulator) syncLeader() bool {
	v := em.family.Vars
	count := uint8(em.family.LeaderCount)

	var in syncInput
	s := syncClear

	for s != syncDone {
		in = inputNone

		switch s {
		case syncClear:
			var z uint8
			em.skip += cycCLRDirect
			z, em.cc = clr(em.cc)
			em.cpu.Write(v.BCount, z)

		case syncWait:
			// leaves the tape at the start of a positive pulse
			em.skip += cycBSR
			if !em.waitPhase(0) {
				return false
			}
			em.skip += cycBSR
			if !em.waitPhase(1) {
				return false
			}

		case syncCompare:
			a, ok := em.cmpVs1200(0)
			if !ok {
				return false
			}
			b, ok := em.cmpVs1200(1)
			if !ok {
				return false
			}
			in = compare(a, b)

		case syncIncrement:
			var n uint8
			em.skip += cycINCDirect
			n, em.cc = inc(em.cc, em.cpu.Read(v.BCount))
			em.cpu.Write(v.BCount, n)

		case syncDecrement:
			var n uint8
			em.skip += cycDECDirect
			n, em.cc = dec(em.cc, em.cpu.Read(v.BCount))
			em.cpu.Write(v.BCount, n)

		case syncTest:
			em.skip += cycLDADirect + cycCMPAImm + cycBranch
			em.a = em.cpu.Read(v.BCount)
			_, em.cc = sub(em.cc, em.a, count)
			if em.cc.EQ() {
				in = inputNormal
			} else {
				em.skip += cycCMPAImm + cycBranch
				_, em.cc = sub(em.cc, em.a, -count)
				if em.cc.EQ() {
					in = inputInverted
				}
			}
		}

		s = s.next(in)
	}

	// phase is zero for a normal signal and the (negative) count for an
	// inverted signal
	if in == inputNormal {
		em.skip += cycCLRA
		em.a, em.cc = clr(em.cc)
	}
	em.skip += cycSTADirect
	em.cpu.Write(v.Phase, em.a)
	em.cc = tst(em.cc, em.a)

	return true
}

// cmpVs1200 measures the width of the current pulse by waiting for the phase
// of the signal to change to want. The width is compared to the 1200 baud
// limits.
func (em *Emulator) cmpVs1200(want int) (pulseClass, bool) {
	v := em.family.Vars

	var z uint8
	em.skip += cycBSR + cycCLRDirect
	z, em.cc = clr(em.cc)
	em.cpu.Write(v.PWCount, z)

	em.skip += cycBSR
	if !em.waitPhase(want) {
		return pulse1200, false
	}

	em.skip += cycLDBDirect + cycCMPBDirect + cycBranch
	pw := em.cpu.Read(v.PWCount)
	_, em.cc = sub(em.cc, pw, em.cpu.Read(v.MaxPW1200))
	if em.cc.HI() {
		em.skip += cycRTS
		return pulseLong, true
	}

	em.skip += cycCMPBDirect + cycRTS
	_, em.cc = sub(em.cc, pw, em.cpu.Read(v.MinPW1200))
	if em.cc.LO() {
		return pulseShort, true
	}

	return pulse1200, true
}
