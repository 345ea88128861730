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

import (
	"github.com/jetsetilly/tapedeck/environment"
	"github.com/jetsetilly/tapedeck/hardware/cassette/host"
	"github.com/jetsetilly/tapedeck/hardware/cassette/rom"
	"github.com/jetsetilly/tapedeck/logger"
)

// tag string used in calls to Log().
const logTag = "cassette: fastload"

// TicksPerCycle is the number of master clock ticks in one CPU cycle.
const TicksPerCycle = 16

// Tape is the cassette as seen by the Emulator.
type Tape interface {
	// Begin is called when a replaced routine is entered
	Begin()

	// Sample advances the tape by the number of ticks and returns the phase of
	// the signal. Returns -1 at the end of the medium
	Sample(ticks int) int

	// Commit is called before a replaced routine returns, with the number of
	// CPU cycles the routine took
	Commit(cycles int)
}

// Emulator replaces the cassette routines of the ROM.
type Emulator struct {
	env    *environment.Environment
	family *rom.Family
	cpu    host.CPU
	tape   Tape

	// skip the motor on delay and the leader synchronisation
	ShortLeader bool

	// registers while the routine is running
	cc CCR
	a  uint8

	// cycles taken by the routine that have not yet been applied to the tape
	skip int

	// cycles taken by the routine that have been applied to the tape
	elapsed int

	// the end of the medium has been reached during the routine
	eom bool
}

// NewEmulator is the preferred method of initialisation for the Emulator type.
func NewEmulator(env *environment.Environment, family *rom.Family, cpu host.CPU, tape Tape) *Emulator {
	return &Emulator{
		env:    env,
		family: family,
		cpu:    cpu,
		tape:   tape,
	}
}

// MotorOn replaces the motor on delay loop.
func (em *Emulator) MotorOn() {
	em.begin()
	if em.ShortLeader {
		em.cpu.SetX(0)
		em.cc.Zero = true
	} else {
		em.motorOnDelay()
	}
	em.rts()
}

// SyncLeader replaces the leader synchronisation routine.
func (em *Emulator) SyncLeader() {
	em.begin()
	if em.ShortLeader {
		var z uint8
		em.skip += cycCLRA + cycSTADirect
		z, em.cc = clr(em.cc)
		em.cpu.Write(em.family.Vars.Phase, z)
	} else if !em.syncLeader() {
		logger.Log(em.env, logTag, "end of medium while synchronising with leader")
	}
	em.rts()
}

// BitIn replaces the routine that reads a single bit. The carry flag is set
// on return if the bit is a one. Returns false if the end of the medium was
// reached before a bit could be read.
func (em *Emulator) BitIn() bool {
	em.begin()
	ok := em.bitIn()
	if !ok {
		logger.Log(em.env, logTag, "end of medium while reading bit")
	}
	em.rts()
	return ok
}

// ByteIn replaces the routine that reads a byte. The byte is returned in the A
// register.
func (em *Emulator) ByteIn() {
	em.begin()
	if !em.byteIn() {
		logger.Log(em.env, logTag, "end of medium while reading byte")
	}
	em.cpu.SetA(em.a)
	em.rts()
}

func (em *Emulator) begin() {
	em.tape.Begin()
	em.cc = CCRFromValue(em.cpu.CC())
	em.a = em.cpu.A()
	em.skip = 0
	em.elapsed = 0
	em.eom = false
}

// rts applies any outstanding cycles to the tape, commits the cycles taken by
// the routine and returns to the caller.
func (em *Emulator) rts() {
	em.skip += cycRTS
	em.sample()
	em.tape.Commit(em.elapsed)
	em.cpu.SetCC(em.cc.Value())
	em.cpu.RTS()
}

// sample applies the outstanding cycles to the tape and returns the phase of
// the signal.
func (em *Emulator) sample() int {
	p := -1
	if !em.eom {
		p = em.tape.Sample(em.skip * TicksPerCycle)
		em.eom = p < 0
	}
	em.elapsed += em.skip
	em.skip = 0
	return p
}

// waitPhase is the polling loop that waits for the phase of the signal to
// change to want. The pulse width counter is incremented on every poll.
// Returns false at the end of the medium.
func (em *Emulator) waitPhase(want int) bool {
	pw := em.family.Vars.PWCount
	for {
		var n uint8
		em.skip += cycINCDirect
		n, em.cc = inc(em.cc, em.cpu.Read(pw))
		em.cpu.Write(pw, n)

		em.skip += cycLDBExtended
		p := em.sample()
		if p < 0 {
			return false
		}

		// the input bit is rotated into the carry flag
		em.skip += cycRORB + cycBranch
		em.cc.Carry = p == 1

		if p == want {
			break
		}
	}
	em.skip += cycRTS
	return true
}

// bitIn measures the width of one cycle. The carry flag is set if the cycle
// is shorter than the threshold.
func (em *Emulator) bitIn() bool {
	v := em.family.Vars

	var z uint8
	em.skip += cycCLRDirect
	z, em.cc = clr(em.cc)
	em.cpu.Write(v.PWCount, z)

	// the phase work variable decides the order of the two halves
	em.skip += cycTSTDirect + cycBranch
	em.cc = tst(em.cc, em.cpu.Read(v.Phase))
	first, second := 0, 1
	if !em.cc.EQ() {
		first, second = 1, 0
	}

	em.skip += cycBSR
	if !em.waitPhase(first) {
		return false
	}
	em.skip += cycBSR
	if !em.waitPhase(second) {
		return false
	}

	em.skip += cycLDBDirect + cycCMPBDirect
	_, em.cc = sub(em.cc, em.cpu.Read(v.PWCount), em.cpu.Read(v.MinCW1200))

	return true
}

// byteIn reads eight bits into the A register, least significant bit first.
func (em *Emulator) byteIn() bool {
	em.skip += cycLDBImm
	b := uint8(8)
	for b > 0 {
		em.skip += cycBSR
		if !em.bitIn() {
			return false
		}
		em.skip += cycRTS + cycRORA
		em.a, em.cc = ror(em.cc, em.a)
		em.skip += cycDECB + cycBranch
		b, em.cc = dec(em.cc, b)
	}
	return true
}

// motorOnDelay is the delay loop that gives the motor time to reach speed.
func (em *Emulator) motorOnDelay() {
	v := em.family.Vars

	em.skip += cycLDXDirect
	count := int(em.cpu.Read(v.MotorDelay))<<8 | int(em.cpu.Read(v.MotorDelay+1))
	if count == 0 {
		count = 0x10000
	}

	// LEAX -1,X; BNE
	em.skip += count * em.family.DelayLoopCycles
	em.cpu.SetX(0)
	em.cc.Zero = true
}
