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

package cassette_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/environment"
	"github.com/jetsetilly/tapedeck/hardware/cassette"
	"github.com/jetsetilly/tapedeck/hardware/cassette/codec"
	"github.com/jetsetilly/tapedeck/hardware/cassette/framer"
	"github.com/jetsetilly/tapedeck/hardware/cassette/host/hosttest"
	"github.com/jetsetilly/tapedeck/hardware/cassette/medium"
	"github.com/jetsetilly/tapedeck/hardware/cassette/rom"
	"github.com/jetsetilly/tapedeck/test"
)

func newEnvironment(t *testing.T) *environment.Environment {
	t.Helper()
	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	test.DemandSuccess(t, err)
	return env
}

func newSession(t *testing.T, env *environment.Environment) (*cassette.Session, *hosttest.Machine) {
	t.Helper()
	m := hosttest.NewMachine()
	rom.Dragon.Reset(m)
	s, err := cassette.NewSession(env, m.Host())
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		s.Close()
	})
	return s, m
}

var testFile = &framer.TapeFile{
	Name:         "TESTFILE",
	Type:         framer.FileBASIC,
	StartAddress: 0x2000,
	LoadAddress:  0x2000,
}

// tape creates a medium with a single file. the first block has a leader of
// the specified length.
func tape(t *testing.T, leader int, f *framer.TapeFile) *medium.Memory {
	t.Helper()
	rec := medium.NewMemory(nil)
	w := codec.NewWriter(rec)
	test.DemandSuccess(t, framer.WriteBlock(w, leader, framer.BlockNamefile, framer.NamefileData(f)))
	test.DemandSuccess(t, framer.WriteBlock(w, 2, framer.BlockData, []uint8{0x10, 0x20, 0x30}))
	test.DemandSuccess(t, framer.WriteBlock(w, 2, framer.BlockEOF, nil))
	return rec.Playback()
}

// driver plays the part of the ROM by calling the installed hooks.
type driver struct {
	t *testing.T
	m *hosttest.Machine
}

func (d driver) call(r rom.Routine) {
	d.t.Helper()
	if !d.m.Call(rom.Dragon.Address(r)) {
		d.t.Fatalf("no hook installed for %s", r)
	}
}

func (d driver) bit() uint8 {
	d.t.Helper()
	d.call(rom.BitIn)
	return d.m.Reg.CC & 0x01
}

func (d driver) byteOfBits() uint8 {
	d.t.Helper()
	var v uint8
	for i := 0; i < 8; i++ {
		v = v>>1 | d.bit()<<7
	}
	return v
}

func (d driver) findSync() {
	d.t.Helper()
	var shift uint8
	for i := 0; i < 4096; i++ {
		shift = shift>>1 | d.bit()<<7
		if shift == framer.SyncByte {
			return
		}
	}
	d.t.Fatalf("sync byte not found")
}

func (d driver) installed(r rom.Routine) bool {
	_, ok := d.m.Hooks[rom.Dragon.Address(r)]
	return ok
}

func TestHooksFollowMotor(t *testing.T) {
	s, m := newSession(t, newEnvironment(t))
	d := driver{t: t, m: m}

	test.ExpectEquality(t, s.Flags(), cassette.Flags{FastLoad: true, PadAuto: true})

	// motor on without a medium
	s.SetMotor(true)
	test.ExpectEquality(t, len(m.Installed()), 0)
	s.SetMotor(false)

	s.AttachInput(tape(t, 256, testFile))
	test.ExpectEquality(t, len(m.Installed()), 0)

	s.SetMotor(true)
	want := []uint16{0xbda5, 0xbdad, 0xbdd7, 0xbded}
	if diff := cmp.Diff(want, m.Installed()); diff != "" {
		t.Errorf("installed hooks differ (-want +got):\n%s", diff)
	}

	// byte input is replaced by rewriting
	acc := s.SetFlags(cassette.Flags{FastLoad: true, PadAuto: true, Rewrite: true})
	test.ExpectFailure(t, acc.ByteIn)
	test.ExpectSuccess(t, acc.BitIn)
	test.ExpectFailure(t, d.installed(rom.ByteIn))
	test.ExpectSuccess(t, d.installed(rom.RewriteTapeOn))
	test.ExpectSuccess(t, d.installed(rom.RewriteSync))
	test.ExpectSuccess(t, d.installed(rom.RewriteBitIn))
	test.ExpectSuccess(t, d.installed(rom.RewriteEndOfBlock))

	s.SetMotor(false)
	test.ExpectEquality(t, len(m.Installed()), 0)

	s.SetMotor(true)
	test.ExpectEquality(t, len(m.Installed()), 7)

	test.ExpectSuccess(t, s.CloseInput())
	test.ExpectEquality(t, len(m.Installed()), 0)
	test.ExpectEquality(t, s.Installed(), rom.GroupSet(0))
}

func TestHookFailure(t *testing.T) {
	m := hosttest.NewMachine()
	m.FailInstall = true
	m.FailAddress = rom.Dragon.Address(rom.BitIn)

	_, err := cassette.NewSession(newEnvironment(t), m.Host())
	test.ExpectSuccess(t, curated.Is(err, cassette.HookFailure))
	test.ExpectEquality(t, len(m.Installed()), 0)
}

func TestUnknownFamily(t *testing.T) {
	env := newEnvironment(t)
	test.ExpectFailure(t, env.Prefs.Tape.Machine.Set("spectrum"))
	test.ExpectEquality(t, env.Prefs.Tape.Machine.String(), "dragon")

	env.Prefs.Tape.Machine.Set("coco")
	s, _ := newSession(t, env)
	test.ExpectEquality(t, s.Family().ID, rom.CoCo.ID)
}

func TestShortLeader(t *testing.T) {
	env := newEnvironment(t)
	s, m := newSession(t, env)
	d := driver{t: t, m: m}

	test.DemandSuccess(t, env.Prefs.Tape.FastLoad.Set(false))
	test.ExpectFailure(t, s.Flags().FastLoad)

	s.AttachInput(tape(t, 2, testFile))
	s.SetMotor(true)

	// only the leader routines are replaced
	acc := s.Acceleration()
	test.ExpectSuccess(t, acc.Leader)
	test.ExpectFailure(t, acc.BitIn)
	test.ExpectSuccess(t, d.installed(rom.MotorOn))
	test.ExpectSuccess(t, d.installed(rom.SyncLeader))
	test.ExpectFailure(t, d.installed(rom.BitIn))

	// the motor on delay is skipped
	d.call(rom.MotorOn)
	test.ExpectEquality(t, m.Cycles, 5)
	test.ExpectEquality(t, m.Reg.X, uint16(0))

	d.call(rom.SyncLeader)
	test.ExpectEquality(t, m.Read(rom.Dragon.Vars.Phase), uint8(0))
	test.ExpectEquality(t, m.RTSCount, 2)

	// no padding without the flag
	test.DemandSuccess(t, env.Prefs.Tape.PadAuto.Set(false))
	test.ExpectEquality(t, len(m.Installed()), 0)
}

func TestNormalLeaderNotShort(t *testing.T) {
	env := newEnvironment(t)
	s, m := newSession(t, env)
	test.DemandSuccess(t, env.Prefs.Tape.FastLoad.Set(false))

	s.AttachInput(tape(t, 128, testFile))
	s.SetMotor(true)
	test.ExpectFailure(t, s.Acceleration().Leader)
	test.ExpectEquality(t, len(m.Installed()), 0)
}

func TestFastLoad(t *testing.T) {
	s, m := newSession(t, newEnvironment(t))
	d := driver{t: t, m: m}

	s.AttachInput(tape(t, 256, testFile))
	s.SetMotor(true)

	d.call(rom.MotorOn)
	test.ExpectEquality(t, m.Cycles, 5+rom.DefaultMotorDelay*rom.Dragon.DelayLoopCycles+5)

	d.call(rom.SyncLeader)
	test.ExpectEquality(t, m.Read(rom.Dragon.Vars.Phase), uint8(0))
	test.ExpectEquality(t, m.Read(rom.Dragon.Vars.BCount), uint8(rom.Dragon.LeaderCount))

	d.findSync()

	var blk []uint8
	for i := 0; i < 2+15+1; i++ {
		d.call(rom.ByteIn)
		blk = append(blk, m.Reg.A)
	}

	test.ExpectEquality(t, blk[0], uint8(framer.BlockNamefile))
	test.ExpectEquality(t, blk[1], uint8(15))
	if diff := cmp.Diff(framer.NamefileData(testFile), blk[2:17]); diff != "" {
		t.Errorf("namefile differs (-want +got):\n%s", diff)
	}
	var sum uint8
	for _, v := range blk[:17] {
		sum += v
	}
	test.ExpectEquality(t, blk[17], sum)

	// the clock has only been advanced by the replaced routines and the
	// waggle event is waiting for the end of the current pulse
	test.ExpectEquality(t, m.Now(), uint64(m.Cycles)*hosttest.TicksPerCycle)
	test.ExpectEquality(t, m.Pending(), 2)
}

func TestWaggle(t *testing.T) {
	env := newEnvironment(t)
	test.DemandSuccess(t, env.Prefs.Tape.FastLoad.Set(false))
	s, m := newSession(t, env)

	s.AttachInput(medium.NewMemory([]codec.Pulse{
		{Phase: 1, Width: 100},
		{Phase: 0, Width: 200},
		{Phase: 1, Width: 300},
	}))
	test.ExpectEquality(t, s.Input(), uint8(1))

	// the tape doesn't move with the motor off
	m.Advance(1000)
	test.ExpectEquality(t, s.Input(), uint8(1))

	s.SetMotor(true)
	m.Advance(50)
	s.SetMotor(false)
	m.Advance(1000)
	test.ExpectEquality(t, s.Input(), uint8(1))

	s.SetMotor(true)
	m.Advance(49)
	test.ExpectEquality(t, s.Input(), uint8(1))
	m.Advance(1)
	test.ExpectEquality(t, s.Input(), uint8(0))
	m.Advance(200)
	test.ExpectEquality(t, s.Input(), uint8(1))
	m.Advance(300)
	test.ExpectEquality(t, s.Input(), uint8(0))

	// at the end of the medium only the flush event remains
	test.ExpectEquality(t, m.Pending(), 1)

	// rewinding starts the tape again
	test.DemandSuccess(t, s.Rewind())
	test.ExpectEquality(t, s.Input(), uint8(1))
	test.ExpectEquality(t, m.Pending(), 2)
	m.Advance(100)
	test.ExpectEquality(t, s.Input(), uint8(0))
}

func TestSeekWithoutInput(t *testing.T) {
	s, _ := newSession(t, newEnvironment(t))
	_, err := s.SeekInput(0, 0)
	test.ExpectSuccess(t, curated.Is(err, cassette.NoInput))
	_, err = s.Autorun()
	test.ExpectSuccess(t, curated.Is(err, cassette.NoInput))
	test.ExpectEquality(t, s.TellInput(), int64(0))
}

func TestOpenFailure(t *testing.T) {
	s, m := newSession(t, newEnvironment(t))

	err := s.OpenInput(filepath.Join(t.TempDir(), "missing.cas"))
	test.ExpectSuccess(t, curated.Is(err, cassette.MediumOpenFailure))

	err = s.OpenInput(filepath.Join(t.TempDir(), "tape.txt"))
	test.ExpectSuccess(t, curated.Is(err, cassette.MediumOpenFailure))
	test.ExpectSuccess(t, curated.Has(err, medium.UnsupportedFormat))

	// the medium is left detached
	s.SetMotor(true)
	test.ExpectEquality(t, len(m.Installed()), 0)
	s.SetMotor(false)

	// an existing medium is not affected by a failure
	s.AttachInput(tape(t, 256, testFile))
	err = s.OpenInput(filepath.Join(t.TempDir(), "missing.wav"))
	test.ExpectSuccess(t, curated.Is(err, cassette.MediumOpenFailure))
	s.SetMotor(true)
	test.ExpectEquality(t, len(m.Installed()), 4)

	err = s.OpenOutput(filepath.Join(t.TempDir(), "tape.mp3"))
	test.ExpectSuccess(t, curated.Has(err, medium.NotWritable))
}

func TestOpenFiles(t *testing.T) {
	s, m := newSession(t, newEnvironment(t))
	pth := filepath.Join(t.TempDir(), "tape.cas")

	test.DemandSuccess(t, s.OpenOutput(pth))
	test.DemandSuccess(t, s.CloseOutput())

	// an empty tape has no leader and no pulses
	test.DemandSuccess(t, s.OpenInput(pth))
	test.ExpectEquality(t, s.Input(), uint8(0))
	s.SetMotor(true)
	test.ExpectEquality(t, len(m.Installed()), 4)
	test.DemandSuccess(t, s.Close())
	test.ExpectEquality(t, len(m.Installed()), 0)
	test.ExpectEquality(t, m.Pending(), 0)
}

func TestOutputLevel(t *testing.T) {
	s, m := newSession(t, newEnvironment(t))
	out := medium.NewMemory(nil)
	s.AttachOutput(out)

	// nothing is written while the motor is off
	s.SetOutputLevel(0xc0)
	m.Advance(1000)
	s.SetOutputLevel(0x40)
	test.ExpectEquality(t, len(out.Samples), 0)

	s.SetMotor(true)
	s.SetOutputLevel(0xc0)
	m.Advance(1000)
	s.SetOutputLevel(0x40)
	m.Advance(500)
	s.SetMotor(false)

	want := []medium.Sample{
		{Level: 0xc0, Ticks: 1000},
		{Level: 0x40, Ticks: 500},
	}
	if diff := cmp.Diff(want, out.Samples); diff != "" {
		t.Errorf("samples differ (-want +got):\n%s", diff)
	}

	// the output is flushed periodically while the motor is on
	s.SetMotor(true)
	s.SetOutputLevel(0xff)
	m.Advance(codec.TickRate / 10)
	test.ExpectEquality(t, len(out.Samples), 3)
	test.ExpectEquality(t, out.Samples[2], medium.Sample{Level: 0xff, Ticks: codec.TickRate / 10})
	s.SetMotor(false)
	test.ExpectEquality(t, len(out.Samples), 3)

	test.DemandSuccess(t, s.CloseOutput())
	test.ExpectSuccess(t, out.Closed)
}

func TestMotorOffTimeout(t *testing.T) {
	s, m := newSession(t, newEnvironment(t))
	in := tape(t, 256, testFile)
	out := medium.NewMemory(nil)
	s.AttachInput(in)
	s.AttachOutput(out)

	delay := uint64(2000) * codec.TickRate / 1000

	s.SetMotor(true)
	s.SetMotor(false)
	m.Advance(delay - 1)
	test.ExpectEquality(t, in.MotorOffCount, 0)
	m.Advance(1)
	test.ExpectEquality(t, in.MotorOffCount, 1)
	test.ExpectEquality(t, out.MotorOffCount, 1)

	// switching the motor on cancels the notification
	s.SetMotor(true)
	s.SetMotor(false)
	s.SetMotor(true)
	m.Advance(delay * 2)
	test.ExpectEquality(t, in.MotorOffCount, 1)

	// closing the session cancels the notification
	s.SetMotor(false)
	test.DemandSuccess(t, s.Close())
	test.ExpectEquality(t, m.Pending(), 0)
	m.Advance(delay * 2)
	test.ExpectEquality(t, in.MotorOffCount, 1)
	test.ExpectSuccess(t, in.Closed)
	test.ExpectSuccess(t, out.Closed)
}

func TestRewriteMotorOnOff(t *testing.T) {
	env := newEnvironment(t)
	test.DemandSuccess(t, env.Prefs.Tape.Rewrite.Set(true))
	s, _ := newSession(t, env)
	test.ExpectSuccess(t, s.Flags().Rewrite)

	out := medium.NewMemory(nil)
	s.AttachOutput(out)
	s.SetMotor(true)
	s.SetMotor(false)
	test.DemandSuccess(t, s.CloseOutput())

	// a single period of silence and nothing else
	silence := 500 * codec.TickRate / 1000
	want := []medium.Sample{
		{Level: codec.Centre + 1, Ticks: silence / 2},
		{Level: codec.Centre - 1, Ticks: silence - silence/2},
	}
	if diff := cmp.Diff(want, out.Samples); diff != "" {
		t.Errorf("samples differ (-want +got):\n%s", diff)
	}
}

func TestRewrite(t *testing.T) {
	env := newEnvironment(t)
	test.DemandSuccess(t, env.Prefs.Tape.Rewrite.Set(true))
	s, m := newSession(t, env)
	d := driver{t: t, m: m}

	out := medium.NewMemory(nil)
	s.AttachOutput(out)

	// a recording with a leader that is long but not standard
	s.AttachInput(tape(t, 300, testFile))
	s.SetMotor(true)
	test.ExpectFailure(t, d.installed(rom.ByteIn))

	d.call(rom.MotorOn)
	d.call(rom.SyncLeader)
	d.findSync()
	d.call(rom.RewriteSync)

	for i := 0; i < 2+15+1; i++ {
		d.byteOfBits()
	}
	m.Write(rom.Dragon.Vars.ChecksumError, 0)
	d.call(rom.RewriteEndOfBlock)

	s.SetMotor(false)
	test.DemandSuccess(t, s.CloseOutput())

	r := codec.NewReader(out.Playback())
	n, err := framer.LeaderLength(r)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, 256)

	f := framer.NextFile(r, false)
	test.DemandSuccess(t, f != nil)
	test.ExpectEquality(t, f.Name, "TESTFILE")
	test.ExpectFailure(t, f.ChecksumError)
	test.ExpectEquality(t, f.FnBlockSize, 15)
}

func TestRewriteTapeOn(t *testing.T) {
	env := newEnvironment(t)
	test.DemandSuccess(t, env.Prefs.Tape.Rewrite.Set(true))
	s, m := newSession(t, env)
	d := driver{t: t, m: m}

	out := medium.NewMemory(nil)
	s.AttachOutput(out)

	rec := medium.NewMemory(nil)
	w := codec.NewWriter(rec)
	test.DemandSuccess(t, framer.WriteBlock(w, 256, framer.BlockNamefile, framer.NamefileData(testFile)))
	test.DemandSuccess(t, framer.WriteBlock(w, 128, framer.BlockData, []uint8{0x10, 0x20, 0x30}))
	s.AttachInput(rec.Playback())

	// the relay stays on between the namefile and the data block. the tape
	// is switched on again before each block
	s.SetMotor(true)
	for _, size := range []int{15, 3} {
		d.call(rom.MotorOn)
		d.call(rom.RewriteTapeOn)
		d.call(rom.SyncLeader)
		d.findSync()
		d.call(rom.RewriteSync)
		for i := 0; i < 2+size+1; i++ {
			d.byteOfBits()
		}
		m.Write(rom.Dragon.Vars.ChecksumError, 0)
		d.call(rom.RewriteEndOfBlock)
	}
	s.SetMotor(false)
	test.DemandSuccess(t, s.CloseOutput())

	r := codec.NewReader(out.Playback())
	n, err := framer.FindSync(r)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, 256*8)
	b, err := framer.ReadBlock(r)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Type, uint8(framer.BlockNamefile))

	// the data block has a long leader of its own
	n, err = framer.FindSync(r)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, 256*8)
	b, err = framer.ReadBlock(r)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Type, uint8(framer.BlockData))
	test.ExpectSuccess(t, b.Good())
	if diff := cmp.Diff([]uint8{0x10, 0x20, 0x30}, b.Data); diff != "" {
		t.Errorf("data block differs (-want +got):\n%s", diff)
	}

	// silence when the motor started, before the data block and at the end.
	// the tape on routine for the namefile adds nothing to the silence
	// written when the relay closed
	var silences int
	for _, smp := range out.Samples {
		if smp.Level == codec.Centre+1 {
			silences++
		}
	}
	test.ExpectEquality(t, silences, 3)
}

func TestRewriteEndOfMedium(t *testing.T) {
	env := newEnvironment(t)
	test.DemandSuccess(t, env.Prefs.Tape.Rewrite.Set(true))
	s, m := newSession(t, env)
	d := driver{t: t, m: m}

	out := medium.NewMemory(nil)
	s.AttachOutput(out)

	rec := medium.NewMemory(nil)
	w := codec.NewWriter(rec)
	test.DemandSuccess(t, framer.WriteBlock(w, 256, framer.BlockNamefile, framer.NamefileData(testFile)))
	s.AttachInput(rec.Playback())

	s.SetMotor(true)
	d.call(rom.MotorOn)
	d.call(rom.SyncLeader)
	d.findSync()
	d.call(rom.RewriteSync)

	// the block and the trailing leader byte. the medium ends before the
	// last bit of the trailer is complete
	for i := 0; i < 2+15+1+1; i++ {
		d.byteOfBits()
	}

	// reading past the end of the medium copies nothing
	d.byteOfBits()
	d.byteOfBits()

	s.SetMotor(false)
	test.DemandSuccess(t, s.CloseOutput())

	r := codec.NewReader(out.Playback())
	_, err := framer.FindSync(r)
	test.DemandSuccess(t, err)
	_, err = framer.ReadBlock(r)
	test.DemandSuccess(t, err)

	// the copied trailer, padded when the motor stopped, and the byte written
	// on closing
	v, err := r.ReadByte()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint8(framer.LeaderByte))
	v, err = r.ReadByte()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint8(framer.LeaderByte))
	_, err = r.ReadByte()
	test.ExpectFailure(t, err)
}

func TestAutorun(t *testing.T) {
	s, m := newSession(t, newEnvironment(t))
	s.AttachInput(tape(t, 256, testFile))
	pos := s.TellInput()

	res, err := s.Autorun()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.File.Name, "TESTFILE")
	test.ExpectEquality(t, s.TellInput(), pos)
	if diff := cmp.Diff([]string{"\003CLOAD\r", "RUN\r"}, m.Keystrokes); diff != "" {
		t.Errorf("keystrokes differ (-want +got):\n%s", diff)
	}
}

func TestPreferences(t *testing.T) {
	env := newEnvironment(t)
	s, m := newSession(t, env)
	s.AttachInput(tape(t, 256, testFile))
	s.SetMotor(true)
	test.ExpectEquality(t, len(m.Installed()), 4)

	test.DemandSuccess(t, env.Prefs.Tape.FastLoad.Set(false))
	test.ExpectEquality(t, len(m.Installed()), 0)

	test.DemandSuccess(t, env.Prefs.Tape.FastLoad.Set(true))
	test.DemandSuccess(t, env.Prefs.Tape.Rewrite.Set(true))
	test.ExpectEquality(t, len(m.Installed()), 7)

	// changes are no longer applied once the session is closed
	test.DemandSuccess(t, s.Close())
	test.DemandSuccess(t, env.Prefs.Tape.Rewrite.Set(false))
	test.ExpectSuccess(t, s.Flags().Rewrite)
}
