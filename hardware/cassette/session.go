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
	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/environment"
	"github.com/jetsetilly/tapedeck/hardware/cassette/codec"
	"github.com/jetsetilly/tapedeck/hardware/cassette/fastload"
	"github.com/jetsetilly/tapedeck/hardware/cassette/host"
	"github.com/jetsetilly/tapedeck/hardware/cassette/medium"
	"github.com/jetsetilly/tapedeck/hardware/cassette/rewrite"
	"github.com/jetsetilly/tapedeck/hardware/cassette/rom"
	"github.com/jetsetilly/tapedeck/logger"
	"github.com/jetsetilly/tapedeck/prefs"
)

// tag string used in calls to Log().
const logTag = "cassette"

// Sentinal error patterns.
const (
	MediumOpenFailure = "cassette: cannot open medium: %v"
	HookFailure       = "cassette: cannot install hooks: %v"
	NoInput           = "cassette: no input medium"
)

// number of ticks between flushes of the DAC output while the motor is on.
const flushInterval = codec.TickRate / 10

// convert milliseconds to ticks.
func msToTicks(ms int) int {
	return int(int64(ms) * codec.TickRate / 1000)
}

// Session is the cassette interface of one emulated machine.
type Session struct {
	env    *environment.Environment
	host   host.Host
	family *rom.Family

	flags Flags
	motor bool

	input  medium.Medium
	reader *codec.Reader
	pulse  pulseState

	// the leader of the input medium is shorter than the family's normal
	// leader
	shortLeader bool

	output medium.Medium
	writer *codec.Writer
	dac    dacState

	fast *fastload.Emulator
	rw   *rewrite.Synchronizer

	// hooks for each group and the groups currently installed
	hooks     [rom.NumGroups][]host.Hook
	installed rom.GroupSet

	waggle   host.Event
	flush    host.Event
	motorOff host.Event

	motorOffDelay int
}

// NewSession is the preferred method of initialisation for the Session type.
// The ROM family and the initial flags are taken from the tape preferences of
// the environment. Changes to the preferences are applied to the session
// until the session is closed.
//
// Returns an error if the ROM family is not known or if the hooks can not be
// installed.
func NewSession(env *environment.Environment, h host.Host) (*Session, error) {
	p := env.Prefs.Tape

	family, err := p.Family()
	if err != nil {
		return nil, err
	}

	s := &Session{
		env:    env,
		host:   h,
		family: family,
		pulse:  pulseState{phase: -1},
		dac:    dacState{level: codec.Centre},
	}

	s.fast = fastload.NewEmulator(env, family, h.CPU, &fastTape{s: s})
	s.rw = rewrite.NewSynchronizer(env)

	s.waggle = host.Event{Name: "tape waggle", Dispatch: s.advancePulse}
	s.flush = host.Event{Name: "tape flush", Dispatch: s.periodicFlush}
	s.motorOff = host.Event{Name: "tape motor off", Dispatch: s.notifyMotorOff}

	for g := rom.Group(0); g < rom.NumGroups; g++ {
		for _, d := range family.Hooks(g) {
			s.hooks[g] = append(s.hooks[g], host.Hook{
				Family:  family.ID,
				Address: d.Address,
				Handler: s.handler(d.Routine),
			})
		}
	}

	// a hook that can't be installed is a configuration error so it is
	// better to find out now
	for g := rom.Group(0); g < rom.NumGroups; g++ {
		if err := h.Breakpoints.Install(s.hooks[g]); err != nil {
			for r := rom.Group(0); r < g; r++ {
				h.Breakpoints.Remove(s.hooks[r])
			}
			return nil, curated.Errorf(HookFailure, err)
		}
	}
	for g := rom.Group(0); g < rom.NumGroups; g++ {
		h.Breakpoints.Remove(s.hooks[g])
	}

	s.applyPrefs()
	s.attachPrefs()

	logger.Logf(env, logTag, "%s tape interface (%s)", family.Name, s.flags)

	return s, nil
}

// applyPrefs copies the current values of the tape preferences.
func (s *Session) applyPrefs() {
	p := s.env.Prefs.Tape
	s.rw.LongLeader = p.LongLeader.Get().(int)
	s.rw.ShortLeader = p.ShortLeader.Get().(int)
	s.rw.Silence = msToTicks(p.Silence.Get().(int))
	s.motorOffDelay = msToTicks(p.MotorOffDelay.Get().(int))
	s.SetFlags(Flags{
		FastLoad: p.FastLoad.Get().(bool),
		PadAuto:  p.PadAuto.Get().(bool),
		Rewrite:  p.Rewrite.Get().(bool),
	})
}

// attachPrefs sets the post hooks of the tape preferences so that changes are
// applied to the session.
func (s *Session) attachPrefs() {
	p := s.env.Prefs.Tape
	apply := func(prefs.Value) error {
		s.applyPrefs()
		return nil
	}
	p.FastLoad.SetHookPost(apply)
	p.PadAuto.SetHookPost(apply)
	p.Rewrite.SetHookPost(apply)
	p.LongLeader.SetHookPost(apply)
	p.ShortLeader.SetHookPost(apply)
	p.Silence.SetHookPost(apply)
	p.MotorOffDelay.SetHookPost(apply)
}

func (s *Session) detachPrefs() {
	p := s.env.Prefs.Tape
	p.FastLoad.SetHookPost(nil)
	p.PadAuto.SetHookPost(nil)
	p.Rewrite.SetHookPost(nil)
	p.LongLeader.SetHookPost(nil)
	p.ShortLeader.SetHookPost(nil)
	p.Silence.SetHookPost(nil)
	p.MotorOffDelay.SetHookPost(nil)
}

// Family returns the ROM family of the session.
func (s *Session) Family() *rom.Family {
	return s.family
}

// Flags returns the current flags.
func (s *Session) Flags() Flags {
	return s.flags
}

// SetFlags changes the flags. The hooks are updated immediately. The returned
// Acceleration shows which routines will be replaced. Byte input is never
// accelerated while rewriting, even if fast loading is requested.
func (s *Session) SetFlags(f Flags) Acceleration {
	s.flags = f
	if f.FastLoad && f.Rewrite {
		logger.Log(s.env, logTag, "byte input acceleration is disabled while rewriting")
	}
	s.fast.ShortLeader = s.shortLeader && f.PadAuto
	s.updateHooks()
	return s.Acceleration()
}

// Acceleration returns the routines that are replaced when the motor is on.
func (s *Session) Acceleration() Acceleration {
	return accelerate(s.flags, s.shortLeader)
}

// Installed returns the hook groups that are currently installed.
func (s *Session) Installed() rom.GroupSet {
	return s.installed
}

// updateHooks installs and removes hooks so that the installed groups match
// the state of the session.
func (s *Session) updateHooks() {
	want := wantedHooks(hookState{
		motor: s.motor,
		input: s.reader != nil,
		acc:   s.Acceleration(),
	})

	for g := rom.Group(0); g < rom.NumGroups; g++ {
		switch {
		case want.Has(g) && !s.installed.Has(g):
			if err := s.host.Breakpoints.Install(s.hooks[g]); err != nil {
				logger.Log(s.env, logTag, curated.Errorf(HookFailure, err))
				continue
			}
			s.installed = s.installed.With(g)
		case !want.Has(g) && s.installed.Has(g):
			s.host.Breakpoints.Remove(s.hooks[g])
			s.installed = s.installed.Without(g)
		}
	}
}

// handler returns the function called when the routine's hook is reached.
func (s *Session) handler(r rom.Routine) func() {
	switch r {
	case rom.MotorOn:
		return s.fast.MotorOn
	case rom.SyncLeader:
		return s.fast.SyncLeader
	case rom.BitIn:
		// the replaced routine never reaches the rewrite hook so the bit is
		// passed on here. nothing was read at the end of the medium
		return func() {
			if s.fast.BitIn() && s.flags.Rewrite {
				s.rw.BitIn(s.carry())
			}
		}
	case rom.ByteIn:
		return s.fast.ByteIn
	case rom.RewriteTapeOn:
		return s.rw.MotorOn
	case rom.RewriteSync:
		return s.rw.Sync
	case rom.RewriteBitIn:
		return func() {
			s.rw.BitIn(s.carry())
		}
	case rom.RewriteEndOfBlock:
		return func() {
			s.rw.EndOfBlock(s.host.CPU.Read(s.family.Vars.ChecksumError) == 0)
		}
	}
	return func() {}
}

// the carry flag of the CPU. the bit input routine returns the bit in the
// carry flag.
func (s *Session) carry() int {
	return int(s.host.CPU.CC() & 0x01)
}

// Motor returns true if the motor is on.
func (s *Session) Motor() bool {
	return s.motor
}

// SetMotor switches the motor on or off. Should be called whenever the
// machine changes the motor control line.
func (s *Session) SetMotor(on bool) {
	if on == s.motor {
		return
	}

	sched := s.host.Scheduler

	if on {
		s.motor = true
		sched.Cancel(&s.motorOff)
		s.dac.tick = sched.Now()
		sched.Schedule(&s.flush, sched.Now()+flushInterval)
		s.startWaggle()
		if s.flags.Rewrite {
			s.rw.MotorOn()
		}
		logger.Log(s.env, logTag, "motor on")
	} else {
		s.flushOutput()
		s.motor = false
		sched.Cancel(&s.flush)
		if s.flags.Rewrite {
			s.rw.MotorOff()
		}
		s.stopWaggle()
		sched.Schedule(&s.motorOff, sched.Now()+uint64(s.motorOffDelay))
		logger.Log(s.env, logTag, "motor off")
	}

	s.updateHooks()
}

// notifyMotorOff is called some time after the motor has been switched off.
func (s *Session) notifyMotorOff() {
	if n, ok := s.input.(medium.MotorOffNotifier); ok {
		n.MotorOff()
	}
	if n, ok := s.output.(medium.MotorOffNotifier); ok {
		n.MotorOff()
	}
}

// Close detaches and closes both media, removes all hooks and cancels all
// events. The session should not be used after Close().
func (s *Session) Close() error {
	errIn := s.CloseInput()
	errOut := s.CloseOutput()

	sched := s.host.Scheduler
	sched.Cancel(&s.waggle)
	sched.Cancel(&s.flush)
	sched.Cancel(&s.motorOff)

	s.motor = false
	s.updateHooks()
	s.detachPrefs()

	if errIn != nil {
		return errIn
	}
	return errOut
}
