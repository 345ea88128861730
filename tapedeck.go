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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/environment"
	"github.com/jetsetilly/tapedeck/hardware/cassette/autorun"
	"github.com/jetsetilly/tapedeck/hardware/cassette/codec"
	"github.com/jetsetilly/tapedeck/hardware/cassette/framer"
	"github.com/jetsetilly/tapedeck/hardware/cassette/medium"
	"github.com/jetsetilly/tapedeck/hardware/cassette/rewrite"
	"github.com/jetsetilly/tapedeck/hardware/preferences"
	"github.com/jetsetilly/tapedeck/logger"
	"github.com/jetsetilly/tapedeck/modalflag"
	"github.com/jetsetilly/tapedeck/paths"
	"github.com/jetsetilly/tapedeck/prefs"
)

func main() {
	os.Exit(launch(os.Stdout, os.Args[1:]))
}

// launch the program with the command line arguments. returns the exit code.
func launch(output io.Writer, args []string) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("LIST", "CONVERT", "AUTORUN")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "LIST":
		err = list(md)

	case "CONVERT":
		err = convert(md)

	case "AUTORUN":
		err = run(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// flags shared by all modes.
type common struct {
	md     *modalflag.Modes
	config *string
	prefs  *string
	log    *bool
	pan    *float64
}

func addCommon(md *modalflag.Modes) *common {
	return &common{
		md:     md,
		config: md.AddString("config", "", "preferences file (default is the tapedeck resource directory)"),
		prefs:  md.AddString("prefs", "", "preferences for this run only (eg. \"tape.longleader::128\")"),
		log:    md.AddBool("log", false, "echo log to stdout"),
		pan:    md.AddFloat64("pan", 0.0, "channel to read from stereo audio: 0.0 is left, 1.0 is right"),
	}
}

// environment creates the environment for the program. the log echo is also
// set according to the log flag.
func (c *common) environment() (*environment.Environment, error) {
	if *c.log {
		logger.SetEcho(c.md.Output)
	} else {
		logger.SetEcho(nil)
	}

	pth := *c.config
	if pth == "" {
		var err error
		pth, err = paths.ResourcePath("", prefs.DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	prefs.PushCommandLineStack(*c.prefs)
	p, err := preferences.NewPreferences(pth)
	if s := prefs.PopCommandLineStack(); s != "" {
		fmt.Fprintf(c.md.Output, "! unused preferences: %s\n", s)
	}
	if err != nil {
		return nil, err
	}

	return environment.NewEnvironment(environment.MainEmulation, p)
}

// open the medium for reading and apply the pan flag.
func (c *common) open(env *environment.Environment, path string) (medium.Medium, *codec.Reader, error) {
	m, err := medium.Open(env, path, medium.Read)
	if err != nil {
		return nil, nil, err
	}
	if pn, ok := m.(medium.Panner); ok {
		pn.SetPanning(*c.pan)
	}
	return m, codec.NewReader(m), nil
}

func list(md *modalflag.Modes) error {
	md.NewMode()

	cm := addCommon(md)
	skipBad := md.AddBool("skipbad", false, "skip files with checksum errors")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("tape file required for %s mode", md)
	case 1:
		env, err := cm.environment()
		if err != nil {
			return err
		}

		m, r, err := cm.open(env, md.GetArg(0))
		if err != nil {
			return err
		}
		defer m.Close()

		n, err := framer.LeaderLength(r)
		if err != nil {
			if curated.Is(err, framer.NoSync) {
				fmt.Fprintln(md.Output, "no files")
				return nil
			}
			return err
		}
		fmt.Fprintf(md.Output, "leader: %d bytes\n", n)

		var ct int
		for f := framer.NextFile(r, *skipBad); f != nil; f = framer.NextFile(r, *skipBad) {
			ct++
			fmt.Fprintf(md.Output, "%3d  %s\n", ct, f)
		}

		if ct == 0 {
			fmt.Fprintln(md.Output, "no files")
		}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func convert(md *modalflag.Modes) error {
	md.NewMode()

	cm := addCommon(md)

	md.AdditionalHelp(
		`Every block found on the input tape is written to the output tape with a
standard leader. Blocks with checksum errors are copied but are followed by
a long leader. The leader lengths are taken from the tape.longleader and
tape.shortleader preferences and the silence at the start of the output tape
from the tape.silence preference.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0, 1:
		return fmt.Errorf("input and output tape files required for %s mode", md)
	case 2:
		env, err := cm.environment()
		if err != nil {
			return err
		}

		in, r, err := cm.open(env, md.GetArg(0))
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := medium.Open(env, md.GetArg(1), medium.Write)
		if err != nil {
			return err
		}

		blocks, bad := resynthesise(env, r, codec.NewWriter(out))

		if err := out.Close(); err != nil {
			return err
		}

		fmt.Fprintf(md.Output, "%d blocks written", blocks)
		if bad > 0 {
			fmt.Fprintf(md.Output, " (%d with checksum errors)", bad)
		}
		fmt.Fprintln(md.Output)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

// resynthesise every block from the reader to the writer. returns the number
// of blocks written and the number of those blocks with a checksum error.
func resynthesise(env *environment.Environment, r *codec.Reader, w *codec.Writer) (int, int) {
	rw := rewrite.NewSynchronizer(env)
	rw.LongLeader = env.Prefs.Tape.LongLeader.Get().(int)
	rw.ShortLeader = env.Prefs.Tape.ShortLeader.Get().(int)
	rw.Silence = int(int64(env.Prefs.Tape.Silence.Get().(int)) * codec.TickRate / 1000)
	rw.SetOutput(w)
	rw.MotorOn()

	var blocks, bad int

	for {
		if _, err := framer.FindSync(r); err != nil {
			if !curated.Is(err, framer.NoSync) {
				logger.Log(env, "convert", err)
			}
			break // for loop
		}

		b, err := framer.ReadBlock(r)
		if err != nil {
			logger.Log(env, "convert", err)
			break // for loop
		}

		rw.Sync()
		for _, v := range blockBytes(b) {
			for i := 0; i < 8; i++ {
				rw.BitIn(int(v>>i) & 0x01)
			}
		}
		rw.EndOfBlock(b.Good())

		// the ROM stops and starts the tape after reading a namefile so the
		// data that follows has a long leader and a gap of its own
		if b.Type == framer.BlockNamefile {
			rw.MotorOn()
		}

		blocks++
		if !b.Good() {
			bad++
		}
	}

	rw.Close()

	return blocks, bad
}

// the bytes of a block as they appear on tape after the sync byte.
func blockBytes(b framer.Block) []uint8 {
	d := make([]uint8, 0, len(b.Data)+3)
	d = append(d, b.Type, uint8(len(b.Data)))
	d = append(d, b.Data...)
	return append(d, b.Checksum)
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	cm := addCommon(md)

	md.AdditionalHelp(
		`Prints the keystrokes that would be typed to load and run the first
file on the tape. The break key is shown as \x03 and return as \r.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("tape file required for %s mode", md)
	case 1:
		env, err := cm.environment()
		if err != nil {
			return err
		}

		m, r, err := cm.open(env, md.GetArg(0))
		if err != nil {
			return err
		}
		defer m.Close()

		fmt.Fprintln(md.Output, autorun.Choose(framer.NextFile(r, false)))
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}
