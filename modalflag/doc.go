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

// Package modalflag wraps the flag package of the standard library and adds
// program modes. Each mode can have its own set of flags and its own
// arguments.
//
// Arguments are given to the Modes type once, with NewArgs(), and are then
// consumed by successive calls to Parse(). Flags must be declared before the
// call to Parse() that consumes them:
//
//	md := &modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	skipBad := md.AddBool("skipbad", false, "skip files with checksum errors")
//	p, err := md.Parse()
//
// Sub-modes are declared with AddSubModes(). The first sub-mode is the default
// and is selected if the first argument after the flags does not name a mode.
// Mode names are not case sensitive:
//
//	md.AddSubModes("LIST", "CONVERT", "AUTORUN")
//	p, err := md.Parse()
//	switch md.Mode() {
//	case "LIST":
//		...
//	}
//
// After a mode has been selected, NewMode() prepares the Modes type for the
// flags of that mode. Arguments that are neither flags nor modes are
// available through RemainingArgs() and GetArg().
//
// A request for help (the -help or -h flag) is answered by Parse(). The
// available flags and sub-modes are written to the Output writer and the
// ParseHelp value is returned.
package modalflag
