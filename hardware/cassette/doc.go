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

// Package cassette is the cassette interface of the emulated machine. The
// Session type owns the input and output tapes and connects them to the
// machine.
//
// A tape is read in one of two ways. Without acceleration the machine reads
// the tape through Input(), which follows the pulses of the input medium in
// time with the machine's clock. Pulses are advanced by a scheduled event. In
// this way the ROM's tape routines run as they would on real hardware.
//
// With acceleration, the ROM's tape routines are replaced by the fastload
// package, which reads the pulses of the input medium directly and credits the
// CPU with the time the real routines would have taken. The routines are
// replaced by installing hooks at their addresses. Hooks are only installed
// while the motor is on and an input medium is attached.
//
// The output medium is written to by SetOutputLevel(), which should be called
// whenever the machine's DAC changes. When rewriting is enabled the output is
// instead written by the rewrite package as the input is read.
package cassette
