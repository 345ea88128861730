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

// Package fastload replaces the cassette routines of the ROM with equivalent
// Go code. The ROM routines spend most of their time in polling loops, waiting
// for the signal from the tape to change. The replacement routines calculate
// how long each loop would run for and advance the tape and the machine clock
// by that amount in one step.
//
// The replacement routines follow the instructions of the ROM closely. The
// state of the ROM work variables and of the condition codes on return is the
// same as it would be had the ROM routine run, as is the number of CPU cycles
// consumed. Only the instructions that affect the outcome are modelled. Those
// instructions are pure functions on the condition code register.
//
// Each replaced routine is an Emulator method, suitable for use as the handler
// of a host.Hook.
package fastload
