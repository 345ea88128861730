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

// Package autorun decides which commands should be typed into the machine to
// load and run the first file on a tape.
//
// Most tapes are handled by looking at the type of the first file. BASIC
// programs are loaded with CLOAD and started with RUN. Machine code programs
// are loaded with CLOADM and, if they load into low memory, started with EXEC.
// A small number of tapes need something different and these are identified
// by the size and CRC of their namefile block.
package autorun
