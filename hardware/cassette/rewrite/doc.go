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

// Package rewrite regenerates a standard tape image on an output medium while
// a tape is being read by the ROM.
//
// The Synchronizer is driven by events raised by the cassette session: the
// motor being switched on, the sync byte being found, each bit returned by the
// ROM's bit input routine and the end of each block. Bits are copied to the
// output only once the sync byte has been seen. Before that, a run of leader
// bytes and a sync byte are written in place of whatever leader the source had.
//
// The result is that a tape that loads, even one that was recorded badly,
// is written out with leaders of a standard length and with clean pulses.
// Rewriting a tape that is already in this form produces an identical tape.
package rewrite
