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

// Package codec converts between the magnetic pulses recorded on a cassette
// and the bits and bytes they represent.
//
// A pulse is a phase (1 for the positive half of a cycle, 0 for the negative
// half) and a width measured in ticks of the 14.31818MHz master clock. One
// bit is a full cycle: a positive pulse followed by a negative pulse. A 1200Hz
// cycle is a zero bit and a 2400Hz cycle is a one bit. Bytes are recorded
// least significant bit first.
//
// The Reader type reads pulses from a Source and classifies them into bits.
// The Writer type synthesises pulses for a Sink, shaping each pulse as a half
// sine wave.
package codec
