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

// Package medium implements the storage behind a virtual cassette. A medium
// can be read as a stream of pulses and written as a stream of samples.
//
// The supported formats are:
//
//	.cas	raw bytes, one cycle per bit (read and write)
//	.wav	PCM audio (read and write)
//	.mp3	compressed audio (read only)
//
// The Memory type is a medium that exists only in memory.
//
// Positions reported by Tell() and accepted by Seek() are pulse indexes. For
// the CAS format there are exactly two pulses per bit.
package medium
