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

// Package framer reads and writes the block structure of a tape recording.
//
// A recording is a series of blocks. Each block is preceded by a leader of
// 0x55 bytes and a sync byte of 0x3c. The block itself is a type byte, a size
// byte, up to 255 bytes of payload and a checksum. The checksum is the sum of
// the type, size and payload bytes, modulo 256.
//
// A file starts with a header block (type 0), also called a namefile block,
// which has the name, type and addresses of the file. The header is followed
// by data blocks (type 1) and ends with an end of file block (type 0xff).
package framer
