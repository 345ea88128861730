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

// Package rom describes the cassette routines of the two supported ROM
// families. The Dragon and the Tandy CoCo use the same algorithms for reading
// and writing tapes but the routines and the work variables they use are at
// different addresses.
//
// Each Family lists the entry points that can be intercepted, arranged into
// groups that are installed and removed together. The family also lists the
// addresses of the ROM work variables and the constants the routines depend
// on.
package rom
