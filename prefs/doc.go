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

// Package prefs facilitates the storage of preference values on disk. Values
// are stored in TOML format. Dotted keys become nested tables:
//
//	# this file is maintained by tapedeck. edit with care
//
//	[tape]
//	  fastload = true
//	  machine = "dragon"
//
// Preference values are registered with a Disk instance using the Add()
// function. More than one Disk instance can share the same file; saving one
// instance does not clobber the values of another.
//
// Values can be overridden from the command line with the command line stack.
// See PushCommandLineStack() for the format of the string.
package prefs
