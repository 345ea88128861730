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

// Package paths contains functions to prepare paths to Tapedeck resources.
//
// The ResourcePath() function returns the supplied resource path prepended
// with the appropriate config directory. For example, the following will
// return the path to the preferences file.
//
//	pth, err := paths.ResourcePath("", "preferences.toml")
//
// Development builds use the ".tapedeck" directory in the current working
// directory. Release builds (built with the "release" tag) use the user's
// local configuration directory, which on a modern Linux system is:
//
//	/home/user/.config/tapedeck
//
// In both cases the directory, and any sub-directory named by the caller,
// is created if it doesn't already exist.
package paths
