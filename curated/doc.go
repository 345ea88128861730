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

// Package curated is a helper package for the plain Go language error type.
//
// Curated errors are created with Errorf(), which takes a formatting pattern
// and placeholder values in the same way as fmt.Errorf(). The pattern is
// remembered and used to identify the error later:
//
//	e := curated.Errorf("medium: unsupported format (%s)", ext)
//
//	if curated.Is(e, "medium: unsupported format (%s)") {
//		...
//	}
//
// Has() is similar to Is() but searches the entire chain of curated errors.
// Packages that return curated errors export the patterns they use as
// constants so that callers can use Is() and Has() without repeating the
// string.
//
// The Error() implementation normalises the chain of messages by removing
// adjacent duplicate parts. In other words, a message that would read:
//
//	cassette: cassette: end of medium
//
// is returned as:
//
//	cassette: end of medium
//
// Parts are separated by the sub-string ": ".
package curated
