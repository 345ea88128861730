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

//go:build release

package paths

import (
	"github.com/kirsle/configdir"
)

const tapedeckConfigDir = "tapedeck"

// the release version of getBasePath looks for and if necessary creates the
// tapedeckConfigDir (and child directories) in the user's local configuration
// directory
func getBasePath(subPth string) (string, error) {
	pth := configdir.LocalConfig(tapedeckConfigDir, subPth)
	if err := configdir.MakePath(pth); err != nil {
		return "", err
	}
	return pth, nil
}
