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

package prefs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/tapedeck/curated"
	"github.com/jetsetilly/tapedeck/prefs"
	"github.com/jetsetilly/tapedeck/test"
)

func tmpPrefFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)
}

func TestBool(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v, w, x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("tape.fastload", &v))
	test.ExpectSuccess(t, dsk.Add("tape.padauto", &w))
	test.ExpectSuccess(t, dsk.Add("tape.rewrite", &x))
	test.ExpectFailure(t, dsk.Add("tape.rewrite", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("TRUE"))
	test.DemandSuccess(t, dsk.Save())

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, strings.HasPrefix(string(data), prefs.WarningBoilerPlate), true)
	test.ExpectEquality(t, strings.Contains(string(data), "[tape]"), true)

	// load into a second set of values
	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var v2, w2, x2 prefs.Bool
	test.ExpectSuccess(t, dsk.Add("tape.fastload", &v2))
	test.ExpectSuccess(t, dsk.Add("tape.padauto", &w2))
	test.ExpectSuccess(t, dsk.Add("tape.rewrite", &x2))
	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, v2.Get().(bool), true)
	test.ExpectEquality(t, w2.Get().(bool), false)
	test.ExpectEquality(t, x2.Get().(bool), true)
}

func TestInt(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v, w prefs.Int
	test.ExpectSuccess(t, dsk.Add("tape.longleader", &v))
	test.ExpectSuccess(t, dsk.Add("tape.shortleader", &w))
	test.ExpectSuccess(t, v.Set(256))
	test.ExpectSuccess(t, w.Set("2"))
	test.DemandSuccess(t, dsk.Save())

	test.ExpectSuccess(t, v.Set(0))
	test.ExpectSuccess(t, w.Set(0))
	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, v.Get().(int), 256)
	test.ExpectEquality(t, w.Get().(int), 2)

	// failure conditions
	test.ExpectFailure(t, v.Set("---"))
	test.ExpectFailure(t, v.Set(1.0))

	v.SetRange(1, 1024)
	test.ExpectFailure(t, v.Set(0))
	test.ExpectFailure(t, v.Set(1025))
	test.ExpectSuccess(t, v.Set(1024))
	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.Get().(int), 1)
}

// values saved by one Disk instance are not clobbered by the saving of a
// different Disk instance using the same file.
func TestSharedFile(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var b prefs.Bool
	test.ExpectSuccess(t, dsk.Add("tape.fastload", &b))
	test.ExpectSuccess(t, b.Set(true))
	test.DemandSuccess(t, dsk.Save())

	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("tape.machine", &s))
	test.ExpectSuccess(t, s.Set("coco"))
	test.DemandSuccess(t, dsk.Save())

	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var b2 prefs.Bool
	var s2 prefs.String
	test.ExpectSuccess(t, dsk.Add("tape.fastload", &b2))
	test.ExpectSuccess(t, dsk.Add("tape.machine", &s2))
	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, b2.Get().(bool), true)
	test.ExpectEquality(t, s2.String(), "coco")
}

func TestMissingFile(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("tape.machine", &s))

	// command line values are applied even when there is no file
	prefs.PushCommandLineStack("tape.machine::coco")
	defer prefs.PopCommandLineStack()

	err = dsk.Load()
	test.ExpectEquality(t, curated.Is(err, prefs.NoPrefsFile), true)
	test.ExpectEquality(t, s.String(), "coco")
}

func TestHooks(t *testing.T) {
	var b prefs.Bool
	var seen []bool
	b.SetHookPost(func(v prefs.Value) error {
		seen = append(seen, v.(bool))
		return nil
	})
	test.ExpectSuccess(t, b.Set(true))
	test.ExpectSuccess(t, b.Set(true))
	test.ExpectSuccess(t, b.Reset())
	test.ExpectEquality(t, len(seen), 3)
	test.ExpectEquality(t, seen[2], false)
}

func TestMaxStringLength(t *testing.T) {
	var s prefs.String
	test.ExpectSuccess(t, s.Set("123456789"))
	test.ExpectEquality(t, s.String(), "123456789")

	// setting maximum length will crop the existing string
	s.SetMaxLen(5)
	test.ExpectEquality(t, s.String(), "12345")

	// removing the limit does not restore the cropped string
	s.SetMaxLen(0)
	test.ExpectEquality(t, s.String(), "12345")

	s.SetMaxLen(3)
	test.ExpectSuccess(t, s.Set("abcdefghi"))
	test.ExpectEquality(t, s.String(), "abc")
}
