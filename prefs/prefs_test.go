// This file is part of Gopher1541.
//
// Gopher1541 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher1541 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher1541.  If not, see <https://www.gnu.org/licenses/>.

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/prefs"
	"github.com/jetsetilly/gopher1541/test"
)

func tmpPrefFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "gopher1541_prefs_test")
}

func cmpTmpFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	if err != nil {
		t.Fatalf("error reading tmp file: %v", err)
	}

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	var w prefs.Bool
	var x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("true"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")

	test.ExpectFailure(t, v.Set(10))
}

func TestString(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &v))
	test.ExpectSuccess(t, v.Set("bar"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "foo :: bar\n")
}

func TestInt(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	var w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("numberB", &w))

	test.ExpectSuccess(t, v.Set(10))

	// test string conversion to int
	test.ExpectSuccess(t, w.Set("99"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "number :: 10\nnumberB :: 99\n")

	// while we have a prefs.Int instance set up we'll test some
	// failure conditions
	test.ExpectFailure(t, v.Set("---"))
	test.ExpectFailure(t, v.Set(1.0))
}

func TestHooks(t *testing.T) {
	var v prefs.String
	var post string

	v.SetHookPre(func(value prefs.Value) error {
		if value.(string) == "bad" {
			return fmt.Errorf("bad value")
		}
		return nil
	})
	v.SetHookPost(func(value prefs.Value) error {
		post = value.(string)
		return nil
	})

	test.ExpectSuccess(t, v.Set("good"))
	test.ExpectEquality(t, post, "good")

	// rejected value does not reach the post hook or the stored value
	test.ExpectFailure(t, v.Set("bad"))
	test.ExpectEquality(t, post, "good")
	test.ExpectEquality(t, v.String(), "good")
}

func TestLoad(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.String
	test.ExpectSuccess(t, dsk.Add("drive.extendpolicy", &v))

	// missing file is reported with the NoPrefsFile pattern
	err = dsk.Load(false)
	test.ExpectSuccess(t, curated.Is(err, prefs.NoPrefsFile))

	// unless we ask for the file to be created
	test.ExpectSuccess(t, dsk.Load(true))

	test.ExpectSuccess(t, v.Set("never"))
	test.DemandSuccess(t, dsk.Save())

	// a second Disk instance using the same file. its own entry is saved
	// alongside the entry from the first instance
	dsk2, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var w prefs.String
	var b prefs.Bool
	test.ExpectSuccess(t, dsk2.Add("drive.extendpolicy", &w))
	test.ExpectSuccess(t, dsk2.Add("drive.parallelcable", &b))
	test.DemandSuccess(t, dsk2.Load(false))
	test.ExpectEquality(t, w.String(), "never")

	test.ExpectSuccess(t, b.Set(true))
	test.DemandSuccess(t, dsk2.Save())
	cmpTmpFile(t, fn, "drive.extendpolicy :: never\ndrive.parallelcable :: true\n")

	// command line values override the values in the file
	prefs.PushCommandLineStack("drive.extendpolicy::access")
	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, v.String(), "access")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestUnknownKeysPreserved(t *testing.T) {
	fn := tmpPrefFile(t)

	// a key belonging to some other part of the application
	err := os.WriteFile(fn, []byte(fmt.Sprintf("%s\ncrt.enabled :: true\n", prefs.WarningBoilerPlate)), 0o600)
	test.DemandSuccess(t, err)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var v prefs.String
	test.ExpectSuccess(t, dsk.Add("drive.syncfactor", &v))
	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectSuccess(t, v.Set("pal"))
	test.DemandSuccess(t, dsk.Save())

	cmpTmpFile(t, fn, "crt.enabled :: true\ndrive.syncfactor :: pal\n")
}

func TestGeneric(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var lo, hi int

	v := prefs.NewGeneric(
		func(s string) error {
			_, err := fmt.Sscanf(s, "%d,%d", &lo, &hi)
			return err
		},
		func() string {
			return fmt.Sprintf("%d,%d", lo, hi)
		},
	)

	test.ExpectSuccess(t, dsk.Add("generic", v))
	test.ExpectSuccess(t, v.Set("5000,7928"))
	test.ExpectEquality(t, lo, 5000)
	test.ExpectEquality(t, hi, 7928)

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "generic :: 5000,7928\n")
}
