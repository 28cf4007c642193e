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

package main

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopher1541/modalflag"
	"github.com/jetsetilly/gopher1541/test"
)

// run the command line tool with the arguments. the preferences file is
// always in the test's temporary directory
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	tw := &test.CompareWriter{}
	md := &modalflag.Modes{Output: tw}

	pf := filepath.Join(t.TempDir(), "preferences")
	md.NewArgs(append([]string{"-prefsfile", pf}, args...))

	err := launch(md)
	return tw.String(), err
}

func TestCommandLine(t *testing.T) {
	dir := t.TempDir()
	d64 := filepath.Join(dir, "test.d64")
	g64 := filepath.Join(dir, "test.g64")

	out, err := run(t, "CREATE", "-name", "gopher", "-id", "GO", d64)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "created"))

	out, err = run(t, "-prefs", "drive.syncfactor::pal", "INFO", d64)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "format: D64"), out)
	test.ExpectSuccess(t, strings.Contains(out, "tracks: 35"), out)
	test.ExpectSuccess(t, strings.Contains(out, `disk id: "GO"`), out)
	test.ExpectSuccess(t, strings.Contains(out, "sync factor: pal"), out)

	out, err = run(t, "VERIFY", d64)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "683 sectors ok, 0 bad"), out)

	out, err = run(t, "DUMP", "-track", "18", "-sector", "0", d64)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "T:18 S:0"), out)
	test.ExpectSuccess(t, strings.Contains(out, "GOPHER"), out)

	_, err = run(t, "DUMP", "-track", "36", d64)
	test.ExpectFailure(t, err)

	out, err = run(t, "CONVERT", d64, g64)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "converted"), out)

	out, err = run(t, "INFO", g64)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "format: G64"), out)

	out, err = run(t, "VERIFY", g64)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "683 sectors ok, 0 bad"), out)

	_, err = run(t, "CONVERT", d64, filepath.Join(dir, "test.d81"))
	test.ExpectFailure(t, err)
}

func TestWAV(t *testing.T) {
	dir := t.TempDir()
	d64 := filepath.Join(dir, "test.d64")
	wav := filepath.Join(dir, "flux.wav")

	_, err := run(t, "CREATE", d64)
	test.DemandSuccess(t, err)

	out, err := run(t, "WAV", "-track", "18", "-out", wav, d64)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "verified"), out)

	_, err = os.Stat(wav)
	test.ExpectSuccess(t, err)

	_, err = run(t, "WAV", "-track", "43", d64)
	test.ExpectFailure(t, err)
}

func TestSpin(t *testing.T) {
	dir := t.TempDir()
	d64 := filepath.Join(dir, "test.d64")
	dot := filepath.Join(dir, "status.dot")

	_, err := run(t, "CREATE", d64)
	test.DemandSuccess(t, err)

	out, err := run(t, "SPIN", "-revs", "2", "-track", "1", "-memviz", dot, d64)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "revs:2"), out)
	test.ExpectSuccess(t, strings.Contains(out, "T:1 "), out)

	fi, err := os.Stat(dot)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, fi.Size() > 0)
}

func TestArguments(t *testing.T) {
	_, err := run(t, "INFO")
	test.ExpectFailure(t, err)

	_, err = run(t, "INFO", "a.d64", "b.d64")
	test.ExpectFailure(t, err)

	_, err = run(t, "INFO", filepath.Join(t.TempDir(), "missing.d64"))
	test.ExpectFailure(t, err)

	out, err := run(t, "-help")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "available sub-modes"), out)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "VERSION")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasPrefix(out, "Gopher1541 "), out)

	out, err = run(t, "VERSION", "-revision")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, strings.Count(out, "\n"), 2)
}

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	d64 := filepath.Join(dir, "test.d64")
	zfn := filepath.Join(dir, "disks.zip")

	_, err := run(t, "CREATE", d64)
	test.DemandSuccess(t, err)
	data, err := os.ReadFile(d64)
	test.DemandSuccess(t, err)

	f, err := os.Create(zfn)
	test.DemandSuccess(t, err)
	zw := zip.NewWriter(f)
	for _, n := range []string{"side1.d64", "readme.txt"} {
		w, err := zw.Create(n)
		test.DemandSuccess(t, err)
		_, err = w.Write(data)
		test.DemandSuccess(t, err)
	}
	test.DemandSuccess(t, zw.Close())
	test.DemandSuccess(t, f.Close())

	out, err := run(t, "INFO", zfn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, filepath.Join(zfn, "side1.d64")), out)
	test.ExpectSuccess(t, !strings.Contains(out, "readme.txt"), out)

	out, err = run(t, "INFO", filepath.Join(zfn, "side1.d64"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "format: D64"), out)

	out, err = run(t, "SPIN", "-revs", "1", filepath.Join(zfn, "side1.d64"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "revs:1"), out)
}

func TestTopLevelFlags(t *testing.T) {
	dir := t.TempDir()
	d64 := filepath.Join(dir, "test.d64")

	out, err := run(t, "-log", "CREATE", "-id", "LG", d64)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "created"), out)

	out, err = run(t, "-log", "-prefs", "drive.extendpolicy::access", "INFO", d64)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, `disk id: "LG"`), out)
	test.ExpectSuccess(t, strings.Contains(out, "extend policy: access"), out)
}
