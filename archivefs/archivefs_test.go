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

package archivefs_test

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopher1541/archivefs"
	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/test"
)

// testdir creates a directory containing a plain file and a zip archive.
//
//	testdir/
//	  testfile
//	  testarchive.zip/
//	    archivedir/
//	      archivedir2/
//	      archivefile3
//	    archivefile1
//	    archivefile2
func testdir(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "testdir")
	test.DemandSuccess(t, os.Mkdir(dir, 0o755))
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "testfile"), []byte("testfile contents\n"), 0o644))

	f, err := os.Create(filepath.Join(dir, "testarchive.zip"))
	test.DemandSuccess(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, n := range []string{"archivedir/", "archivedir/archivedir2/"} {
		_, err := zw.Create(n)
		test.DemandSuccess(t, err)
	}
	for _, n := range []string{"archivefile2", "archivefile1", "archivedir/archivefile3"} {
		w, err := zw.Create(n)
		test.DemandSuccess(t, err)
		_, err = w.Write([]byte(fmt.Sprintf("%s contents\n", filepath.Base(n))))
		test.DemandSuccess(t, err)
	}
	test.DemandSuccess(t, zw.Close())

	return dir
}

func TestArchivefsPath(t *testing.T) {
	dir := testdir(t)

	var afs archivefs.Path
	defer afs.Close()

	// non-existant file
	err := afs.Set(filepath.Join(dir, "foo"))
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, afs.String(), "")

	// a real directory
	err = afs.Set(dir)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), dir)
	test.ExpectSuccess(t, afs.IsDir())
	test.ExpectSuccess(t, !afs.InArchive())

	entries, err := afs.List()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fmt.Sprintf("%s", entries), "[testarchive.zip testfile]")
	test.ExpectSuccess(t, entries[0].IsArchive)

	// a real file in directory. the list is of the containing directory
	path := filepath.Join(dir, "testfile")
	err = afs.Set(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), path)
	test.ExpectSuccess(t, !afs.IsDir())
	test.ExpectSuccess(t, !afs.InArchive())

	entries, err = afs.List()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fmt.Sprintf("%s", entries), "[testarchive.zip testfile]")

	// a real archive
	path = filepath.Join(dir, "testarchive.zip")
	err = afs.Set(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), path)
	test.ExpectSuccess(t, afs.IsDir())
	test.ExpectSuccess(t, afs.InArchive())

	entries, err = afs.List()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fmt.Sprintf("%s", entries), "[archivedir archivefile1 archivefile2]")

	// file in a real archive
	path = filepath.Join(dir, "testarchive.zip", "archivefile1")
	err = afs.Set(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), path)
	test.ExpectSuccess(t, !afs.IsDir())
	test.ExpectSuccess(t, afs.InArchive())

	// directory in a real archive
	path = filepath.Join(dir, "testarchive.zip", "archivedir")
	err = afs.Set(path)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, afs.IsDir())
	test.ExpectSuccess(t, afs.InArchive())

	entries, err = afs.List()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fmt.Sprintf("%s", entries), "[archivedir2 archivefile3]")

	// missing file in a real archive
	err = afs.Set(filepath.Join(dir, "testarchive.zip", "foo"))
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, afs.String(), "")
	test.ExpectSuccess(t, !afs.InArchive())
}

func TestArchivefsOpen(t *testing.T) {
	dir := testdir(t)

	r, sz, archived, err := archivefs.Open(filepath.Join(dir, "testarchive.zip", "archivedir", "archivefile3"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sz, 22)
	test.ExpectSuccess(t, archived)
	d, err := io.ReadAll(r)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(d), "archivefile3 contents\n")

	r, sz, archived, err = archivefs.Open(filepath.Join(dir, "testfile"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sz, 18)
	test.ExpectSuccess(t, !archived)
	d, err = io.ReadAll(r)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(d), "testfile contents\n")
	if c, ok := r.(io.Closer); ok {
		c.Close()
	}

	_, _, _, err = archivefs.Open(filepath.Join(dir, "testarchive.zip"))
	test.ExpectSuccess(t, curated.Is(err, archivefs.NotAFile))
}
