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

// Package archivefs allows disk images to be opened from inside zip archives
// as though the archive were a directory. A path such as
// "games/collection.zip/side1.d64" refers to the file side1.d64 in the root of
// the archive collection.zip.
//
// Files inside an archive are read into memory when opened. They cannot be
// written to.
package archivefs

import (
	"io"

	"github.com/jetsetilly/gopher1541/curated"
)

// Open and return an io.ReadSeeker for the specified filename. Filename can be
// inside an archive supported by archivefs
//
// Returns the io.ReadSeeker, the size of the data behind the ReadSeeker,
// whether the file was inside an archive and any errors.
func Open(filename string) (io.ReadSeeker, int, bool, error) {
	var afs Path
	err := afs.Set(filename)
	if err != nil {
		return nil, 0, false, err
	}
	defer afs.Close()

	if afs.IsDir() {
		return nil, 0, false, curated.Errorf(NotAFile, filename)
	}

	r, sz, err := afs.Open()
	return r, sz, afs.InArchive(), err
}
