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

package search

import (
	"github.com/jetsetilly/gopher1541/hardware/drive/gcr"
)

// DataSearchLimit is the number of non-sync bytes that may separate the end
// of a header from the sync mark of the data block.
const DataSearchLimit = 500

// FindHeader searches the track for the header of the sector. Returns the
// offset of the byte following the first group of the header.
//
// The search covers the track at most once. A track made entirely of sync
// bytes (a killer track) or entirely of non-sync bytes is not found.
func FindHeader(r gcr.Ring, track int, sector int) (int, bool) {
	size := len(r)
	offset := 0
	syncCount := 0
	wrapped := false

	next := func() {
		offset = r.Wrap(offset + 1)
		if offset == 0 {
			wrapped = true
		}
	}

	var g [5]byte

	for offset < size && !wrapped {
		for r[offset] != gcr.SyncByte {
			offset++
			if offset >= size {
				return 0, false
			}
		}

		for r[offset] == gcr.SyncByte {
			next()
			syncCount++
			if syncCount >= size {
				return 0, false
			}
		}

		for i := range g {
			g[i] = r[offset]
			next()
		}

		d := gcr.DecodeHeader(g)
		if d[0] == gcr.HeaderMarker && int(d[2]) == sector && int(d[3]) == track {
			return offset, true
		}
	}

	return 0, false
}

// FindData searches for the data block following the header that ends at
// offset. Returns the offset of the first byte of the data block.
func FindData(r gcr.Ring, offset int) (int, bool) {
	offset = r.Wrap(offset)

	for n := 0; r[offset] != gcr.SyncByte; n++ {
		if n >= DataSearchLimit {
			return 0, false
		}
		offset = r.Wrap(offset + 1)
	}

	for n := 0; r[offset] == gcr.SyncByte; n++ {
		if n >= len(r) {
			return 0, false
		}
		offset = r.Wrap(offset + 1)
	}

	return offset, true
}

// FindSector combines FindHeader() and FindData(). Returns the offset of the
// first byte of the sector's data block.
func FindSector(r gcr.Ring, track int, sector int) (int, bool) {
	offset, ok := FindHeader(r, track, sector)
	if !ok {
		return 0, false
	}
	return FindData(r, offset)
}
