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

package gcr

// Ring is the valid part of a track's GCR data. The disk is circular so
// indexing wraps around at the end of the slice. All wraparound arithmetic
// should go through the Wrap() function.
//
// A Ring must not be empty.
type Ring []byte

// Wrap normalises an index into the range of the ring. Negative indexes
// count backwards from the end.
func (r Ring) Wrap(i int) int {
	i %= len(r)
	if i < 0 {
		i += len(r)
	}
	return i
}

// At returns the byte at index i, wrapping as required.
func (r Ring) At(i int) byte {
	return r[r.Wrap(i)]
}

// Set the byte at index i, wrapping as required.
func (r Ring) Set(i int, v byte) {
	r[r.Wrap(i)] = v
}

// Read fills dst with the bytes starting at offset. Returns the (wrapped)
// offset of the byte after the last byte read.
func (r Ring) Read(offset int, dst []byte) int {
	offset = r.Wrap(offset)
	for i := range dst {
		dst[i] = r[offset]
		offset = r.Wrap(offset + 1)
	}
	return offset
}

// Write copies src into the ring starting at offset. Returns the (wrapped)
// offset of the byte after the last byte written.
func (r Ring) Write(offset int, src []byte) int {
	offset = r.Wrap(offset)
	for _, v := range src {
		r[offset] = v
		offset = r.Wrap(offset + 1)
	}
	return offset
}
