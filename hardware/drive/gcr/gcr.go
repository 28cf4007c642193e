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

// Byte values with special meaning in the GCR stream.
const (
	// a run of two or more sync bytes marks the start of a block
	SyncByte = 0xff

	// gap bytes are written between blocks
	GapByte = 0x55
)

// Block markers. The first byte of a decoded block.
const (
	HeaderMarker = 0x08
	DataMarker   = 0x07
)

// Sizes of the parts of an encoded sector, in bytes.
const (
	SyncLength        = 5
	HeaderGapLength   = 9
	SectorGapLength   = 6
	PayloadSize       = 256
	RawHeaderSize     = 8
	RawBlockSize      = 260
	EncodedHeaderSize = RawHeaderSize / 4 * 5
	EncodedBlockSize  = RawBlockSize / 4 * 5

	// the total number of bytes occupied by one sector on the disk
	EncodedSectorSize = SyncLength + EncodedHeaderSize + HeaderGapLength +
		SyncLength + EncodedBlockSize + SectorGapLength
)

// the five bit code for each nibble value
var toGCR = [16]uint8{
	0x0a, 0x0b, 0x12, 0x13, 0x0e, 0x0f, 0x16, 0x17,
	0x09, 0x19, 0x1a, 0x1b, 0x0d, 0x1d, 0x1e, 0x15,
}

// the nibble value for each five bit code. invalid codes decode as zero,
// which is what the drive would see on the data lines
var fromGCR [32]uint8

func init() {
	for n, c := range toGCR {
		fromGCR[c] = uint8(n)
	}
}

// Encode four bytes into five GCR bytes.
func Encode(src [4]byte) [5]byte {
	var v uint64
	for _, b := range src {
		v = v<<10 | uint64(toGCR[b>>4])<<5 | uint64(toGCR[b&0x0f])
	}
	return [5]byte{byte(v >> 32), byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// Decode five GCR bytes into four bytes. Invalid five bit groups are not
// detected. It is up to the caller to validate the result.
func Decode(src [5]byte) [4]byte {
	v := uint64(src[0])<<32 | uint64(src[1])<<24 | uint64(src[2])<<16 | uint64(src[3])<<8 | uint64(src[4])

	var d [4]byte
	for i := range d {
		shift := uint(30 - i*10)
		d[i] = fromGCR[(v>>(shift+5))&0x1f]<<4 | fromGCR[(v>>shift)&0x1f]
	}
	return d
}

// encodeGroups expands src, which must be a multiple of four bytes in length,
// into dst
func encodeGroups(dst []byte, src []byte) {
	for i := 0; i+4 <= len(src); i += 4 {
		g := Encode([4]byte{src[i], src[i+1], src[i+2], src[i+3]})
		copy(dst[i/4*5:], g[:])
	}
}
