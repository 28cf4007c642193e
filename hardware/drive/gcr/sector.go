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

import "fmt"

// Header identifies a sector on the disk. The ID is the two byte disk ID
// found in the BAM of a formatted disk.
type Header struct {
	Track  uint8
	Sector uint8
	ID1    uint8
	ID2    uint8
}

func (h Header) String() string {
	return fmt.Sprintf("T:%d S:%d ID:%02x%02x", h.Track, h.Sector, h.ID1, h.ID2)
}

// Checksum of the header fields.
func (h Header) Checksum() uint8 {
	return h.Sector ^ h.Track ^ h.ID2 ^ h.ID1
}

// raw header bytes in the order they appear on the disk
func (h Header) raw() [RawHeaderSize]byte {
	return [RawHeaderSize]byte{
		HeaderMarker, h.Checksum(), h.Sector, h.Track, h.ID2, h.ID1, 0x0f, 0x0f,
	}
}

// DecodeHeader decodes the first group of an encoded header block. The
// result is the marker, checksum, sector and track bytes.
func DecodeHeader(src [5]byte) [4]byte {
	return Decode(src)
}

// Checksum returns the XOR of every byte in data.
func Checksum(data []byte) uint8 {
	var c uint8
	for _, v := range data {
		c ^= v
	}
	return c
}

// Block is a decoded data block: marker, payload, checksum and two bytes of
// padding.
type Block [RawBlockSize]byte

// NewBlock creates a data block for the payload. A payload shorter than
// PayloadSize is padded with zero.
func NewBlock(payload []byte) Block {
	var b Block
	b[0] = DataMarker
	copy(b[1:PayloadSize+1], payload)
	b[PayloadSize+1] = Checksum(b[1 : PayloadSize+1])
	return b
}

// Marker byte of the block.
func (b *Block) Marker() uint8 {
	return b[0]
}

// Payload returns the 256 payload bytes of the block.
func (b *Block) Payload() []byte {
	return b[1 : PayloadSize+1]
}

// ChecksumValid returns true if the checksum byte matches the payload.
func (b *Block) ChecksumValid() bool {
	return b[PayloadSize+1] == Checksum(b.Payload())
}

// Encode the block into dst, which must be at least EncodedBlockSize bytes.
func (b *Block) Encode(dst []byte) {
	encodeGroups(dst, b[:])
}

// EncodeSector returns the GCR form of a complete sector: sync, header, gap,
// sync, data block and a final gap.
func EncodeSector(hdr Header, payload []byte) []byte {
	out := make([]byte, EncodedSectorSize)

	i := 0
	fill := func(v byte, n int) {
		for ; n > 0; n-- {
			out[i] = v
			i++
		}
	}

	fill(SyncByte, SyncLength)
	raw := hdr.raw()
	encodeGroups(out[i:], raw[:])
	i += EncodedHeaderSize
	fill(GapByte, HeaderGapLength)

	fill(SyncByte, SyncLength)
	blk := NewBlock(payload)
	blk.Encode(out[i:])
	i += EncodedBlockSize
	fill(GapByte, SectorGapLength)

	return out
}

// DecodeBlock decodes the data block starting at offset, wrapping around the
// end of the ring as required. The offset should point to the first byte
// after a sync run.
func DecodeBlock(r Ring, offset int) Block {
	var b Block
	var g [5]byte
	for i := 0; i < RawBlockSize; i += 4 {
		offset = r.Read(offset, g[:])
		d := Decode(g)
		copy(b[i:], d[:])
	}
	return b
}
