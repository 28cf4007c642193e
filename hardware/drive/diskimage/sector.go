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

package diskimage

import (
	"fmt"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/drive/gcr"
	"github.com/jetsetilly/gopher1541/hardware/drive/search"
)

// ExtractSector locates and decodes a sector in a track's GCR data.
//
// If the header or data block cannot be found a SectorNotFound error is
// returned. If the block is found but the marker or checksum is wrong then the
// decoded block is returned along with a BadBlock error.
func ExtractSector(r gcr.Ring, track int, sector int) (gcr.Block, error) {
	hdr, ok := search.FindHeader(r, track, sector)
	if !ok {
		return gcr.Block{}, curated.Errorf(SectorNotFound, track, sector)
	}

	data, ok := search.FindData(r, hdr)
	if !ok {
		return gcr.Block{}, curated.Errorf(SectorNotFound, track, sector)
	}

	blk := gcr.DecodeBlock(r, data)
	if blk.Marker() != gcr.DataMarker {
		return blk, curated.Errorf(BadBlock, track, sector, fmt.Sprintf("marker %#02x", blk.Marker()))
	}
	if !blk.ChecksumValid() {
		return blk, curated.Errorf(BadBlock, track, sector, "checksum")
	}

	return blk, nil
}

// ReplaceSector encodes the payload as a data block and writes it over the
// existing data block of the sector. The header and gaps are untouched.
func ReplaceSector(r gcr.Ring, track int, sector int, payload []byte) error {
	data, ok := search.FindSector(r, track, sector)
	if !ok {
		return curated.Errorf(SectorNotFound, track, sector)
	}

	blk := gcr.NewBlock(payload)
	enc := make([]byte, gcr.EncodedBlockSize)
	blk.Encode(enc)
	r.Write(data, enc)

	return nil
}
