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
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/drive/gcr"
	"github.com/jetsetilly/gopher1541/hardware/drive/tracks"
)

// BAM layout
const (
	bamName      = 0x90
	bamNameLen   = 16
	bamDOSType   = 0xa5
	bamEntries   = 0x04
	bamPadding   = 0xa0
	bamDirSector = 1
)

// CreateD64 writes a newly formatted 35 track D64 image. The disk has an
// empty directory and every sector other than the BAM and the first
// directory sector is free.
func CreateD64(filename string, name string, id [2]byte) error {
	data := make([]byte, d64Size(tracks.StandardTracks))

	bamOffset, _ := d64Offset(18, 0)
	bam := data[bamOffset : bamOffset+gcr.PayloadSize]

	// link to the first directory sector and DOS version
	bam[0] = 18
	bam[1] = bamDirSector
	bam[2] = 'A'

	for t := 1; t <= tracks.StandardTracks; t++ {
		n := tracks.SectorsPerTrack(t)
		var bits uint32 = (1 << n) - 1
		if t == 18 {
			bits &^= 1<<0 | 1<<bamDirSector
		}

		e := bam[bamEntries+(t-1)*4:]
		free := 0
		for s := 0; s < n; s++ {
			if bits&(1<<s) != 0 {
				free++
			}
		}
		e[0] = byte(free)
		e[1] = byte(bits)
		e[2] = byte(bits >> 8)
		e[3] = byte(bits >> 16)
	}

	for i := bamName; i < bamDOSType+6; i++ {
		bam[i] = bamPadding
	}
	copy(bam[bamName:bamName+bamNameLen], strings.ToUpper(name))
	bam[bamID] = id[0]
	bam[bamID+1] = id[1]
	bam[bamDOSType] = '2'
	bam[bamDOSType+1] = 'A'

	dirOffset, _ := d64Offset(18, bamDirSector)
	data[dirOffset+1] = 0xff

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return curated.Errorf("diskimage: %v", err)
	}
	return nil
}

// WriteG64 writes the contents of a track store as a G64 image with 84
// half-tracks. Odd half-tracks are left empty. Tracks with a single speed zone
// use the uniform form of the speed zone entry and tracks with mixed zones
// have a packed zone table appended to the image.
func WriteG64(w io.Writer, store *tracks.Store, numTracks int) error {
	if numTracks < 1 || numTracks > tracks.MaxTracks {
		return curated.Errorf(Unsupported, "track count out of range")
	}

	const halfTracks = tracks.MaxHalfTrack
	const slot = 2 + tracks.MaxBytesPerTrack

	tableSize := halfTracks * 8
	dataStart := g64HeaderSize + tableSize
	packedStart := dataStart + numTracks*slot

	hdr := make([]byte, dataStart)
	copy(hdr, g64Signature)
	hdr[8] = g64Version
	hdr[g64HalfTracksIdx] = halfTracks
	binary.LittleEndian.PutUint16(hdr[g64MaxTrackIdx:], tracks.MaxBytesPerTrack)

	var packed []byte

	for t := 1; t <= numTracks; t++ {
		idx := (t - 1) * 2
		binary.LittleEndian.PutUint32(hdr[g64HeaderSize+idx*4:], uint32(dataStart+(t-1)*slot))

		n := store.Size(t)
		zones := store.Zones(t)[:n]
		uniform := true
		for _, z := range zones {
			if z != zones[0] {
				uniform = false
				break
			}
		}

		speed := uint32(zones[0])
		if !uniform {
			speed = uint32(packedStart + len(packed))
			p := make([]byte, (n+3)/4)
			for i, z := range zones {
				p[i/4] |= (z & 0x03) << (6 - uint(i%4)*2)
			}
			packed = append(packed, p...)
		}
		binary.LittleEndian.PutUint32(hdr[g64HeaderSize+(halfTracks+idx)*4:], speed)
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(hdr); err != nil {
		return curated.Errorf("diskimage: %v", err)
	}

	for t := 1; t <= numTracks; t++ {
		buf := make([]byte, slot)
		n := store.Size(t)
		binary.LittleEndian.PutUint16(buf, uint16(n))
		copy(buf[2:], store.Buffer(t)[:n])
		if _, err := bw.Write(buf); err != nil {
			return curated.Errorf("diskimage: %v", err)
		}
	}

	if _, err := bw.Write(packed); err != nil {
		return curated.Errorf("diskimage: %v", err)
	}

	if err := bw.Flush(); err != nil {
		return curated.Errorf("diskimage: %v", err)
	}

	return nil
}
