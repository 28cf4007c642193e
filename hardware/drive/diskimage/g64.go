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
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/drive/tracks"
)

// G64 header layout. The header is followed by a table of track offsets and
// a table of speed zone entries, each with one four byte entry per
// half-track.
const (
	g64Signature      = "GCR-1541"
	g64Version        = 0x00
	g64HeaderSize     = 12
	g64HalfTracksIdx  = 9
	g64MaxTrackIdx    = 10
	g64MinTrackLength = 5000
)

func (img *Image) parseG64Header(data []byte) error {
	img.halfTracks = int(data[g64HalfTracksIdx])
	img.maxTrackSize = int(binary.LittleEndian.Uint16(data[g64MaxTrackIdx:]))

	if img.halfTracks == 0 || img.halfTracks > tracks.MaxHalfTrack {
		return curated.Errorf(MalformedImage, fmt.Sprintf("%d half-tracks", img.halfTracks))
	}
	if len(data) < g64HeaderSize+img.halfTracks*8 {
		return curated.Errorf(MalformedImage, "truncated header")
	}

	img.NumTracks = (img.halfTracks + 1) / 2

	return nil
}

// g64Tables reads the track offset and speed zone tables from the file
func (img *Image) g64Tables() ([]uint32, []uint32, error) {
	buf := make([]byte, img.halfTracks*8)
	if _, err := img.f.ReadAt(buf, g64HeaderSize); err != nil {
		return nil, nil, curated.Errorf(MalformedImage, err)
	}

	offsets := make([]uint32, img.halfTracks)
	speeds := make([]uint32, img.halfTracks)
	for i := range offsets {
		offsets[i] = binary.LittleEndian.Uint32(buf[i*4:])
		speeds[i] = binary.LittleEndian.Uint32(buf[(img.halfTracks+i)*4:])
	}

	return offsets, speeds, nil
}

func (img *Image) loadG64() (*tracks.Store, error) {
	offsets, speeds, err := img.g64Tables()
	if err != nil {
		return nil, err
	}

	store := tracks.NewStore()

	// only whole tracks are loaded. half-track entries are ignored
	for t := 1; t <= tracks.MaxTracks; t++ {
		idx := (t - 1) * 2
		if idx >= img.halfTracks {
			break
		}

		o := int64(offsets[idx])
		if o == 0 {
			continue
		}

		var l [2]byte
		if _, err := img.f.ReadAt(l[:], o); err != nil {
			return nil, curated.Errorf(MalformedImage, fmt.Sprintf("track %d: %v", t, err))
		}

		n := int(binary.LittleEndian.Uint16(l[:]))
		if n < g64MinTrackLength || n > tracks.MaxBytesPerTrack {
			return nil, curated.Errorf(MalformedImage, fmt.Sprintf("track %d has length %d", t, n))
		}

		if _, err := img.f.ReadAt(store.Buffer(t)[:n], o+2); err != nil {
			return nil, curated.Errorf(MalformedImage, fmt.Sprintf("track %d: %v", t, err))
		}
		store.SetSize(t, n)

		zones := store.Zones(t)
		if speeds[idx] > 3 {
			// four zones packed into each byte, first zone in the high bits
			packed := make([]byte, (n+3)/4)
			if _, err := img.f.ReadAt(packed, int64(speeds[idx])); err != nil {
				return nil, curated.Errorf(MalformedImage, fmt.Sprintf("track %d speed zones: %v", t, err))
			}
			for i := 0; i < n; i++ {
				zones[i] = (packed[i/4] >> (6 - uint(i%4)*2)) & 0x03
			}
		} else {
			for i := range zones {
				zones[i] = byte(speeds[idx])
			}
		}
	}

	return store, nil
}

// writing is limited to replacing the data of tracks that already exist in
// the image and that have a single speed zone
func (img *Image) writeTrackG64(store *tracks.Store, track int) error {
	idx := (track - 1) * 2
	if idx >= img.halfTracks {
		return curated.Errorf(Unsupported, "adding new tracks")
	}

	offsets, speeds, err := img.g64Tables()
	if err != nil {
		return err
	}

	o := int64(offsets[idx])
	if o == 0 {
		return curated.Errorf(Unsupported, "adding new tracks")
	}

	n := store.Size(track)
	zones := store.Zones(track)[:n]
	for _, z := range zones {
		if z != zones[0] {
			return curated.Errorf(Unsupported, "saving different speed zones")
		}
	}
	if speeds[idx] > 3 {
		return curated.Errorf(Unsupported, "adding new speed zones")
	}

	slot := img.maxTrackSize
	if slot > tracks.MaxBytesPerTrack {
		slot = tracks.MaxBytesPerTrack
	}
	if slot < n {
		return curated.Errorf(Unsupported, fmt.Sprintf("track longer than the image maximum (%d)", slot))
	}

	// unused bytes at the end of the slot are zero
	buf := make([]byte, 2+slot)
	binary.LittleEndian.PutUint16(buf, uint16(n))
	copy(buf[2:], store.Buffer(track)[:n])
	if _, err := img.f.WriteAt(buf, o); err != nil {
		return curated.Errorf("diskimage: %v", err)
	}

	var sp [4]byte
	binary.LittleEndian.PutUint32(sp[:], uint32(zones[0]))
	if _, err := img.f.WriteAt(sp[:], int64(g64HeaderSize+(img.halfTracks+idx)*4)); err != nil {
		return curated.Errorf("diskimage: %v", err)
	}

	return nil
}
