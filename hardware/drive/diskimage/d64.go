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
	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/drive/gcr"
	"github.com/jetsetilly/gopher1541/hardware/drive/tracks"
	"github.com/jetsetilly/gopher1541/logger"
)

// sizes of disk images for other drives. recognised so that they can be
// rejected with a useful message
const (
	d71Size = 349696
	d81Size = 819200
)

// offset of the disk ID in the BAM sector
const bamID = 0xa2

// the number of sectors in an image with numTracks tracks
func d64Sectors(numTracks int) int {
	n := 0
	for t := 1; t <= numTracks; t++ {
		n += tracks.SectorsPerTrack(t)
	}
	return n
}

// the size in bytes of an image with numTracks tracks, without error info
func d64Size(numTracks int) int {
	return d64Sectors(numTracks) * gcr.PayloadSize
}

// the byte offset of a sector in a D64 image
func d64Offset(track int, sector int) (int64, error) {
	if sector < 0 || sector >= tracks.SectorsPerTrack(track) {
		return 0, curated.Errorf(SectorRange, track, sector)
	}
	return int64(d64Sectors(track-1)+sector) * gcr.PayloadSize, nil
}

// ReadSector reads the 256 bytes of a sector from a D64 image into data.
func (img *Image) ReadSector(track int, sector int, data []byte) error {
	if img.Format != FormatD64 {
		return curated.Errorf(Unsupported, "sector access to non-D64 image")
	}
	if track > img.NumTracks {
		return curated.Errorf(SectorRange, track, sector)
	}
	o, err := d64Offset(track, sector)
	if err != nil {
		return err
	}
	if _, err := img.f.ReadAt(data[:gcr.PayloadSize], o); err != nil {
		return curated.Errorf("diskimage: %v", err)
	}
	return nil
}

// WriteSector writes 256 bytes of data to a sector in a D64 image.
func (img *Image) WriteSector(track int, sector int, data []byte) error {
	if img.Format != FormatD64 {
		return curated.Errorf(Unsupported, "sector access to non-D64 image")
	}
	if img.ReadOnly {
		return curated.Errorf(ReadOnly)
	}
	if track > img.NumTracks {
		return curated.Errorf(SectorRange, track, sector)
	}
	o, err := d64Offset(track, sector)
	if err != nil {
		return err
	}
	if _, err := img.f.WriteAt(data[:gcr.PayloadSize], o); err != nil {
		return curated.Errorf("diskimage: %v", err)
	}
	return nil
}

func (img *Image) loadD64() (*tracks.Store, error) {
	store := tracks.NewStore()
	payload := make([]byte, gcr.PayloadSize)

	for t := 1; t <= img.NumTracks; t++ {
		r := store.Ring(t)
		for s := 0; s < tracks.SectorsPerTrack(t); s++ {
			if err := img.ReadSector(t, s, payload); err != nil {
				logger.Logf(img.perm, tagD64, "could not read T:%d S:%d: %v", t, s, err)
				continue
			}
			hdr := gcr.Header{
				Track:  uint8(t),
				Sector: uint8(s),
				ID1:    img.ID[0],
				ID2:    img.ID[1],
			}
			r.Write(s*gcr.EncodedSectorSize, gcr.EncodeSector(hdr, payload))
		}
	}

	return store, nil
}

func (img *Image) writeTrackD64(store *tracks.Store, track int) error {
	if track > img.NumTracks {
		return curated.Errorf(SectorRange, track, 0)
	}

	r := store.Ring(track)
	for s := 0; s < tracks.SectorsPerTrack(track); s++ {
		blk, err := ExtractSector(r, track, s)
		if err != nil {
			logger.Logf(img.perm, tagD64, "%v", err)

			// a block with a bad checksum is still written. D64 has no way
			// of recording the error
			if !curated.Is(err, BadBlock) || blk.Marker() != gcr.DataMarker {
				continue
			}
		}

		if err := img.WriteSector(track, s, blk.Payload()); err != nil {
			logger.Logf(img.perm, tagD64, "could not write T:%d S:%d: %v", track, s, err)
		}
	}

	return nil
}

// Extend a D64 image to the extended track count. The new sectors are
// zero-filled. Extending an image that is already at the extended track count
// or beyond does nothing.
func (img *Image) Extend() error {
	if img.Format != FormatD64 {
		return curated.Errorf(Unsupported, "extending a non-D64 image")
	}
	if img.ReadOnly {
		return curated.Errorf(ReadOnly)
	}
	if img.NumTracks >= tracks.ExtendedTracks {
		return nil
	}

	// the error info block would be overwritten
	if img.ErrorInfo {
		return curated.Errorf(Unsupported, "extending an image with error info")
	}

	zero := make([]byte, gcr.PayloadSize)
	for t := img.NumTracks + 1; t <= tracks.ExtendedTracks; t++ {
		for s := 0; s < tracks.SectorsPerTrack(t); s++ {
			o, _ := d64Offset(t, s)
			if _, err := img.f.WriteAt(zero, o); err != nil {
				return curated.Errorf("diskimage: extend: %v", err)
			}
		}
	}

	logger.Logf(img.perm, tagD64, "extended %s to %d tracks", img.ShortName(), tracks.ExtendedTracks)
	img.NumTracks = tracks.ExtendedTracks

	return nil
}
