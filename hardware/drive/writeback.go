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

package drive

import (
	"fmt"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/drive/diskimage"
	"github.com/jetsetilly/gopher1541/hardware/drive/tracks"
	"github.com/jetsetilly/gopher1541/logger"
)

// Flush writes the current track back to the disk image if it has been
// written to.
//
// The dirty flag is only cleared if the track was written back. A refused or
// failed write back leaves the flag set so that a later Flush() can succeed.
func (s *Session) Flush() error {
	if !s.store.Dirty() || s.img == nil {
		return nil
	}

	track := s.store.Track()

	if s.img.Format == diskimage.FormatD64 && track > s.img.NumTracks {
		if err := s.extend(track); err != nil {
			return curated.Errorf(WriteBack, track, err)
		}
	}

	if err := s.img.WriteTrack(s.store, track); err != nil {
		return curated.Errorf(WriteBack, track, err)
	}

	s.store.ClearDirty()

	return nil
}

// extend the D64 image so that it includes the track. Governed by the
// ExtendPolicy preference.
func (s *Session) extend(track int) error {
	if track > tracks.ExtendedTracks {
		return curated.Errorf(ExtendRefused, fmt.Sprintf("T:%d is beyond the extended track count", track))
	}

	switch s.env.Prefs.Policy() {
	case diskimage.ExtendNever:
		s.askExtend = true
		return curated.Errorf(ExtendRefused, "policy is never")

	case diskimage.ExtendAsk:
		if !s.askExtend {
			return curated.Errorf(ExtendRefused, "already declined for this track")
		}
		s.askExtend = false
		if s.requester == nil || !s.requester.RequestExtension(s.img.Filename, track) {
			return curated.Errorf(ExtendRefused, "declined")
		}

	case diskimage.ExtendOnAccess:
		s.askExtend = true
	}

	if err := s.img.Extend(); err != nil {
		return err
	}

	logger.Logf(s.env, tag, "%s extended for T:%d", s.img.ShortName(), track)

	return nil
}

// ReadSector decodes a sector from the in-memory copy of the disk. The
// rotation and the position of the head are unaffected.
//
// A block that is found but which has the wrong marker or checksum is
// returned along with the error.
func (s *Session) ReadSector(track int, sector int) ([]byte, error) {
	if track < 1 || track > tracks.MaxTracks {
		return nil, curated.Errorf(diskimage.SectorRange, track, sector)
	}

	blk, err := diskimage.ExtractSector(s.store.Ring(track), track, sector)
	if curated.Is(err, diskimage.SectorNotFound) {
		return nil, err
	}

	data := make([]byte, len(blk.Payload()))
	copy(data, blk.Payload())

	return data, err
}

// WriteSector encodes a sector into the in-memory copy of the disk. The head
// must be on the track. The track is marked dirty and is written back to the
// disk image in the normal way.
func (s *Session) WriteSector(track int, sector int, data []byte) error {
	if track != s.store.Track() {
		return curated.Errorf(OffTrack, track)
	}

	s.rotate()

	if err := diskimage.ReplaceSector(s.store.Ring(track), track, sector, data); err != nil {
		return err
	}
	s.store.SetDirty()

	return nil
}
