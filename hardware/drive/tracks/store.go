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

package tracks

import (
	"fmt"

	"github.com/jetsetilly/gopher1541/hardware/drive/gcr"
)

// Store is the in-memory GCR image of every track on the disk, along with
// the position of the read/write head.
//
// Each track has MaxBytesPerTrack bytes of capacity but only the first
// Size() bytes are valid. The head offset is always less than the size of
// the current track.
type Store struct {
	data  []byte
	zones []byte
	size  [MaxTracks]int

	halfTrack  int
	track      gcr.Ring
	headOffset int

	dirty bool
}

// NewStore is the preferred method of initialisation for the Store type. The
// new store is cleared and the head is at half-track MinHalfTrack.
func NewStore() *Store {
	s := &Store{
		data:      make([]byte, MaxTracks*MaxBytesPerTrack),
		zones:     make([]byte, MaxTracks*MaxBytesPerTrack),
		halfTrack: MinHalfTrack,
	}
	s.Clear()
	return s
}

func (s *Store) String() string {
	return fmt.Sprintf("HT:%d T:%d offset:%d/%d", s.halfTrack, s.Track(), s.headOffset, len(s.track))
}

// Clear every track to sync bytes, the standard size and the standard speed
// zone. The dirty flag is cleared.
func (s *Store) Clear() {
	for i := range s.data {
		s.data[i] = gcr.SyncByte
	}
	for t := 1; t <= MaxTracks; t++ {
		z := s.Zones(t)
		for i := range z {
			z[i] = byte(Zone(t))
		}
		s.size[t-1] = RawTrackSize[Zone(t)]
	}
	s.dirty = false
	s.SetHalfTrack(s.halfTrack)
}

// CopyFrom replaces the contents of the store with those of another store.
// The head remains on the same half-track but is returned to the start of
// the track. The dirty flag is cleared.
func (s *Store) CopyFrom(o *Store) {
	copy(s.data, o.data)
	copy(s.zones, o.zones)
	s.size = o.size
	s.dirty = false
	s.SetHalfTrack(s.halfTrack)
}

// SetHalfTrack moves the head to the half-track. Values outside the range
// MinHalfTrack to MaxHalfTrack are clamped. The head is returned to the start
// of the track.
//
// Moving the head has no I/O side effects. Callers should write back any
// dirty data first.
func (s *Store) SetHalfTrack(halfTrack int) {
	if halfTrack < MinHalfTrack {
		halfTrack = MinHalfTrack
	} else if halfTrack > MaxHalfTrack {
		halfTrack = MaxHalfTrack
	}
	s.halfTrack = halfTrack
	s.track = s.Ring(s.Track())
	s.headOffset = 0
}

// HalfTrack returns the current half-track.
func (s *Store) HalfTrack() int {
	return s.halfTrack
}

// Track returns the whole track under the head. An odd half-track is
// reported as the whole track below it.
func (s *Store) Track() int {
	return s.halfTrack / 2
}

// Ring returns the valid part of a track. Track numbers start at one.
func (s *Store) Ring(track int) gcr.Ring {
	i := (track - 1) * MaxBytesPerTrack
	return gcr.Ring(s.data[i : i+s.size[track-1]])
}

// Buffer returns the full capacity of a track, including the bytes beyond
// the valid size.
func (s *Store) Buffer(track int) []byte {
	i := (track - 1) * MaxBytesPerTrack
	return s.data[i : i+MaxBytesPerTrack]
}

// Zones returns the per-byte speed zone map for the full capacity of a track.
func (s *Store) Zones(track int) []byte {
	i := (track - 1) * MaxBytesPerTrack
	return s.zones[i : i+MaxBytesPerTrack]
}

// Size returns the number of valid bytes in a track.
func (s *Store) Size(track int) int {
	return s.size[track-1]
}

// SetSize sets the number of valid bytes in a track. The size must be
// between one and MaxBytesPerTrack.
func (s *Store) SetSize(track int, size int) {
	if size < 1 || size > MaxBytesPerTrack {
		panic(fmt.Sprintf("tracks: illegal track size (%d)", size))
	}
	s.size[track-1] = size
	if track == s.Track() {
		s.SetHalfTrack(s.halfTrack)
	}
}

// TrackSize returns the size of the track under the head.
func (s *Store) TrackSize() int {
	return len(s.track)
}

// HeadOffset returns the position of the head in the current track.
func (s *Store) HeadOffset() int {
	return s.headOffset
}

// HeadZone returns the speed zone recorded for the byte under the head.
func (s *Store) HeadZone() int {
	return int(s.Zones(s.Track())[s.headOffset])
}

// Dirty returns true if the current track has been written to since the last
// call to ClearDirty().
func (s *Store) Dirty() bool {
	return s.dirty
}

// SetDirty marks the current track as dirty. For use after writing to the
// track through Ring().
func (s *Store) SetDirty() {
	s.dirty = true
}

// ClearDirty should be called once the current track has been written back.
func (s *Store) ClearDirty() {
	s.dirty = false
}

// ReadAt returns the byte at the offset in the current track. The offset is
// wrapped to the size of the track.
func (s *Store) ReadAt(offset int) byte {
	return s.track.At(offset)
}

// WriteAt sets the byte at the offset in the current track and marks the
// track as dirty. The offset is wrapped to the size of the track.
func (s *Store) WriteAt(offset int, v byte) {
	s.track.Set(offset, v)
	s.dirty = true
}

// Peek returns the byte under the head.
func (s *Store) Peek() byte {
	return s.track[s.headOffset]
}

// Previous returns the byte immediately before the head.
func (s *Store) Previous() byte {
	return s.track.At(s.headOffset - 1)
}

// Poke writes the byte under the head and marks the track as dirty.
func (s *Store) Poke(v byte) {
	s.track[s.headOffset] = v
	s.dirty = true
}

// Skip moves the head forward n bytes.
func (s *Store) Skip(n int) {
	s.headOffset = s.track.Wrap(s.headOffset + n)
}
