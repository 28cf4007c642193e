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

// Disk geometry of the 1541.
const (
	// the number of whole tracks the store has room for
	MaxTracks = 42

	// half-track numbers are in the range MinHalfTrack to MaxHalfTrack
	MinHalfTrack = 2
	MaxHalfTrack = MaxTracks * 2

	// the capacity of each track in the store. the longest track that can
	// be loaded from a G64 file
	MaxBytesPerTrack = 7928

	// number of tracks on a standard disk and on an extended disk
	StandardTracks = 35
	ExtendedTracks = 40

	// number of speed zones
	NumZones = 4
)

// RawTrackSize is the number of GCR bytes on a track written by the drive in
// each speed zone.
var RawTrackSize = [NumZones]int{6250, 6666, 7142, 7692}

// Zone returns the standard speed zone for a track. Tracks nearer the hub are
// shorter and use a lower zone.
func Zone(track int) int {
	switch {
	case track < 18:
		return 3
	case track < 25:
		return 2
	case track < 31:
		return 1
	}
	return 0
}

// SectorsPerTrack returns the number of sectors the drive writes to a track.
// Tracks outside the range of the store have no sectors.
func SectorsPerTrack(track int) int {
	switch {
	case track < 1 || track > MaxTracks:
		return 0
	case track < 18:
		return 21
	case track < 25:
		return 19
	case track < 31:
		return 18
	}
	return 17
}
