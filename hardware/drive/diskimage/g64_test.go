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

package diskimage_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/drive/diskimage"
	"github.com/jetsetilly/gopher1541/hardware/drive/gcr"
	"github.com/jetsetilly/gopher1541/hardware/drive/tracks"
	"github.com/jetsetilly/gopher1541/logger"
	"github.com/jetsetilly/gopher1541/test"
)

// convert the D64 image to a G64 image
func newG64(t *testing.T, store *tracks.Store, numTracks int) string {
	t.Helper()

	fn := filepath.Join(t.TempDir(), "test.g64")
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, diskimage.WriteG64(f, store, numTracks))
	test.DemandSuccess(t, f.Close())

	return fn
}

func loadD64(t *testing.T) *tracks.Store {
	t.Helper()

	img, err := diskimage.Open(logger.Allow, newD64(t), true)
	test.DemandSuccess(t, err)
	defer img.Close()

	store, err := img.Load()
	test.DemandSuccess(t, err)
	return store
}

func TestG64RoundTrip(t *testing.T) {
	d64 := loadD64(t)
	fn := newG64(t, d64, 35)

	img, err := diskimage.Open(logger.Allow, fn, false)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Format, diskimage.FormatG64)
	test.ExpectEquality(t, img.NumTracks, 42)

	store, err := img.Load()
	test.DemandSuccess(t, err)

	for tr := 1; tr <= 35; tr++ {
		test.ExpectEquality(t, store.Size(tr), d64.Size(tr), tr)
		test.ExpectEquality(t, string(store.Ring(tr)), string(d64.Ring(tr)), tr)
		test.ExpectEquality(t, store.Zones(tr)[0], byte(tracks.Zone(tr)), tr)
	}

	// modify a sector and write the track back
	modified := make([]byte, gcr.PayloadSize)
	for i := range modified {
		modified[i] = byte(i ^ 0x5a)
	}
	test.DemandSuccess(t, diskimage.ReplaceSector(store.Ring(7), 7, 11, modified))
	test.DemandSuccess(t, img.WriteTrack(store, 7))
	test.DemandSuccess(t, img.Close())

	img, err = diskimage.Open(logger.Allow, fn, false)
	test.DemandSuccess(t, err)
	defer img.Close()

	store, err = img.Load()
	test.DemandSuccess(t, err)

	blk, err := diskimage.ExtractSector(store.Ring(7), 7, 11)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(blk.Payload()), string(modified))

	blk, err = diskimage.ExtractSector(store.Ring(7), 7, 10)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(blk.Payload()), string(pattern(7, 10)))
}

func TestG64PackedZones(t *testing.T) {
	d64 := loadD64(t)

	// first half of track 1 in zone 2
	z := d64.Zones(1)
	for i := 0; i < d64.Size(1)/2; i++ {
		z[i] = 2
	}

	fn := newG64(t, d64, 35)
	img, err := diskimage.Open(logger.Allow, fn, false)
	test.DemandSuccess(t, err)
	defer img.Close()

	store, err := img.Load()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(store.Zones(1)[:store.Size(1)]), string(z[:d64.Size(1)]))

	// mixed zones cannot be written back
	err = img.WriteTrack(store, 1)
	test.ExpectSuccess(t, curated.Is(err, diskimage.Unsupported))

	// nor can tracks that are not in the image
	err = img.WriteTrack(store, 36)
	test.ExpectSuccess(t, curated.Is(err, diskimage.Unsupported))

	// uniform tracks are fine
	test.ExpectSuccess(t, img.WriteTrack(store, 2))
}

func TestG64MixedZonesInStore(t *testing.T) {
	fn := newG64(t, loadD64(t), 35)
	img, err := diskimage.Open(logger.Allow, fn, false)
	test.DemandSuccess(t, err)
	defer img.Close()

	store, err := img.Load()
	test.DemandSuccess(t, err)

	store.Zones(3)[100] = 0
	err = img.WriteTrack(store, 3)
	test.ExpectSuccess(t, curated.Is(err, diskimage.Unsupported))
}

func TestG64MalformedLength(t *testing.T) {
	fn := newG64(t, loadD64(t), 35)

	// change the length of track 2
	f, err := os.OpenFile(fn, os.O_RDWR, 0)
	test.DemandSuccess(t, err)
	var b [4]byte
	_, err = f.ReadAt(b[:], 12+2*4)
	test.DemandSuccess(t, err)
	var l [2]byte
	binary.LittleEndian.PutUint16(l[:], 4000)
	_, err = f.WriteAt(l[:], int64(binary.LittleEndian.Uint32(b[:])))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, f.Close())

	img, err := diskimage.Open(logger.Allow, fn, false)
	test.DemandSuccess(t, err)
	defer img.Close()

	store, err := img.Load()
	test.ExpectSuccess(t, curated.Is(err, diskimage.MalformedImage))
	test.ExpectSuccess(t, store == nil)
}

func TestG64MalformedHeader(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "bad.g64")

	hdr := make([]byte, 12)
	copy(hdr, "GCR-1541")
	hdr[9] = 84
	test.DemandSuccess(t, os.WriteFile(fn, hdr, 0o644))

	_, err := diskimage.Open(logger.Allow, fn, false)
	test.ExpectSuccess(t, curated.Is(err, diskimage.MalformedImage))

	hdr[9] = 0
	test.DemandSuccess(t, os.WriteFile(fn, hdr, 0o644))
	_, err = diskimage.Open(logger.Allow, fn, false)
	test.ExpectSuccess(t, curated.Is(err, diskimage.MalformedImage))
}
