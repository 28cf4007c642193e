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
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/jetsetilly/gopher1541/archivefs"
	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/drive/tracks"
	"github.com/jetsetilly/gopher1541/logger"
)

// Format of a disk image file.
type Format int

// List of valid Format values.
const (
	FormatUnknown Format = iota
	FormatD64
	FormatG64
	FormatD71
	FormatD81
)

func (f Format) String() string {
	switch f {
	case FormatD64:
		return "D64"
	case FormatG64:
		return "G64"
	case FormatD71:
		return "D71"
	case FormatD81:
		return "D81"
	}
	return "unknown"
}

// FileExtensions is the list of file extensions that are recognised by the
// diskimage package.
var FileExtensions = [...]string{".D64", ".G64"}

// Image is an open disk image file. The file remains open until Close() is
// called.
type Image struct {
	// filename of the image
	Filename string

	Format Format

	// the number of whole tracks in the image. for G64 images this is the
	// number of half-tracks in the header divided by two
	NumTracks int

	// D64 image has an error byte for every sector
	ErrorInfo bool

	// image cannot be written to. either because the file could not be
	// opened for writing or because it was opened as read-only on request
	ReadOnly bool

	// two byte disk ID used when synthesising sector headers
	ID [2]byte

	// sha1 of the image data at the time of opening
	Hash string

	// values from the G64 header
	halfTracks   int
	maxTrackSize int

	f    backing
	perm logger.Permission
}

// Open a disk image file. The format is detected from the contents of the
// file. The filename can refer to a file inside a zip archive.
//
// The image is read-only if readOnly is true, if the file is inside an
// archive or if the file cannot be opened for writing.
func Open(perm logger.Permission, filename string, readOnly bool) (*Image, error) {
	img := &Image{
		Filename: filename,
		ReadOnly: readOnly,
		perm:     perm,
	}

	var afs archivefs.Path
	if err := afs.Set(filename); err != nil {
		return nil, curated.Errorf("diskimage: %v", err)
	}
	defer afs.Close()

	if afs.IsDir() {
		return nil, curated.Errorf("diskimage: %s is not a file", filename)
	}

	var data []byte
	var err error

	if afs.InArchive() {
		img.ReadOnly = true
		var r io.ReadSeeker
		r, _, err = afs.Open()
		if err != nil {
			return nil, curated.Errorf("diskimage: %v", err)
		}
		data, err = io.ReadAll(r)
		if err != nil {
			return nil, curated.Errorf("diskimage: %v", err)
		}
		img.f = archived{bytes.NewReader(data)}
	} else {
		var f *os.File
		if !img.ReadOnly {
			f, err = os.OpenFile(filename, os.O_RDWR, 0)
			if err != nil && os.IsPermission(err) {
				img.ReadOnly = true
			} else if err != nil {
				return nil, curated.Errorf("diskimage: %v", err)
			}
		}

		if img.ReadOnly {
			f, err = os.Open(filename)
			if err != nil {
				return nil, curated.Errorf("diskimage: %v", err)
			}
		}
		img.f = f

		data, err = io.ReadAll(f)
		if err != nil {
			img.f.Close()
			return nil, curated.Errorf("diskimage: %v", err)
		}
	}

	img.Hash = fmt.Sprintf("%x", sha1.Sum(data))

	err = img.detect(data)
	if err != nil {
		img.f.Close()
		return nil, err
	}

	return img, nil
}

// backing is the storage behind an open Image.
type backing interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
}

// archived is the backing for an image read from inside an archive.
type archived struct {
	*bytes.Reader
}

func (a archived) WriteAt(_ []byte, _ int64) (int, error) {
	return 0, curated.Errorf(ReadOnly)
}

func (a archived) Close() error {
	return nil
}

// detect the format of the image from its signature and size. On success the
// header fields of the image are set.
func (img *Image) detect(data []byte) error {
	if len(data) >= g64HeaderSize && string(data[:len(g64Signature)]) == g64Signature {
		img.Format = FormatG64
		return img.parseG64Header(data)
	}

	switch len(data) {
	case d64Size(tracks.StandardTracks):
		img.NumTracks = tracks.StandardTracks
	case d64Size(tracks.StandardTracks) + d64Sectors(tracks.StandardTracks):
		img.NumTracks = tracks.StandardTracks
		img.ErrorInfo = true
	case d64Size(tracks.ExtendedTracks):
		img.NumTracks = tracks.ExtendedTracks
	case d64Size(tracks.ExtendedTracks) + d64Sectors(tracks.ExtendedTracks):
		img.NumTracks = tracks.ExtendedTracks
		img.ErrorInfo = true
	case d64Size(tracks.MaxTracks):
		img.NumTracks = tracks.MaxTracks
	case d64Size(tracks.MaxTracks) + d64Sectors(tracks.MaxTracks):
		img.NumTracks = tracks.MaxTracks
		img.ErrorInfo = true
	case d71Size:
		img.Format = FormatD71
		return curated.Errorf(UnsupportedFormat, img.Format)
	case d81Size:
		img.Format = FormatD81
		return curated.Errorf(UnsupportedFormat, img.Format)
	default:
		return curated.Errorf(UnsupportedFormat, fmt.Sprintf("%d bytes", len(data)))
	}

	img.Format = FormatD64

	// the disk ID is in the BAM
	bam, _ := d64Offset(18, 0)
	img.ID[0] = data[bam+bamID]
	img.ID[1] = data[bam+bamID+1]

	return nil
}

// Close the image file.
func (img *Image) Close() error {
	if img.f == nil {
		return nil
	}
	err := img.f.Close()
	img.f = nil
	if err != nil {
		return curated.Errorf("diskimage: %v", err)
	}
	return nil
}

func (img *Image) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s [%s] %d tracks", img.ShortName(), img.Format, img.NumTracks))
	if img.Format == FormatD64 {
		s.WriteString(fmt.Sprintf(" ID:%c%c", img.ID[0], img.ID[1]))
	}
	if img.ErrorInfo {
		s.WriteString(" +errors")
	}
	if img.ReadOnly {
		s.WriteString(" (read-only)")
	}
	return s.String()
}

// ShortName returns the filename of the image without the path or extension.
func (img *Image) ShortName() string {
	n := path.Base(img.Filename)
	return strings.TrimSuffix(n, path.Ext(img.Filename))
}

// Load the image into a new track store. Fatal errors leave no partial
// state.
func (img *Image) Load() (*tracks.Store, error) {
	switch img.Format {
	case FormatD64:
		return img.loadD64()
	case FormatG64:
		return img.loadG64()
	}
	return nil, curated.Errorf(UnsupportedFormat, img.Format)
}

// WriteTrack writes a track from the track store back to the image.
//
// Errors are returned for whole-track failures. Individual sectors that
// cannot be written are logged and skipped.
func (img *Image) WriteTrack(store *tracks.Store, track int) error {
	if img.f == nil {
		return curated.Errorf("diskimage: image is closed")
	}
	if img.ReadOnly {
		return curated.Errorf(ReadOnly)
	}

	switch img.Format {
	case FormatD64:
		return img.writeTrackD64(store, track)
	case FormatG64:
		return img.writeTrackG64(store, track)
	}
	return curated.Errorf(UnsupportedFormat, img.Format)
}
