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

// Package drive emulates the disk mechanism of a 1541 floppy disk drive. The
// Session type brings together the track store, the rotation of the disk and
// the disk image backing the track store.
//
// The Session is driven by the emulation of the VIA that controls the
// mechanism. The VIA emulation calls the byte level functions (ReadDiskByte(),
// WriteGCR(), ByteReady(), SyncFound(), etc.) as the drive's CPU accesses the
// VIA registers. Every function brings the rotation of the disk up to date
// with the Clock before doing anything else.
//
// Tracks that have been written to are written back to the disk image when
// the head moves to another track, when the image is detached and when
// Flush() is called explicitly. For D64 images, writing to a track beyond the
// end of the image is governed by the ExtendPolicy preference.
//
// A Session is not safe for concurrent use. Each drive in the emulation
// should have its own Session.
package drive
