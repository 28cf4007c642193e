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

package rotation

import (
	"fmt"

	"github.com/jetsetilly/gopher1541/hardware/clocks"
	"github.com/jetsetilly/gopher1541/hardware/drive/gcr"
)

// Head is the interface to the disk surface. The head moves forward one byte
// for every eight bits of rotation.
type Head interface {
	Peek() byte
	Poke(v byte)
	Previous() byte
	Skip(n int)
	TrackSize() int
}

// Mode of the read/write head.
type Mode int

// List of valid Mode values.
const (
	Read Mode = iota
	Write
)

func (m Mode) String() string {
	if m == Write {
		return "write"
	}
	return "read"
}

// Rotation converts the passage of clock cycles into bits passing under the
// head. Bytes are committed to or from the Head eight bits at a time.
type Rotation struct {
	head Head

	tables     [4]table
	zone       int
	syncFactor clocks.SyncFactor

	// bits that have passed under the head but that have not yet made a
	// whole byte. the value is always less than eight after a call to
	// Rotate()
	bitsMoved uint64

	// fractional part of the bit count, in units of 1/AccumMax bits
	accum uint32

	// the mode is changed by SetMode() but it doesn't become the effective
	// mode until the byte in progress has been completed
	mode       Mode
	lastMode   Mode
	finishByte bool

	motor            bool
	byteReadyEnabled bool
	byteReady        bool

	readValue  uint8
	writeValue uint8

	lastClk uint64
}

// NewRotation is the preferred method of initialisation for the Rotation type.
func NewRotation(head Head, syncFactor clocks.SyncFactor) *Rotation {
	rot := &Rotation{
		head: head,
	}
	rot.SetSyncFactor(syncFactor)
	return rot
}

func (rot *Rotation) String() string {
	return fmt.Sprintf("zone:%d mode:%s bits:%d accum:%#04x", rot.zone, rot.lastMode, rot.bitsMoved, rot.accum)
}

// Reset the rotation state. The sync factor and zone are unchanged.
func (rot *Rotation) Reset(now uint64) {
	rot.bitsMoved = 0
	rot.accum = 0
	rot.mode = Read
	rot.lastMode = Read
	rot.finishByte = false
	rot.motor = false
	rot.byteReadyEnabled = false
	rot.byteReady = false
	rot.readValue = 0
	rot.writeValue = 0x55
	rot.lastClk = now
}

// SetSyncFactor rebuilds the lookup tables for a new sync factor.
func (rot *Rotation) SetSyncFactor(syncFactor clocks.SyncFactor) {
	rot.syncFactor = syncFactor
	for z := range rot.tables {
		rot.tables[z].build(z, syncFactor)
	}
}

// SyncFactor returns the sync factor the tables were built for.
func (rot *Rotation) SyncFactor() clocks.SyncFactor {
	return rot.syncFactor
}

// SetZone selects the speed zone. Values outside the range 0 to 3 are masked.
// Callers should call Rotate() beforehand so that elapsed cycles are counted
// at the old bit rate.
func (rot *Rotation) SetZone(zone int) {
	rot.zone = zone & 0x03
}

// Zone returns the current speed zone.
func (rot *Rotation) Zone() int {
	return rot.zone
}

// Active returns true if the disk is spinning and the byte-ready line is
// enabled. Rotation is only accounted for when active.
func (rot *Rotation) Active() bool {
	return rot.motor && rot.byteReadyEnabled
}

// SetMotor turns the spindle motor on or off at the time now.
func (rot *Rotation) SetMotor(now uint64, on bool) {
	rot.Rotate(now, false)
	rot.motor = on
}

// Motor returns the state of the spindle motor.
func (rot *Rotation) Motor() bool {
	return rot.motor
}

// SetByteReadyEnabled enables or disables the byte-ready line at the time
// now.
func (rot *Rotation) SetByteReadyEnabled(now uint64, enabled bool) {
	rot.Rotate(now, false)
	rot.byteReadyEnabled = enabled
}

// SetMode changes the head mode at the time now. The byte in progress is
// completed in the previous mode.
func (rot *Rotation) SetMode(now uint64, mode Mode) {
	if mode == rot.mode {
		return
	}
	rot.Rotate(now, false)
	rot.Rotate(now, true)
	rot.mode = mode
}

// Mode returns the most recently requested mode.
func (rot *Rotation) Mode() Mode {
	return rot.mode
}

// ByteReady returns the state of the byte-ready flag.
func (rot *Rotation) ByteReady() bool {
	return rot.byteReady
}

// SetByteReady sets or clears the byte-ready flag.
func (rot *Rotation) SetByteReady(v bool) {
	rot.byteReady = v
}

// ReadValue returns the most recently latched byte.
func (rot *Rotation) ReadValue() uint8 {
	return rot.readValue
}

// SetWriteValue sets the byte that is written on each commit in write mode.
func (rot *Rotation) SetWriteValue(v uint8) {
	rot.writeValue = v
}

// Accum returns the fractional bit accumulator.
func (rot *Rotation) Accum() uint32 {
	return rot.accum
}

// BitsMoved returns the number of bits that have not yet made a whole byte.
func (rot *Rotation) BitsMoved() uint64 {
	return rot.bitsMoved
}

// LastClk returns the clock value at the most recent call to Rotate().
func (rot *Rotation) LastClk() uint64 {
	return rot.lastClk
}

// SyncFound returns true if the head is over a sync mark. The head must be
// reading and both the byte under the head and the byte before it must be
// sync bytes.
func (rot *Rotation) SyncFound() bool {
	if rot.mode == Write || rot.lastMode == Write {
		return false
	}
	return rot.head.Peek() == gcr.SyncByte && rot.head.Previous() == gcr.SyncByte
}

// Rotate accounts for the rotation of the disk between the last call and the
// time now.
//
// When modeChange is true the call only marks the byte in progress for
// completion in the previous mode. Elapsed cycles are not consumed.
func (rot *Rotation) Rotate(now uint64, modeChange bool) {
	if modeChange {
		rot.finishByte = true
		return
	}

	if !rot.Active() {
		rot.lastClk = now
		return
	}

	var delta uint64
	if now > rot.lastClk {
		delta = now - rot.lastClk
	}
	rot.lastClk = now

	rot.Advance(delta)
}

// Advance the rotation by delta cycles. Returns the number of whole bits that
// passed under the head.
func (rot *Rotation) Advance(delta uint64) uint64 {
	newBits := rot.tables[rot.zone].bits(delta, &rot.accum)
	rot.bitsMoved += newBits

	if rot.bitsMoved < 8 {
		return newBits
	}

	if rot.finishByte {
		rot.commitOne()
		rot.finishByte = false
		rot.lastMode = rot.mode
	}

	if rot.lastMode == Write {
		rot.commitWrite()
	} else {
		rot.commitRead()
	}

	if !rot.SyncFound() {
		rot.byteReady = true
	}

	return newBits
}

// complete the byte in progress in the previous mode
func (rot *Rotation) commitOne() {
	if rot.lastMode == Write {
		rot.head.Poke(rot.writeValue)
		rot.head.Skip(1)
	} else {
		rot.head.Skip(1)
		rot.readValue = rot.head.Peek()
	}
	rot.bitsMoved -= 8
}

func (rot *Rotation) commitRead() {
	n := rot.bitsMoved / 8
	if n == 0 {
		return
	}
	rot.head.Skip(int(n % uint64(rot.head.TrackSize())))
	rot.readValue = rot.head.Peek()
	rot.bitsMoved -= n * 8
}

func (rot *Rotation) commitWrite() {
	n := rot.bitsMoved / 8
	rot.bitsMoved -= n * 8

	// after a full revolution every byte on the track holds the write
	// value. only the final position of the head matters after that
	size := uint64(rot.head.TrackSize())
	if n > size {
		rot.head.Skip(int((n - size) % size))
		n = size
	}

	for ; n > 0; n-- {
		rot.head.Poke(rot.writeValue)
		rot.head.Skip(1)
	}
}

// PreventClockOverflow brings the rotation up to date at the time now and
// then subtracts sub from the stored clock value.
func (rot *Rotation) PreventClockOverflow(now uint64, sub uint64) {
	rot.Rotate(now, false)
	if rot.lastClk >= sub {
		rot.lastClk -= sub
	} else {
		rot.lastClk = 0
	}
}
