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
	"github.com/jetsetilly/gopher1541/hardware/drive/rotation"
	"github.com/jetsetilly/gopher1541/logger"
)

// Bits in the peripheral control register value passed to UpdatePCR().
const (
	PCRByteReadyEnable = 0x02
	PCRReadMode        = 0x20
)

// rotate brings the rotation up to date with the Clock
func (s *Session) rotate() {
	s.rot.Rotate(s.clk.Cycles(), false)
}

// ReadDiskByte returns the byte most recently latched by the read head.
// Returns zero while a newly attached disk is settling.
func (s *Session) ReadDiskByte() uint8 {
	if !s.enabled {
		return 0
	}
	if s.settle.attaching(s.clk.Cycles()) {
		return 0
	}
	s.rotate()
	return s.rot.ReadValue()
}

// WriteGCR sets the byte to be written by the head on the next byte
// boundary. The byte is only written if the head is in write mode.
func (s *Session) WriteGCR(v uint8) {
	if !s.enabled {
		return
	}
	s.rotate()
	s.rot.SetWriteValue(v)
}

// ByteReady returns the state of the byte-ready line. The line is only ever
// asserted when the motor is on and byte-ready signalling has been enabled.
func (s *Session) ByteReady() bool {
	if !s.enabled {
		return false
	}
	s.rotate()
	return s.rot.Active() && s.rot.ByteReady()
}

// SetByteReady sets or clears the byte-ready flag. The VIA emulation clears
// the flag when the byte has been acknowledged.
func (s *Session) SetByteReady(v bool) {
	if !s.enabled {
		return
	}
	s.rotate()
	s.rot.SetByteReady(v)
}

// SyncFound returns true if the head is reading a sync mark.
func (s *Session) SyncFound() bool {
	if !s.enabled || s.img == nil {
		return false
	}
	if s.settle.attaching(s.clk.Cycles()) {
		return false
	}
	s.rotate()
	return s.rot.SyncFound()
}

// UpdateZoneBits selects the speed zone. Only the lower two bits are used.
func (s *Session) UpdateZoneBits(zone uint8) {
	s.rotate()
	s.rot.SetZone(int(zone))
}

// MotorControl turns the spindle motor on or off.
func (s *Session) MotorControl(on bool) {
	s.rot.SetMotor(s.clk.Cycles(), on)
}

// UpdatePCR derives the head mode and byte-ready enable state from a value
// written to the peripheral control register.
func (s *Session) UpdatePCR(pcr uint8) {
	now := s.clk.Cycles()
	s.rot.SetByteReadyEnabled(now, pcr&PCRByteReadyEnable == PCRByteReadyEnable)
	if pcr&PCRReadMode == PCRReadMode {
		s.rot.SetMode(now, rotation.Read)
	} else {
		s.rot.SetMode(now, rotation.Write)
	}
}

// MoveHead steps the head by a number of half-tracks. Negative values move
// the head outwards. The current track is written back before moving.
func (s *Session) MoveHead(step int) {
	s.SetHalfTrack(s.store.HalfTrack() + step)
}

// SetHalfTrack moves the head to a half-track. The value is clamped to the
// range of the mechanism. The current track is written back before moving.
func (s *Session) SetHalfTrack(halfTrack int) {
	s.rotate()

	if err := s.Flush(); err != nil {
		logger.Log(s.env, tag, err)
	}

	track := s.store.Track()
	s.store.SetHalfTrack(halfTrack)
	if s.store.Track() != track {
		s.askExtend = true
	}
}

// HalfTrack returns the half-track under the head.
func (s *Session) HalfTrack() int {
	return s.store.HalfTrack()
}

// Track returns the whole track under the head.
func (s *Session) Track() int {
	return s.store.Track()
}

// PreventClockOverflow rebases the recorded clock values by sub. It must be
// called immediately before the Clock itself is rebased by the same amount.
func (s *Session) PreventClockOverflow(sub uint64) {
	s.rot.PreventClockOverflow(s.clk.Cycles(), sub)
	s.settle.rebase(sub)
}
