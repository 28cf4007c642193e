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

// Settling delays for the write protect sense line, in Clock cycles.
const (
	AttachDelay       = 1800000
	DetachDelay       = 600000
	AttachDetachDelay = 1200000
)

// settling tracks the windows after an attach or detach in which the write
// protect sense line reports a fixed value. The drive firmware notices a disk
// change by watching the sense line change.
type settling struct {
	attachClk       uint64
	detachClk       uint64
	attachDetachClk uint64

	attachPending       bool
	detachPending       bool
	attachDetachPending bool

	// one shot latch set on attach and detach. consumed by the first sense
	// after the settling windows have expired
	diskChanged bool
	lastSense   bool
}

func (st *settling) attach(now uint64) {
	st.expire(now)
	if st.detachPending {
		st.detachPending = false
		st.attachDetachPending = true
		st.attachDetachClk = now
	} else {
		st.attachPending = true
		st.attachClk = now
	}
	st.diskChanged = true
}

func (st *settling) detach(now uint64) {
	st.attachPending = false
	st.attachDetachPending = false
	st.detachPending = true
	st.detachClk = now
	st.diskChanged = true
}

// expire clears any window that has elapsed at the time now
func (st *settling) expire(now uint64) {
	if st.attachPending && now-st.attachClk >= AttachDelay {
		st.attachPending = false
	}
	if st.detachPending && now-st.detachClk >= DetachDelay {
		st.detachPending = false
	}
	if st.attachDetachPending && now-st.attachDetachClk >= AttachDetachDelay {
		st.attachDetachPending = false
	}
}

// attaching returns true if the disk is still settling after an attach
func (st *settling) attaching(now uint64) bool {
	st.expire(now)
	return st.attachPending || st.attachDetachPending
}

// sense returns the write protect sense at the time now. The real argument is
// the value the line would have without any settling.
func (st *settling) sense(now uint64, real bool) bool {
	st.expire(now)

	var v bool
	switch {
	case st.attachPending:
		v = true
	case st.detachPending:
		v = false
	case st.attachDetachPending:
		v = true
	case st.diskChanged:
		st.diskChanged = false
		v = real
		if v == st.lastSense {
			v = !v
		}
	default:
		v = real
	}

	st.lastSense = v
	return v
}

// rebase the recorded clock values after the Clock has been rebased
func (st *settling) rebase(sub uint64) {
	rebase := func(v *uint64) {
		if *v >= sub {
			*v -= sub
		} else {
			*v = 0
		}
	}
	rebase(&st.attachClk)
	rebase(&st.detachClk)
	rebase(&st.attachDetachClk)
}

// WriteProtectSense returns true if the disk is write protected. The line
// reads as protected when no disk is attached and while a newly attached disk
// is settling. It reads unprotected while a detached disk is being removed.
func (s *Session) WriteProtectSense() bool {
	real := s.img == nil || s.img.ReadOnly
	return s.settle.sense(s.clk.Cycles(), real)
}
