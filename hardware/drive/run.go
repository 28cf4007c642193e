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
)

// While the continueCheck() function is called for every byte that passes
// under the head it can still be expensive to do a full check every time.
// PerformanceBrake is a standard value that can be used to filter out
// expensive code paths within a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= drive.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return drive.Ending, nil
//		}
//	}
//	return drive.Running, nil
const PerformanceBrake = 100

// RunState is returned by the continueCheck() function passed to Run().
type RunState int

// List of valid RunState values.
const (
	Running RunState = iota
	Paused
	Ending
)

// Advancer is a clock that can be moved forward. The clocks.Counter type
// satisfies the interface.
type Advancer interface {
	Advance(n uint64)
}

// RunStats is a summary of what passed under the head during Run().
type RunStats struct {
	Cycles      uint64
	Bytes       int
	Syncs       int
	Revolutions int
}

func (st RunStats) String() string {
	return fmt.Sprintf("cycles:%d bytes:%d syncs:%d revs:%d", st.Cycles, st.Bytes, st.Syncs, st.Revolutions)
}

// RunStep is the number of cycles the clock is advanced by for every
// iteration of Run(). It is shorter than the time taken for a byte to pass
// under the head in the fastest speed zone.
const RunStep = 24

// Run spins the disk in read mode as quickly as possible. The Advancer must
// be the Clock the Session was created with. The speed zone is set to the
// standard zone for the current track.
//
// The byte-ready flag is acknowledged whenever it is raised, in the way the
// drive's CPU would acknowledge it.
func (s *Session) Run(adv Advancer, continueCheck func(RunStats) (RunState, error)) (RunStats, error) {
	var stats RunStats

	if !s.enabled {
		return stats, curated.Errorf("drive: cannot run a disabled drive")
	}

	if continueCheck == nil {
		continueCheck = func(RunStats) (RunState, error) { return Running, nil }
	}

	// the zone recorded by the image for the track rather than the standard
	// zone. they differ for some G64 images
	s.UpdateZoneBits(uint8(s.store.HeadZone()))
	s.MotorControl(true)
	s.UpdatePCR(PCRByteReadyEnable | PCRReadMode)
	defer s.MotorControl(false)

	lastOffset := s.store.HeadOffset()
	lastSync := false

	var err error

	state := Running
	for state != Ending {
		switch state {
		case Running:
			adv.Advance(RunStep)
			stats.Cycles += RunStep

			if s.ByteReady() {
				s.SetByteReady(false)
				stats.Bytes++
			}

			sync := s.SyncFound()
			if sync && !lastSync {
				stats.Syncs++
			}
			lastSync = sync

			offset := s.store.HeadOffset()
			if offset < lastOffset {
				stats.Revolutions++
			}
			lastOffset = offset
		case Paused:
		default:
			return stats, curated.Errorf("drive: unsupported run state (%d) in Run() function", state)
		}

		state, err = continueCheck(stats)
		if err != nil {
			return stats, err
		}
	}

	return stats, nil
}
