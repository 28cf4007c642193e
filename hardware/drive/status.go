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
	"strings"

	"github.com/jetsetilly/gopher1541/hardware/clocks"
)

// Status is a snapshot of the state of the disk mechanism.
type Status struct {
	State   State
	Enabled bool

	HalfTrack  int
	Track      int
	HeadOffset int
	TrackSize  int
	Zone       int
	SyncFactor clocks.SyncFactor

	Mode      string
	Motor     bool
	ByteReady bool
	Dirty     bool

	Image  string
	Format string
}

func (st Status) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s HT:%d T:%d offset:%d/%d zone:%d %s",
		st.State, st.HalfTrack, st.Track, st.HeadOffset, st.TrackSize, st.Zone, st.Mode))
	if st.Motor {
		s.WriteString(" motor")
	}
	if st.Dirty {
		s.WriteString(" dirty")
	}
	if !st.Enabled {
		s.WriteString(" disabled")
	}
	if st.Image != "" {
		s.WriteString(fmt.Sprintf(" [%s %s]", st.Format, st.Image))
	}
	return s.String()
}

// Status returns a snapshot of the disk mechanism. The rotation is brought up
// to date first.
func (s *Session) Status() Status {
	if s.enabled {
		s.rotate()
	}

	st := Status{
		State:      s.state,
		Enabled:    s.enabled,
		HalfTrack:  s.store.HalfTrack(),
		Track:      s.store.Track(),
		HeadOffset: s.store.HeadOffset(),
		TrackSize:  s.store.TrackSize(),
		Zone:       s.rot.Zone(),
		SyncFactor: s.rot.SyncFactor(),
		Mode:       s.rot.Mode().String(),
		Motor:      s.rot.Motor(),
		ByteReady:  s.rot.ByteReady(),
		Dirty:      s.store.Dirty(),
	}

	if s.img != nil {
		st.Image = s.img.ShortName()
		st.Format = s.img.Format.String()
	}

	return st
}
