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
	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/environment"
	"github.com/jetsetilly/gopher1541/hardware/clocks"
	"github.com/jetsetilly/gopher1541/hardware/drive/diskimage"
	"github.com/jetsetilly/gopher1541/hardware/drive/rotation"
	"github.com/jetsetilly/gopher1541/hardware/drive/tracks"
	"github.com/jetsetilly/gopher1541/logger"
)

// Clock is the source of the current cycle count. The count must not go
// backwards except when rebased with PreventClockOverflow().
type Clock interface {
	Cycles() uint64
}

// ExtendRequester is asked whether a D64 image should be extended when the
// ExtendPolicy preference is "ask".
type ExtendRequester interface {
	RequestExtension(filename string, track int) bool
}

// State of the disk image attachment.
type State int

// List of valid State values.
const (
	Detached State = iota
	Attaching
	Attached
	Detaching
)

func (s State) String() string {
	switch s {
	case Attaching:
		return "attaching"
	case Attached:
		return "attached"
	case Detaching:
		return "detaching"
	}
	return "detached"
}

// DirectoryHalfTrack is the position of the head after a reset.
const DirectoryHalfTrack = 36

// Session is a single 1541 disk mechanism.
type Session struct {
	env *environment.Environment
	clk Clock

	store *tracks.Store
	rot   *rotation.Rotation
	img   *diskimage.Image

	state   State
	enabled bool

	requester ExtendRequester

	// suppresses repeated requests to extend the image for the same track
	askExtend bool

	// write protect sense settling. see protect.go
	settle settling

	// removes the sync factor listener from the preferences
	unlisten func()
}

// NewSession is the preferred method of initialisation for the Session type.
func NewSession(env *environment.Environment, clk Clock) *Session {
	s := &Session{
		env:       env,
		clk:       clk,
		store:     tracks.NewStore(),
		enabled:   true,
		askExtend: true,
	}
	s.rot = rotation.NewRotation(s.store, env.Prefs.Sync())
	s.unlisten = env.Prefs.OnSyncFactor(s.SetSyncFactor)
	s.Reset()
	return s
}

// End the session. Any attached image is detached and the session stops
// listening for changes to the preferences. The Session should not be used
// after calling End().
func (s *Session) End() error {
	var err error
	if s.img != nil {
		err = s.Detach()
	}
	if s.unlisten != nil {
		s.unlisten()
		s.unlisten = nil
	}
	return err
}

// SetExtendRequester sets the collaborator that is asked whether to extend
// an image.
func (s *Session) SetExtendRequester(r ExtendRequester) {
	s.requester = r
}

// Reset the drive mechanism. The current track is written back if necessary
// and the head is moved to the directory track.
func (s *Session) Reset() {
	if err := s.Flush(); err != nil {
		logger.Log(s.env, tag, err)
	}
	s.store.SetHalfTrack(DirectoryHalfTrack)
	s.rot.Reset(s.clk.Cycles())
	s.rot.SetZone(tracks.Zone(s.store.Track()))
	s.askExtend = true
}

// Enable the emulation of the disk mechanism.
func (s *Session) Enable() {
	s.enabled = true
	s.rot.Rotate(s.clk.Cycles(), false)
}

// Disable the emulation of the disk mechanism. The current track is written
// back if necessary. The byte level functions return stub values until
// Enable() is called.
func (s *Session) Disable() {
	if err := s.Flush(); err != nil {
		logger.Log(s.env, tag, err)
	}
	s.enabled = false
}

// IsEnabled returns true if the emulation of the disk mechanism is enabled.
func (s *Session) IsEnabled() bool {
	return s.enabled
}

// SetSyncFactor changes the ratio of drive cycles to Clock cycles.
func (s *Session) SetSyncFactor(sf clocks.SyncFactor) {
	s.rot.Rotate(s.clk.Cycles(), false)
	s.rot.SetSyncFactor(sf)
}

// AttachFile opens and attaches a disk image. See Attach().
func (s *Session) AttachFile(filename string, readOnly bool) error {
	img, err := diskimage.Open(s.env, filename, readOnly)
	if err != nil {
		s.enabled = false
		logger.Log(s.env, tag, err)
		return curated.Errorf(AttachFailed, err)
	}
	if err := s.Attach(img); err != nil {
		img.Close()
		return err
	}
	return nil
}

// Attach a disk image. Any currently attached image is detached first.
//
// If the image cannot be loaded the track store is left as it was and the
// emulation of the disk mechanism is disabled.
func (s *Session) Attach(img *diskimage.Image) error {
	if s.img != nil {
		if err := s.Detach(); err != nil {
			logger.Log(s.env, tag, err)
		}
	}

	s.state = Attaching

	staged, err := img.Load()
	if err != nil {
		s.state = Detached
		s.enabled = false
		logger.Logf(s.env, tag, "%s: %v", img.ShortName(), err)
		return curated.Errorf(AttachFailed, err)
	}

	s.rot.Rotate(s.clk.Cycles(), false)
	s.store.CopyFrom(staged)
	s.img = img

	s.settle.attach(s.clk.Cycles())
	s.askExtend = true
	s.state = Attached

	logger.Logf(s.env, tag, "attached %s", img)

	return nil
}

// Detach the disk image. The current track is written back if necessary and
// the track store is cleared.
func (s *Session) Detach() error {
	if s.img == nil {
		return curated.Errorf(NotAttached)
	}

	s.state = Detaching

	if err := s.Flush(); err != nil {
		logger.Logf(s.env, tag, "changes to %s lost: %v", s.img.ShortName(), err)
	}

	err := s.img.Close()
	name := s.img.ShortName()
	s.img = nil

	s.settle.detach(s.clk.Cycles())
	s.store.Clear()
	s.state = Detached

	logger.Logf(s.env, tag, "detached %s", name)

	return err
}

// State returns the attachment state.
func (s *Session) State() State {
	return s.state
}

// Image returns the attached disk image. Returns nil if no image is attached.
func (s *Session) Image() *diskimage.Image {
	return s.img
}
