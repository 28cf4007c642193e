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

package preferences

import (
	"sync"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/clocks"
	"github.com/jetsetilly/gopher1541/hardware/drive/diskimage"
	"github.com/jetsetilly/gopher1541/paths"
	"github.com/jetsetilly/gopher1541/prefs"
)

// Preferences defines and collates all the preference values used by the
// drive hardware.
type Preferences struct {
	dsk *prefs.Disk

	// what to do when the drive writes beyond the end of a D64 image. one of
	// the names in diskimage.ExtendPolicyList
	ExtendPolicy prefs.String

	// the clock driving the drive emulation. one of the names in
	// clocks.SyncFactorList
	SyncFactor prefs.String

	// the parallel cable is handled by the peripheral layer. the value is
	// stored here so that it is saved with the other drive preferences
	ParallelCable prefs.Bool

	crit       sync.Mutex
	listeners  map[int]func(clocks.SyncFactor)
	listenerID int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Preferences are loaded from the default prefs file.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFromFile(pth)
}

// NewPreferencesFromFile is like NewPreferences() but with the prefs file
// specified explicitly.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := &Preferences{}

	p.ExtendPolicy.SetHookPre(func(v prefs.Value) error {
		_, err := diskimage.ParseExtendPolicy(v.(string))
		return err
	})

	p.SyncFactor.SetHookPre(func(v prefs.Value) error {
		_, err := clocks.ParseSyncFactor(v.(string))
		return err
	})

	p.SyncFactor.SetHookPost(func(v prefs.Value) error {
		sf, _ := clocks.ParseSyncFactor(v.(string))
		p.crit.Lock()
		defer p.crit.Unlock()
		for _, f := range p.listeners {
			f(sf)
		}
		return nil
	})

	p.SetDefaults()

	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("drive.extendpolicy", &p.ExtendPolicy)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("drive.syncfactor", &p.SyncFactor)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("drive.parallelcable", &p.ParallelCable)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	_ = p.ExtendPolicy.Set(diskimage.ExtendAsk.String())
	_ = p.SyncFactor.Set(clocks.SyncUnity.String())
	_ = p.ParallelCable.Set(false)
}

// Policy returns the extend policy as a diskimage.ExtendPolicy value.
func (p *Preferences) Policy() diskimage.ExtendPolicy {
	pol, _ := diskimage.ParseExtendPolicy(p.ExtendPolicy.String())
	return pol
}

// Sync returns the sync factor as a clocks.SyncFactor value.
func (p *Preferences) Sync() clocks.SyncFactor {
	sf, _ := clocks.ParseSyncFactor(p.SyncFactor.String())
	return sf
}

// OnSyncFactor registers a function to be called whenever the SyncFactor
// preference changes. The returned function removes the registration.
func (p *Preferences) OnSyncFactor(f func(clocks.SyncFactor)) (remove func()) {
	p.crit.Lock()
	defer p.crit.Unlock()

	if p.listeners == nil {
		p.listeners = make(map[int]func(clocks.SyncFactor))
	}
	id := p.listenerID
	p.listenerID++
	p.listeners[id] = f

	return func() {
		p.crit.Lock()
		defer p.crit.Unlock()
		delete(p.listeners, id)
	}
}

// Reset all drive preferences to the default values.
func (p *Preferences) Reset() error {
	p.SetDefaults()
	return nil
}

// Load current drive preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current drive preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
