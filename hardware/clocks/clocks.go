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

// Package clocks defines the constant values that define the speed of the
// clocks relevant to the 1541 drive emulation.
//
// The drive has its own 1MHz clock. When the drive is driven by the clock of a
// host machine (a PAL or NTSC C64) the clock deltas seen by the drive are in
// host cycles and need to be scaled. The SyncFactor type describes that
// scaling.
package clocks

import (
	"fmt"
	"math"
	"strings"

	"github.com/jetsetilly/gopher1541/curated"
)

// Clock speeds in MHz.
const (
	Drive1541 = 1.0
	PAL       = 0.985248
	NTSC      = 1.022727
)

// SyncFactor is a 16.16 fixed point value representing the number of drive
// cycles that pass for every cycle of the clock driving the emulation.
type SyncFactor uint32

// SyncUnity is the SyncFactor to use when the clock deltas are already in
// drive cycles.
const SyncUnity SyncFactor = 0x10000

// List of sync factors for the supported host machines.
var (
	SyncPAL  = NewSyncFactor(PAL)
	SyncNTSC = NewSyncFactor(NTSC)
)

// NewSyncFactor returns the SyncFactor for a host clock speed (in MHz).
func NewSyncFactor(hostMHz float64) SyncFactor {
	return SyncFactor(math.Round(Drive1541 / hostMHz * float64(SyncUnity)))
}

// SyncFactorList is the list of names accepted by ParseSyncFactor().
var SyncFactorList = []string{"drive", "pal", "ntsc"}

// UnknownSyncFactor is the curated error pattern returned by ParseSyncFactor().
const UnknownSyncFactor = "clocks: unknown sync factor (%s)"

// ParseSyncFactor converts a name (as found in SyncFactorList) to a
// SyncFactor value. Case insensitive.
func ParseSyncFactor(s string) (SyncFactor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drive", "":
		return SyncUnity, nil
	case "pal":
		return SyncPAL, nil
	case "ntsc":
		return SyncNTSC, nil
	}
	return SyncUnity, curated.Errorf(UnknownSyncFactor, s)
}

func (sf SyncFactor) String() string {
	switch sf {
	case SyncUnity:
		return "drive"
	case SyncPAL:
		return "pal"
	case SyncNTSC:
		return "ntsc"
	}
	return fmt.Sprintf("%#x", uint32(sf))
}
