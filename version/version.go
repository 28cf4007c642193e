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

// Package version reports the version of the application. The version number
// is set by the linker when building with the makefile. Otherwise the version
// is derived from the VCS information embedded by the Go toolchain, if any.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "Gopher1541"

// set by the linker. eg. -ldflags "-X .../version.number=v0.1.0"
var number string

var revision string
var version string

// Version returns the version string, the revision string and whether this is a
// numbered release version.
//
// The version string is "unreleased" if the application was built from a VCS
// checkout without a version number and "local" if there is no version
// information at all. The revision is suffixed with "+dirty" if the checkout
// had uncommitted changes.
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// String returns a single line summary suitable for printing.
func String() string {
	v, r, release := Version()
	if release {
		return fmt.Sprintf("%s %s", ApplicationName, v)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, v, r)
}

func init() {
	set(number, debug.ReadBuildInfo)
}

// set is separated from init() so the derivation can be exercised without a
// real build.
func set(num string, readInfo func() (*debug.BuildInfo, bool)) {
	var vcs bool
	var vcsRevision string
	var vcsModified bool

	if info, ok := readInfo(); ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	if vcsRevision == "" {
		revision = "no revision information"
	} else {
		revision = vcsRevision
		if vcsModified {
			revision = fmt.Sprintf("%s+dirty", revision)
		}
	}

	number = num
	switch {
	case number != "":
		version = number
	case vcs:
		version = "unreleased"
	default:
		version = "local"
	}
}
