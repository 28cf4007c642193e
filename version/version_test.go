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

package version

import (
	"runtime/debug"
	"testing"

	"github.com/jetsetilly/gopher1541/test"
)

func TestDerivation(t *testing.T) {
	defer set(number, debug.ReadBuildInfo)

	set("", func() (*debug.BuildInfo, bool) { return nil, false })
	v, r, release := Version()
	test.ExpectEquality(t, v, "local")
	test.ExpectEquality(t, r, "no revision information")
	test.ExpectEquality(t, release, false)

	set("", func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.modified", Value: "true"},
		}}, true
	})
	v, r, release = Version()
	test.ExpectEquality(t, v, "unreleased")
	test.ExpectEquality(t, r, "abc123+dirty")
	test.ExpectEquality(t, release, false)
	test.ExpectEquality(t, String(), "Gopher1541 unreleased (abc123+dirty)")

	set("v0.1.0", func() (*debug.BuildInfo, bool) { return nil, false })
	v, _, release = Version()
	test.ExpectEquality(t, v, "v0.1.0")
	test.ExpectEquality(t, release, true)
	test.ExpectEquality(t, String(), "Gopher1541 v0.1.0")
}
