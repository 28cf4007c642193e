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

package paths_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopher1541/paths"
	"github.com/jetsetilly/gopher1541/test"
)

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("track18", "/tmp/games/elite.d64")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "track18_elite_"))
	test.ExpectFailure(t, strings.Contains(fn, ".d64"))

	fn = paths.UniqueFilename("track18", "")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "track18_"))
	test.ExpectEquality(t, strings.Count(fn, "_"), 2)
}
