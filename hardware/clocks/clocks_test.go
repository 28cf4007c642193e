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

package clocks_test

import (
	"testing"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/clocks"
	"github.com/jetsetilly/gopher1541/test"
)

func TestSyncFactor(t *testing.T) {
	test.ExpectEquality(t, clocks.SyncPAL, clocks.SyncFactor(66517))
	test.ExpectEquality(t, clocks.SyncNTSC, clocks.SyncFactor(64080))
	test.ExpectEquality(t, clocks.NewSyncFactor(clocks.Drive1541), clocks.SyncUnity)

	for _, s := range clocks.SyncFactorList {
		sf, err := clocks.ParseSyncFactor(s)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, sf.String(), s)
	}

	_, err := clocks.ParseSyncFactor("secam")
	test.ExpectSuccess(t, curated.Is(err, clocks.UnknownSyncFactor))
}
