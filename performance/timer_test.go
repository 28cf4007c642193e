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

package performance

import (
	"testing"
	"time"

	"github.com/jetsetilly/gopher1541/test"
)

func TestMeasurementTimerUnread(t *testing.T) {
	ch := measurementTimer(time.Millisecond, time.Millisecond)

	// nothing reads the channel until both signals have been sent
	deadline := time.Now().Add(5 * time.Second)
	for len(ch) < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	test.DemandEquality(t, len(ch), 2)

	test.ExpectEquality(t, <-ch, false)
	test.ExpectEquality(t, <-ch, true)
}
