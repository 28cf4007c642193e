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

package diskimage

import (
	"strings"

	"github.com/jetsetilly/gopher1541/curated"
)

// ExtendPolicy decides what happens when the drive writes to a track beyond
// the end of a D64 image.
type ExtendPolicy int

// List of valid ExtendPolicy values.
const (
	// never extend the image. the written data is not saved
	ExtendNever ExtendPolicy = iota

	// ask the user once for each out-of-range track
	ExtendAsk

	// extend the image without asking
	ExtendOnAccess
)

// ExtendPolicyList is the list of names accepted by ParseExtendPolicy().
var ExtendPolicyList = []string{"never", "ask", "access"}

func (p ExtendPolicy) String() string {
	switch p {
	case ExtendNever:
		return "never"
	case ExtendAsk:
		return "ask"
	case ExtendOnAccess:
		return "access"
	}
	return "unknown"
}

// ParseExtendPolicy converts a name in ExtendPolicyList to an ExtendPolicy
// value. Case insensitive.
func ParseExtendPolicy(s string) (ExtendPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "never":
		return ExtendNever, nil
	case "ask":
		return ExtendAsk, nil
	case "access":
		return ExtendOnAccess, nil
	}
	return ExtendAsk, curated.Errorf(UnknownExtendPolicy, s)
}
