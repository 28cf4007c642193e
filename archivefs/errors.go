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

package archivefs

// Sentinel patterns for curated errors returned by the archivefs package.
const (
	NotAFile = "archivefs: not a file: %s"
)
