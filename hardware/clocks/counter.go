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

package clocks

// Counter is a simple cycle counter. It can stand in for the clock of a host
// machine when the drive is run on its own.
type Counter struct {
	cycles uint64
}

// Cycles returns the current cycle count.
func (c *Counter) Cycles() uint64 {
	return c.cycles
}

// Advance the counter by n cycles.
func (c *Counter) Advance(n uint64) {
	c.cycles += n
}

// Rebase subtracts sub from the counter. The counter stops at zero.
func (c *Counter) Rebase(sub uint64) {
	if c.cycles >= sub {
		c.cycles -= sub
	} else {
		c.cycles = 0
	}
}
