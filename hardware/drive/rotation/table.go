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

package rotation

import "github.com/jetsetilly/gopher1541/hardware/clocks"

// AccumMax is the scale of the fractional bit accumulator.
const AccumMax = 0x10000

// TableSize is the number of entries in each lookup table. Cycle deltas
// larger than the table are processed in chunks of TableSize-1.
const TableSize = 0x1000

// ZoneBitRate is the number of bits per second passing under the head in each
// speed zone.
var ZoneBitRate = [4]float64{250000, 266667, 285714, 307692}

type entry struct {
	bits  uint64
	accum uint32
}

// table maps a number of clock cycles to whole bits and a fractional
// remainder
type table [TableSize]entry

func (t *table) build(zone int, syncFactor clocks.SyncFactor) {
	bps := ZoneBitRate[zone]
	sf := float64(syncFactor)
	for j := range t {
		b := float64(j) * bps * sf / (1000000 * float64(clocks.SyncUnity))
		whole := uint64(b)
		t[j] = entry{
			bits:  whole,
			accum: uint32((b - float64(whole)) * AccumMax),
		}
	}
}

// bits returns the number of whole bits in delta cycles. The fractional
// accumulator is updated and carries into the whole bit count.
func (t *table) bits(delta uint64, accum *uint32) uint64 {
	var n uint64
	for delta > 0 {
		var e entry
		if delta >= TableSize {
			e = t[TableSize-1]
			delta -= TableSize - 1
		} else {
			e = t[delta]
			delta = 0
		}
		n += e.bits
		*accum += e.accum
		if *accum >= AccumMax {
			*accum -= AccumMax
			n++
		}
	}
	return n
}
