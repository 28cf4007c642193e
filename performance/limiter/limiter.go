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

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new Limiter can be created with:
//
//	lmtr := limiter.NewLimiter(5)
//
// Operations can then be stalled with the Wait() function. For example,
// limiting the rotation of a disk to five revolutions per second:
//
//	for {
//		lmtr.Wait()
//		spinOnce()
//	}
package limiter

import (
	"time"
)

// Limiter will trigger a fixed number of times every second
type Limiter struct {
	perSecond int
	period    time.Duration

	tick chan bool
	quit chan bool
}

// NewLimiter is the preferred method of initialisation for Limiter type
func NewLimiter(perSecond int) *Limiter {
	lmtr := &Limiter{
		tick: make(chan bool),
		quit: make(chan bool),
	}
	lmtr.SetLimit(perSecond)

	// run ticker concurrently
	go func() {
		adjusted := lmtr.period
		t := time.Now()
		for {
			select {
			case lmtr.tick <- true:
			case <-lmtr.quit:
				return
			}
			time.Sleep(adjusted)
			nt := time.Now()
			adjusted -= nt.Sub(t) - lmtr.period
			t = nt
		}
	}()

	return lmtr
}

// SetLimit changes the limit at which the Limiter waits. Not safe to call
// once Wait() has been called.
func (lmtr *Limiter) SetLimit(perSecond int) {
	if perSecond < 1 {
		perSecond = 1
	}
	lmtr.perSecond = perSecond
	lmtr.period = time.Second / time.Duration(perSecond)
}

// Wait will block until trigger
func (lmtr *Limiter) Wait() {
	<-lmtr.tick
}

// HasWaited will return true if time has already elapsed and false it it is
// still yet to happen
func (lmtr *Limiter) HasWaited() bool {
	select {
	case <-lmtr.tick:
		return true
	default:
		// default case means that the channel receiving case doesn't block
		return false
	}
}

// Stop the Limiter. Wait() must not be called after Stop().
func (lmtr *Limiter) Stop() {
	close(lmtr.quit)
}
