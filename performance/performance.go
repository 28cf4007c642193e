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
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopher1541/environment"
	"github.com/jetsetilly/gopher1541/hardware/clocks"
	"github.com/jetsetilly/gopher1541/hardware/drive"
)

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// leadtime allows the rate to settle before the measurement begins
const leadtime = 2 * time.Second

// measurementTimer signals false when lead has elapsed and true when dur has
// elapsed after that. The channel has room for both signals so the timers
// never block if the receiver has stopped listening.
func measurementTimer(lead time.Duration, dur time.Duration) <-chan bool {
	ch := make(chan bool, 2)
	time.AfterFunc(lead, func() {
		ch <- false
		time.AfterFunc(dur, func() {
			ch <- true
		})
	})
	return ch
}

// Check the performance of the drive emulation using the supplied disk image.
// The image is attached read-only.
//
// Emulation will run of specificed duration and will create a cpu, memory
// profile, a trace (or a combination of those) as defined by the Profile
// argument.
func Check(output io.Writer, profile Profile, env *environment.Environment, filename string, duration string) error {
	// parse supplied duration
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	clk := &clocks.Counter{}
	s := drive.NewSession(env, clk)
	defer s.End()

	err = s.AttachFile(filename, true)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	// wait for the disk to settle
	clk.Advance(drive.AttachDelay)

	var stats drive.RunStats
	startRevs := 0

	runner := func() error {
		timerChan := measurementTimer(leadtime, dur)

		// only check for end of measurement period every PerformanceBrake
		// iterations. checking the timerChan is relatively expensive
		performanceBrake := 0

		stats, err = s.Run(clk, func(st drive.RunStats) (drive.RunState, error) {
			performanceBrake++
			if performanceBrake >= drive.PerformanceBrake {
				performanceBrake = 0

				select {
				case v := <-timerChan:
					if v {
						return drive.Ending, timedOut
					}
					startRevs = st.Revolutions
				default:
				}
			}
			return drive.Running, nil
		})
		return err
	}

	// launch runner directly or through the CPU profiler, depending on
	// supplied arguments
	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return fmt.Errorf("performance: %w", err)
	}

	numRevs := stats.Revolutions - startRevs
	rps, accuracy := CalcRPS(numRevs, dur.Seconds())
	output.Write([]byte(fmt.Sprintf("%.2f rps (%d revolutions in %.2f seconds) %.1f%%\n", rps, numRevs, dur.Seconds(), accuracy)))

	return nil
}
