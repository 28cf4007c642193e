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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Arguments are given to NewArgs() and Parse() is then called with no
// arguments. Non-flag arguments can be retrieved with RemainingArgs() or
// GetArg():
//
//	md := &modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	verbose := md.AddBool("log", false, "echo log to stdout")
//	md.AddSubModes("INFO", "VERIFY", "SPIN")
//
//	p, err := md.Parse()
//	if err != nil || p != modalflag.ParseContinue {
//		return err
//	}
//
// A mode is a special command line argument that puts the program into a
// different mode of operation, each with its own set of flags. After Parse()
// the selected mode is returned by Mode(). If the first non-flag argument is
// not one of the listed sub-modes then the first sub-mode in the list is the
// selected mode. Sub-mode comparisons are case insensitive.
//
// The flags of the selected mode are added after a call to NewMode() and then
// Parse() is called again:
//
//	switch md.Mode() {
//	case "SPIN":
//		md.NewMode()
//		revs := md.AddInt("revs", 1, "number of revolutions")
//		p, err := md.Parse()
//		...
//	}
//
// Modes can be nested as deep as required. Path() returns the list of modes
// that have been selected so far.
package modalflag
