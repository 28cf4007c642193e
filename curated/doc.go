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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The pattern is what identifies a curated error. Packages export their
// patterns as constants so that callers can test for them with Is() and
// Has(). For example:
//
//	const TrackLength = "g64: track length %d is not supported"
//
//	e := curated.Errorf(TrackLength, 4000)
//
//	if curated.Is(e, TrackLength) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain. A chain is formed by passing a curated error as one of the
// placeholder values.
//
//	f := curated.Errorf("attach: %v", e)
//
//	curated.Has(f, TrackLength) // true
//	curated.Is(f, TrackLength)  // false
//
// The Error() function implementation for curated errors normalises the
// error chain. Specifically, the chain does not contain duplicate adjacent
// parts. This means that a package can wrap an error with its own prefix
// without worrying whether the wrapped error already carries that prefix.
//
//	e := curated.Errorf("diskimage: %v", "no such file")
//	f := curated.Errorf("diskimage: %v", e)
//
//	fmt.Println(f) // "diskimage: no such file"
//
// For the purposes of this package we think of chains as being composed of
// parts separated by the sub-string ': ' as suggested on p239 of "The Go
// Programming Language" (Donovan, Kernighan).
package curated
