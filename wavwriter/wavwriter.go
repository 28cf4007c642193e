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

// Package wavwriter renders the GCR bitstream of a track as a flux WAV file.
// Each bit cell is SamplesPerBit samples long and a one bit is recorded as a
// change in the level of the signal, in the same way a one bit is recorded as
// a flux transition on the surface of a disk.
//
// The sample rate of the WAV file is the bit rate of the speed zone
// multiplied by SamplesPerBit. A file written by WriteTrack() can be read
// back with ReadTrack().
package wavwriter

import (
	"math"
	"os"

	"github.com/go-audio/audio"
	gawav "github.com/go-audio/wav"
	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/drive/gcr"
	"github.com/jetsetilly/gopher1541/hardware/drive/rotation"
	"github.com/jetsetilly/gopher1541/logger"
	"github.com/youpy/go-wav"
)

// SamplesPerBit is the length of a bit cell in samples.
const SamplesPerBit = 4

// amplitude of the signal. the level is either plus or minus this value
const amplitude = 0x4000

const bitDepth = 16

// MalformedWAV is returned by ReadTrack() when the file was not written by
// WriteTrack().
const MalformedWAV = "wavwriter: malformed flux wav: %v"

const tag = "wavwriter"

// SampleRate returns the sample rate used for a speed zone.
func SampleRate(zone int) uint32 {
	return uint32(math.Round(rotation.ZoneBitRate[zone&0x03])) * SamplesPerBit
}

// WriteTrack writes one revolution of the track as a flux WAV file.
func WriteTrack(perm logger.Permission, filename string, track gcr.Ring, zone int) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	numSamples := len(track) * 8 * SamplesPerBit

	enc := wav.NewWriter(f, uint32(numSamples), 1, SampleRate(zone), bitDepth)
	if enc == nil {
		return curated.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	samples := make([]wav.Sample, 0, numSamples)
	level := -amplitude
	for _, b := range track {
		for i := 7; i >= 0; i-- {
			if (b>>i)&0x01 == 0x01 {
				level = -level
			}
			for j := 0; j < SamplesPerBit; j++ {
				w := wav.Sample{}
				w.Values[0] = level
				samples = append(samples, w)
			}
		}
	}

	logger.Logf(perm, tag, "writing %d bytes of flux to %s", len(track), filename)

	if err := enc.WriteSamples(samples); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}

// ReadTrack reads a flux WAV file written by WriteTrack(). Returns the GCR
// bytes and the speed zone implied by the sample rate.
func ReadTrack(filename string) ([]byte, int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, 0, curated.Errorf("wavwriter: %v", err)
	}
	defer f.Close()

	dec := gawav.NewDecoder(f)
	if dec == nil || !dec.IsValidFile() {
		return nil, 0, curated.Errorf(MalformedWAV, "not a valid wav file")
	}

	if dec.NumChans != 1 || dec.BitDepth != bitDepth {
		return nil, 0, curated.Errorf(MalformedWAV, "wrong sample format")
	}

	zone := -1
	for z := range rotation.ZoneBitRate {
		if SampleRate(z) == dec.SampleRate {
			zone = z
			break
		}
	}
	if zone == -1 {
		return nil, 0, curated.Errorf(MalformedWAV, "sample rate does not match a speed zone")
	}

	var buf *audio.IntBuffer
	buf, err = dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, curated.Errorf("wavwriter: %v", err)
	}

	const byteLen = 8 * SamplesPerBit
	if len(buf.Data) == 0 || len(buf.Data)%byteLen != 0 {
		return nil, 0, curated.Errorf(MalformedWAV, "incomplete bit cells")
	}

	data := make([]byte, len(buf.Data)/byteLen)
	high := false
	for i := range data {
		var b byte
		for j := 0; j < 8; j++ {
			// sample from the middle of the bit cell
			v := buf.Data[i*byteLen+j*SamplesPerBit+SamplesPerBit/2]
			b <<= 1
			if (v > 0) != high {
				b |= 0x01
				high = !high
			}
		}
		data[i] = b
	}

	return data, zone, nil
}
