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

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopher1541/archivefs"
	"github.com/jetsetilly/gopher1541/environment"
	"github.com/jetsetilly/gopher1541/hardware/clocks"
	"github.com/jetsetilly/gopher1541/hardware/drive"
	"github.com/jetsetilly/gopher1541/hardware/drive/diskimage"
	"github.com/jetsetilly/gopher1541/hardware/drive/tracks"
	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/logger"
	"github.com/jetsetilly/gopher1541/modalflag"
	"github.com/jetsetilly/gopher1541/paths"
	"github.com/jetsetilly/gopher1541/performance"
	"github.com/jetsetilly/gopher1541/performance/limiter"
	"github.com/jetsetilly/gopher1541/prefs"
	"github.com/jetsetilly/gopher1541/statsview"
	"github.com/jetsetilly/gopher1541/version"
	"github.com/jetsetilly/gopher1541/wavwriter"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])

	err := launch(md)
	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(20)
	}
}

// launch parses the top level flags and the mode and calls the function for
// the mode
func launch(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("INFO", "VERIFY", "DUMP", "WAV", "SPIN", "PERFORMANCE", "CREATE", "CONVERT", "VERSION")
	echo := md.AddBool("log", false, "echo log to stdout")
	prefsFile := md.AddString("prefsfile", "", "preferences file (default is in the resource directory)")
	prefsOverride := md.AddString("prefs", "", "override preferences (eg. \"drive.extendpolicy::access; drive.syncfactor::pal\")")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *echo {
		logger.SetEcho(md.Output)
		defer logger.SetEcho(nil)
	}

	if *prefsOverride != "" {
		prefs.PushCommandLineStack(*prefsOverride)
		defer prefs.PopCommandLineStack()
	}

	var pr *preferences.Preferences
	if *prefsFile != "" {
		pr, err = preferences.NewPreferencesFromFile(*prefsFile)
	} else {
		pr, err = preferences.NewPreferences()
	}
	if err != nil {
		return err
	}

	env, err := environment.NewEnvironment(environment.MainEmulation, pr)
	if err != nil {
		return err
	}

	switch md.Mode() {
	case "INFO":
		return info(md, env)
	case "VERIFY":
		return verify(md, env)
	case "DUMP":
		return dump(md, env)
	case "WAV":
		return wav(md, env)
	case "SPIN":
		return spin(md, env)
	case "PERFORMANCE":
		return perform(md, env)
	case "CREATE":
		return create(md)
	case "CONVERT":
		return convert(md, env)
	case "VERSION":
		return showVersion(md)
	}

	return nil
}

// oneImage parses the flags for the mode and returns the single disk image
// argument
func oneImage(md *modalflag.Modes) (string, bool, error) {
	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return "", false, err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return "", false, fmt.Errorf("disk image required for %s mode", md)
	case 1:
		return md.GetArg(0), true, nil
	}
	return "", false, fmt.Errorf("too many arguments for %s mode", md)
}

func info(md *modalflag.Modes, env *environment.Environment) error {
	md.NewMode()

	fn, ok, err := oneImage(md)
	if !ok {
		return err
	}

	w := md.Output

	var afs archivefs.Path
	if err := afs.Set(fn); err != nil {
		return err
	}
	defer afs.Close()

	if afs.IsDir() {
		return listImages(w, afs)
	}

	img, err := diskimage.Open(env, fn, true)
	if err != nil {
		return err
	}
	defer img.Close()

	fmt.Fprintf(w, "%s\n", img.Filename)
	fmt.Fprintf(w, "  format: %s\n", img.Format)
	fmt.Fprintf(w, "  tracks: %d\n", img.NumTracks)
	if img.Format == diskimage.FormatD64 {
		fmt.Fprintf(w, "  disk id: %q\n", string(img.ID[:]))
		fmt.Fprintf(w, "  error info: %v\n", img.ErrorInfo)
	}
	fmt.Fprintf(w, "  sha1: %s\n", img.Hash)
	fmt.Fprintf(w, "  extend policy: %s\n", env.Prefs.Policy())
	fmt.Fprintf(w, "  sync factor: %s\n", env.Prefs.Sync())
	fmt.Fprintf(w, "  parallel cable: %v\n", env.Prefs.ParallelCable.Get())

	return nil
}

// listImages lists the disk images in a directory or archive.
func listImages(w io.Writer, afs archivefs.Path) error {
	entries, err := afs.List()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s\n", afs)
	for _, e := range entries {
		if e.IsDir {
			continue
		}
		ext := strings.ToUpper(filepath.Ext(e.Name))
		for _, x := range diskimage.FileExtensions {
			if ext == x {
				fmt.Fprintf(w, "  %s\n", filepath.Join(afs.String(), e.Name))
				break
			}
		}
	}

	return nil
}

func verify(md *modalflag.Modes, env *environment.Environment) error {
	md.NewMode()

	fn, ok, err := oneImage(md)
	if !ok {
		return err
	}

	img, err := diskimage.Open(env, fn, true)
	if err != nil {
		return err
	}
	defer img.Close()

	store, err := img.Load()
	if err != nil {
		return err
	}

	var good, bad int
	for t := 1; t <= img.NumTracks; t++ {
		for s := 0; s < tracks.SectorsPerTrack(t); s++ {
			_, err := diskimage.ExtractSector(store.Ring(t), t, s)
			if err != nil {
				fmt.Fprintf(md.Output, "%v\n", err)
				bad++
				continue
			}
			good++
		}
	}

	fmt.Fprintf(md.Output, "%s: %d sectors ok, %d bad\n", img.ShortName(), good, bad)
	if bad > 0 {
		return fmt.Errorf("%d bad sectors", bad)
	}

	return nil
}

func dump(md *modalflag.Modes, env *environment.Environment) error {
	md.NewMode()
	track := md.AddInt("track", 18, "track number")
	sector := md.AddInt("sector", 0, "sector number")

	fn, ok, err := oneImage(md)
	if !ok {
		return err
	}

	s := drive.NewSession(env, &clocks.Counter{})
	defer s.End()
	if err := s.AttachFile(fn, true); err != nil {
		return err
	}

	data, err := s.ReadSector(*track, *sector)
	if data != nil {
		fmt.Fprintf(md.Output, "T:%d S:%d\n", *track, *sector)
		io.WriteString(md.Output, hex.Dump(data))
	}

	return err
}

func wav(md *modalflag.Modes, env *environment.Environment) error {
	md.NewMode()
	track := md.AddInt("track", 18, "track number")
	out := md.AddString("out", "", "output filename (default is a unique filename)")
	check := md.AddBool("verify", true, "read the written file and compare with the track")

	fn, ok, err := oneImage(md)
	if !ok {
		return err
	}

	if *track < 1 || *track > tracks.MaxTracks {
		return fmt.Errorf("track out of range (%d)", *track)
	}

	img, err := diskimage.Open(env, fn, true)
	if err != nil {
		return err
	}
	defer img.Close()

	store, err := img.Load()
	if err != nil {
		return err
	}

	if *out == "" {
		*out = fmt.Sprintf("%s.wav", paths.UniqueFilename("flux", fn))
	}

	r := store.Ring(*track)
	zone := int(store.Zones(*track)[0])
	if err := wavwriter.WriteTrack(env, *out, r, zone); err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "T:%d (%d bytes, zone %d) written to %s\n", *track, len(r), zone, *out)

	if *check {
		data, z, err := wavwriter.ReadTrack(*out)
		if err != nil {
			return err
		}
		if z != zone || string(data) != string(r) {
			return fmt.Errorf("flux in %s does not match T:%d", *out, *track)
		}
		fmt.Fprintf(md.Output, "verified\n")
	}

	return nil
}

func spin(md *modalflag.Modes, env *environment.Environment) error {
	md.NewMode()
	track := md.AddInt("track", 18, "track number")
	revs := md.AddInt("revs", 1, "number of revolutions")
	realtime := md.AddBool("realtime", false, "spin at the speed of a real disk")
	stats := md.AddBool("statsview", false, "run stats server")
	memvizFile := md.AddString("memviz", "", "write a graph of the drive status to a DOT file")

	fn, ok, err := oneImage(md)
	if !ok {
		return err
	}

	if *stats {
		stop := statsview.Launch(md.Output, "")
		defer stop()
	}

	clk := &clocks.Counter{}
	s := drive.NewSession(env, clk)
	defer s.End()
	if err := s.AttachFile(fn, true); err != nil {
		return err
	}

	clk.Advance(drive.AttachDelay)
	s.SetHalfTrack(*track * 2)

	var lmtr *limiter.Limiter
	if *realtime {
		lmtr = limiter.NewLimiter(performance.RevolutionsPerSecond)
		defer lmtr.Stop()
	}

	lastRevs := 0
	result, err := s.Run(clk, func(st drive.RunStats) (drive.RunState, error) {
		if st.Revolutions == lastRevs {
			return drive.Running, nil
		}
		lastRevs = st.Revolutions
		if st.Revolutions >= *revs {
			return drive.Ending, nil
		}
		if lmtr != nil {
			lmtr.Wait()
		}
		return drive.Running, nil
	})
	if err != nil {
		return err
	}

	status := s.Status()
	fmt.Fprintf(md.Output, "%s\n", result)
	fmt.Fprintf(md.Output, "%s\n", status)

	if *memvizFile != "" {
		f, err := os.Create(*memvizFile)
		if err != nil {
			return err
		}
		defer f.Close()
		memviz.Map(f, &status)
	}

	return nil
}

func perform(md *modalflag.Modes, env *environment.Environment) error {
	md.NewMode()
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "produce profiling reports: cpu, mem, trace, all, none")
	stats := md.AddBool("statsview", false, "run stats server")

	fn, ok, err := oneImage(md)
	if !ok {
		return err
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	if *stats {
		stop := statsview.Launch(md.Output, "")
		defer stop()
	}

	return performance.Check(md.Output, prf, env, fn, *duration)
}

func create(md *modalflag.Modes) error {
	md.NewMode()
	name := md.AddString("name", "gopher1541", "disk name")
	id := md.AddString("id", "00", "two character disk ID")

	fn, ok, err := oneImage(md)
	if !ok {
		return err
	}

	if len(*id) != 2 {
		return fmt.Errorf("disk ID must be two characters")
	}

	if err := diskimage.CreateD64(fn, *name, [2]byte{(*id)[0], (*id)[1]}); err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "created %s\n", fn)

	return nil
}

func convert(md *modalflag.Modes, env *environment.Environment) (rerr error) {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("%s mode requires a D64 image and an output filename", md)
	}

	out := md.GetArg(1)
	if !strings.EqualFold(filepath.Ext(out), ".g64") {
		return fmt.Errorf("output filename must have the .g64 extension")
	}

	img, err := diskimage.Open(env, md.GetArg(0), true)
	if err != nil {
		return err
	}
	defer img.Close()

	store, err := img.Load()
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	if err := diskimage.WriteG64(f, store, img.NumTracks); err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "converted %s to %s\n", img.ShortName(), out)

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *revision {
		v, r, _ := version.Version()
		fmt.Fprintf(md.Output, "%s %s\n%s\n", version.ApplicationName, v, r)
		return nil
	}
	fmt.Fprintln(md.Output, version.String())
	return nil
}
