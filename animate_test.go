/*
Copyright © 2026 the foamplot authors.
This file is part of foamplot.

foamplot is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

foamplot is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with foamplot.  If not, see <http://www.gnu.org/licenses/>.
*/

package foamplot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func testAnimator(t *testing.T, r *fakeReader, steps ...string) *Animator {
	fr := testRenderer(t, r)
	fr.Grid = nil
	fr.Dir = filepath.Join(t.TempDir(), "frames")
	return &Animator{
		Case:          mkdirs(t, append(steps, "constant", "system")...),
		FrameRenderer: *fr,
	}
}

func TestAnimate(t *testing.T) {
	a := testAnimator(t, newFakeReader(), "0", "0.1", "0.2", "0.3")
	var out bytes.Buffer
	a.Out = &out
	path, err := a.Animate(filepath.Join(t.TempDir(), "velocity"))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "velocity.gif" {
		t.Errorf("path %s", path)
	}
	g := decodeGIF(t, path)
	if len(g.Image) != 3 {
		t.Errorf("%d frames, want 3", len(g.Image))
	}
	if g.Delay[0] != DefaultDelay {
		t.Errorf("delay %d, want %d", g.Delay[0], DefaultDelay)
	}
	want := ""
	for i := 0; i < 3; i++ {
		want += filepath.Join(a.Dir, FrameName(i)) + "\n"
	}
	if out.String() != want {
		t.Errorf("output %q, want %q", out.String(), want)
	}
	entries, err := os.ReadDir(a.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("%d frame files remain", len(entries))
	}
}

func TestAnimateKeepFrames(t *testing.T) {
	a := testAnimator(t, newFakeReader(), "0", "1", "2")
	a.KeepFrames = true
	a.Delay = 50
	var out bytes.Buffer
	a.Out = &out
	path, err := a.Animate(filepath.Join(t.TempDir(), "velocity"))
	if err != nil {
		t.Fatal(err)
	}
	if g := decodeGIF(t, path); g.Delay[0] != 50 {
		t.Errorf("delay %d, want 50", g.Delay[0])
	}
	for i := 0; i < 2; i++ {
		checkPNG(t, filepath.Join(a.Dir, FrameName(i)))
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestAnimateTooFewTimeSteps(t *testing.T) {
	for _, s := range [][]string{nil, {"0"}} {
		a := testAnimator(t, newFakeReader(), s...)
		name := filepath.Join(t.TempDir(), "velocity")
		if _, err := a.Animate(name); err != ErrTooFewTimeSteps {
			t.Errorf("%v: have %v, want %v", s, err, ErrTooFewTimeSteps)
		}
		if _, err := os.Stat(name + ".gif"); !os.IsNotExist(err) {
			t.Error("no animation should be created")
		}
	}
}

func TestAnimateReadError(t *testing.T) {
	r := newFakeReader()
	r.fail = "3"
	a := testAnimator(t, r, "0", "1", "2", "3")
	name := filepath.Join(t.TempDir(), "velocity")
	if _, err := a.Animate(name); err == nil {
		t.Fatal("expected an error")
	}
	entries, err := os.ReadDir(a.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("%d frame files remain after a failure", len(entries))
	}
	if _, err := os.Stat(name + ".gif"); !os.IsNotExist(err) {
		t.Error("no animation should be created")
	}
}

func TestAnimateMissingCase(t *testing.T) {
	a := testAnimator(t, newFakeReader())
	a.Case = filepath.Join(a.Case, "missing")
	if _, err := a.Animate(filepath.Join(t.TempDir(), "velocity")); err == nil {
		t.Error("expected an error for a missing case directory")
	}
}
