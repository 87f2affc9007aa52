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
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeFrames writes n solid-color PNG frames to dir, each with a
// different shade of red.
func writeFrames(t *testing.T, dir string, n int) []string {
	t.Helper()
	var frames []string
	for i := 0; i < n; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 8, 6))
		c := color.RGBA{R: uint8(255 * i / n), A: 255}
		for x := 0; x < 8; x++ {
			for y := 0; y < 6; y++ {
				img.Set(x, y, c)
			}
		}
		name := filepath.Join(dir, FrameName(i))
		f, err := os.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		f.Close()
		frames = append(frames, name)
	}
	return frames
}

func meanRed(img image.Image) float64 {
	b := img.Bounds()
	var sum float64
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			r, _, _, _ := img.At(x, y).RGBA()
			sum += float64(r)
		}
	}
	return sum / float64(b.Dx()*b.Dy())
}

func decodeGIF(t *testing.T, path string) *gif.GIF {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestAssemble(t *testing.T) {
	dir := t.TempDir()
	frames := writeFrames(t, dir, 3)
	path := filepath.Join(dir, "out.gif")
	w, err := NewGIFWriter(path, 25)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := Assemble(w, frames, &out); err != nil {
		t.Fatal(err)
	}

	g := decodeGIF(t, path)
	if len(g.Image) != 3 {
		t.Fatalf("%d frames, want 3", len(g.Image))
	}
	for i, d := range g.Delay {
		if d != 25 {
			t.Errorf("frame %d: delay %d, want 25", i, d)
		}
	}
	// Frames are darkest first.
	prev := -1.0
	for i, img := range g.Image {
		r := meanRed(img)
		if r <= prev {
			t.Errorf("frame %d is out of order", i)
		}
		prev = r
	}

	want := fmt.Sprintf("%s\n%s\n%s\n", frames[0], frames[1], frames[2])
	if out.String() != want {
		t.Errorf("output %q, want %q", out.String(), want)
	}
	for _, f := range frames {
		if _, err := os.Stat(f); !os.IsNotExist(err) {
			t.Errorf("frame %s was not removed", f)
		}
	}
}

func TestAssembleNoFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	w, err := NewGIFWriter(path, DefaultDelay)
	if err != nil {
		t.Fatal(err)
	}
	if err := Assemble(w, nil, nil); err != ErrNoFrames {
		t.Errorf("have %v, want %v", err, ErrNoFrames)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty animation was not removed")
	}
}

func TestAssembleBadFrame(t *testing.T) {
	dir := t.TempDir()
	frames := writeFrames(t, dir, 2)
	bad := filepath.Join(dir, "2.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	frames = append(frames, bad)
	path := filepath.Join(dir, "out.gif")
	w, err := NewGIFWriter(path, DefaultDelay)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := Assemble(w, frames, &out); err == nil {
		t.Fatal("expected an error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("partial animation was not removed")
	}
	for _, f := range frames {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("frame %s should be kept: %v", f, err)
		}
	}
	if out.Len() != 0 {
		t.Errorf("no frames should be reported removed, but output is %q", out.String())
	}
}

func TestGIFWriterClosed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	w, err := NewGIFWriter(path, DefaultDelay)
	if err != nil {
		t.Fatal(err)
	}
	if w.Path() != path {
		t.Errorf("path %s, want %s", w.Path(), path)
	}
	if err := w.Append(image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Append(image.NewRGBA(image.Rect(0, 0, 2, 2))); err == nil {
		t.Error("expected an error appending to a closed writer")
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}

func TestRemoveFramesMissing(t *testing.T) {
	dir := t.TempDir()
	frames := writeFrames(t, dir, 1)
	frames = append([]string{filepath.Join(dir, "missing.png")}, frames...)
	var out bytes.Buffer
	if err := RemoveFrames(frames, &out); err != nil {
		t.Fatal(err)
	}
	if want := frames[0] + "\n" + frames[1] + "\n"; out.String() != want {
		t.Errorf("output %q, want %q", out.String(), want)
	}
	if _, err := os.Stat(frames[1]); !os.IsNotExist(err) {
		t.Error("frame was not removed")
	}
}
