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
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	_ "image/png" // Frames are PNG files.
	"io"
	"os"
)

// ErrNoFrames is returned when an animation is requested with no frames.
var ErrNoFrames = errors.New("foamplot: no frames to assemble into an animation")

// AnimationWriter receives the frames of an animation in order.
type AnimationWriter interface {
	// Append adds a frame to the end of the animation.
	Append(img image.Image) error

	// Close finishes writing the animation.
	Close() error
}

// GIFWriter writes an animated GIF file.
type GIFWriter struct {
	path  string
	f     *os.File
	delay int
	anim  gif.GIF
}

// NewGIFWriter creates the file at path and returns a writer for it.
// delay is the time each frame is shown, in hundredths of a second.
func NewGIFWriter(path string, delay int) (*GIFWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("foamplot: creating animation: %w", err)
	}
	return &GIFWriter{path: path, f: f, delay: delay}, nil
}

// Path returns the location of the animation file.
func (w *GIFWriter) Path() string { return w.path }

// Append converts img to the Plan 9 palette, with Floyd-Steinberg
// dithering, and adds it to the animation.
func (w *GIFWriter) Append(img image.Image) error {
	if w.f == nil {
		return fmt.Errorf("foamplot: appending to closed animation %s", w.path)
	}
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	w.anim.Image = append(w.anim.Image, p)
	w.anim.Delay = append(w.anim.Delay, w.delay)
	return nil
}

// Close encodes the frames and closes the file.
func (w *GIFWriter) Close() error {
	if w.f == nil {
		return nil
	}
	f := w.f
	w.f = nil
	if err := gif.EncodeAll(f, &w.anim); err != nil {
		f.Close()
		return fmt.Errorf("foamplot: encoding animation %s: %w", w.path, err)
	}
	w.anim = gif.GIF{}
	if err := f.Close(); err != nil {
		return fmt.Errorf("foamplot: closing animation %s: %w", w.path, err)
	}
	return nil
}

// Remove closes the writer without encoding and deletes the file.
func (w *GIFWriter) Remove() error {
	if w.f != nil {
		w.f.Close()
		w.f = nil
	}
	w.anim = gif.GIF{}
	if err := os.Remove(w.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// discard abandons a partly written animation.
func discard(w AnimationWriter) {
	if r, ok := w.(interface{ Remove() error }); ok {
		r.Remove()
		return
	}
	w.Close()
}

func readFrame(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("foamplot: reading frame: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("foamplot: decoding frame %s: %w", path, err)
	}
	return img, nil
}

// Assemble appends the image files in frames to w in order and closes
// w. It then deletes each frame file, first printing its name to out.
//
// If a frame cannot be read or the animation cannot be written, the
// partial animation is discarded and the frame files are left in place.
func Assemble(w AnimationWriter, frames []string, out io.Writer) error {
	if err := WriteFrames(w, frames); err != nil {
		return err
	}
	return RemoveFrames(frames, out)
}

// WriteFrames appends the image files in frames to w in order and
// closes w, leaving the frame files in place. On error the partial
// animation is discarded.
func WriteFrames(w AnimationWriter, frames []string) error {
	if len(frames) == 0 {
		discard(w)
		return ErrNoFrames
	}
	for _, fname := range frames {
		img, err := readFrame(fname)
		if err != nil {
			discard(w)
			return err
		}
		if err := w.Append(img); err != nil {
			discard(w)
			return err
		}
	}
	if err := w.Close(); err != nil {
		discard(w)
		return err
	}
	return nil
}

// RemoveFrames deletes the given files, printing each name to out
// before it is deleted. Files that do not exist are skipped. It
// attempts every file and returns the first error.
func RemoveFrames(frames []string, out io.Writer) error {
	var first error
	for _, fname := range frames {
		if out != nil {
			fmt.Fprintln(out, fname)
		}
		if err := os.Remove(fname); err != nil && !os.IsNotExist(err) && first == nil {
			first = fmt.Errorf("foamplot: removing frame: %w", err)
		}
	}
	return first
}
