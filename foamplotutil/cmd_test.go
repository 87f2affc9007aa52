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

package foamplotutil

import (
	"bytes"
	"context"
	"fmt"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const foamHeader = `FoamFile
{
    version     2.0;
    format      ascii;
    class       %s;
    object      %s;
}
`

// writeCase writes a 3 × 3 × 1 case with velocity and pressure fields at
// times 0, 0.5, and 1.
func writeCase(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	write := func(name, contents string) {
		name = filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(name), os.ModePerm); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(name, []byte(contents), 0644); err != nil {
			t.Fatal(err)
		}
	}
	var c bytes.Buffer
	fmt.Fprintf(&c, foamHeader, "volVectorField", "C")
	c.WriteString("internalField nonuniform List<vector> 9(")
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			fmt.Fprintf(&c, "(%g %g 0.05) ", 0.1*float64(i)+0.05, 0.1*float64(j)+0.05)
		}
	}
	c.WriteString(");\n")
	write(filepath.Join("constant", "C"), c.String())
	write(filepath.Join("system", "controlDict"), "")

	for _, time := range []string{"0", "0.5", "1"} {
		var u bytes.Buffer
		fmt.Fprintf(&u, foamHeader, "volVectorField", "U")
		u.WriteString("internalField nonuniform List<vector> 9(")
		for i := 0; i < 9; i++ {
			fmt.Fprintf(&u, "(%d %s 0) ", i, time)
		}
		u.WriteString(");\n")
		write(filepath.Join(time, "U"), u.String())
		write(filepath.Join(time, "p"), fmt.Sprintf(foamHeader, "volScalarField", "p")+
			"internalField nonuniform List<scalar> 9(1 2 3 4 5 6 7 8 9);\n")
	}
	return dir
}

// shown records the files passed to the viewer.
var shown []string

func init() {
	viewer = func(path string) error {
		shown = append(shown, path)
		return nil
	}
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	Root.SetOutput(&out)
	Root.SetArgs(args)
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestVersion(t *testing.T) {
	out := execute(t, "version")
	if !strings.HasPrefix(out, "foamplot v") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestTimeSteps(t *testing.T) {
	Cfg.Set("case", writeCase(t))
	out := execute(t, "timesteps")
	if out != "0\n0.5\n1\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestContour(t *testing.T) {
	Cfg.Set("case", writeCase(t))
	output := filepath.Join(t.TempDir(), "contour.png")
	Cfg.Set("Plot.Output", output)
	Cfg.Set("Plot.Show", false)
	Cfg.Set("scalar", false)
	Cfg.Set("time", "0.5")
	Cfg.Set("quantity", "sqrt(Ux*Ux + Uy*Uy)")
	defer Cfg.Set("time", "")
	defer Cfg.Set("quantity", "magnitude")
	n := len(shown)
	execute(t, "contour")
	if _, err := os.Stat(output); err != nil {
		t.Error(err)
	}
	if len(shown) != n {
		t.Error("plot should not have been shown")
	}
}

func TestContourScalar(t *testing.T) {
	Cfg.Set("case", writeCase(t))
	output := filepath.Join(t.TempDir(), "p.png")
	Cfg.Set("Plot.Output", output)
	Cfg.Set("Plot.Show", true)
	Cfg.Set("field", "p")
	Cfg.Set("scalar", true)
	defer Cfg.Set("field", "U")
	defer Cfg.Set("scalar", false)
	n := len(shown)
	execute(t, "contour")
	if _, err := os.Stat(output); err != nil {
		t.Error(err)
	}
	if len(shown) != n+1 {
		t.Errorf("plot shown %d times, want 1", len(shown)-n)
	}
}

func TestContourBadQuantity(t *testing.T) {
	Cfg.Set("case", writeCase(t))
	Cfg.Set("quantity", "Ux + pressure")
	defer Cfg.Set("quantity", "magnitude")
	if err := Contour(context.Background(), Cfg); err == nil {
		t.Error("expected an error for an undefined variable")
	}
}

func TestVectors(t *testing.T) {
	Cfg.Set("case", writeCase(t))
	output := filepath.Join(t.TempDir(), "vectors.png")
	Cfg.Set("Plot.Output", output)
	n := len(shown)
	execute(t, "vectors")
	if _, err := os.Stat(output); err != nil {
		t.Error(err)
	}
	if len(shown) != n+1 {
		t.Errorf("plot shown %d times, want 1", len(shown)-n)
	}
}

func checkGIF(t *testing.T, path string, frames int) {
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
	if len(g.Image) != frames {
		t.Errorf("animation has %d frames, want %d", len(g.Image), frames)
	}
}

func TestAnimate(t *testing.T) {
	Cfg.Set("case", writeCase(t))
	dir := t.TempDir()
	frameDir := filepath.Join(dir, "frames")
	Cfg.Set("Animate.Output", filepath.Join(dir, "animation"))
	Cfg.Set("Animate.FrameDir", frameDir)
	out := execute(t, "animate")

	want := filepath.Join(frameDir, "0.png") + "\n" + filepath.Join(frameDir, "1.png") + "\n"
	if out != want {
		t.Errorf("output %q, want %q", out, want)
	}
	checkGIF(t, filepath.Join(dir, "animation.gif"), 2)
	entries, err := os.ReadDir(frameDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("%d frame files remain", len(entries))
	}
}

func TestAnimateBlob(t *testing.T) {
	Cfg.Set("case", writeCase(t))
	dir := t.TempDir()
	Cfg.Set("Animate.Output", "file://"+filepath.ToSlash(filepath.Join(dir, "bucket"))+"/animation")
	Cfg.Set("Animate.FrameDir", filepath.Join(dir, "frames"))
	Cfg.Set("Animate.FixedScale", true)
	defer Cfg.Set("Animate.FixedScale", false)
	execute(t, "animate")
	checkGIF(t, filepath.Join(dir, "bucket", "animation.gif"), 2)
}

func TestAnimateTooFewTimeSteps(t *testing.T) {
	dir := writeCase(t)
	if err := os.RemoveAll(filepath.Join(dir, "1")); err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(filepath.Join(dir, "0.5")); err != nil {
		t.Fatal(err)
	}
	Cfg.Set("case", dir)
	Cfg.Set("Animate.Output", filepath.Join(t.TempDir(), "animation"))
	if err := Animate(context.Background(), Cfg, nil); err == nil {
		t.Error("expected an error")
	}
}

func TestConfig(t *testing.T) {
	Cfg.Set("Plot.Levels", 12)
	out := execute(t, "config")
	for _, want := range []string{"[Plot]", "Levels = 12", "[Animate]", `field = "U"`} {
		if !strings.Contains(out, want) {
			t.Errorf("configuration output does not contain %q:\n%s", want, out)
		}
	}
}

func TestInvalidLevels(t *testing.T) {
	Cfg.Set("case", writeCase(t))
	Cfg.Set("Plot.Levels", "ten")
	defer Cfg.Set("Plot.Levels", 12)
	if err := Contour(context.Background(), Cfg); err == nil || !strings.Contains(err.Error(), "Plot.Levels") {
		t.Errorf("expected an error naming Plot.Levels, have %v", err)
	}
}
