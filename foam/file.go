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

package foam

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Header holds the entries of an OpenFOAM file's FoamFile dictionary.
type Header map[string]string

// Binary reports whether the file body is in binary format.
func (h Header) Binary() bool { return h["format"] == "binary" }

// Class returns the class of the file's contents, e.g. "volVectorField".
func (h Header) Class() string { return h["class"] }

// arch describes the binary layout given by the header's arch entry,
// e.g. "LSB;label=32;scalar=64".
type arch struct {
	order      binary.ByteOrder
	labelSize  int
	scalarSize int
}

func (h Header) arch() (arch, error) {
	a := arch{order: binary.LittleEndian, labelSize: 4, scalarSize: 8}
	for _, part := range strings.Split(h["arch"], ";") {
		part = strings.TrimSpace(part)
		switch {
		case part == "MSB":
			a.order = binary.BigEndian
		case strings.HasPrefix(part, "label="):
			n, err := strconv.Atoi(strings.TrimPrefix(part, "label="))
			if err != nil || (n != 32 && n != 64) {
				return a, fmt.Errorf("foam: invalid label size in arch %q", h["arch"])
			}
			a.labelSize = n / 8
		case strings.HasPrefix(part, "scalar="):
			n, err := strconv.Atoi(strings.TrimPrefix(part, "scalar="))
			if err != nil || (n != 32 && n != 64) {
				return a, fmt.Errorf("foam: invalid scalar size in arch %q", h["arch"])
			}
			a.scalarSize = n / 8
		}
	}
	return a, nil
}

// file is an OpenFOAM file whose header has been read. The scanner is
// positioned just after the header.
type file struct {
	*scanner
	name   string
	header Header
	arch   arch
}

// openFile reads the named file, decompressing it if it is gzipped,
// and parses its header.
func openFile(name string) (*file, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if len(b) > 2 && b[0] == 0x1f && b[1] == 0x8b {
		r, err := gzip.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("foam: decompressing %s: %w", name, err)
		}
		if b, err = io.ReadAll(r); err != nil {
			return nil, fmt.Errorf("foam: decompressing %s: %w", name, err)
		}
	}
	return parseFile(name, b)
}

func parseFile(name string, b []byte) (*file, error) {
	f := &file{scanner: &scanner{b: b}, name: name}
	var err error
	if f.header, err = f.readHeader(); err != nil {
		return nil, f.errorf("%v", err)
	}
	if f.arch, err = f.header.arch(); err != nil {
		return nil, f.errorf("%v", err)
	}
	return f, nil
}

func (f *file) errorf(format string, a ...interface{}) error {
	return fmt.Errorf("foam: %s: %s", f.name, fmt.Sprintf(format, a...))
}

// readHeader reads the FoamFile dictionary.
func (f *file) readHeader() (Header, error) {
	tok, err := f.next()
	if err != nil {
		return nil, err
	}
	if tok != "FoamFile" {
		return nil, fmt.Errorf("missing FoamFile header, found %q", tok)
	}
	if err := f.expect("{"); err != nil {
		return nil, err
	}
	h := make(Header)
	for {
		key, err := f.next()
		if err != nil {
			return nil, err
		}
		if key == "}" {
			return h, nil
		}
		var vals []string
		for {
			v, err := f.next()
			if err != nil {
				return nil, err
			}
			if v == ";" {
				break
			}
			vals = append(vals, strings.Trim(v, `"`))
		}
		h[key] = strings.Join(vals, " ")
	}
}

// seek advances past the top-level keyword name.
func (f *file) seek(name string) error {
	depth := 0
	for {
		tok, err := f.next()
		if err == io.EOF {
			return f.errorf("entry %q not found", name)
		} else if err != nil {
			return f.errorf("%v", err)
		}
		switch tok {
		case "{":
			depth++
		case "}":
			depth--
		case name:
			if depth == 0 {
				return nil
			}
		}
	}
}
