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
	"math"
	"strings"
)

// value reads one ascii value with ncomp components: a bare number if
// ncomp is 1, otherwise a parenthesized tuple.
func (f *file) value(ncomp int, dst []float64) error {
	if ncomp == 1 {
		v, err := f.float()
		if err != nil {
			return err
		}
		dst[0] = v
		return nil
	}
	if err := f.expect("("); err != nil {
		return err
	}
	for i := 0; i < ncomp; i++ {
		v, err := f.float()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return f.expect(")")
}

// size reads the size of a list and checks it is not negative.
func (f *file) size() (int, error) {
	n, err := f.int()
	if err != nil {
		return 0, f.errorf("reading list size: %v", err)
	}
	if n < 0 {
		return 0, f.errorf("negative list size %d", n)
	}
	return n, nil
}

// fits checks that n elements of at least width bytes each fit in the
// rest of the file.
func (f *file) fits(n, width int) error {
	if rest := len(f.b) - f.pos; n > rest/width {
		return f.errorf("list of %d elements runs past end of file", n)
	}
	return nil
}

// scalars reads a list of n values with ncomp components each, in
// the form "n ( ... )" or "n {value}". The values are returned
// interleaved, so component c of element i is at i*ncomp+c.
func (f *file) scalars(ncomp int) ([]float64, error) {
	n, err := f.size()
	if err != nil {
		return nil, err
	}
	c, err := f.peek()
	if err != nil {
		return nil, f.errorf("reading list: %v", err)
	}
	if c == '{' {
		if f.header.Binary() {
			return nil, f.errorf("uniform list in binary file is not supported")
		}
		f.next()
		o := make([]float64, n*ncomp)
		if err := f.value(ncomp, o[:ncomp]); err != nil {
			return nil, f.errorf("reading uniform list: %v", err)
		}
		for i := 1; i < n; i++ {
			copy(o[i*ncomp:], o[:ncomp])
		}
		if err := f.expect("}"); err != nil {
			return nil, f.errorf("%v", err)
		}
		return o, nil
	}
	if err := f.expect("("); err != nil {
		return nil, f.errorf("%v", err)
	}
	width := ncomp
	if f.header.Binary() {
		width *= f.arch.scalarSize
	}
	if err := f.fits(n, width); err != nil {
		return nil, err
	}
	o := make([]float64, n*ncomp)
	if f.header.Binary() {
		b, err := f.raw(len(o) * f.arch.scalarSize)
		if err != nil {
			return nil, f.errorf("%v", err)
		}
		for i := range o {
			if f.arch.scalarSize == 4 {
				o[i] = float64(math.Float32frombits(f.arch.order.Uint32(b[4*i:])))
			} else {
				o[i] = math.Float64frombits(f.arch.order.Uint64(b[8*i:]))
			}
		}
	} else {
		for i := 0; i < n; i++ {
			if err := f.value(ncomp, o[i*ncomp:(i+1)*ncomp]); err != nil {
				return nil, f.errorf("reading list element %d: %v", i, err)
			}
		}
	}
	if err := f.expect(")"); err != nil {
		return nil, f.errorf("%v", err)
	}
	return o, nil
}

// labels reads a list of integers.
func (f *file) labels() ([]int, error) {
	n, err := f.size()
	if err != nil {
		return nil, err
	}
	c, err := f.peek()
	if err != nil {
		return nil, f.errorf("reading list: %v", err)
	}
	if c == '{' {
		if f.header.Binary() {
			return nil, f.errorf("uniform list in binary file is not supported")
		}
		f.next()
		o := make([]int, n)
		v, err := f.int()
		if err != nil {
			return nil, f.errorf("reading uniform list: %v", err)
		}
		for i := range o {
			o[i] = v
		}
		if err := f.expect("}"); err != nil {
			return nil, f.errorf("%v", err)
		}
		return o, nil
	}
	if err := f.expect("("); err != nil {
		return nil, f.errorf("%v", err)
	}
	width := 1
	if f.header.Binary() {
		width = f.arch.labelSize
	}
	if err := f.fits(n, width); err != nil {
		return nil, err
	}
	o := make([]int, n)
	if f.header.Binary() {
		b, err := f.raw(n * f.arch.labelSize)
		if err != nil {
			return nil, f.errorf("%v", err)
		}
		for i := range o {
			if f.arch.labelSize == 4 {
				o[i] = int(int32(f.arch.order.Uint32(b[4*i:])))
			} else {
				o[i] = int(int64(f.arch.order.Uint64(b[8*i:])))
			}
		}
	} else {
		for i := range o {
			if o[i], err = f.int(); err != nil {
				return nil, f.errorf("reading list element %d: %v", i, err)
			}
		}
	}
	if err := f.expect(")"); err != nil {
		return nil, f.errorf("%v", err)
	}
	return o, nil
}

// faces reads a face list, either a faceList of the form
// "n ( k(a b ...) ... )" or, for class faceCompactList, a list of
// offsets followed by a flat list of point labels.
func (f *file) faces() ([][]int, error) {
	if f.header.Class() == "faceCompactList" {
		offsets, err := f.labels()
		if err != nil {
			return nil, err
		}
		pts, err := f.labels()
		if err != nil {
			return nil, err
		}
		if len(offsets) == 0 {
			return nil, nil
		}
		o := make([][]int, len(offsets)-1)
		for i := range o {
			lo, hi := offsets[i], offsets[i+1]
			if lo < 0 || hi < lo || hi > len(pts) {
				return nil, f.errorf("invalid face offsets %d:%d", lo, hi)
			}
			o[i] = pts[lo:hi]
		}
		return o, nil
	}
	if f.header.Binary() {
		return nil, f.errorf("binary faceList is not supported; use faceCompactList")
	}
	n, err := f.size()
	if err != nil {
		return nil, err
	}
	if err := f.expect("("); err != nil {
		return nil, f.errorf("%v", err)
	}
	if err := f.fits(n, 1); err != nil {
		return nil, err
	}
	o := make([][]int, n)
	for i := range o {
		k, err := f.size()
		if err != nil {
			return nil, f.errorf("reading face %d: %v", i, err)
		}
		if err := f.fits(k, 1); err != nil {
			return nil, err
		}
		if err := f.expect("("); err != nil {
			return nil, f.errorf("reading face %d: %v", i, err)
		}
		o[i] = make([]int, k)
		for j := range o[i] {
			if o[i][j], err = f.int(); err != nil {
				return nil, f.errorf("reading face %d: %v", i, err)
			}
		}
		if err := f.expect(")"); err != nil {
			return nil, f.errorf("reading face %d: %v", i, err)
		}
	}
	if err := f.expect(")"); err != nil {
		return nil, f.errorf("%v", err)
	}
	return o, nil
}

// internalField reads the internalField entry of a volume field file
// with ncomp components per cell. A uniform field is expanded to
// ncells elements; ncells < 0 means the cell count is unknown, and a
// uniform field is an error.
func (f *file) internalField(ncomp, ncells int) ([]float64, error) {
	if err := f.seek("internalField"); err != nil {
		return nil, err
	}
	kind, err := f.next()
	if err != nil {
		return nil, f.errorf("reading internalField: %v", err)
	}
	switch kind {
	case "uniform":
		if ncells < 0 {
			return nil, f.errorf("uniform internalField with unknown cell count")
		}
		v := make([]float64, ncomp)
		if err := f.value(ncomp, v); err != nil {
			return nil, f.errorf("reading uniform value: %v", err)
		}
		o := make([]float64, ncells*ncomp)
		for i := 0; i < ncells; i++ {
			copy(o[i*ncomp:], v)
		}
		return o, nil
	case "nonuniform":
		typ, err := f.next()
		if err != nil {
			return nil, f.errorf("reading internalField: %v", err)
		}
		if !strings.HasPrefix(typ, "List<") {
			return nil, f.errorf("unexpected internalField type %q", typ)
		}
		o, err := f.scalars(ncomp)
		if err != nil {
			return nil, err
		}
		if ncells >= 0 && len(o) != ncells*ncomp {
			return nil, f.errorf("internalField has %d values but the mesh has %d cells", len(o)/ncomp, ncells)
		}
		return o, nil
	default:
		return nil, f.errorf("unexpected internalField kind %q", kind)
	}
}
