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
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
)

var (
	integerTime = regexp.MustCompile(`^[0-9]+$`)
	realTime    = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)
)

// TimeStep is a simulation time parsed from the name of a time-step
// directory.
type TimeStep struct {
	// Label is the directory name exactly as it was found. Field readers
	// are given Label rather than a reformatted Value, so that "1.50"
	// is not turned into "1.5".
	Label string

	// Value is the numeric time.
	Value float64

	// Integer is true if Label was integer-valued, in which case
	// Int holds its exact value.
	Integer bool
	Int     int64
}

func (t TimeStep) String() string { return t.Label }

// ParseTimeStep classifies a directory name as a time step.
// Names made only of decimal digits are integer time steps and
// names of the form digits.digits are real time steps. Any other name
// returns false.
func ParseTimeStep(name string) (TimeStep, bool) {
	switch {
	case integerTime.MatchString(name):
		i, err := strconv.ParseInt(name, 10, 64)
		if err != nil { // Out of range for int64.
			v, err := strconv.ParseFloat(name, 64)
			if err != nil {
				return TimeStep{}, false
			}
			return TimeStep{Label: name, Value: v}, true
		}
		return TimeStep{Label: name, Value: float64(i), Integer: true, Int: i}, true
	case realTime.MatchString(name):
		v, err := strconv.ParseFloat(name, 64)
		if err != nil {
			return TimeStep{}, false
		}
		return TimeStep{Label: name, Value: v}, true
	}
	return TimeStep{}, false
}

// less orders time steps by numeric value. Two integer time steps are
// compared exactly; ties are broken by label.
func (t TimeStep) less(o TimeStep) bool {
	if t.Integer && o.Integer {
		if t.Int != o.Int {
			return t.Int < o.Int
		}
	} else if t.Value != o.Value {
		return t.Value < o.Value
	}
	return t.Label < o.Label
}

// SortTimeSteps sorts s in ascending numeric order, regardless of
// whether each element was written as an integer or a real number.
func SortTimeSteps(s []TimeStep) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].less(s[j]) })
}

// TimeSteps returns the time steps found among the direct children of
// dir, in ascending order. Entries that are not time-step names are
// skipped. If none match, the result is empty and err is nil.
func TimeSteps(dir string) ([]TimeStep, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("foamplot: listing time steps: %w", err)
	}
	var steps []TimeStep
	for _, e := range entries {
		if t, ok := ParseTimeStep(e.Name()); ok {
			steps = append(steps, t)
		}
	}
	SortTimeSteps(steps)
	return steps, nil
}

// Latest returns the last time step in s, which must be sorted.
func Latest(s []TimeStep) (TimeStep, error) {
	if len(s) == 0 {
		return TimeStep{}, fmt.Errorf("foamplot: no time steps found")
	}
	return s[len(s)-1], nil
}

// FindTimeStep returns the element of s with the given label.
func FindTimeStep(s []TimeStep, label string) (TimeStep, error) {
	for _, t := range s {
		if t.Label == label {
			return t, nil
		}
	}
	return TimeStep{}, fmt.Errorf("foamplot: time step %q not found", label)
}
