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
	"math"
	"strings"

	"github.com/Knetic/govaluate"
)

// A Quantity derives a scalar from the three components of a vector.
type Quantity func(ux, uy, uz float64) (float64, error)

func component(c int) Quantity {
	return func(ux, uy, uz float64) (float64, error) {
		return [3]float64{ux, uy, uz}[c], nil
	}
}

// numbers converts the arguments of the named function to float64,
// checking that there are n of them.
func numbers(name string, n int, arg []interface{}) ([]float64, error) {
	if len(arg) != n {
		return nil, fmt.Errorf("foamplot: got %d arguments for function '%s', but needs %d", len(arg), name, n)
	}
	o := make([]float64, n)
	for i, a := range arg {
		v, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("foamplot: argument %d of function '%s' is %T, not a number", i+1, name, a)
		}
		o[i] = v
	}
	return o, nil
}

// quantityFuncs are the functions available in quantity expressions.
var quantityFuncs = map[string]govaluate.ExpressionFunction{
	"sqrt": func(arg ...interface{}) (interface{}, error) {
		v, err := numbers("sqrt", 1, arg)
		if err != nil {
			return nil, err
		}
		return math.Sqrt(v[0]), nil
	},
	"abs": func(arg ...interface{}) (interface{}, error) {
		v, err := numbers("abs", 1, arg)
		if err != nil {
			return nil, err
		}
		return math.Abs(v[0]), nil
	},
	"mag": func(arg ...interface{}) (interface{}, error) {
		v, err := numbers("mag", 3, arg)
		if err != nil {
			return nil, err
		}
		return Magnitude(v[0], v[1], v[2])
	},
}

// ParseQuantity returns the Quantity described by expr.
//
// "magnitude" (or an empty string) is the Euclidean norm of the vector,
// and "Ux", "Uy" and "Uz" are its components. Anything else is parsed as
// an arithmetic expression in the variables Ux, Uy and Uz, which can use
// the functions 'sqrt(x)', 'abs(x)' and 'mag(x, y, z)'. For example,
// the in-plane speed is "sqrt(Ux*Ux + Uy*Uy)".
func ParseQuantity(expr string) (Quantity, error) {
	switch strings.TrimSpace(expr) {
	case "", "magnitude":
		return Magnitude, nil
	case "Ux":
		return component(0), nil
	case "Uy":
		return component(1), nil
	case "Uz":
		return component(2), nil
	}
	e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, quantityFuncs)
	if err != nil {
		return nil, fmt.Errorf("foamplot: parsing quantity %q: %w", expr, err)
	}
	for _, v := range e.Vars() {
		if v != "Ux" && v != "Uy" && v != "Uz" {
			return nil, fmt.Errorf("foamplot: undefined variable name '%s' in quantity %q", v, expr)
		}
	}
	params := make(map[string]interface{}, 3)
	return func(ux, uy, uz float64) (float64, error) {
		params["Ux"], params["Uy"], params["Uz"] = ux, uy, uz
		r, err := e.Evaluate(params)
		if err != nil {
			return 0, err
		}
		f, ok := r.(float64)
		if !ok {
			return 0, fmt.Errorf("foamplot: quantity %q evaluated to %T, not a number", expr, r)
		}
		return f, nil
	}, nil
}
