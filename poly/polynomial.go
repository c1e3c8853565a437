// Package poly implements polynomial motion models: evaluation, calculus and least squares fitting.
package poly

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInsufficientData is returned when there are fewer samples than coefficients to fit
	ErrInsufficientData = errors.New("insufficient data to fit polynomial")
	// ErrLengthMismatch is returned when x and y samples differ in length
	ErrLengthMismatch = errors.New("lengths of x and y differ")
	// ErrBadDegree is returned for negative degree
	ErrBadDegree = errors.New("degree must be >= 0")
)

// Polynomial holds coefficients in ascending order: p(x) = p[0] + p[1]*x + p[2]*x^2 + ...
type Polynomial []float64

// New creates polynomial from ascending coefficients
func New(coefficients ...float64) Polynomial {
	p := make(Polynomial, len(coefficients))
	copy(p, coefficients)
	return p
}

// Degree returns the index of the highest coefficient
func (p Polynomial) Degree() int {
	return len(p) - 1
}

// Eval evaluates polynomial at x using Horner's rule
func (p Polynomial) Eval(x float64) float64 {
	ret := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		ret = ret*x + p[i]
	}
	return ret
}

// Derivative returns dp/dx
func (p Polynomial) Derivative() Polynomial {
	if len(p) <= 1 {
		return Polynomial{0}
	}
	ret := make(Polynomial, len(p)-1)
	for i := 1; i < len(p); i++ {
		ret[i-1] = p[i] * float64(i)
	}
	return ret
}

// Antiderivative returns the integral of p with zero constant term
func (p Polynomial) Antiderivative() Polynomial {
	ret := make(Polynomial, len(p)+1)
	for i, c := range p {
		ret[i+1] = c / float64(i+1)
	}
	return ret
}

// IntegralFromZero returns integral of p from 0 to x
func (p Polynomial) IntegralFromZero(x float64) float64 {
	ret := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		ret += p[i] / float64(i+1)
		ret *= x
	}
	return ret
}

// Integrate returns integral of p from x0 to x1
func (p Polynomial) Integrate(x0, x1 float64) float64 {
	return p.IntegralFromZero(x1) - p.IntegralFromZero(x0)
}

// Shift returns p with offset added to the constant term
func (p Polynomial) Shift(offset float64) Polynomial {
	if len(p) == 0 {
		return Polynomial{offset}
	}
	ret := New(p...)
	ret[0] += offset
	return ret
}

// Scale returns p multiplied by k
func (p Polynomial) Scale(k float64) Polynomial {
	ret := make(Polynomial, len(p))
	for i, c := range p {
		ret[i] = c * k
	}
	return ret
}

// Format returns human readable form like "f(t) = 1.0 + 2.0 * t + 3.0 * t**2".
// verb is a fmt verb applied to every coefficient, "%g" when empty.
func (p Polynomial) Format(name, variable, verb string) string {
	if verb == "" {
		verb = "%g"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s(%s) =", name, variable)
	for i, c := range p {
		if i > 0 {
			sb.WriteString(" +")
		}
		sb.WriteString(" ")
		fmt.Fprintf(&sb, verb, c)
		switch {
		case i == 1:
			fmt.Fprintf(&sb, " * %s", variable)
		case i > 1:
			fmt.Fprintf(&sb, " * %s**%d", variable, i)
		}
	}
	return sb.String()
}

func (p Polynomial) String() string {
	return p.Format("f", "x", "")
}

// Fit returns least squares polynomial of given degree through (xs, ys)
func Fit(xs, ys []float64, degree int) (Polynomial, error) {
	if degree < 0 {
		return nil, errors.Wrapf(ErrBadDegree, "got %d", degree)
	}
	if len(xs) != len(ys) {
		return nil, errors.Wrapf(ErrLengthMismatch, "x: %d != y: %d", len(xs), len(ys))
	}
	n := degree + 1
	if len(xs) < n {
		return nil, errors.Wrapf(ErrInsufficientData, "need %d points for degree %d, got %d", n, degree, len(xs))
	}
	vandermonde := mat.NewDense(len(xs), n, nil)
	for i, x := range xs {
		v := 1.0
		for j := 0; j < n; j++ {
			vandermonde.Set(i, j, v)
			v *= x
		}
	}
	b := mat.NewVecDense(len(ys), append([]float64(nil), ys...))
	var coefficients mat.VecDense
	if err := coefficients.SolveVec(vandermonde, b); err != nil {
		return nil, errors.Wrap(err, "can't solve least squares")
	}
	ret := make(Polynomial, n)
	for i := range ret {
		ret[i] = coefficients.AtVec(i)
	}
	return ret, nil
}

// trim drops zero leading (highest order) coefficients
func (p Polynomial) trim() Polynomial {
	n := len(p)
	for n > 0 && p[n-1] == 0 {
		n--
	}
	return p[:n]
}

// RealRoots returns real roots of p in ascending order.
// Roots are eigenvalues of the companion matrix, so a small imaginary residue is tolerated.
func (p Polynomial) RealRoots() ([]float64, error) {
	q := p.trim()
	degree := len(q) - 1
	if degree < 1 {
		return []float64{}, nil
	}
	if degree == 1 {
		return []float64{-q[0] / q[1]}, nil
	}
	companion := mat.NewDense(degree, degree, nil)
	lead := q[degree]
	for i := 0; i < degree; i++ {
		if i > 0 {
			companion.Set(i, i-1, 1)
		}
		companion.Set(i, degree-1, -q[i]/lead)
	}
	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return nil, errors.New("eigen decomposition of companion matrix failed")
	}
	roots := make([]float64, 0, degree)
	for _, v := range eig.Values(nil) {
		if math.Abs(imag(v)) <= 1e-9*math.Max(1, math.Abs(real(v))) {
			roots = append(roots, real(v))
		}
	}
	sort.Float64s(roots)
	return roots, nil
}
