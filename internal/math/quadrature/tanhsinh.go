package quadrature

import (
	"fmt"
	gomath "math"
	"math/big"

	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/math/operations"
	"github.com/GriffinCanCode/specval/internal/math/utilities"
)

// Integrand is a real function evaluated at abscissas of the current rule.
type Integrand func(t *big.Float) *big.Float

// node is one symmetric pair of tanh-sinh abscissas ±(1-u) with weight w.
// Storing the complement u keeps abscissas near the endpoints exact.
type node struct {
	u, w   *big.Float
	center bool
}

// TanhSinh is the double-exponential quadrature rule.
type TanhSinh struct {
	ctx   *common.Context
	nodes *common.Context
}

// NewTanhSinh creates a rule integrating at the precision of c.
func NewTanhSinh(c *common.Context) *TanhSinh {
	return &TanhSinh{ctx: c, nodes: c.WithGuard(20)}
}

// MaxDegree is the number of levels tried before giving up on convergence:
// 4 + log2(prec/30) for typical integrands plus two spare levels.
func (r *TanhSinh) MaxDegree() int {
	g := 4 + int(gomath.Max(0, gomath.Log2(float64(r.ctx.Prec())/30)))
	return g + 2
}

// Integrate sums the rule over consecutive sub-intervals between points.
func (r *TanhSinh) Integrate(f Integrand, points ...*big.Float) Estimate {
	c := r.ctx
	total := Estimate{Value: c.New(), Error: c.New()}
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		if a.Cmp(b) == 0 {
			continue
		}
		e := r.interval(f, a, b)
		total.Value = c.Add(total.Value, e.Value)
		total.Error = c.Add(total.Error, e.Error)
	}
	return total
}

func (r *TanhSinh) interval(f Integrand, a, b *big.Float) Estimate {
	c := r.ctx
	w := r.nodes
	hw := w.Half(w.Sub(b, a))
	eps := c.Epsilon()

	sum := c.New()
	var results []*big.Float
	var err *big.Float
	for degree := 1; degree <= r.MaxDegree(); degree++ {
		for _, n := range r.level(degree) {
			d := w.Mul(hw, n.u)
			fp := f(w.Sub(b, d))
			if n.center {
				sum = c.Add(sum, c.Mul(n.w, fp))
				continue
			}
			fm := f(w.Add(a, d))
			sum = c.Add(sum, c.Mul(n.w, c.Add(fp, fm)))
		}
		result := c.Ldexp(c.Mul(hw, sum), -degree)
		results = append(results, result)
		if degree > 1 {
			err = estimateError(c, results)
			if err.Cmp(c.Mul(eps, c.Abs(result))) <= 0 {
				break
			}
		}
	}
	if err == nil {
		err = c.Abs(results[len(results)-1])
	}
	return Estimate{Value: results[len(results)-1], Error: err}
}

// level returns the nodes new at the given degree; the step is h = 2^-degree
// and only odd multiples of h are new past the first level.
func (r *TanhSinh) level(degree int) []node {
	w := r.nodes
	return w.Memo(fmt.Sprintf("tanhsinh/%d", degree), func() any {
		return computeNodes(w, degree)
	}).([]node)
}

func computeNodes(w *common.Context, degree int) []node {
	one := w.Int(1)
	two := w.Int(2)
	t0 := w.Ldexp(one, -degree)
	h := w.Ldexp(t0, 1)

	var nodes []node
	if degree == 1 {
		nodes = append(nodes, node{u: one, w: w.Half(utilities.Pi(w)), center: true})
		h = t0
	}

	tol := w.Ldexp(one, -int(w.Prec())-10)
	pi4 := w.Ldexp(utilities.Pi(w), -2)
	et0 := operations.Exp(w, t0)
	// a = π/4·e^t and b = π/4·e^-t, so that a+b = π/2·cosh t and a-b = π/2·sinh t
	a := w.Mul(pi4, et0)
	b := w.Quo(pi4, et0)
	step := operations.Exp(w, h)
	for k := 0; k <= 20<<degree; k++ {
		ex := operations.Exp(w, w.Sub(a, b))
		e2 := w.Square(ex)
		den := w.Add(one, e2)
		u := w.Quo(two, den)
		if u.Cmp(tol) <= 0 {
			break
		}
		weight := w.Quo(w.Ldexp(w.Mul(w.Add(a, b), e2), 2), w.Square(den))
		nodes = append(nodes, node{u: u, w: weight})
		a = w.Mul(a, step)
		b = w.Quo(b, step)
	}
	return nodes
}

// estimateError extrapolates the convergence of the last three levels:
// with D1, D2 the relative digits of agreement with the previous two levels,
// the error is 10^min(0, max(D1²/D2, 2·D1, -prec)).
func estimateError(c *common.Context, results []*big.Float) *big.Float {
	n := len(results)
	last := results[n-1]
	if n == 2 {
		return c.Abs(c.Sub(results[1], results[0]))
	}
	d1 := c.Abs(c.Sub(last, results[n-2]))
	d2 := c.Abs(c.Sub(last, results[n-3]))
	if d1.Sign() == 0 && d2.Sign() == 0 {
		return c.New()
	}
	scale := c.Abs(last)
	if d1.Sign() == 0 || d2.Sign() == 0 {
		if scale.Sign() == 0 {
			return c.Epsilon()
		}
		return c.Mul(c.Epsilon(), scale)
	}

	log10 := func(x *big.Float) float64 {
		v := operations.Log2Abs(x) * gomath.Log10(2)
		if scale.Sign() != 0 {
			v -= operations.Log2Abs(scale) * gomath.Log10(2)
		}
		return v
	}
	D1 := log10(d1)
	D2 := log10(d2)
	D3 := -float64(c.Prec())
	D4 := gomath.Min(0, gomath.Max(gomath.Max(D1*D1/D2, 2*D1), D3))

	err := tenPow(c, int(D4))
	if scale.Sign() != 0 {
		err = c.Mul(err, scale)
	}
	return err
}

// tenPow returns 10^k for k <= 0.
func tenPow(c *common.Context, k int) *big.Float {
	p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-k)), nil)
	return c.Quo(c.Int(1), c.New().SetInt(p))
}
