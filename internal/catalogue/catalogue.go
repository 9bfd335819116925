package catalogue

import (
	"errors"
	"sort"
)

// ErrArity is returned when a row carries a different number of arguments
// than the entry declares.
var ErrArity = errors.New("argument count does not match catalogue entry")

// Function identifies an evaluator. The zero value marks unsupported fixtures.
type Function int

const (
	Unsupported Function = iota
	BesselI
	Digamma
	Erfc
	ExpMinus1
	ExpMinus1RatioMinus1RatioMinusHalf
	Gamma
	GammaLn
	GammaLower
	GammaUpper
	GammaUpperRegularized
	GammaUpperScale
	Log1MinusExp
	Log1Plus
	LogExpMinus1
	Logistic
	LogisticGaussian
	LogisticGaussianDeriv
	LogisticGaussianDeriv2
	LogisticLn
	LogSumExp
	NormalCdf
	NormalCdf2
	NormalCdfInv
	NormalCdfLn
	NormalCdfLn2
	NormalCdfLogit
	NormalCdfMomentRatio
	Tetragamma
	Trigamma
)

// Parameter describes one argument column.
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Entry associates a fixture identifier with its evaluator.
type Entry struct {
	ID          string      `json:"id" yaml:"id"`
	Function    Function    `json:"-" yaml:"-"`
	Description string      `json:"description" yaml:"description"`
	Parameters  []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Supported reports whether the fixture is recomputed.
func (e Entry) Supported() bool { return e.Function != Unsupported }

// Arity returns the number of argument columns.
func (e Entry) Arity() int { return len(e.Parameters) }

// Catalogue is the fixed set of fixture identifiers known to the generator.
type Catalogue struct {
	entries map[string]Entry
}

// New creates the catalogue with every known fixture.
func New() *Catalogue {
	c := &Catalogue{entries: make(map[string]Entry, len(definitions))}
	for _, e := range definitions {
		c.entries[e.ID] = e
	}
	return c
}

// Lookup returns the entry for a fixture identifier such as "Gamma.csv".
func (c *Catalogue) Lookup(id string) (Entry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// Entries returns all entries sorted by identifier.
func (c *Catalogue) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func params(names ...string) []Parameter {
	out := make([]Parameter, len(names))
	for i, n := range names {
		out[i] = Parameter{Name: n}
	}
	return out
}

var definitions = []Entry{
	{ID: "BesselI.csv", Function: BesselI, Description: "Modified Bessel function of the first kind I_ν(x)", Parameters: params("nu", "x")},
	{ID: "BetaCdf.csv", Description: "Regularized incomplete beta function"},
	{ID: "Digamma.csv", Function: Digamma, Description: "Digamma function ψ(x)", Parameters: params("x")},
	{ID: "Erfc.csv", Function: Erfc, Description: "Complementary error function", Parameters: params("x")},
	{ID: "ExpMinus1.csv", Function: ExpMinus1, Description: "e^x - 1", Parameters: params("x")},
	{ID: "ExpMinus1RatioMinus1RatioMinusHalf.csv", Function: ExpMinus1RatioMinus1RatioMinusHalf, Description: "((e^x - 1)/x - 1)/x - 1/2, 0 at the origin", Parameters: params("x")},
	{ID: "Gamma.csv", Function: Gamma, Description: "Gamma function Γ(x)", Parameters: params("x")},
	{ID: "GammaLn.csv", Function: GammaLn, Description: "log Γ(x)", Parameters: params("x")},
	{ID: "GammaLower.csv", Function: GammaLower, Description: "Regularized lower incomplete gamma P(s, x)", Parameters: params("s", "x")},
	{ID: "GammaUpper.csv", Function: GammaUpper, Description: "Upper incomplete gamma Γ(s, x)", Parameters: params("s", "x")},
	{ID: "GammaUpperRegularized.csv", Function: GammaUpperRegularized, Description: "Regularized upper incomplete gamma Q(s, x)", Parameters: params("s", "x")},
	{ID: "GammaUpperScale.csv", Function: GammaUpperScale, Description: "x^s·e^-x/Γ(s)", Parameters: params("s", "x")},
	{ID: "Log1MinusExp.csv", Function: Log1MinusExp, Description: "log(1 - e^x)", Parameters: params("x")},
	{ID: "Log1Plus.csv", Function: Log1Plus, Description: "log(1 + x)", Parameters: params("x")},
	{ID: "LogExpMinus1.csv", Function: LogExpMinus1, Description: "log(e^x - 1)", Parameters: params("x")},
	{ID: "Logistic.csv", Function: Logistic, Description: "Logistic function 1/(1 + e^-x)", Parameters: params("x")},
	{ID: "logisticGaussian.csv", Function: LogisticGaussian, Description: "Mean of the logistic function under N(m, v)", Parameters: params("m", "v")},
	{ID: "logisticGaussianDeriv.csv", Function: LogisticGaussianDeriv, Description: "First derivative in m of the logistic-Gaussian mean", Parameters: params("m", "v")},
	{ID: "logisticGaussianDeriv2.csv", Function: LogisticGaussianDeriv2, Description: "Second derivative in m of the logistic-Gaussian mean", Parameters: params("m", "v")},
	{ID: "LogisticLn.csv", Function: LogisticLn, Description: "log σ(x) = -log(1 + e^-x)", Parameters: params("x")},
	{ID: "LogSumExp.csv", Function: LogSumExp, Description: "log(e^x + e^y)", Parameters: params("x", "y")},
	{ID: "NormalCdf.csv", Function: NormalCdf, Description: "Standard normal CDF Φ(x)", Parameters: params("x")},
	{ID: "NormalCdf2.csv", Function: NormalCdf2, Description: "Standard bivariate normal CDF Φ₂(x, y; r)", Parameters: params("x", "y", "r")},
	{ID: "NormalCdfIntegral.csv", Description: "Integral of the bivariate normal CDF"},
	{ID: "NormalCdfIntegralRatio.csv", Description: "Ratio of the bivariate normal CDF integral to the density"},
	{ID: "NormalCdfInv.csv", Function: NormalCdfInv, Description: "Standard normal quantile Φ⁻¹(p)", Parameters: params("p")},
	{ID: "NormalCdfLn.csv", Function: NormalCdfLn, Description: "log Φ(x)", Parameters: params("x")},
	{ID: "NormalCdfLn2.csv", Function: NormalCdfLn2, Description: "log Φ₂(x, y; r)", Parameters: params("x", "y", "r")},
	{ID: "NormalCdfLogit.csv", Function: NormalCdfLogit, Description: "log Φ(x) - log Φ(-x)", Parameters: params("x")},
	{ID: "NormalCdfMomentRatio.csv", Function: NormalCdfMomentRatio, Description: "∫₀^∞ tⁿ/n!·e^(-t²/2 + xt) dt", Parameters: params("n", "x")},
	{ID: "NormalCdfRatioLn2.csv", Description: "Log ratio of the bivariate normal CDF to the density"},
	{ID: "Tetragamma.csv", Function: Tetragamma, Description: "Second derivative of the digamma function ψ''(x)", Parameters: params("x")},
	{ID: "Trigamma.csv", Function: Trigamma, Description: "First derivative of the digamma function ψ'(x)", Parameters: params("x")},
	{ID: "ulp.csv", Description: "Unit in the last place"},
}
