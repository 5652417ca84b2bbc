package limbcurve

import (
	"math"
)

// maxPanels bounds the number of initial panels of a quadrature. At a
// quarter turn per panel this is several thousand full turns, far beyond
// anything a limb profile contains.
const maxPanels = 1 << 14

// integrate computes the integral of f over [a, b].
//
// The interval is first split into equal panels, each of which the integrand
// turns by at most a quarter turn (the caller passes the total turning of
// the tangent over [a, b]), so that a 16 point Gauss–Legendre rule cannot
// alias. Each panel is then integrated adaptively: a panel is halved until
// the sum of the halves agrees with the whole to within the panel's share of
// tol, or maxDepth is reached.
func integrate(f func(u float64) Vec2, a, b, turning, tol float64, maxDepth int) Vec2 {
	if b == a {
		return Vec2{}
	}
	n := 1
	if turning > 0 {
		n = int(min(math.Ceil(turning/(0.5*math.Pi)), maxPanels))
	}
	h := (b - a) / float64(n)
	var sum Vec2
	for i := range n {
		u0 := a + float64(i)*h
		u1 := a + float64(i+1)*h
		if i == n-1 {
			u1 = b
		}
		whole := gaussLegendre16(f, u0, u1)
		sum = sum.Add(integrateAdaptive(f, u0, u1, tol/float64(n), whole, maxDepth))
	}
	return sum
}

func integrateAdaptive(f func(u float64) Vec2, a, b, tol float64, whole Vec2, depth int) Vec2 {
	m := 0.5 * (a + b)
	left := gaussLegendre16(f, a, m)
	right := gaussLegendre16(f, m, b)
	sum := left.Add(right)
	if depth <= 0 || sum.Sub(whole).Hypot() <= tol {
		return sum
	}
	return integrateAdaptive(f, a, m, 0.5*tol, left, depth-1).
		Add(integrateAdaptive(f, m, b, 0.5*tol, right, depth-1))
}

// gaussLegendre16 applies the 16 point Gauss–Legendre rule to f on [a, b].
func gaussLegendre16(f func(u float64) Vec2, a, b float64) Vec2 {
	m := 0.5 * (a + b)
	h := 0.5 * (b - a)
	var sum Vec2
	for _, c := range gaussLegendreCoeffs16Half {
		wi, xi := c[0], c[1]
		sum = sum.Add(f(m - h*xi).Add(f(m + h*xi)).Mul(wi))
	}
	return sum.Mul(h)
}

// Table of Legendre-Gauss quadrature coefficients (weight, abscissa) for the
// positive half of the symmetric 16 point rule, adapted from:
// <https://pomax.github.io/bezierinfo/legendre-gauss.html>
var gaussLegendreCoeffs16Half = [...][2]float64{
	{0.1894506104550685, 0.0950125098376374},
	{0.1826034150449236, 0.2816035507792589},
	{0.1691565193950025, 0.4580167776572274},
	{0.1495959888165767, 0.6178762444026438},
	{0.1246289712555339, 0.7554044083550030},
	{0.0951585116824928, 0.8656312023878318},
	{0.0622535239386479, 0.9445750230732326},
	{0.0271524594117541, 0.9894009349916499},
}
