package interp

// Polynomials are stored as ascending coefficients: c[0] + c[1]x + c[2]x^2 ...

func polyEval(c []float64, x float64) float64 {
	v := 0.0
	for k := len(c) - 1; k >= 0; k-- {
		v = v*x + c[k]
	}
	return v
}

func polyDerivEval(c []float64, x float64) float64 {
	v := 0.0
	for k := len(c) - 1; k >= 1; k-- {
		v = v*x + float64(k)*c[k]
	}
	return v
}

// polyIntegral evaluates the antiderivative that vanishes at 0.
func polyIntegral(c []float64, x float64) float64 {
	v := 0.0
	for k := len(c) - 1; k >= 0; k-- {
		v = v*x + c[k]/float64(k+1)
	}
	return v * x
}

func polyDerivative(c []float64) []float64 {
	if len(c) <= 1 {
		return []float64{0}
	}
	d := make([]float64, len(c)-1)
	for k := 1; k < len(c); k++ {
		d[k-1] = float64(k) * c[k]
	}
	return d
}

func polyAntiderivative(c []float64, c0 float64) []float64 {
	a := make([]float64, len(c)+1)
	a[0] = c0
	for k := range c {
		a[k+1] = c[k] / float64(k+1)
	}
	return a
}
