// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package advanced

import (
	"fmt"
	"math"
)

// LinearModel is a fitted linear regressor y = intercept + x . coefficients.
type LinearModel struct {
	Intercept    float64
	Coefficients []float64
}

// FitLinear fits ordinary least squares via the normal equations.
func FitLinear(x [][]float64, y []float64) (*LinearModel, error) {
	return fitLeastSquares(x, y, 0)
}

// FitRidge fits L2-regularized least squares. The intercept is not
// penalized.
func FitRidge(x [][]float64, y []float64, lambda float64) (*LinearModel, error) {
	if lambda < 0 {
		return nil, fmt.Errorf("ridge lambda must be non-negative, got %v", lambda)
	}
	return fitLeastSquares(x, y, lambda)
}

// fitLeastSquares solves (A'A + lambda*I) w = A'y where A is the design
// matrix augmented with a leading column of ones for the intercept.
func fitLeastSquares(x [][]float64, y []float64, lambda float64) (*LinearModel, error) {
	n := len(x)
	if n == 0 || n != len(y) {
		return nil, fmt.Errorf("design matrix has %d rows for %d targets", n, len(y))
	}
	d := len(x[0]) + 1 // +1 for intercept

	// Normal matrix G = A'A and right-hand side b = A'y, built directly
	// to avoid materializing the augmented design.
	g := make([][]float64, d)
	for i := range g {
		g[i] = make([]float64, d)
	}
	b := make([]float64, d)

	for r := 0; r < n; r++ {
		row := x[r]
		if len(row) != d-1 {
			return nil, fmt.Errorf("row %d has %d features, want %d", r, len(row), d-1)
		}
		for i := 0; i < d; i++ {
			ai := 1.0
			if i > 0 {
				ai = row[i-1]
			}
			b[i] += ai * y[r]
			for j := i; j < d; j++ {
				aj := 1.0
				if j > 0 {
					aj = row[j-1]
				}
				g[i][j] += ai * aj
			}
		}
	}
	// Mirror the upper triangle and apply the penalty (skip intercept).
	for i := 0; i < d; i++ {
		for j := 0; j < i; j++ {
			g[i][j] = g[j][i]
		}
		if i > 0 {
			g[i][i] += lambda
		}
	}

	w := solveGaussian(g, b)
	return &LinearModel{Intercept: w[0], Coefficients: w[1:]}, nil
}

// Predict returns the model output for one feature row.
func (m *LinearModel) Predict(row []float64) float64 {
	out := m.Intercept
	for i, c := range m.Coefficients {
		out += c * row[i]
	}
	return out
}

// PredictAll returns predictions for every row.
func (m *LinearModel) PredictAll(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = m.Predict(row)
	}
	return out
}

// Importances returns the absolute coefficient per feature.
func (m *LinearModel) Importances() []float64 {
	out := make([]float64, len(m.Coefficients))
	for i, c := range m.Coefficients {
		out[i] = math.Abs(c)
	}
	return out
}

// solveGaussian solves the linear system g*w = b in place using Gaussian
// elimination with partial pivoting. Rank-deficient columns (constant or
// collinear features) get their weight pinned to zero, the least-squares
// behavior on degenerate designs.
func solveGaussian(g [][]float64, b []float64) []float64 {
	d := len(g)

	for col := 0; col < d; col++ {
		pivot := col
		for r := col + 1; r < d; r++ {
			if math.Abs(g[r][col]) > math.Abs(g[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(g[pivot][col]) < 1e-12 {
			for c := col; c < d; c++ {
				g[col][c] = 0
			}
			g[col][col] = 1
			b[col] = 0
			continue
		}
		g[col], g[pivot] = g[pivot], g[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < d; r++ {
			factor := g[r][col] / g[col][col]
			if factor == 0 {
				continue
			}
			for c := col; c < d; c++ {
				g[r][c] -= factor * g[col][c]
			}
			b[r] -= factor * b[col]
		}
	}

	w := make([]float64, d)
	for r := d - 1; r >= 0; r-- {
		sum := b[r]
		for c := r + 1; c < d; c++ {
			sum -= g[r][c] * w[c]
		}
		w[r] = sum / g[r][r]
	}
	return w
}
