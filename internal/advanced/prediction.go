// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package advanced

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Model names in the prediction report.
const (
	ModelLinear = "linear"
	ModelRidge  = "ridge"
	ModelForest = "forest"
)

// ridgeLambda is the fixed L2 penalty of the regularized model.
const ridgeLambda = 1.0

// FeatureWeight pairs a feature name with a weight (importance or
// attribution value, depending on context).
type FeatureWeight struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// ModelReport carries performance metrics and feature importances for one
// fitted model. Importances are sorted descending by weight.
type ModelReport struct {
	Name        string          `json:"name"`
	MSE         float64         `json:"mse"`
	R2          float64         `json:"r2"`
	CVMean      float64         `json:"cv_mean"`
	CVStd       float64         `json:"cv_std"`
	Importances []FeatureWeight `json:"feature_importances"`
}

// PredictionReport is the rating-prediction artifact: one report per model
// plus the model-agnostic attribution for the ensemble model.
type PredictionReport struct {
	Models          []ModelReport   `json:"models"`
	TopAttributions []FeatureWeight `json:"top_attributions"`
	TrainSize       int             `json:"train_size"`
	TestSize        int             `json:"test_size"`
}

// regressor is what evaluation needs from any model.
type regressor interface {
	PredictAll(x [][]float64) []float64
	Importances() []float64
}

// runRatingPrediction trains the three regressors on a seeded 80/20 split,
// cross-validates each, and computes the additive feature attribution for
// the forest model.
func (a *Analyzer) runRatingPrediction(ctx context.Context, fs *FeatureSet) (*PredictionReport, error) {
	n := len(fs.Rows)
	if n < 2*a.cfg.Folds {
		return nil, fmt.Errorf("rating prediction needs at least %d records, have %d", 2*a.cfg.Folds, n)
	}

	rng := rand.New(rand.NewSource(a.cfg.Seed))
	perm := rng.Perm(n)
	testN := n / 5
	if testN < 1 {
		testN = 1
	}
	testIdx, trainIdx := perm[:testN], perm[testN:]

	trainX, trainY := subset(fs, trainIdx)
	testX, testY := subset(fs, testIdx)

	report := &PredictionReport{TrainSize: len(trainIdx), TestSize: len(testIdx)}

	fits := []struct {
		name string
		fit  func(x [][]float64, y []float64) (regressor, error)
	}{
		{ModelLinear, func(x [][]float64, y []float64) (regressor, error) {
			return FitLinear(x, y)
		}},
		{ModelRidge, func(x [][]float64, y []float64) (regressor, error) {
			return FitRidge(x, y, ridgeLambda)
		}},
		{ModelForest, func(x [][]float64, y []float64) (regressor, error) {
			return FitForest(x, y, ForestConfig{
				Trees:    a.cfg.ForestTrees,
				MaxDepth: a.cfg.ForestMaxDepth,
				Seed:     a.cfg.Seed,
			})
		}},
	}

	var forest regressor
	for _, m := range fits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		model, err := m.fit(trainX, trainY)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.name, err)
		}

		pred := model.PredictAll(testX)
		cvMean, cvStd, err := crossValidate(ctx, fs, m.fit, a.cfg.Folds, a.cfg.Seed)
		if err != nil {
			return nil, fmt.Errorf("%s cross-validation: %w", m.name, err)
		}

		report.Models = append(report.Models, ModelReport{
			Name:        m.name,
			MSE:         meanSquaredError(testY, pred),
			R2:          rSquared(testY, pred),
			CVMean:      cvMean,
			CVStd:       cvStd,
			Importances: namedWeights(fs.Names, model.Importances()),
		})

		if m.name == ModelForest {
			forest = model
		}
	}

	report.TopAttributions = attributeFeatures(forest, fs.Names, trainX, testX, a.cfg.TopFeatures)
	return report, nil
}

// crossValidate runs seeded k-fold cross-validation and returns the mean
// and standard deviation of the per-fold R² scores.
func crossValidate(ctx context.Context, fs *FeatureSet, fit func(x [][]float64, y []float64) (regressor, error), folds int, seed int64) (float64, float64, error) {
	n := len(fs.Rows)
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	scores := make([]float64, 0, folds)
	for f := 0; f < folds; f++ {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}

		lo, hi := f*n/folds, (f+1)*n/folds
		holdIdx := perm[lo:hi]
		trainIdx := make([]int, 0, n-len(holdIdx))
		trainIdx = append(trainIdx, perm[:lo]...)
		trainIdx = append(trainIdx, perm[hi:]...)
		if len(holdIdx) == 0 || len(trainIdx) == 0 {
			continue
		}

		trainX, trainY := subset(fs, trainIdx)
		holdX, holdY := subset(fs, holdIdx)

		model, err := fit(trainX, trainY)
		if err != nil {
			return 0, 0, err
		}
		scores = append(scores, rSquared(holdY, model.PredictAll(holdX)))
	}
	if len(scores) == 0 {
		return 0, 0, fmt.Errorf("no usable folds from %d records", n)
	}

	mean := 0.0
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))

	variance := 0.0
	for _, s := range scores {
		variance += (s - mean) * (s - mean)
	}
	return mean, math.Sqrt(variance / float64(len(scores))), nil
}

// attributeFeatures computes a model-agnostic additive attribution: each
// test feature is masked to its training mean and the mean absolute
// prediction shift is the feature's attribution. Ranked descending and
// truncated to topN.
func attributeFeatures(model regressor, names []string, trainX, testX [][]float64, topN int) []FeatureWeight {
	if model == nil || len(testX) == 0 {
		return nil
	}
	d := len(names)

	baseline := model.PredictAll(testX)
	means := columnMeans(trainX, d)

	weights := make([]FeatureWeight, 0, d)
	masked := make([][]float64, len(testX))
	for j := 0; j < d; j++ {
		for i, row := range testX {
			m := append([]float64(nil), row...)
			m[j] = means[j]
			masked[i] = m
		}
		shifted := model.PredictAll(masked)

		total := 0.0
		for i := range shifted {
			total += math.Abs(baseline[i] - shifted[i])
		}
		weights = append(weights, FeatureWeight{
			Feature: names[j],
			Weight:  total / float64(len(testX)),
		})
	}

	sort.SliceStable(weights, func(i, j int) bool { return weights[i].Weight > weights[j].Weight })
	if len(weights) > topN {
		weights = weights[:topN]
	}
	return weights
}

func namedWeights(names []string, importances []float64) []FeatureWeight {
	out := make([]FeatureWeight, len(names))
	for i := range names {
		out[i] = FeatureWeight{Feature: names[i], Weight: importances[i]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	return out
}

func subset(fs *FeatureSet, idx []int) ([][]float64, []float64) {
	x := make([][]float64, len(idx))
	y := make([]float64, len(idx))
	for k, i := range idx {
		x[k] = fs.Rows[i]
		y[k] = fs.Target[i]
	}
	return x, y
}

func meanSquaredError(truth, pred []float64) float64 {
	sum := 0.0
	for i := range truth {
		d := truth[i] - pred[i]
		sum += d * d
	}
	return sum / float64(len(truth))
}

// rSquared is the coefficient of determination; a constant truth vector
// scores 0 rather than dividing by zero.
func rSquared(truth, pred []float64) float64 {
	mean := 0.0
	for _, t := range truth {
		mean += t
	}
	mean /= float64(len(truth))

	ssTot, ssRes := 0.0, 0.0
	for i := range truth {
		ssTot += (truth[i] - mean) * (truth[i] - mean)
		ssRes += (truth[i] - pred[i]) * (truth[i] - pred[i])
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

func columnMeans(x [][]float64, d int) []float64 {
	means := make([]float64, d)
	if len(x) == 0 {
		return means
	}
	for _, row := range x {
		for j := 0; j < d; j++ {
			means[j] += row[j]
		}
	}
	for j := range means {
		means[j] /= float64(len(x))
	}
	return means
}
