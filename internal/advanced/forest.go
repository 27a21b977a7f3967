// Reviewlens - Customer Review Analytics Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewlens

package advanced

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// ForestConfig configures the random-forest regressor.
type ForestConfig struct {
	// Trees is the ensemble size.
	Trees int

	// MaxDepth bounds tree depth.
	MaxDepth int

	// MinSamplesLeaf is the minimum sample count per leaf.
	MinSamplesLeaf int

	// FeatureFraction is the share of features tried per split.
	// If <= 0, sqrt(d) features are tried.
	FeatureFraction float64

	// Seed makes training deterministic.
	Seed int64
}

// DefaultForestConfig returns the defaults applied for zero fields.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Trees:          100,
		MaxDepth:       8,
		MinSamplesLeaf: 2,
		Seed:           42,
	}
}

// Forest is a bagged ensemble of CART regression trees for rating
// prediction. Each tree is grown on a bootstrap sample with a random
// feature subset per split.
// Reference: Breiman (2001), "Random Forests".
type Forest struct {
	trees       []*treeNode
	importances []float64
	numFeatures int
}

type treeNode struct {
	// Leaf value; split fields are meaningful only on internal nodes.
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

func (n *treeNode) leaf() bool {
	return n.left == nil
}

// FitForest trains the ensemble. Importances accumulate the impurity
// (sum-of-squared-error) decrease per splitting feature, normalized to
// sum to 1 over the whole forest.
func FitForest(x [][]float64, y []float64, cfg ForestConfig) (*Forest, error) {
	n := len(x)
	if n == 0 || n != len(y) {
		return nil, fmt.Errorf("design matrix has %d rows for %d targets", n, len(y))
	}
	def := DefaultForestConfig()
	if cfg.Trees <= 0 {
		cfg.Trees = def.Trees
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = def.MaxDepth
	}
	if cfg.MinSamplesLeaf <= 0 {
		cfg.MinSamplesLeaf = def.MinSamplesLeaf
	}

	d := len(x[0])
	mtry := int(math.Round(cfg.FeatureFraction * float64(d)))
	if cfg.FeatureFraction <= 0 {
		mtry = int(math.Ceil(math.Sqrt(float64(d))))
	}
	if mtry < 1 {
		mtry = 1
	}
	if mtry > d {
		mtry = d
	}

	f := &Forest{
		trees:       make([]*treeNode, 0, cfg.Trees),
		importances: make([]float64, d),
		numFeatures: d,
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	for t := 0; t < cfg.Trees; t++ {
		sample := make([]int, n)
		for i := range sample {
			sample[i] = rng.Intn(n)
		}
		f.trees = append(f.trees, f.grow(x, y, sample, 0, mtry, cfg, rng))
	}

	total := 0.0
	for _, imp := range f.importances {
		total += imp
	}
	if total > 0 {
		for i := range f.importances {
			f.importances[i] /= total
		}
	}
	return f, nil
}

// grow builds one subtree over the sample indices.
func (f *Forest) grow(x [][]float64, y []float64, idx []int, depth, mtry int, cfg ForestConfig, rng *rand.Rand) *treeNode {
	mean, sse := meanSSE(y, idx)
	node := &treeNode{value: mean}

	if depth >= cfg.MaxDepth || len(idx) < 2*cfg.MinSamplesLeaf || sse == 0 {
		return node
	}

	bestFeature, bestThreshold, bestGain := -1, 0.0, 0.0
	var bestLeft, bestRight []int

	for _, feature := range rng.Perm(f.numFeatures)[:mtry] {
		threshold, gain, ok := bestSplit(x, y, idx, feature, cfg.MinSamplesLeaf, sse)
		if ok && gain > bestGain {
			bestFeature, bestThreshold, bestGain = feature, threshold, gain
		}
	}
	if bestFeature < 0 {
		return node
	}

	for _, i := range idx {
		if x[i][bestFeature] <= bestThreshold {
			bestLeft = append(bestLeft, i)
		} else {
			bestRight = append(bestRight, i)
		}
	}

	f.importances[bestFeature] += bestGain
	node.feature = bestFeature
	node.threshold = bestThreshold
	node.left = f.grow(x, y, bestLeft, depth+1, mtry, cfg, rng)
	node.right = f.grow(x, y, bestRight, depth+1, mtry, cfg, rng)
	return node
}

// bestSplit scans the sorted feature values and returns the threshold with
// the largest SSE reduction, honoring the minimum leaf size.
func bestSplit(x [][]float64, y []float64, idx []int, feature, minLeaf int, parentSSE float64) (float64, float64, bool) {
	order := append([]int(nil), idx...)
	sort.Slice(order, func(a, b int) bool { return x[order[a]][feature] < x[order[b]][feature] })

	n := len(order)
	totalSum := 0.0
	totalSq := 0.0
	for _, i := range order {
		totalSum += y[i]
		totalSq += y[i] * y[i]
	}

	bestGain, bestThreshold := 0.0, 0.0
	found := false
	leftSum, leftSq := 0.0, 0.0

	for k := 0; k < n-1; k++ {
		i := order[k]
		leftSum += y[i]
		leftSq += y[i] * y[i]

		// Only split between distinct feature values.
		if x[i][feature] == x[order[k+1]][feature] {
			continue
		}
		leftN, rightN := k+1, n-k-1
		if leftN < minLeaf || rightN < minLeaf {
			continue
		}

		leftSSE := leftSq - leftSum*leftSum/float64(leftN)
		rightSum := totalSum - leftSum
		rightSSE := (totalSq - leftSq) - rightSum*rightSum/float64(rightN)

		gain := parentSSE - leftSSE - rightSSE
		if gain > bestGain {
			bestGain = gain
			bestThreshold = (x[i][feature] + x[order[k+1]][feature]) / 2
			found = true
		}
	}
	return bestThreshold, bestGain, found
}

// Predict averages the per-tree predictions for one row.
func (f *Forest) Predict(row []float64) float64 {
	sum := 0.0
	for _, tree := range f.trees {
		node := tree
		for !node.leaf() {
			if row[node.feature] <= node.threshold {
				node = node.left
			} else {
				node = node.right
			}
		}
		sum += node.value
	}
	return sum / float64(len(f.trees))
}

// PredictAll returns predictions for every row.
func (f *Forest) PredictAll(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = f.Predict(row)
	}
	return out
}

// Importances returns the normalized impurity-decrease per feature.
func (f *Forest) Importances() []float64 {
	return f.importances
}

func meanSSE(y []float64, idx []int) (float64, float64) {
	sum, sq := 0.0, 0.0
	for _, i := range idx {
		sum += y[i]
		sq += y[i] * y[i]
	}
	n := float64(len(idx))
	mean := sum / n
	return mean, sq - sum*sum/n
}
