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
	"strings"
	"unicode"
)

// nmfIterations bounds the multiplicative-update loop.
const nmfIterations = 200

// nmfEpsilon keeps the multiplicative updates away from division by zero.
const nmfEpsilon = 1e-9

// Topic is one extracted theme: its top keywords and their weights in the
// topic-term matrix, both sorted descending by weight.
type Topic struct {
	ID       int       `json:"id"`
	Keywords []string  `json:"keywords"`
	Weights  []float64 `json:"weights"`
}

// YearTopicWeights is the mean per-topic weight over the reviews of one
// calendar year.
type YearTopicWeights struct {
	Year    int       `json:"year"`
	Weights []float64 `json:"weights"`
}

// TopicReport is the topic-modeling artifact. DocTopics rows align with
// the input records; Yearly is sorted chronologically and excludes records
// without a known date.
type TopicReport struct {
	Topics    []Topic            `json:"topics"`
	DocTopics [][]float64        `json:"doc_topics"`
	Yearly    []YearTopicWeights `json:"yearly"`
}

// runTopicModeling builds a TF-IDF representation of the review texts and
// factorizes it with seeded non-negative matrix factorization.
func (a *Analyzer) runTopicModeling(ctx context.Context, in *Input) (*TopicReport, error) {
	if len(in.Texts) < a.cfg.TopicCount {
		return nil, fmt.Errorf("topic modeling needs at least %d documents, have %d", a.cfg.TopicCount, len(in.Texts))
	}

	docs := make([][]string, len(in.Texts))
	for i, text := range in.Texts {
		docs[i] = tokenize(text)
	}

	vocab := buildVocabulary(docs, a.cfg.MinDocFreq, a.cfg.MaxDocFreqRatio, a.cfg.MaxVocabulary)
	if len(vocab.terms) == 0 {
		return nil, fmt.Errorf("vocabulary is empty after frequency filtering")
	}

	tfidf := vocab.weigh(docs)

	w, h, err := factorizeNMF(ctx, tfidf, a.cfg.TopicCount, a.cfg.Seed)
	if err != nil {
		return nil, err
	}

	report := &TopicReport{DocTopics: w}
	for k := 0; k < a.cfg.TopicCount; k++ {
		report.Topics = append(report.Topics, topTerms(k, h[k], vocab.terms, a.cfg.TopicTopWords))
	}
	report.Yearly = yearlyTopicWeights(in, w, a.cfg.TopicCount)
	return report, nil
}

// tokenize lowercases the text, splits on non-alphanumeric runes, drops
// stopwords and one-rune tokens, and emits unigrams plus adjacent bigrams.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	unigrams := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 2 || isStopword(f) {
			continue
		}
		unigrams = append(unigrams, f)
	}

	tokens := append([]string(nil), unigrams...)
	for i := 0; i+1 < len(unigrams); i++ {
		tokens = append(tokens, unigrams[i]+" "+unigrams[i+1])
	}
	return tokens
}

type vocabulary struct {
	terms []string
	index map[string]int
	idf   []float64
}

// buildVocabulary keeps terms whose document frequency falls inside
// [minDF, maxRatio*nDocs], truncated to the maxTerms most frequent terms.
// IDF uses the smoothed form ln((1+n)/(1+df)) + 1.
func buildVocabulary(docs [][]string, minDF int, maxRatio float64, maxTerms int) *vocabulary {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, t := range doc {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	maxDF := int(maxRatio * float64(len(docs)))
	if maxDF < minDF {
		maxDF = minDF
	}

	type termFreq struct {
		term string
		df   int
	}
	kept := make([]termFreq, 0, len(df))
	for term, n := range df {
		if n >= minDF && n <= maxDF {
			kept = append(kept, termFreq{term, n})
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].df != kept[j].df {
			return kept[i].df > kept[j].df
		}
		return kept[i].term < kept[j].term
	})
	if len(kept) > maxTerms {
		kept = kept[:maxTerms]
	}

	v := &vocabulary{
		terms: make([]string, len(kept)),
		index: make(map[string]int, len(kept)),
		idf:   make([]float64, len(kept)),
	}
	n := float64(len(docs))
	for i, tf := range kept {
		v.terms[i] = tf.term
		v.index[tf.term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(tf.df))) + 1
	}
	return v
}

// weigh builds the L2-normalized TF-IDF matrix, one row per document.
func (v *vocabulary) weigh(docs [][]string) [][]float64 {
	rows := make([][]float64, len(docs))
	for i, doc := range docs {
		row := make([]float64, len(v.terms))
		for _, t := range doc {
			if j, ok := v.index[t]; ok {
				row[j]++
			}
		}

		norm := 0.0
		for j := range row {
			row[j] *= v.idf[j]
			norm += row[j] * row[j]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range row {
				row[j] /= norm
			}
		}
		rows[i] = row
	}
	return rows
}

// factorizeNMF factorizes the non-negative matrix a (n x m) into w (n x k)
// and h (k x m) using Lee–Seung multiplicative updates with a seeded
// uniform initialization.
// Reference: Lee & Seung (2000), "Algorithms for Non-negative Matrix
// Factorization".
func factorizeNMF(ctx context.Context, a [][]float64, k int, seed int64) ([][]float64, [][]float64, error) {
	n := len(a)
	m := len(a[0])
	rng := rand.New(rand.NewSource(seed))

	w := randomMatrix(rng, n, k)
	h := randomMatrix(rng, k, m)

	for iter := 0; iter < nmfIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		// H <- H * (W'A) / (W'WH)
		wta := matMulTransA(w, a)       // k x m
		wtw := matMulTransA(w, w)       // k x k
		wtwh := matMul(wtw, h)          // k x m
		for i := 0; i < k; i++ {
			for j := 0; j < m; j++ {
				h[i][j] *= wta[i][j] / (wtwh[i][j] + nmfEpsilon)
			}
		}

		// W <- W * (AH') / (WHH')
		aht := matMulTransB(a, h)       // n x k
		hht := matMulTransB(h, h)       // k x k
		whht := matMul(w, hht)          // n x k
		for i := 0; i < n; i++ {
			for j := 0; j < k; j++ {
				w[i][j] *= aht[i][j] / (whht[i][j] + nmfEpsilon)
			}
		}
	}
	return w, h, nil
}

func randomMatrix(rng *rand.Rand, rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
		for j := range m[i] {
			m[i][j] = rng.Float64() + nmfEpsilon
		}
	}
	return m
}

// matMul returns a*b.
func matMul(a, b [][]float64) [][]float64 {
	rows, inner, cols := len(a), len(b), len(b[0])
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for t := 0; t < inner; t++ {
			av := a[i][t]
			if av == 0 {
				continue
			}
			for j := 0; j < cols; j++ {
				out[i][j] += av * b[t][j]
			}
		}
	}
	return out
}

// matMulTransA returns a'*b.
func matMulTransA(a, b [][]float64) [][]float64 {
	rows, inner, cols := len(a[0]), len(a), len(b[0])
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}
	for t := 0; t < inner; t++ {
		for i := 0; i < rows; i++ {
			av := a[t][i]
			if av == 0 {
				continue
			}
			for j := 0; j < cols; j++ {
				out[i][j] += av * b[t][j]
			}
		}
	}
	return out
}

// matMulTransB returns a*b'.
func matMulTransB(a, b [][]float64) [][]float64 {
	rows, inner, cols := len(a), len(a[0]), len(b)
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			sum := 0.0
			for t := 0; t < inner; t++ {
				sum += a[i][t] * b[j][t]
			}
			out[i][j] = sum
		}
	}
	return out
}

// topTerms extracts the topN strongest terms of one topic row.
func topTerms(id int, row []float64, terms []string, topN int) Topic {
	order := make([]int, len(row))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return row[order[a]] > row[order[b]] })
	if len(order) > topN {
		order = order[:topN]
	}

	t := Topic{ID: id}
	for _, j := range order {
		t.Keywords = append(t.Keywords, terms[j])
		t.Weights = append(t.Weights, row[j])
	}
	return t
}

// yearlyTopicWeights averages the document-topic rows per calendar year,
// skipping records without a known date.
func yearlyTopicWeights(in *Input, w [][]float64, k int) []YearTopicWeights {
	sums := make(map[int][]float64)
	counts := make(map[int]int)
	for i := range in.Records {
		year, ok := in.Records[i].Year()
		if !ok {
			continue
		}
		if sums[year] == nil {
			sums[year] = make([]float64, k)
		}
		for j := 0; j < k; j++ {
			sums[year][j] += w[i][j]
		}
		counts[year]++
	}

	years := make([]int, 0, len(sums))
	for year := range sums {
		years = append(years, year)
	}
	sort.Ints(years)

	out := make([]YearTopicWeights, 0, len(years))
	for _, year := range years {
		weights := sums[year]
		for j := range weights {
			weights[j] /= float64(counts[year])
		}
		out = append(out, YearTopicWeights{Year: year, Weights: weights})
	}
	return out
}
