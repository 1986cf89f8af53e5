package classifier

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Tokens are runs of at least two alphanumeric characters after lowercasing.
var tokenPattern = regexp.MustCompile(`[a-z0-9][a-z0-9]+`)

// Vectorizer converts merchant-name text into L2-normalized TF-IDF feature
// vectors, represented sparsely as feature-index to weight maps.
type Vectorizer struct {
	Vocabulary map[string]int
	IDF        []float64
}

func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func (v *Vectorizer) Fit(docs []string) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		v.Vocabulary[term] = i
		// Smoothed IDF, so unseen-in-few-docs terms stay finite.
		v.IDF[i] = math.Log((1+n)/float64(1+df[term])) + 1
	}
}

func (v *Vectorizer) NumFeatures() int {
	return len(v.Vocabulary)
}

func (v *Vectorizer) Transform(doc string) map[int]float64 {
	counts := make(map[int]float64)
	for _, tok := range tokenize(doc) {
		if idx, ok := v.Vocabulary[tok]; ok {
			counts[idx]++
		}
	}

	var norm float64
	for idx, tf := range counts {
		w := tf * v.IDF[idx]
		counts[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			counts[idx] /= norm
		}
	}
	return counts
}
