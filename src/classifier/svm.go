package classifier

import (
	"math"
	"math/rand"
	"sort"
)

const (
	epochs = 50
	lambda = 1e-4
)

// LinearSVM is a one-vs-rest linear margin classifier trained with
// hinge-loss SGD. Training is deterministic: the shuffle seed is fixed.
type LinearSVM struct {
	Classes []string
	Weights [][]float64
	Bias    []float64
}

func (m *LinearSVM) Fit(features []map[int]float64, labels []string, numFeatures int) {
	classSet := make(map[string]struct{})
	for _, label := range labels {
		classSet[label] = struct{}{}
	}
	m.Classes = make([]string, 0, len(classSet))
	for class := range classSet {
		m.Classes = append(m.Classes, class)
	}
	sort.Strings(m.Classes)

	m.Weights = make([][]float64, len(m.Classes))
	m.Bias = make([]float64, len(m.Classes))

	rng := rand.New(rand.NewSource(42))
	order := rng.Perm(len(features))

	for ci, class := range m.Classes {
		w := make([]float64, numFeatures)
		b := 0.0
		t := 0
		for epoch := 0; epoch < epochs; epoch++ {
			rng.Shuffle(len(order), func(i, j int) {
				order[i], order[j] = order[j], order[i]
			})
			for _, i := range order {
				t++
				eta := 1.0 / (1.0 + lambda*float64(t))
				y := -1.0
				if labels[i] == class {
					y = 1.0
				}
				margin := y * (dot(w, features[i]) + b)

				shrink := 1 - eta*lambda
				for j := range w {
					w[j] *= shrink
				}
				if margin < 1 {
					for j, x := range features[i] {
						w[j] += eta * y * x
					}
					b += eta * y
				}
			}
		}
		m.Weights[ci] = w
		m.Bias[ci] = b
	}
}

// Predict returns the class with the largest decision margin.
func (m *LinearSVM) Predict(features map[int]float64) string {
	best := 0
	bestScore := math.Inf(-1)
	for ci := range m.Classes {
		score := dot(m.Weights[ci], features) + m.Bias[ci]
		if score > bestScore {
			bestScore = score
			best = ci
		}
	}
	return m.Classes[best]
}

func dot(w []float64, x map[int]float64) float64 {
	var sum float64
	for j, v := range x {
		if j < len(w) {
			sum += w[j] * v
		}
	}
	return sum
}
