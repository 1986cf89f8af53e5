// Package classifier fits and applies a text classifier that maps merchant
// names to spending categories: a TF-IDF vectorizer feeding a one-vs-rest
// linear SVM, persisted together as a single artifact.
package classifier

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrModelNotFound distinguishes a missing artifact from a corrupt one, so
// callers can tell the operator to train first.
var ErrModelNotFound = errors.New("classifier model not found")

type Pipeline struct {
	Vectorizer *Vectorizer
	Model      *LinearSVM
}

func (p *Pipeline) Fit(names, labels []string) error {
	if len(names) == 0 {
		return errors.New("no training examples")
	}
	if len(names) != len(labels) {
		return fmt.Errorf("got %d names but %d labels", len(names), len(labels))
	}

	p.Vectorizer = &Vectorizer{}
	p.Vectorizer.Fit(names)

	features := make([]map[int]float64, len(names))
	for i, name := range names {
		features[i] = p.Vectorizer.Transform(name)
	}

	p.Model = &LinearSVM{}
	p.Model.Fit(features, labels, p.Vectorizer.NumFeatures())
	return nil
}

func (p *Pipeline) Predict(name string) string {
	return p.Model.Predict(p.Vectorizer.Transform(name))
}

// Save writes the fitted pipeline atomically: the artifact is staged in a
// temp file and renamed, so a failed save never leaves a partial model.
func (p *Pipeline) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "classifier-*.gob")
	if err != nil {
		return fmt.Errorf("create temp model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(p); err != nil {
		tmp.Close()
		return fmt.Errorf("encode model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func Load(path string) (*Pipeline, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrModelNotFound
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var p Pipeline
	if err := gob.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return &p, nil
}
