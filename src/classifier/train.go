package classifier

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LoadTrainingData reads labeled examples from a CSV file with a header row
// containing "name" and "category" columns.
func LoadTrainingData(path string) (names, labels []string, err error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("training data not found at %s", path)
	}
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read training data: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, errors.New("training data has no examples")
	}

	nameCol, categoryCol := -1, -1
	for i, col := range records[0] {
		switch col {
		case "name":
			nameCol = i
		case "category":
			categoryCol = i
		}
	}
	if nameCol < 0 || categoryCol < 0 {
		return nil, nil, errors.New(`training data must have "name" and "category" columns`)
	}

	for _, record := range records[1:] {
		names = append(names, record[nameCol])
		labels = append(labels, record[categoryCol])
	}
	return names, labels, nil
}

// TrainFromCSV fits a fresh pipeline over the labeled dataset and reports
// how many examples it saw.
func TrainFromCSV(path string) (*Pipeline, int, error) {
	names, labels, err := LoadTrainingData(path)
	if err != nil {
		return nil, 0, err
	}

	p := &Pipeline{}
	if err := p.Fit(names, labels); err != nil {
		return nil, 0, err
	}
	return p, len(names), nil
}
