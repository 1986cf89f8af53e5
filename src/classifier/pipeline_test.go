package classifier

import (
	"os"
	"path/filepath"
	"testing"
)

var trainingNames = []string{
	"STARBUCKS #123",
	"STARBUCKS STORE 456",
	"DUNKIN DONUTS",
	"MCDONALD'S F1234",
	"CHIPOTLE ONLINE",
	"UBER TRIP HELP.UBER.COM",
	"UBER *TRIP",
	"LYFT RIDE",
	"DELTA AIR LINES",
	"UNITED AIRLINES",
	"SHELL OIL 1234",
	"CHEVRON GAS STATION",
	"EXXONMOBIL",
	"WHOLE FOODS MARKET",
	"TRADER JOE'S #55",
	"SAFEWAY STORE",
	"KROGER GROCERY",
	"NETFLIX.COM",
	"SPOTIFY USA",
	"HULU SUBSCRIPTION",
}

var trainingLabels = []string{
	"Food and Drink",
	"Food and Drink",
	"Food and Drink",
	"Food and Drink",
	"Food and Drink",
	"Travel",
	"Travel",
	"Travel",
	"Travel",
	"Travel",
	"Gas",
	"Gas",
	"Gas",
	"Groceries",
	"Groceries",
	"Groceries",
	"Groceries",
	"Entertainment",
	"Entertainment",
	"Entertainment",
}

func trainedPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p := &Pipeline{}
	if err := p.Fit(trainingNames, trainingLabels); err != nil {
		t.Fatalf("Fit() failed: %v", err)
	}
	return p
}

func TestPipelinePredict(t *testing.T) {
	p := trainedPipeline(t)

	cases := []struct {
		name string
		want string
	}{
		{"STARBUCKS #999", "Food and Drink"},
		{"UBER TRIP", "Travel"},
		{"SHELL OIL 9876", "Gas"},
		{"TRADER JOE'S #12", "Groceries"},
		{"NETFLIX.COM", "Entertainment"},
	}
	for _, tc := range cases {
		if got := p.Predict(tc.name); got != tc.want {
			t.Errorf("Predict(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestPipelinePredictDeterministic(t *testing.T) {
	p1 := trainedPipeline(t)
	p2 := trainedPipeline(t)

	for _, name := range []string{"STARBUCKS #5", "LYFT RIDE 7", "SOMETHING ENTIRELY NEW"} {
		if p1.Predict(name) != p2.Predict(name) {
			t.Errorf("two identically trained pipelines disagree on %q", name)
		}
	}
}

func TestPipelineFitEmpty(t *testing.T) {
	p := &Pipeline{}
	if err := p.Fit(nil, nil); err == nil {
		t.Error("Fit() with no examples should fail")
	}
}

func TestPipelineSaveLoad(t *testing.T) {
	p := trainedPipeline(t)
	path := filepath.Join(t.TempDir(), "models", "classifier.gob")

	if err := p.Save(path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	for _, name := range trainingNames {
		if got, want := loaded.Predict(name), p.Predict(name); got != want {
			t.Errorf("loaded pipeline Predict(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestLoadMissingModel(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.gob"))
	if err != ErrModelNotFound {
		t.Errorf("Load() on missing file returned %v, want ErrModelNotFound", err)
	}
}

func TestTrainFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	csv := "name,category\n" +
		"STARBUCKS #123,Food and Drink\n" +
		"DUNKIN DONUTS,Food and Drink\n" +
		"UBER TRIP,Travel\n" +
		"LYFT RIDE,Travel\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	p, count, err := TrainFromCSV(path)
	if err != nil {
		t.Fatalf("TrainFromCSV() failed: %v", err)
	}
	if count != 4 {
		t.Errorf("TrainFromCSV() count = %d, want 4", count)
	}
	if got := p.Predict("STARBUCKS STORE"); got != "Food and Drink" {
		t.Errorf("Predict() = %q, want %q", got, "Food and Drink")
	}
}

func TestTrainFromCSVMissingFile(t *testing.T) {
	_, _, err := TrainFromCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatal("TrainFromCSV() on a missing file should fail")
	}
}

func TestTrainFromCSVMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("merchant,label\nfoo,bar\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := TrainFromCSV(path); err == nil {
		t.Fatal("TrainFromCSV() without name/category columns should fail")
	}
}
