package linefit

import (
	"os"
	"testing"

	"github.com/goccy/go-json"
	"github.com/pkg/profile"

	"github.com/aouyang1/go-linefit/dataset"
)

var benchPredictRes []float64

func setupBenchData() *dataset.DataSet {
	n := 10000
	x := dataset.GenerateX(n, 0, 0.01)
	y := dataset.AddNoise(dataset.GenerateLine(x, 2.0, 3.0), 0.25)
	d, err := dataset.New(x, y, dataset.GenerateUniformErr(n, 0.1), dataset.GenerateUniformErr(n, 0.25))
	if err != nil {
		panic(err)
	}
	return d
}

func BenchmarkFitToModel(b *testing.B) {
	d := setupBenchData()

	var f *Fitter
	var err error

	b.ResetTimer()
	for b.Loop() {
		f, err = New(nil)
		if err != nil {
			panic(err)
		}
		if err := f.Fit(d); err != nil {
			panic(err)
		}
	}

	m, err := f.Model()
	if err != nil {
		panic(err)
	}

	bytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		panic(err)
	}

	if err := os.WriteFile("benchmark_model.json", bytes, 0o644); err != nil {
		panic(err)
	}
}

func BenchmarkPredictFromModel(b *testing.B) {
	bytes, err := os.ReadFile("benchmark_model.json")
	if err != nil {
		panic(err)
	}

	var model Model
	if err := json.Unmarshal(bytes, &model); err != nil {
		panic(err)
	}
	f, err := NewFromModel(model)
	if err != nil {
		panic(err)
	}

	input := dataset.GenerateX(128, 0, 0.5)
	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	for b.Loop() {
		benchPredictRes, err = f.Predict(input)
		if err != nil {
			panic(err)
		}
	}
}
