package models

import (
	"context"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"pravaah/domain/core"
	"pravaah/domain/model"
)

// referenceSpectrum is one polymer's library spectrum from the trained
// classifier's export.
type referenceSpectrum struct {
	Polymer     string    `json:"polymer"`
	Wavenumbers []float64 `json:"wavenumbers"`
	Intensities []float64 `json:"intensities"`
}

type spectralLibrary struct {
	Spectra []referenceSpectrum `json:"spectra"`
}

// SpectralAdapter wraps the Raman polymer classifier as a
// nearest-centroid match against the exported reference library.
type SpectralAdapter struct {
	library spectralLibrary
	ready   bool
}

// NewSpectralAdapter loads the reference spectra artifact. A library
// the matcher cannot align against counts as corrupt: the adapter
// stays offline rather than panicking mid-request.
func NewSpectralAdapter(artifactsDir string) *SpectralAdapter {
	a := &SpectralAdapter{}
	if err := loadArtifact(artifactsDir, "raman_library.json", &a.library); err != nil {
		return a
	}
	for _, ref := range a.library.Spectra {
		if !validReference(ref) {
			return a
		}
	}
	a.ready = len(a.library.Spectra) > 0
	return a
}

// validReference checks one library entry: a non-empty grid, one
// intensity per wavenumber, strictly increasing wavenumbers.
func validReference(ref referenceSpectrum) bool {
	if len(ref.Wavenumbers) == 0 || len(ref.Wavenumbers) != len(ref.Intensities) {
		return false
	}
	for i := 1; i < len(ref.Wavenumbers); i++ {
		if ref.Wavenumbers[i] <= ref.Wavenumbers[i-1] {
			return false
		}
	}
	return true
}

func (a *SpectralAdapter) Kind() model.Kind { return model.KindSpectral }
func (a *SpectralAdapter) Ready() bool      { return a.ready }

// Predict matches an uploaded spectrum against every reference polymer
// and returns the ranked candidates with cosine similarity scores.
func (a *SpectralAdapter) Predict(ctx context.Context, input model.Input) (*model.PredictionResult, error) {
	if !a.ready {
		return nil, core.NewModelUnavailableError("spectral", core.ErrModelUnavailable)
	}
	in, ok := input.(*model.SpectrumInput)
	if !ok {
		return nil, core.NewInvalidInputError("input", "spectral expects SpectrumInput")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := make([]model.PolymerScore, 0, len(a.library.Spectra))
	for _, ref := range a.library.Spectra {
		aligned := interpolateOnto(in.Wavenumbers, ref.Wavenumbers, ref.Intensities)
		score := cosineSimilarity(in.Intensities, aligned)
		candidates = append(candidates, model.PolymerScore{Polymer: ref.Polymer, Score: score})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	best := candidates[0]
	match := model.SpectralMatch{
		Polymer:    best.Polymer,
		Score:      best.Score,
		Candidates: candidates,
	}

	return &model.PredictionResult{
		ID:       core.ResultID(core.NewID()),
		Kind:     model.KindSpectral,
		InputRef: in.SampleLabel,
		Metrics: map[string]float64{
			"match_score": best.Score,
		},
		Confidence: best.Score,
		Detail:     match,
		CreatedAt:  core.Now(),
	}, nil
}

// interpolateOnto resamples a reference spectrum onto the query's
// wavenumber grid with linear interpolation; outside the reference
// range the intensity is zero.
func interpolateOnto(grid, refX, refY []float64) []float64 {
	out := make([]float64, len(grid))
	for i, x := range grid {
		if x < refX[0] || x > refX[len(refX)-1] {
			continue
		}
		j := sort.SearchFloat64s(refX, x)
		if j < len(refX) && refX[j] == x {
			out[i] = refY[j]
			continue
		}
		// refX[j-1] < x < refX[j]
		t := (x - refX[j-1]) / (refX[j] - refX[j-1])
		out[i] = refY[j-1] + t*(refY[j]-refY[j-1])
	}
	return out
}

// cosineSimilarity over two equal-length intensity vectors, clamped to
// [0,1] (spectra are non-negative so negative similarity means noise).
func cosineSimilarity(x, y []float64) float64 {
	dot := floats.Dot(x, y)
	nx := math.Sqrt(floats.Dot(x, x))
	ny := math.Sqrt(floats.Dot(y, y))
	if nx == 0 || ny == 0 {
		return 0
	}
	sim := dot / (nx * ny)
	return math.Max(0, math.Min(1, sim))
}
