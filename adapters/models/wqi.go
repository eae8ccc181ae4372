package models

import (
	"context"
	"math"

	"github.com/montanaflynn/stats"

	"pravaah/domain/core"
	"pravaah/domain/model"
)

// treeNode is one node of a serialized regression tree. Leaves carry
// the predicted WQI in Value.
type treeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value"`
}

type regressionTree struct {
	Nodes []treeNode `json:"nodes"`
}

// wqiArtifact is the exported random-forest regressor. When the export
// carries only weights (older artifact versions) the adapter falls back
// to the NSF weighted-sum formula.
type wqiArtifact struct {
	Features []string           `json:"features"`
	Trees    []regressionTree   `json:"trees"`
	Weights  map[string]float64 `json:"weights"`
}

// WQIAdapter wraps the Water Quality Index regressor.
type WQIAdapter struct {
	artifact wqiArtifact
	ready    bool
}

// NewWQIAdapter loads the WQI regressor artifact. A forest whose
// traversal cannot terminate counts as corrupt and keeps the adapter
// offline.
func NewWQIAdapter(artifactsDir string) *WQIAdapter {
	a := &WQIAdapter{}
	if err := loadArtifact(artifactsDir, "wqi_forest.json", &a.artifact); err != nil {
		return a
	}
	if !validForest(a.artifact.Trees) {
		return a
	}
	a.ready = len(a.artifact.Trees) > 0 || len(a.artifact.Weights) > 0
	return a
}

// validForest checks the serialized trees for termination: every split
// node must point at in-bounds children later in the node array, so a
// walk always makes progress toward a leaf.
func validForest(trees []regressionTree) bool {
	for _, tree := range trees {
		if len(tree.Nodes) == 0 {
			return false
		}
		for i, node := range tree.Nodes {
			if node.Leaf {
				continue
			}
			if node.Left <= i || node.Left >= len(tree.Nodes) {
				return false
			}
			if node.Right <= i || node.Right >= len(tree.Nodes) {
				return false
			}
		}
	}
	return true
}

func (a *WQIAdapter) Kind() model.Kind { return model.KindWQI }
func (a *WQIAdapter) Ready() bool      { return a.ready }

// Predict scores a water sample. Detail carries the qualitative rating
// and per-parameter contributions for the breakdown chart.
func (a *WQIAdapter) Predict(ctx context.Context, input model.Input) (*model.PredictionResult, error) {
	if !a.ready {
		return nil, core.NewModelUnavailableError("wqi", core.ErrModelUnavailable)
	}
	in, ok := input.(*model.WQIInput)
	if !ok {
		return nil, core.NewInvalidInputError("input", "wqi expects WQIInput")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	features := featureVector(in.Sample)

	var score, confidence float64
	if len(a.artifact.Trees) > 0 {
		outputs := make([]float64, 0, len(a.artifact.Trees))
		for _, tree := range a.artifact.Trees {
			outputs = append(outputs, evalTree(tree, features))
		}
		score, _ = stats.Mean(outputs)
		// Ensemble agreement: tight tree spread means high confidence.
		sd, _ := stats.StandardDeviation(outputs)
		confidence = math.Max(0, math.Min(1, 1-sd/25.0))
	} else {
		score = nsfWQI(in.Sample, a.artifact.Weights)
		confidence = 0.6 // formula fallback, no ensemble to agree
	}
	score = math.Max(0, math.Min(100, score))

	breakdown := model.WQIBreakdown{
		Score:         score,
		Rating:        model.RatingForWQI(score),
		Contributions: contributions(in.Sample),
	}

	return &model.PredictionResult{
		ID:       core.ResultID(core.NewID()),
		Kind:     model.KindWQI,
		InputRef: in.Location,
		Metrics: map[string]float64{
			"wqi": score,
		},
		Confidence: confidence,
		Detail:     breakdown,
		CreatedAt:  core.Now(),
	}, nil
}

// featureVector orders sample readings the way the regressor was
// trained: ph, turbidity, do, conductivity, temperature, nitrate, tds,
// bod.
func featureVector(s model.WaterSample) []float64 {
	return []float64{
		s.PH, s.TurbidityNTU, s.DOmgl, s.Conductivity,
		s.TemperatureC, s.NitrateMGL, s.TDSmgl, s.BODmgl,
	}
}

func evalTree(tree regressionTree, features []float64) float64 {
	if len(tree.Nodes) == 0 {
		return 0
	}
	idx := 0
	for {
		node := tree.Nodes[idx]
		if node.Leaf {
			return node.Value
		}
		if node.Feature < 0 || node.Feature >= len(features) {
			return node.Value
		}
		if features[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx < 0 || idx >= len(tree.Nodes) {
			return node.Value
		}
	}
}

// nsfWQI is the weighted-sum fallback: each parameter maps to a [0,100]
// sub-index which is combined with the artifact weights.
func nsfWQI(s model.WaterSample, weights map[string]float64) float64 {
	sub := contributions(s)
	var total, weightSum float64
	for param, idx := range sub {
		w, ok := weights[param]
		if !ok {
			continue
		}
		total += w * idx
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return total / weightSum
}

// contributions maps each reading onto its [0,100] sub-index.
func contributions(s model.WaterSample) map[string]float64 {
	return map[string]float64{
		"ph":              phSubIndex(s.PH),
		"turbidity_ntu":   decaySubIndex(s.TurbidityNTU, 5, 50),
		"do_mgl":          riseSubIndex(s.DOmgl, 4, 9),
		"conductivity_us": decaySubIndex(s.Conductivity, 250, 1500),
		"temperature_c":   phLikeSubIndex(s.TemperatureC, 18, 12),
		"nitrate_mgl":     decaySubIndex(s.NitrateMGL, 2, 25),
		"tds_mgl":         decaySubIndex(s.TDSmgl, 300, 1200),
		"bod_mgl":         decaySubIndex(s.BODmgl, 2, 12),
	}
}

// phSubIndex peaks at neutral pH and falls off toward the extremes.
func phSubIndex(ph float64) float64 {
	return phLikeSubIndex(ph, 7.2, 2.2)
}

// phLikeSubIndex is a symmetric peak around an optimum with a given
// half-width to the zero crossing.
func phLikeSubIndex(v, optimum, halfWidth float64) float64 {
	d := math.Abs(v-optimum) / halfWidth
	return math.Max(0, 100*(1-d*d))
}

// decaySubIndex is 100 below the good limit falling linearly to 0 at
// the bad limit.
func decaySubIndex(v, good, bad float64) float64 {
	if v <= good {
		return 100
	}
	if v >= bad {
		return 0
	}
	return 100 * (bad - v) / (bad - good)
}

// riseSubIndex is 0 below the bad limit rising linearly to 100 at the
// good limit.
func riseSubIndex(v, bad, good float64) float64 {
	if v <= bad {
		return 0
	}
	if v >= good {
		return 100
	}
	return 100 * (v - bad) / (good - bad)
}
