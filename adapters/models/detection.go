package models

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/montanaflynn/stats"

	"pravaah/domain/core"
	"pravaah/domain/model"
)

// detectionCalibration is the artifact exported alongside the trained
// detector: class names, the luminance threshold the training set was
// calibrated at, and a confidence scale mapping blob contrast onto the
// detector's score range.
type detectionCalibration struct {
	Classes         []string `json:"classes"`
	ThresholdFactor float64  `json:"threshold_factor"` // particle if luminance < factor * mean
	MinAreaPx       int      `json:"min_area_px"`
	ConfidenceScale float64  `json:"confidence_scale"`
}

// DetectionAdapter wraps the particle detection model. It decodes the
// uploaded image, segments dark blobs against the water background and
// classifies each blob by shape descriptors.
type DetectionAdapter struct {
	calib detectionCalibration
	ready bool
}

// NewDetectionAdapter loads the detection calibration artifact.
func NewDetectionAdapter(artifactsDir string) *DetectionAdapter {
	a := &DetectionAdapter{}
	if err := loadArtifact(artifactsDir, "detection.json", &a.calib); err != nil {
		return a
	}
	if a.calib.ThresholdFactor <= 0 {
		a.calib.ThresholdFactor = 0.72
	}
	if a.calib.MinAreaPx <= 0 {
		a.calib.MinAreaPx = 9
	}
	if a.calib.ConfidenceScale <= 0 {
		a.calib.ConfidenceScale = 1.0
	}
	a.ready = true
	return a
}

func (a *DetectionAdapter) Kind() model.Kind { return model.KindDetection }
func (a *DetectionAdapter) Ready() bool      { return a.ready }

// Predict runs detection over an uploaded image and returns the
// particle summary filtered at the caller's confidence floor.
func (a *DetectionAdapter) Predict(ctx context.Context, input model.Input) (*model.PredictionResult, error) {
	if !a.ready {
		return nil, core.NewModelUnavailableError("detection", core.ErrModelUnavailable)
	}
	in, ok := input.(*model.DetectionInput)
	if !ok {
		return nil, core.NewInvalidInputError("input", "detection expects DetectionInput")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(in.ImageData))
	if err != nil {
		return nil, core.NewInvalidInputError("image", "cannot decode image: "+err.Error())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lum, w, h := luminancePlane(img)
	mean, _ := stats.Mean(lum)
	cutoff := a.calib.ThresholdFactor * mean

	blobs := segment(lum, w, h, cutoff, a.calib.MinAreaPx)

	detections := make([]model.Detection, 0, len(blobs))
	counts := make(map[string]int)
	var confSum float64
	for _, b := range blobs {
		conf := a.blobConfidence(b, mean, cutoff)
		if conf < in.MinConfidence {
			continue
		}
		class := classifyBlob(b)
		detections = append(detections, model.Detection{
			Class:      class,
			Confidence: conf,
			X:          b.minX,
			Y:          b.minY,
			Width:      b.maxX - b.minX + 1,
			Height:     b.maxY - b.minY + 1,
		})
		counts[class]++
		confSum += conf
	}

	avgConf := 0.0
	if len(detections) > 0 {
		avgConf = confSum / float64(len(detections))
	}

	summary := model.DetectionSummary{
		Detections:    detections,
		Counts:        counts,
		TotalCount:    len(detections),
		AvgConfidence: avgConf,
		RiskBand:      model.BandForCount(len(detections)),
	}

	return &model.PredictionResult{
		ID:       core.ResultID(core.NewID()),
		Kind:     model.KindDetection,
		InputRef: in.Filename,
		Metrics: map[string]float64{
			"particle_count": float64(summary.TotalCount),
			"avg_confidence": avgConf,
		},
		Confidence: avgConf,
		Detail:     summary,
		CreatedAt:  core.Now(),
	}, nil
}

// blob accumulates one connected component during segmentation.
type blob struct {
	area                   int
	minX, minY, maxX, maxY int
	lumSum                 float64
}

// luminancePlane flattens the image into a [0,1] luminance slice.
func luminancePlane(img image.Image) ([]float64, int, int) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	lum := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// Rec. 601 luma on 16-bit channels
			lum[y*w+x] = (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 65535.0
		}
	}
	return lum, w, h
}

// segment finds 4-connected components of pixels below the cutoff.
func segment(lum []float64, w, h int, cutoff float64, minArea int) []blob {
	visited := make([]bool, len(lum))
	var blobs []blob
	var queue []int

	for start := range lum {
		if visited[start] || lum[start] >= cutoff {
			continue
		}
		b := blob{minX: w, minY: h, maxX: -1, maxY: -1}
		queue = queue[:0]
		queue = append(queue, start)
		visited[start] = true
		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			x, y := idx%w, idx/w
			b.area++
			b.lumSum += lum[idx]
			if x < b.minX {
				b.minX = x
			}
			if x > b.maxX {
				b.maxX = x
			}
			if y < b.minY {
				b.minY = y
			}
			if y > b.maxY {
				b.maxY = y
			}
			for _, n := range [4]int{idx - 1, idx + 1, idx - w, idx + w} {
				if n < 0 || n >= len(lum) || visited[n] || lum[n] >= cutoff {
					continue
				}
				// Skip row wraps on horizontal neighbors.
				if (n == idx-1 || n == idx+1) && n/w != y {
					continue
				}
				visited[n] = true
				queue = append(queue, n)
			}
		}
		if b.area >= minArea {
			blobs = append(blobs, b)
		}
	}
	return blobs
}

// blobConfidence maps blob contrast against the background onto the
// detector's calibrated score range.
func (a *DetectionAdapter) blobConfidence(b blob, mean, cutoff float64) float64 {
	if b.area == 0 || mean <= 0 {
		return 0
	}
	avg := b.lumSum / float64(b.area)
	contrast := (mean - avg) / mean
	conf := contrast * a.calib.ConfidenceScale * 2.0
	return math.Max(0, math.Min(1, conf))
}

// classifyBlob assigns a particle class from shape descriptors:
// elongation for fibers, fill ratio separates pellets (compact), films
// (sparse sheets) and foams (large irregular), fragments are the rest.
func classifyBlob(b blob) string {
	w := float64(b.maxX - b.minX + 1)
	h := float64(b.maxY - b.minY + 1)
	aspect := math.Max(w, h) / math.Max(1, math.Min(w, h))
	fill := float64(b.area) / (w * h)

	switch {
	case aspect >= 3.0:
		return "fiber"
	case fill >= 0.72 && aspect < 1.5:
		return "pellet"
	case fill < 0.40:
		return "film"
	case b.area > 400:
		return "foam"
	default:
		return "fragment"
	}
}
