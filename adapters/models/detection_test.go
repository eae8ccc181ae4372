package models

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"pravaah/domain/core"
	"pravaah/domain/model"
)

// testImage renders a white 64x64 frame and paints the given rectangles
// with the fill color, then encodes it as PNG.
func testImage(t *testing.T, fill color.Color, rects ...image.Rectangle) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.White)
		}
	}
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.Set(x, y, fill)
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func readyDetectionAdapter(t *testing.T) *DetectionAdapter {
	t.Helper()
	dir := t.TempDir()
	writeArtifact(t, dir, "detection.json", detectionCalibration{})
	a := NewDetectionAdapter(dir)
	if !a.Ready() {
		t.Fatal("adapter should be ready with a calibration artifact present")
	}
	return a
}

// TestDetectionAdapterNotReady tests that a missing calibration
// artifact leaves the adapter offline instead of crashing.
func TestDetectionAdapterNotReady(t *testing.T) {
	a := NewDetectionAdapter(t.TempDir())
	if a.Ready() {
		t.Fatal("adapter should not be ready without its artifact")
	}
	_, err := a.Predict(context.Background(), &model.DetectionInput{ImageData: []byte{1}})
	if !core.IsModelUnavailableError(err) {
		t.Fatalf("expected model unavailable, got %v", err)
	}
}

// TestDetectionAdapterDefaults tests that an empty calibration file
// falls back to the shipped calibration constants.
func TestDetectionAdapterDefaults(t *testing.T) {
	a := readyDetectionAdapter(t)
	if a.calib.ThresholdFactor != 0.72 {
		t.Errorf("ThresholdFactor = %v, want 0.72", a.calib.ThresholdFactor)
	}
	if a.calib.MinAreaPx != 9 {
		t.Errorf("MinAreaPx = %d, want 9", a.calib.MinAreaPx)
	}
	if a.calib.ConfidenceScale != 1.0 {
		t.Errorf("ConfidenceScale = %v, want 1.0", a.calib.ConfidenceScale)
	}
}

// TestDetectionClassifiesBlobs tests that a compact dark square comes
// back as a pellet and an elongated strip as a fiber.
func TestDetectionClassifiesBlobs(t *testing.T) {
	a := readyDetectionAdapter(t)

	data := testImage(t, color.Black,
		image.Rect(5, 5, 15, 15),   // 10x10 square, fill 1.0
		image.Rect(30, 40, 60, 43), // 30x3 strip, aspect 10
	)
	res, err := a.Predict(context.Background(), &model.DetectionInput{
		ImageData: data,
		Filename:  "sample.png",
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	summary, ok := res.Detail.(model.DetectionSummary)
	if !ok {
		t.Fatalf("Detail has type %T, want DetectionSummary", res.Detail)
	}
	if summary.TotalCount != 2 {
		t.Fatalf("TotalCount = %d, want 2 (%+v)", summary.TotalCount, summary.Counts)
	}
	if summary.Counts["pellet"] != 1 {
		t.Errorf("pellet count = %d, want 1", summary.Counts["pellet"])
	}
	if summary.Counts["fiber"] != 1 {
		t.Errorf("fiber count = %d, want 1", summary.Counts["fiber"])
	}
	if summary.RiskBand != model.RiskLow {
		t.Errorf("RiskBand = %s, want low", summary.RiskBand)
	}
	if got := res.Metrics["particle_count"]; got != 2 {
		t.Errorf("particle_count = %v, want 2", got)
	}
	if res.Confidence <= 0.9 {
		t.Errorf("black-on-white blobs should score near 1, got %v", res.Confidence)
	}
	if res.InputRef != "sample.png" {
		t.Errorf("InputRef = %q, want sample.png", res.InputRef)
	}
}

// TestDetectionConfidenceFloor tests that blobs under the caller's
// confidence floor are dropped from the summary.
func TestDetectionConfidenceFloor(t *testing.T) {
	a := readyDetectionAdapter(t)

	// A mid-gray square has real but modest contrast (~0.89).
	data := testImage(t, color.Gray{Y: 140}, image.Rect(5, 5, 15, 15))

	res, err := a.Predict(context.Background(), &model.DetectionInput{
		ImageData:     data,
		MinConfidence: 0.95,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got := res.Metrics["particle_count"]; got != 0 {
		t.Fatalf("particle_count = %v, want 0 after filtering", got)
	}
	if res.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0 with no detections", res.Confidence)
	}

	// The same image passes at a lower floor.
	res, err = a.Predict(context.Background(), &model.DetectionInput{
		ImageData:     data,
		MinConfidence: 0.5,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got := res.Metrics["particle_count"]; got != 1 {
		t.Fatalf("particle_count = %v, want 1 at floor 0.5", got)
	}
}

// TestDetectionIgnoresSmallBlobs tests that specks below the minimum
// area never become detections.
func TestDetectionIgnoresSmallBlobs(t *testing.T) {
	a := readyDetectionAdapter(t)

	data := testImage(t, color.Black, image.Rect(10, 10, 12, 12)) // 4 px < MinAreaPx 9
	res, err := a.Predict(context.Background(), &model.DetectionInput{ImageData: data})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got := res.Metrics["particle_count"]; got != 0 {
		t.Errorf("particle_count = %v, want 0", got)
	}
}

// TestDetectionRejectsBadInput tests validation and decode failures.
func TestDetectionRejectsBadInput(t *testing.T) {
	a := readyDetectionAdapter(t)

	_, err := a.Predict(context.Background(), &model.DetectionInput{})
	if !core.IsInvalidInputError(err) {
		t.Errorf("empty image: expected invalid input, got %v", err)
	}

	_, err = a.Predict(context.Background(), &model.DetectionInput{ImageData: []byte("not an image")})
	if !core.IsInvalidInputError(err) {
		t.Errorf("garbage bytes: expected invalid input, got %v", err)
	}

	_, err = a.Predict(context.Background(), &model.WQIInput{Sample: cleanSample()})
	if !core.IsInvalidInputError(err) {
		t.Errorf("wrong input type: expected invalid input, got %v", err)
	}
}
