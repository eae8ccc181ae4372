package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"pravaah/domain/model"
)

// writeArtifact drops a JSON artifact into a temp artifacts dir so an
// adapter constructor can load it.
func writeArtifact(t *testing.T, dir, name string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal artifact %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("write artifact %s: %v", name, err)
	}
}

// cleanSample is a healthy river reading that passes validation.
func cleanSample() model.WaterSample {
	return model.WaterSample{
		PH:           7.2,
		TurbidityNTU: 4.0,
		DOmgl:        8.5,
		Conductivity: 320,
		TemperatureC: 22,
		NitrateMGL:   1.5,
		TDSmgl:       280,
		BODmgl:       1.8,
	}
}

// stressedSample is a heavily loaded reading: high BOD, low DO.
func stressedSample() model.WaterSample {
	s := cleanSample()
	s.DOmgl = 3.0
	s.BODmgl = 18.0
	s.NitrateMGL = 22.0
	s.TurbidityNTU = 160
	return s
}
