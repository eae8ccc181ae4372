package ui

import (
	"encoding/json"
	"net/http"

	"pravaah/domain/core"
	"pravaah/domain/model"
)

// handleSpectral classifies an uploaded Raman spectrum.
func (a *App) handleSpectral(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	var input model.SpectrumInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		a.renderError(w, r, core.NewInvalidInputError("spectrum", "malformed spectrum payload"))
		return
	}
	if err := input.Validate(); err != nil {
		a.renderError(w, r, err)
		return
	}

	result, raised, err := a.analysis.Analyze(r.Context(), &input)
	if err != nil {
		a.renderError(w, r, err)
		return
	}
	sess.AddResult(*result, raised)

	a.respondJSON(w, http.StatusOK, map[string]interface{}{
		"result": result,
		"alerts": raised,
	})
}

type wqiRequest struct {
	Sample   model.WaterSample `json:"sample"`
	Location string            `json:"location"`
}

// handleWQI scores one water sample.
func (a *App) handleWQI(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	var req wqiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.renderError(w, r, core.NewInvalidInputError("sample", "malformed sample payload"))
		return
	}

	input := &model.WQIInput{Sample: req.Sample, Location: req.Location}
	if err := input.Validate(); err != nil {
		a.renderError(w, r, err)
		return
	}

	result, raised, err := a.analysis.Analyze(r.Context(), input)
	if err != nil {
		a.renderError(w, r, err)
		return
	}
	sess.AddResult(*result, raised)

	a.respondJSON(w, http.StatusOK, map[string]interface{}{
		"result": result,
		"alerts": raised,
	})
}

// handleRiverAssessment runs the full batch pipeline for one sample:
// WQI, forecast, dissolved oxygen and the intervention scenario.
func (a *App) handleRiverAssessment(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	var req wqiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.renderError(w, r, core.NewInvalidInputError("sample", "malformed sample payload"))
		return
	}
	if err := req.Sample.Validate(); err != nil {
		a.renderError(w, r, err)
		return
	}

	assessment, err := a.analysis.AssessRiver(r.Context(), req.Sample, req.Location)
	if err != nil {
		a.renderError(w, r, err)
		return
	}
	for i, result := range assessment.Results {
		if i == 0 {
			sess.AddResult(result, assessment.Alerts)
			continue
		}
		sess.AddResult(result, nil)
	}

	a.respondJSON(w, http.StatusOK, map[string]interface{}{
		"results": assessment.Results,
		"alerts":  assessment.Alerts,
	})
}

type whatIfRequest struct {
	Sample        model.WaterSample  `json:"sample"`
	Location      string             `json:"location"`
	Perturbations map[string]float64 `json:"perturbations"`
}

// handleWhatIf compares a baseline WQI prediction against a perturbed
// scenario. The base sample is never mutated and nothing is persisted;
// the scenario exists only in the response and the session slider
// state.
func (a *App) handleWhatIf(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	var req whatIfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.renderError(w, r, core.NewInvalidInputError("whatif", "malformed what-if payload"))
		return
	}

	base := &model.WQIInput{Sample: req.Sample, Location: req.Location}
	baseline, scenario, err := a.whatIf.Compare(r.Context(), base, req.Perturbations)
	if err != nil {
		a.renderError(w, r, err)
		return
	}

	sess.WhatIf = req.Perturbations

	baseWQI, _ := baseline.Metric("wqi")
	scenWQI, _ := scenario.Metric("wqi")
	a.respondJSON(w, http.StatusOK, map[string]interface{}{
		"baseline": baseline,
		"scenario": scenario,
		"delta":    scenWQI - baseWQI,
	})
}
