package ui

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"pravaah/domain/core"
	"pravaah/domain/model"
	"pravaah/domain/station"
)

const maxUploadBytes = 16 << 20 // 16 MiB

// handleDetect runs microplastic detection on an uploaded image. The
// session role sets the confidence floor: public users only see
// high-confidence particles.
func (a *App) handleDetect(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.renderError(w, r, core.NewInvalidInputError("image", "upload too large or malformed"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		a.renderError(w, r, core.NewInvalidInputError("image", "no image uploaded"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		a.renderError(w, r, err)
		return
	}

	input := &model.DetectionInput{
		ImageData:     data,
		Filename:      header.Filename,
		MinConfidence: sess.Role.ConfidenceTier(),
	}
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

// handleNearby lists monitored water bodies near a location query.
func (a *App) handleNearby(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	limit := queryInt(r, "limit", 10)

	overviews, err := a.stations.Nearby(r.Context(), location, limit)
	if err != nil {
		a.renderError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, map[string]interface{}{"stations": overviews})
}

// handleStationSummary aggregates one station's WQI history.
func (a *App) handleStationSummary(w http.ResponseWriter, r *http.Request) {
	id := core.StationID(chi.URLParam(r, "id"))
	summary, err := a.stations.Summary(r.Context(), id, queryInt(r, "limit", 30))
	if err != nil {
		a.renderError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, summary)
}

var advisories = map[model.RiskBand]string{
	model.RiskLow: `## Low contamination

Particle counts are within the expected background range. The water is
**suitable for routine use**. No action needed.`,
	model.RiskModerate: `## Moderate contamination

Elevated microplastic counts detected.

* Avoid drinking untreated water from this source
* Filter or boil before household use
* Consider submitting a report so officials can follow up`,
	model.RiskSevere: `## Severe contamination

Particle counts are well above safe levels.

* **Do not drink or cook** with this water
* Avoid bathing and washing food
* Submit a report — severe readings are forwarded to the local water board`,
}

// handleAdvisory renders the public health advisory for the last
// detection in the session, as HTML from the markdown source.
func (a *App) handleAdvisory(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	band := model.RiskLow
	if last := sess.LastResult(model.KindDetection); last != nil {
		if count, ok := last.Metric("particle_count"); ok {
			band = model.BandForCount(int(count))
		}
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	rendered := markdown.ToHTML([]byte(advisories[band]), p, renderer)

	a.respondJSON(w, http.StatusOK, map[string]interface{}{
		"risk_band": band,
		"advisory":  string(rendered),
	})
}

// handleSubmitCitizenReport files a contamination report from the
// public view, stamped with the session's last detection.
func (a *App) handleSubmitCitizenReport(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	if err := r.ParseForm(); err != nil {
		a.renderError(w, r, core.NewInvalidInputError("form", "malformed form"))
		return
	}

	count := 0
	if last := sess.LastResult(model.KindDetection); last != nil {
		if v, ok := last.Metric("particle_count"); ok {
			count = int(v)
		}
	}

	report := &station.CitizenReport{
		ID:            core.ReportID(core.NewID()),
		Location:      r.FormValue("location"),
		ReporterName:  r.FormValue("reporter_name"),
		Contact:       r.FormValue("contact"),
		Comments:      r.FormValue("comments"),
		ParticleCount: count,
		RiskBand:      model.BandForCount(count),
		SubmittedAt:   core.Now(),
	}
	if err := report.Validate(); err != nil {
		a.renderError(w, r, err)
		return
	}
	if err := a.citizenReports.Save(r.Context(), report); err != nil {
		a.renderError(w, r, err)
		return
	}

	a.respondJSON(w, http.StatusCreated, report)
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
