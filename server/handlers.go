package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"tagboard/export"
	"tagboard/pipeline"
	"tagboard/session"
	"tagboard/types"
)

type contextKey int

const sessionKey contextKey = iota

// sessionCtx resolves the session ID path parameter.
func (s *Server) sessionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.sessions.Get(chi.URLParam(r, "sessionID"))
		if !ok {
			renderError(w, r, http.StatusNotFound, "session not found")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	return r.Context().Value(sessionKey).(*session.Session)
}

func renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": msg})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	dataset, err := s.loader.Load(s.cfg.DataFile)
	if err != nil {
		// LoadError and SchemaError halt outright - no session, no
		// partial rendering.
		s.logger.Error().Err(err).Msg("dataset load failed")
		renderError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	s.metrics.RecordLoad(r.Context(), len(dataset.Records), time.Since(start).Seconds())

	sess := s.sessions.Open(dataset)
	s.metrics.SessionOpened(r.Context())

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"session_id": sess.ID,
		"records":    len(sess.Records()),
	})
}

func (s *Server) closeSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.Close(sessionFrom(r).ID)
	s.metrics.SessionClosed(r.Context())
	render.NoContent(w, r)
}

type filterOptionsResponse struct {
	Departments  []string `json:"departments"`
	Services     []string `json:"services"`
	Regions      []string `json:"regions"`
	Environments []string `json:"environments"`
}

func (s *Server) filterOptions(w http.ResponseWriter, r *http.Request) {
	records := sessionFrom(r).Records()
	withAll := func(values []string) []string {
		return append([]string{pipeline.AllValues}, values...)
	}

	render.JSON(w, r, filterOptionsResponse{
		Departments:  withAll(pipeline.FieldOptions(records, types.FieldDepartment)),
		Services:     withAll(pipeline.FieldOptions(records, types.FieldService)),
		Regions:      withAll(pipeline.FieldOptions(records, types.FieldRegion)),
		Environments: withAll(pipeline.FieldOptions(records, types.FieldEnvironment)),
	})
}

func (s *Server) setFilters(w http.ResponseWriter, r *http.Request) {
	var sel pipeline.Selections
	if err := render.DecodeJSON(r.Body, &sel); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid filter selections")
		return
	}

	sess := sessionFrom(r)
	sess.SetSelections(sel)
	render.JSON(w, r, map[string]int{"records": len(sess.Filtered())})
}

type summaryResponse struct {
	Tagging      pipeline.TaggingSummary    `json:"tagging"`
	Costs        pipeline.CostSummary       `json:"costs"`
	Completeness pipeline.CompletenessStats `json:"completeness"`
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	view := sessionFrom(r).Filtered()
	render.JSON(w, r, summaryResponse{
		Tagging:      pipeline.Summarize(view),
		Costs:        pipeline.CostRollup(view),
		Completeness: pipeline.Completeness(view),
	})
}

func (s *Server) records(w http.ResponseWriter, r *http.Request) {
	view := sessionFrom(r).Filtered()
	limit := queryInt(r, "limit", s.cfg.PreviewRows)

	preview := view
	if limit > 0 && limit < len(preview) {
		preview = preview[:limit]
	}
	render.JSON(w, r, map[string]any{
		"total":   len(view),
		"records": preview,
	})
}

func (s *Server) untagged(w http.ResponseWriter, r *http.Request) {
	view := pipeline.UntaggedByCost(sessionFrom(r).Filtered())
	total := len(view)
	cost := pipeline.CostRollup(view).Total

	if limit := queryInt(r, "limit", 0); limit > 0 && limit < len(view) {
		view = view[:limit]
	}
	render.JSON(w, r, map[string]any{
		"total":   total,
		"cost":    cost,
		"records": view,
	})
}

func (s *Server) groupCosts(w http.ResponseWriter, r *http.Request) {
	field, ok := types.FieldByName(chi.URLParam(r, "field"))
	if !ok {
		renderError(w, r, http.StatusBadRequest, "unknown field")
		return
	}
	render.JSON(w, r, pipeline.GroupCosts(sessionFrom(r).Filtered(), field))
}

func (s *Server) topGroup(w http.ResponseWriter, r *http.Request) {
	field, ok := types.FieldByName(chi.URLParam(r, "field"))
	if !ok {
		renderError(w, r, http.StatusBadRequest, "unknown field")
		return
	}

	top, found := pipeline.TopGroup(sessionFrom(r).Filtered(), field)
	render.JSON(w, r, map[string]any{
		"found": found,
		"group": top,
	})
}

func (s *Server) completeness(w http.ResponseWriter, r *http.Request) {
	view := sessionFrom(r).Filtered()
	n := queryInt(r, "n", s.cfg.LowestN)

	render.JSON(w, r, map[string]any{
		"stats":  pipeline.Completeness(view),
		"lowest": pipeline.LowestCompleteness(view, n),
	})
}

func (s *Server) missingCensus(w http.ResponseWriter, r *http.Request) {
	view := sessionFrom(r).Filtered()
	if r.URL.Query().Get("scope") == "all" {
		render.JSON(w, r, pipeline.MissingFieldCensus(view))
		return
	}
	render.JSON(w, r, pipeline.MissingTagCensus(view))
}

func (s *Server) crosstab(w http.ResponseWriter, r *http.Request) {
	rowField, okRow := types.FieldByName(r.URL.Query().Get("row"))
	colField, okCol := types.FieldByName(r.URL.Query().Get("col"))
	if !okRow || !okCol {
		renderError(w, r, http.StatusBadRequest, "row and col must be valid field names")
		return
	}
	render.JSON(w, r, pipeline.CrossTabCosts(sessionFrom(r).Filtered(), rowField, colField))
}

func (s *Server) environments(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, pipeline.EnvironmentSummary(sessionFrom(r).Filtered()))
}

func (s *Server) startRemediation(w http.ResponseWriter, r *http.Request) {
	records := sessionFrom(r).StartRemediation()
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"rows":    len(records),
		"records": records,
	})
}

func (s *Server) remediationRecords(w http.ResponseWriter, r *http.Request) {
	records, err := sessionFrom(r).RemediationRecords()
	if err != nil {
		renderRemediationError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{
		"rows":    len(records),
		"records": records,
	})
}

type editRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) editRemediation(w http.ResponseWriter, r *http.Request) {
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid row index")
		return
	}

	var req editRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid edit request")
		return
	}
	field, ok := types.FieldByName(req.Field)
	if !ok {
		renderError(w, r, http.StatusBadRequest, "unknown field")
		return
	}

	if err := sessionFrom(r).EditRemediation(row, field, req.Value); err != nil {
		renderRemediationError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (s *Server) addRemediationRow(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := render.DecodeJSON(r.Body, &values); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid row")
		return
	}

	var record types.Record
	for name, value := range values {
		field, ok := types.FieldByName(name)
		if !ok {
			renderError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown field %q", name))
			return
		}
		record.SetValue(field, value)
	}

	if err := sessionFrom(r).AddRemediationRow(record); err != nil {
		renderRemediationError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, record)
}

func (s *Server) removeRemediationRow(w http.ResponseWriter, r *http.Request) {
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid row index")
		return
	}

	if err := sessionFrom(r).RemoveRemediationRow(row); err != nil {
		renderRemediationError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (s *Server) remediationComparison(w http.ResponseWriter, r *http.Request) {
	cmp, err := sessionFrom(r).RemediationComparison()
	if err != nil {
		renderRemediationError(w, r, err)
		return
	}
	render.JSON(w, r, cmp)
}

// exportCSV streams one of the three CSV downloads. Row order always
// matches the in-memory view at export time.
func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	kind := chi.URLParam(r, "kind")

	var records []types.Record
	var filename string
	switch kind {
	case "untagged":
		records = pipeline.UntaggedByCost(sess.Filtered())
		filename = "untagged_resources.csv"
	case "remediated":
		var err error
		records, err = sess.RemediationRecords()
		if err != nil {
			renderRemediationError(w, r, err)
			return
		}
		filename = "remediated_resources.csv"
	case "full":
		records = sess.Filtered()
		filename = "full_dataset.csv"
	default:
		renderError(w, r, http.StatusNotFound, "unknown export kind")
		return
	}

	s.metrics.RecordExport(r.Context(), kind)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteRecords(w, records); err != nil {
		s.logger.Error().Err(err).Str("kind", kind).Msg("export write failed")
	}
}

func renderRemediationError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, session.ErrNoRemediation) {
		renderError(w, r, http.StatusConflict, err.Error())
		return
	}
	renderError(w, r, http.StatusBadRequest, err.Error())
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
