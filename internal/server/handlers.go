package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/c4export/pkg/buildinfo"
	"github.com/matzehuels/c4export/pkg/diagram"
	"github.com/matzehuels/c4export/pkg/errors"
	"github.com/matzehuels/c4export/pkg/pipeline"
)

// Response headers set by /export.
const (
	HeaderExportID    = "X-Export-Id"
	HeaderExportPages = "X-Export-Pages"
	HeaderExportEdges = "X-Export-Edges"
	HeaderExportPage  = "X-Export-Page"
	HeaderCache       = "X-Cache"
)

var previewContentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readDocument(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.exportOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id := uuid.NewString()
	result, err := s.runner.Export(r.Context(), doc, opts)
	if err != nil {
		s.logger.Warn("export failed", "id", id, "error", err)
		writeError(w, err)
		return
	}
	s.logger.Info("export",
		"id", id,
		"file", result.Filename,
		"pages", result.Summary.PageCount(),
		"edges", result.Summary.Edges,
		"cached", result.CacheHit)

	h := w.Header()
	h.Set("Content-Type", "application/xml; charset=utf-8")
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename}))
	h.Set(HeaderExportID, id)
	h.Set(HeaderExportPages, strconv.Itoa(result.Summary.PageCount()))
	h.Set(HeaderExportEdges, strconv.Itoa(result.Summary.Edges))
	h.Set(HeaderCache, cacheStatus(result.CacheHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readDocument(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Summarize(doc, s.logger))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readDocument(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	detailed, err := boolParam(q.Get("detailed"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts := pipeline.PreviewOptions{
		Page:     q.Get("page"),
		Format:   q.Get("format"),
		Detailed: detailed,
		Logger:   s.logger,
	}
	data, page, err := s.runner.Preview(r.Context(), doc, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	format := opts.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	w.Header().Set("Content-Type", previewContentTypes[format])
	w.Header().Set(HeaderExportPage, page)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// =============================================================================
// Request Decoding
// =============================================================================

// readDocument decodes the request body as JSON or YAML.
func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (diagram.Document, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	data, err := io.ReadAll(body)
	if err != nil {
		return diagram.Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	return diagram.UnmarshalDocument(data, formatOf(r))
}

func formatOf(r *http.Request) diagram.Format {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return diagram.FormatYAML
	}
	return diagram.FormatJSON
}

// exportOptions builds pipeline options from the server defaults and the
// query string: name, page (repeatable), wrap, legend_gap and refresh.
func (s *Server) exportOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	opts.Logger = s.logger
	opts.Now = s.now

	q := r.URL.Query()
	if v := q.Get("name"); v != "" {
		opts.FilePrefix = v
	}
	opts.Pages = q["page"]
	if v := q.Get("wrap"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "wrap must be an integer: %q", v)
		}
		opts.WrapWidth = n
	}
	if v := q.Get("legend_gap"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "legend_gap must be a number: %q", v)
		}
		opts.LegendGap = f
	}
	refresh, err := boolParam(q.Get("refresh"))
	if err != nil {
		return opts, err
	}
	opts.Refresh = refresh
	return opts, nil
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid boolean %q", v)
	}
	return b, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// =============================================================================
// Responses
// =============================================================================

// errorBody is the JSON error response.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps error codes to HTTP statuses.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDocument, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidFormat:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodePageNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// writeError writes err as a JSON error. Internal errors hide their details.
func writeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		writeErrorCode(w, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE",
			fmt.Sprintf("document exceeds %d bytes", tooLarge.Limit))
		return
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	msg := strings.TrimPrefix(err.Error(), string(code)+": ")
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeErrorCode(w, status, string(code), msg)
}

func writeErrorCode(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
