package server

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/iwvelando/inflation-forecast/internal/config"
	"github.com/iwvelando/inflation-forecast/internal/form"
	"github.com/iwvelando/inflation-forecast/pkg/constants"
	"github.com/iwvelando/inflation-forecast/pkg/output"
	"github.com/iwvelando/inflation-forecast/pkg/validation"
	"go.uber.org/zap"
)

//go:embed templates/page.html.tmpl
var pageSource string

var pageTemplate = template.Must(output.NewTemplate("page", pageSource))

type handler struct {
	logger      *zap.Logger
	settings    *config.Configuration
	maxBodySize int64
	version     string
	now         func() time.Time
}

// NewHandler constructs the HTTP handler that serves the calculator page and projection API.
func NewHandler(logger *zap.Logger, settings *config.Configuration, maxBodySize int64, version string) http.Handler {
	return newHandler(logger, settings, maxBodySize, version).routes(logger)
}

func newHandler(logger *zap.Logger, settings *config.Configuration, maxBodySize int64, version string) *handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings == nil {
		settings = &config.Configuration{
			Currency: constants.DefaultCurrency,
			Output:   config.OutputConfig{Format: constants.OutputFormatPretty, Theme: constants.ThemeDark},
		}
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	return &handler{
		logger:      logger,
		settings:    settings,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		now:         time.Now,
	}
}

func (h *handler) routes(logger *zap.Logger) http.Handler {
	router := chi.NewRouter()
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.respondErrorWithOp(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), "server.router")
	})
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.respondErrorWithOp(w, http.StatusNotFound, http.StatusText(http.StatusNotFound), "server.router")
	})

	router.Get("/", h.handlePage)
	router.Get("/healthz", h.handleHealth)
	router.Route("/api", func(r chi.Router) {
		r.Get("/projection", h.handleProjectionQuery)
		r.Post("/projection", h.handleProjectionBody)
		r.Get("/projection.csv", h.handleProjectionCSV)
		r.Get("/version", h.handleVersion)
	})

	return router
}

type pageData struct {
	output.View
	Form      form.Raw
	Errors    []string
	HasResult bool
	CSVLink   string
	Version   string
}

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// projectionRequest accepts each field as either a JSON string or number.
type projectionRequest struct {
	StartYear     flexValue `json:"startYear"`
	EndYear       flexValue `json:"endYear"`
	InflationRate flexValue `json:"inflationRate"`
	MonthlyIncome flexValue `json:"monthlyIncome"`
}

type flexValue string

func (v *flexValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*v = ""
		return nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = flexValue(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(trimmed), 64); err != nil {
		return fmt.Errorf("expected a string or number, got %s", trimmed)
	}
	*v = flexValue(trimmed)
	return nil
}

func (p projectionRequest) raw() form.Raw {
	return form.Raw{
		StartYear:     string(p.StartYear),
		EndYear:       string(p.EndYear),
		InflationRate: string(p.InflationRate),
		MonthlyIncome: string(p.MonthlyIncome),
	}
}

func rawFromQuery(q url.Values) form.Raw {
	return form.Raw{
		StartYear:     q.Get(form.FieldStartYear),
		EndYear:       q.Get(form.FieldEndYear),
		InflationRate: q.Get(form.FieldInflationRate),
		MonthlyIncome: q.Get(form.FieldMonthlyIncome),
	}
}

// project parses raw against the configured defaults and computes the report.
func (h *handler) project(raw form.Raw, theme string) (output.Report, error) {
	res, err := form.Parse(raw, h.settings.Defaults(h.now()))
	if err != nil {
		return output.Report{}, err
	}
	return output.NewReport(res.Input, h.settings.Currency, theme, res.Warnings), nil
}

// theme prefers a valid ?theme= value, then the configured theme.
func (h *handler) theme(r *http.Request) string {
	requested := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("theme")))
	if validation.ValidateTheme(requested) == nil {
		return requested
	}
	if validation.ValidateTheme(h.settings.Output.Theme) == nil {
		return h.settings.Output.Theme
	}
	return constants.ThemeDark
}

func (h *handler) handlePage(w http.ResponseWriter, r *http.Request) {
	raw := rawFromQuery(r.URL.Query())
	theme := h.theme(r)

	data := pageData{
		Form:    withDefaults(raw, h.settings.Defaults(h.now()).Raw()),
		Version: h.version,
	}
	status := http.StatusOK

	report, err := h.project(raw, theme)
	if err != nil {
		status = http.StatusBadRequest
		data.View = output.View{Report: output.Report{Currency: h.settings.Currency, Theme: theme}}
		data.Errors = errorMessages(err)
		h.logger.Info("rejected calculator input",
			zap.String("op", "server.handlePage"),
			zap.Strings("errors", data.Errors),
		)
	} else {
		data.View = output.NewView(report)
		data.HasResult = true
		data.CSVLink = csvLink(report)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render page: %v", err), "server.handlePage")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write page", zap.String("op", "server.handlePage"), zap.Error(err))
	}
}

func (h *handler) handleProjectionQuery(w http.ResponseWriter, r *http.Request) {
	h.respondProjection(w, rawFromQuery(r.URL.Query()), h.theme(r), "server.handleProjectionQuery")
}

func (h *handler) handleProjectionBody(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjectionBody"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return
	}

	var req projectionRequest
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
			return
		}
	}

	h.respondProjection(w, req.raw(), h.theme(r), op)
}

func (h *handler) respondProjection(w http.ResponseWriter, raw form.Raw, theme, op string) {
	start := time.Now()
	report, err := h.project(raw, theme)
	if err != nil {
		h.respondInputError(w, err, op)
		return
	}

	h.logger.Info("projection computed",
		zap.String("op", op),
		zap.Int("years", len(report.Records)),
		zap.Int("warnings", len(report.Warnings)),
		zap.Duration("duration", time.Since(start)),
	)
	h.writeJSON(w, http.StatusOK, output.NewPayload(report))
}

func (h *handler) handleProjectionCSV(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjectionCSV"

	report, err := h.project(rawFromQuery(r.URL.Query()), h.theme(r))
	if err != nil {
		h.respondInputError(w, err, op)
		return
	}

	formatter := output.CSVFormatter{}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, report); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", formatter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q",
		fmt.Sprintf("income-projection-%d-%d.csv", report.Input.StartYear, report.Input.EndYear)))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write CSV", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *handler) respondInputError(w http.ResponseWriter, err error, op string) {
	resp := errorResponse{Error: err.Error()}
	for _, fe := range form.Errors(err) {
		resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Value: fe.Value, Reason: fe.Reason})
	}

	h.logger.Info("rejected projection input",
		zap.String("op", op),
		zap.Int("status", http.StatusBadRequest),
		zap.Error(err),
	)
	h.writeJSON(w, http.StatusBadRequest, resp)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// withDefaults fills blank fields so the form shows the values actually used.
func withDefaults(raw, defaults form.Raw) form.Raw {
	pick := func(v, d string) string {
		if strings.TrimSpace(v) == "" {
			return d
		}
		return v
	}
	return form.Raw{
		StartYear:     pick(raw.StartYear, defaults.StartYear),
		EndYear:       pick(raw.EndYear, defaults.EndYear),
		InflationRate: pick(raw.InflationRate, defaults.InflationRate),
		MonthlyIncome: pick(raw.MonthlyIncome, defaults.MonthlyIncome),
	}
}

func errorMessages(err error) []string {
	fieldErrs := form.Errors(err)
	if len(fieldErrs) == 0 {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Error())
	}
	return msgs
}

func csvLink(report output.Report) string {
	q := url.Values{}
	q.Set(form.FieldStartYear, strconv.Itoa(report.Input.StartYear))
	q.Set(form.FieldEndYear, strconv.Itoa(report.Input.EndYear))
	q.Set(form.FieldInflationRate, strconv.FormatFloat(report.Input.InflationRatePercent, 'f', -1, 64))
	q.Set(form.FieldMonthlyIncome, strconv.FormatFloat(report.Input.MonthlyIncome, 'f', -1, 64))
	return "/api/projection.csv?" + q.Encode()
}
