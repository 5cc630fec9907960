package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"provpush/internal/application/command/push_provisioning"
	"provpush/internal/application/query/get_catalog"
	"provpush/internal/application/version"
	"provpush/internal/domain/model"
	"provpush/pkg/cqrs"
	log "provpush/pkg/log"
	"provpush/pkg/metrics"
)

// maxFormBytes caps the size of a submitted form.
const maxFormBytes = 1 << 20

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Dependencies are the collaborators of a Handler. Commands, Queries and
// Store are required.
type Dependencies struct {
	Commands cqrs.CommandBus
	Queries  cqrs.QueryBus
	Store    sessions.Store
	// Location is the zone push times are entered in. Defaults to UTC.
	Location *time.Location
	// Metrics is reported on /healthz. Defaults to process metrics only.
	Metrics *metrics.MetricFactory
	// Pushed and Failed count push outcomes. Either may be nil.
	Pushed *metrics.Counter
	Failed *metrics.Counter
	// LookupAddr resolves client addresses for the audit log. Defaults to
	// net.DefaultResolver.LookupAddr.
	LookupAddr func(ctx context.Context, addr string) ([]string, error)
	// Now defaults to time.Now.
	Now func() time.Time
}

// Handler serves the provisioning form.
type Handler struct {
	commands   cqrs.CommandBus
	queries    cqrs.QueryBus
	store      sessions.Store
	location   *time.Location
	metrics    *metrics.MetricFactory
	pushed     *metrics.Counter
	failed     *metrics.Counter
	lookupAddr func(ctx context.Context, addr string) ([]string, error)
	now        func() time.Time
}

// NewHandler returns a Handler for deps.
func NewHandler(deps Dependencies) *Handler {
	h := &Handler{
		commands:   deps.Commands,
		queries:    deps.Queries,
		store:      deps.Store,
		location:   deps.Location,
		metrics:    deps.Metrics,
		pushed:     deps.Pushed,
		failed:     deps.Failed,
		lookupAddr: deps.LookupAddr,
		now:        deps.Now,
	}
	if h.location == nil {
		h.location = time.UTC
	}
	if h.metrics == nil {
		h.metrics = metrics.NewMetricsFactory(time.Now())
	}
	if h.lookupAddr == nil {
		h.lookupAddr = net.DefaultResolver.LookupAddr
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

type indexPage struct {
	Terminals   []model.Terminal
	DefaultTime string
	Zone        string
	Flashes     flashes
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	catalog, err := cqrs.DispatchAs[model.Catalog](r.Context(), h.queries, get_catalog.GetCatalogQuery{})
	if err != nil {
		log.Error("Failed to load catalog", "error", err, "request_id", requestIDFromContext(r.Context()))
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	page := indexPage{
		Terminals:   catalog.Terminals,
		DefaultTime: model.FormatPushTime(h.now(), h.location),
		Zone:        h.location.String(),
		Flashes:     h.popFlashes(w, r),
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		log.Error("Failed to render form", "error", err, "request_id", requestIDFromContext(r.Context()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestIDFromContext(ctx)
	ip := clientIP(r)
	log.Info("Form submitted", "client_ip", ip, "client_hostname", h.lookupHostname(ctx, ip), "request_id", reqID)

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, fmt.Errorf("could not read form: %w", err))
		return
	}

	var result push_provisioning.PushResult
	cmd := push_provisioning.PushProvisioningCommand{
		PushTime: r.PostForm.Get(fieldPushTime),
		Entries:  entriesFromForm(r.PostForm),
		Result:   &result,
	}
	if err := h.commands.Dispatch(ctx, cmd); err != nil {
		h.fail(w, r, err)
		return
	}

	if h.pushed != nil {
		h.pushed.Inc()
	}
	log.Info("CSV file generated and uploaded", "file", result.Filename, "rows", result.Rows, "client_ip", ip, "request_id", reqID)
	h.addFlash(w, r, flashSuccess, "CSV generated and uploaded: "+result.Filename)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if h.failed != nil {
		h.failed.Inc()
	}
	log.Warn("Push rejected", "error", err, "request_id", requestIDFromContext(r.Context()))
	h.addFlash(w, r, flashError, "Error: "+userMessage(err))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// userMessage returns the text shown for err. Upload failures are reported
// generically; their details are only logged.
func userMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrUploadFailed):
		return "upload to the SFTP server failed, the file was kept locally on the form host for recovery"
	case errors.Is(err, cqrs.ErrBusShuttingDown):
		return "the server is shutting down, please retry shortly"
	default:
		return err.Error()
	}
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Metrics map[string]string `json:"metrics"`
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:  "ok",
		Version: version.GetVersion(),
		Metrics: h.metrics.Collect(),
	})
}
