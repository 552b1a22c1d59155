// Package listviewhttp exposes a list screen over HTTP. The view state of each
// screen lives in the caller's session so that sort and filter choices survive
// between requests.
package listviewhttp

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/cargodesk/cargodesk/internal/listview"
	"github.com/cargodesk/cargodesk/internal/platform/httpx"
	"github.com/cargodesk/cargodesk/internal/shared"
)

// Source supplies the unfiltered records of a screen.
type Source interface {
	ListRecords(ctx context.Context) ([]listview.Record, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]listview.Record, error)

// ListRecords implements Source.
func (f SourceFunc) ListRecords(ctx context.Context) ([]listview.Record, error) {
	return f(ctx)
}

// ListQuery carries paging parameters of GET requests.
type ListQuery struct {
	Page    int `schema:"page" validate:"gte=0"`
	PerPage int `schema:"per_page" validate:"gte=0,lte=500"`
}

// ListResponse is the rendered state of a screen.
type ListResponse struct {
	Screen     string             `json:"screen"`
	Title      string             `json:"title"`
	Columns    []listview.Column  `json:"columns"`
	Rows       []listview.Record  `json:"rows"`
	Pagination shared.Pagination  `json:"pagination"`
	Summary    listview.Summary   `json:"summary"`
	Sort       listview.SortState `json:"sort"`
	Status     string             `json:"status,omitempty"`
	Draft      listview.Criteria  `json:"draft"`
	Applied    listview.Criteria  `json:"applied"`
}

// Handler serves one list screen.
type Handler struct {
	logger   *slog.Logger
	screen   listview.Screen
	source   Source
	options  listview.Options
	metrics  *Metrics
	decoder  *schema.Decoder
	validate *validator.Validate
}

// NewHandler builds a handler for screen. It fails when the screen filters
// cannot be composed.
func NewHandler(logger *slog.Logger, screen listview.Screen, source Source, options listview.Options, metrics *Metrics) (*Handler, error) {
	if _, err := listview.NewView(screen, options); err != nil {
		return nil, fmt.Errorf("listview %s: %w", screen.Name, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &Handler{
		logger:   logger,
		screen:   screen,
		source:   source,
		options:  options,
		metrics:  metrics,
		decoder:  decoder,
		validate: validator.New(),
	}, nil
}

// MountRoutes registers the list and view-state endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/view/filters", h.setDraft)
	r.Post("/view/search", h.search)
	r.Post("/view/reset", h.reset)
	r.Post("/view/sort/{key}", h.toggleSort)
	r.Delete("/view/sort", h.resetSort)
	r.Delete("/view", h.discard)
}

func (h *Handler) sessionKey() string {
	return "listview:" + h.screen.Name
}

// load rebuilds the view from the session, or returns a fresh one.
func (h *Handler) load(sess *shared.Session) (*listview.View, error) {
	view, err := listview.NewView(h.screen, h.options)
	if err != nil {
		return nil, err
	}
	var state listview.State
	ok, err := sess.GetJSON(h.sessionKey(), &state)
	if err != nil {
		h.logger.Warn("discarding unreadable view state", slog.String("screen", h.screen.Name), slog.Any("error", err))
		sess.Delete(h.sessionKey())
		return view, nil
	}
	if ok {
		view.Restore(state)
	}
	return view, nil
}

func (h *Handler) save(sess *shared.Session, view *listview.View) error {
	return sess.SetJSON(h.sessionKey(), view.Snapshot())
}

// withView loads the view, applies mutate, persists the new state and renders.
func (h *Handler) withView(w http.ResponseWriter, r *http.Request, mutate func(*listview.View) error) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("list view without session", slog.String("screen", h.screen.Name))
		httpx.RespondError(w, shared.ErrSessionMissing)
		return
	}
	view, err := h.load(sess)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if mutate != nil {
		if err := mutate(view); err != nil {
			httpx.RespondError(w, err)
			return
		}
		if err := h.save(sess, view); err != nil {
			h.logger.Error("save view state", slog.String("screen", h.screen.Name), slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
	}
	h.render(w, r, view)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, view *listview.View) {
	var query ListQuery
	if err := h.decoder.Decode(&query, r.URL.Query()); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrBadRequest, err))
		return
	}
	if err := h.validate.Struct(query); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrBadRequest, err))
		return
	}

	records, err := h.source.ListRecords(r.Context())
	if err != nil {
		h.logger.Error("list records", slog.String("screen", h.screen.Name), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	rows := view.Rows(records)
	h.metrics.observeRender(h.screen.Name, len(records), len(rows))
	pagination := shared.NewPagination(query.Page, query.PerPage, len(rows))
	status, _ := view.StatusText()
	state := view.Snapshot()

	httpx.JSON(w, http.StatusOK, ListResponse{
		Screen:     h.screen.Name,
		Title:      h.screen.Title,
		Columns:    h.screen.Columns,
		Rows:       listview.Page(rows, pagination.Page, pagination.PerPage),
		Pagination: pagination,
		Summary:    view.Summary(records),
		Sort:       state.Sort,
		Status:     status,
		Draft:      state.Draft,
		Applied:    state.Applied,
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	h.withView(w, r, nil)
}

func (h *Handler) setDraft(w http.ResponseWriter, r *http.Request) {
	values, err := h.draftValues(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.withView(w, r, func(v *listview.View) error {
		v.Filters().SetDraftMany(values)
		return nil
	})
}

// draftValues reads field/value pairs from a JSON object or a form body.
func (h *Handler) draftValues(r *http.Request) (map[string]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var values map[string]string
		if err := httpx.DecodeJSON(r, &values); err != nil {
			return nil, err
		}
		return values, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrBadRequest, err)
	}
	values := make(map[string]string, len(r.PostForm))
	for field := range r.PostForm {
		values[field] = r.PostForm.Get(field)
	}
	return values, nil
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	h.withView(w, r, func(v *listview.View) error {
		v.Filters().Search()
		return nil
	})
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	h.withView(w, r, func(v *listview.View) error {
		v.Filters().Reset()
		return nil
	})
}

func (h *Handler) toggleSort(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	h.withView(w, r, func(v *listview.View) error {
		v.Sorter().Toggle(key)
		dir := ""
		if state := v.Sorter().State(); state.Active() {
			dir = string(state.Direction)
		}
		h.metrics.observeToggle(h.screen.Name, dir)
		return nil
	})
}

func (h *Handler) resetSort(w http.ResponseWriter, r *http.Request) {
	h.withView(w, r, func(v *listview.View) error {
		v.Sorter().Reset()
		return nil
	})
}

func (h *Handler) discard(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		sess.Delete(h.sessionKey())
	}
	h.withView(w, r, nil)
}
