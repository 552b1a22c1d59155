package billing

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	listviewhttp "github.com/cargodesk/cargodesk/internal/listview/http"
	"github.com/cargodesk/cargodesk/internal/platform/httpx"
)

// Handler exposes invoices over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
	list    *listviewhttp.Handler
}

// NewHandler builds the handler. list may be nil when only CRUD is needed.
func NewHandler(logger *slog.Logger, service *Service, list *listviewhttp.Handler) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, list: list}
}

// MountRoutes registers the list screen and CRUD endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	if h.list != nil {
		h.list.MountRoutes(r)
	}
	r.Post("/", h.create)
	r.Get("/{id:[0-9]+}", h.show)
	r.Put("/{id:[0-9]+}", h.update)
	r.Delete("/{id:[0-9]+}", h.delete)
	r.Post("/{id:[0-9]+}/pay", h.pay)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	inv, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Warn("create invoice", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req Request
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	inv, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Warn("update invoice", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	inv, err := h.service.MarkPaid(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}
