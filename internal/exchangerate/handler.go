package exchangerate

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/cargodesk/cargodesk/internal/platform/httpx"
)

// ConvertQuery is the query string of the convert endpoint.
type ConvertQuery struct {
	Amount float64 `schema:"amount" validate:"gte=0"`
	From   string  `schema:"from" validate:"required,iso4217"`
	To     string  `schema:"to" validate:"required,iso4217"`
}

// Handler exposes rates over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	decoder  *schema.Decoder
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &Handler{logger: logger, service: service, decoder: decoder, validate: validator.New()}
}

// MountRoutes registers the endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.latest)
	r.Get("/convert", h.convert)
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	rates, err := h.service.Latest(r.Context())
	if err != nil {
		h.logger.Error("latest rates", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rates)
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	var q ConvertQuery
	if err := h.decoder.Decode(&q, r.URL.Query()); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrBadRequest, err))
		return
	}
	q.From = strings.ToUpper(q.From)
	q.To = strings.ToUpper(q.To)
	if err := h.validate.Struct(q); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrBadRequest, err))
		return
	}
	conv, err := h.service.Convert(r.Context(), q.Amount, q.From, q.To)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, conv)
}
