package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"shortener/internal/domain"
	"shortener/internal/usecase"
	"shortener/pkg/problemdetails"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for link operations
type Handler struct {
	service        *usecase.LinkService
	baseURL        string
	fallbackURL    string
	allowAnonymous bool
	logger         *zap.Logger
}

// NewHandler creates a new Handler
func NewHandler(service *usecase.LinkService, baseURL, fallbackURL string, allowAnonymous bool, logger *zap.Logger) *Handler {
	return &Handler{
		service:        service,
		baseURL:        baseURL,
		fallbackURL:    fallbackURL,
		allowAnonymous: allowAnonymous,
		logger:         logger,
	}
}

// CreateLinkRequest represents the request body for creating a link
type CreateLinkRequest struct {
	OriginalURL string `json:"original_url"`
	CustomAlias string `json:"custom_alias,omitempty"`
}

// LinkResponse represents a link in API responses
type LinkResponse struct {
	ID          int64     `json:"id"`
	OriginalURL string    `json:"original_url"`
	ShortCode   string    `json:"short_code"`
	CustomAlias string    `json:"custom_alias,omitempty"`
	ShortURL    string    `json:"short_url"`
	Clicks      int64     `json:"clicks"`
	CreatedAt   time.Time `json:"created_at"`
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) linkResponse(link *domain.Link) LinkResponse {
	return LinkResponse{
		ID:          link.ID,
		OriginalURL: link.OriginalURL,
		ShortCode:   link.ShortCode,
		CustomAlias: link.CustomAlias,
		ShortURL:    h.baseURL + "/" + link.Code(),
		Clicks:      link.Clicks,
		CreatedAt:   link.CreatedAt,
	}
}

// CreateLink handles POST /api/links
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeInvalidRequest,
			"Invalid Request",
			"Request body must be valid JSON with 'original_url' field",
		))
		return
	}

	ownerID := UserIDFromContext(r.Context())
	if ownerID == nil && !h.allowAnonymous {
		writeProblem(w, problemdetails.New(
			http.StatusUnauthorized,
			problemdetails.TypeUnauthorized,
			"Unauthorized",
			"Authentication is required to create links",
		))
		return
	}

	link, err := h.service.Create(r.Context(), ownerID, req.OriginalURL, req.CustomAlias)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidURL):
			writeProblem(w, problemdetails.New(
				http.StatusBadRequest,
				problemdetails.TypeInvalidURL,
				"Invalid URL",
				err.Error(),
			))
		case errors.Is(err, domain.ErrInvalidAlias):
			writeProblem(w, problemdetails.New(
				http.StatusBadRequest,
				problemdetails.TypeInvalidAlias,
				"Invalid Alias",
				err.Error(),
			))
		case errors.Is(err, domain.ErrAliasTaken):
			writeProblem(w, problemdetails.New(
				http.StatusConflict,
				problemdetails.TypeAliasTaken,
				"Alias Taken",
				"The requested alias is already in use",
			))
		case errors.Is(err, domain.ErrCodeExhausted):
			h.logger.Error("short code allocation exhausted", zap.Error(err))
			writeProblem(w, problemdetails.New(
				http.StatusInternalServerError,
				problemdetails.TypeInternalError,
				"Internal Server Error",
				"Failed to generate short code",
			))
		default:
			h.logger.Error("failed to create link", zap.Error(err))
			writeProblem(w, problemdetails.New(
				http.StatusInternalServerError,
				problemdetails.TypeInternalError,
				"Internal Server Error",
				"Internal server error",
			))
		}
		return
	}

	writeJSON(w, http.StatusCreated, h.linkResponse(link))
}

// ListLinks handles GET /api/links
func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.List(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		h.logger.Error("failed to list links", zap.Error(err))
		writeProblem(w, problemdetails.New(
			http.StatusInternalServerError,
			problemdetails.TypeInternalError,
			"Internal Server Error",
			"Internal server error",
		))
		return
	}

	responses := lo.Map(links, func(link *domain.Link, _ int) LinkResponse {
		return h.linkResponse(link)
	})
	writeJSON(w, http.StatusOK, responses)
}

// DeleteLink handles DELETE /api/links/{id}
func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	ownerID := UserIDFromContext(r.Context())
	if ownerID == nil {
		writeProblem(w, problemdetails.New(
			http.StatusUnauthorized,
			problemdetails.TypeUnauthorized,
			"Unauthorized",
			"Authentication is required to delete links",
		))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, problemdetails.New(
			http.StatusNotFound,
			problemdetails.TypeNotFound,
			"Not Found",
			"No such link",
		))
		return
	}

	if err := h.service.Delete(r.Context(), id, *ownerID); err != nil {
		switch {
		case errors.Is(err, domain.ErrLinkNotFound):
			writeProblem(w, problemdetails.New(
				http.StatusNotFound,
				problemdetails.TypeNotFound,
				"Not Found",
				"No such link",
			))
		case errors.Is(err, domain.ErrForbidden):
			writeProblem(w, problemdetails.New(
				http.StatusForbidden,
				problemdetails.TypeForbidden,
				"Forbidden",
				"The link belongs to another user",
			))
		default:
			h.logger.Error("failed to delete link", zap.Error(err))
			writeProblem(w, problemdetails.New(
				http.StatusInternalServerError,
				problemdetails.TypeInternalError,
				"Internal Server Error",
				"Internal server error",
			))
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Redirect handles GET /{code}.
//
// Visitors following a short link never see an error page: an unknown code or
// a failing store sends them to the fallback destination instead, and the
// failure is logged for operators. Responses carry no-store directives so
// every visit reaches the service and is counted.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	target, err := h.service.Resolve(r.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			h.logger.Info("unknown short code", zap.String("code", code))
		} else {
			h.logger.Error("failed to resolve short code", zap.String("code", code), zap.Error(err))
		}
		target = h.fallbackURL
	}

	setNoCacheHeaders(w)
	http.Redirect(w, r, target, http.StatusFound)
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func setNoCacheHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}
