package report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/schoolhub/schoolhub-api/internal/domain/content"
	"github.com/schoolhub/schoolhub-api/internal/domain/user"
	"github.com/schoolhub/schoolhub-api/internal/middleware"
	"github.com/schoolhub/schoolhub-api/internal/pkg/response"
	"github.com/schoolhub/schoolhub-api/internal/pkg/validator"
)

// Handler handles report HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates report handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit handles POST /reports
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	reporterID := middleware.GetUserID(r.Context())

	var req SubmitReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rep, err := h.service.Submit(r.Context(), reporterID, &req)
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			response.TooManyRequests(w)
			return
		}
		log.Error().Err(err).Msg("failed to submit report")
		response.InternalError(w)
		return
	}

	response.Created(w, rep)
}

// ListMine handles GET /reports/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	reporterID := middleware.GetUserID(r.Context())

	reports, err := h.service.ListMine(r.Context(), reporterID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list own reports")
		response.InternalError(w)
		return
	}

	response.OK(w, reports)
}

// List handles GET /reports (moderator)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f := parseListFilter(r)

	reports, err := h.service.List(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("failed to list reports")
		response.InternalError(w)
		return
	}

	total, err := h.service.Count(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reports")
		response.InternalError(w)
		return
	}

	response.WithMeta(w, reports, response.Meta{
		Total:  total,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
}

// ListOverdue handles GET /reports/overdue (moderator)
func (h *Handler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListOverdue(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list overdue reports")
		response.InternalError(w)
		return
	}

	response.OK(w, reports)
}

// GetStats handles GET /reports/stats (moderator)
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get report stats")
		response.InternalError(w)
		return
	}

	response.OK(w, stats)
}

// Get handles GET /reports/{id} (moderator)
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			response.NotFound(w, "Report not found")
			return
		}
		log.Error().Err(err).Msg("failed to get report")
		response.InternalError(w)
		return
	}

	response.OK(w, detail)
}

// Claim handles POST /reports/{id}/claim (moderator)
func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	moderatorID := middleware.GetUserID(r.Context())

	if err := h.service.StartReview(r.Context(), id, moderatorID); err != nil {
		switch {
		case errors.Is(err, ErrReportNotFound):
			response.NotFound(w, "Report not found")
		case errors.Is(err, ErrAlreadyResolved):
			response.Conflict(w, "Report has already been resolved")
		case errors.Is(err, ErrConcurrentModification):
			response.Conflict(w, "Report is already being reviewed")
		default:
			log.Error().Err(err).Str("report_id", id.String()).Msg("failed to claim report")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Report claimed for review"})
}

// Process handles POST /reports/{id}/process (moderator)
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	moderatorID := middleware.GetUserID(r.Context())

	var req ProcessReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.Process(r.Context(), id, moderatorID, &req); err != nil {
		switch {
		case errors.Is(err, ErrReportNotFound):
			response.NotFound(w, "Report not found")
		case errors.Is(err, ErrAlreadyResolved):
			response.Conflict(w, "Report has already been resolved")
		case errors.Is(err, ErrConcurrentModification):
			response.Conflict(w, "Report was processed by another moderator")
		case errors.Is(err, ErrInvalidAction):
			response.BadRequest(w, "Invalid moderation action")
		case errors.Is(err, ErrNoReportedUser):
			response.BadRequest(w, "This action requires a reported user")
		case errors.Is(err, ErrNotRemovable):
			response.BadRequest(w, "Content removal cannot target a user profile")
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(w, "Reported user not found")
		case errors.Is(err, content.ErrContentNotFound):
			response.NotFound(w, "Reported content not found")
		default:
			log.Error().Err(err).Str("report_id", id.String()).Msg("failed to process report")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Report processed successfully"})
}

func parseListFilter(r *http.Request) *ListFilter {
	f := &ListFilter{
		Status:   Status(r.URL.Query().Get("status")),
		Priority: Priority(r.URL.Query().Get("priority")),
		Category: Category(r.URL.Query().Get("category")),
		Limit:    20,
		Offset:   0,
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			f.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			f.Offset = n
		}
	}

	return f
}
