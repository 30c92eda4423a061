package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/dto"
	commonhttp "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/http"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/jwtverify"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/review/domain"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/review/service"
)

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type listResponse struct {
	Success    bool           `json:"success"`
	Reviews    []dto.Review   `json:"reviews"`
	Pagination dto.Pagination `json:"pagination"`
}

type statsResponse struct {
	Success bool      `json:"success"`
	Stats   dto.Stats `json:"stats"`
}

type reviewResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Review  dto.Review `json:"review"`
}

type Deps struct {
	Reviews        *service.ReviewService
	Verifier       *jwtverify.Verifier
	Errors         *commonhttp.ErrorHandler
	RequestTimeout time.Duration
	// Feed is mounted at /feed when set. It is kept out of the request
	// timeout since the connection outlives the upgrade request.
	Feed http.Handler
	Log  *logger.Logger
}

type Handler struct {
	reviews *service.ReviewService
	errs    *commonhttp.ErrorHandler
	log     *logger.Logger
}

// NewHandler serves the routes below /api/reviews.
func NewHandler(deps Deps) http.Handler {
	h := &Handler{reviews: deps.Reviews, errs: deps.Errors, log: deps.Log}

	r := chi.NewRouter()

	if deps.Feed != nil {
		r.Get("/feed", deps.Feed.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(commonhttp.TimeoutMiddleware(deps.RequestTimeout))

		r.Get("/", h.list)
		r.Get("/stats", h.stats)

		r.Group(func(r chi.Router) {
			r.Use(jwtverify.Middleware(deps.Verifier, deps.Errors, deps.Log))
			r.Post("/", h.create)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})
	})

	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.reviews.List(r.Context(), service.ListQuery{
		Page:  positiveIntOr(q.Get("page"), 0),
		Limit: positiveIntOr(q.Get("limit"), 0),
		Sort:  domain.SortOrder(q.Get("sort")),
	})
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, listResponse{
		Success:    true,
		Reviews:    result.Reviews,
		Pagination: result.Pagination,
	})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reviews.Stats(r.Context())
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, statsResponse{Success: true, Stats: stats})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errs.HandleError(w, r, jwtverify.ErrAuthRequired)
		return
	}

	var req reviewRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	review, err := h.reviews.Create(r.Context(), claims.UserID, service.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, reviewResponse{
		Success: true,
		Message: "review submitted",
		Review:  review,
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errs.HandleError(w, r, jwtverify.ErrAuthRequired)
		return
	}

	var req reviewRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	review, err := h.reviews.Update(r.Context(), claims.UserID, chi.URLParam(r, "id"), service.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, reviewResponse{
		Success: true,
		Message: "review updated",
		Review:  review,
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errs.HandleError(w, r, jwtverify.ErrAuthRequired)
		return
	}

	if err := h.reviews.Delete(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, commonhttp.MessageResponse{
		Success: true,
		Message: "review deleted",
	})
}

// positiveIntOr returns def unless s is a positive base-10 integer.
func positiveIntOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
