package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/auth/service"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/dto"
	commonhttp "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/http"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/jwtverify"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      dto.User  `json:"user"`
}

type meResponse struct {
	Success bool     `json:"success"`
	User    dto.User `json:"user"`
}

type Deps struct {
	Auth           *service.AuthService
	Verifier       *jwtverify.Verifier
	Limiter        *commonhttp.StrictRateLimiter
	Errors         *commonhttp.ErrorHandler
	RequestTimeout time.Duration
	Log            *logger.Logger
}

type Handler struct {
	auth *service.AuthService
	errs *commonhttp.ErrorHandler
	log  *logger.Logger
}

// NewHandler serves the routes below /api/auth.
func NewHandler(deps Deps) http.Handler {
	h := &Handler{auth: deps.Auth, errs: deps.Errors, log: deps.Log}

	r := chi.NewRouter()
	r.Use(commonhttp.TimeoutMiddleware(deps.RequestTimeout))

	register := r.With()
	login := r.With()
	if deps.Limiter != nil {
		register = r.With(deps.Limiter.Register())
		login = r.With(deps.Limiter.Login())
	}
	register.Post("/register", h.register)
	login.Post("/login", h.login)
	r.With(jwtverify.Middleware(deps.Verifier, deps.Errors, deps.Log)).Get("/me", h.me)

	return r
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"action": "auth_register_decode_failed",
		}).Warnf("register failed: %v", err)
		h.errs.HandleError(w, r, err)
		return
	}

	result, err := h.auth.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, authResponse{
		Success:   true,
		Message:   "registration successful",
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.User,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"action": "auth_login_decode_failed",
		}).Warnf("login failed: %v", err)
		h.errs.HandleError(w, r, err)
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Identifier: req.Username,
		Password:   req.Password,
	})
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, authResponse{
		Success:   true,
		Message:   "login successful",
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.User,
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errs.HandleError(w, r, jwtverify.ErrAuthRequired)
		return
	}

	user, err := h.auth.Me(r.Context(), claims.UserID)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, meResponse{Success: true, User: user})
}
