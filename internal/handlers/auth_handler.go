package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Varun5711/taskflow/internal/events"
	"github.com/Varun5711/taskflow/internal/logger"
	"github.com/Varun5711/taskflow/internal/middleware"
	"github.com/Varun5711/taskflow/internal/models"
	usermodel "github.com/Varun5711/taskflow/internal/models/user"
	"github.com/Varun5711/taskflow/internal/service"
	"github.com/Varun5711/taskflow/internal/validation"
)

const (
	msgRegistered     = "User registered successfully"
	msgLoggedIn       = "Login successful"
	msgInvalidBody    = "Invalid request body"
	msgServerError    = "Server error"
	msgUnauthorized   = "Invalid or expired token"
	requestTimeout    = 10 * time.Second
	eventPublishLimit = 500 * time.Millisecond
)

type Authenticator interface {
	Register(ctx context.Context, req *usermodel.RegisterRequest) (*usermodel.AuthResult, error)
	Login(ctx context.Context, req *usermodel.LoginRequest) (*usermodel.AuthResult, error)
	GetProfile(ctx context.Context, userID int64) (*usermodel.PublicUser, error)
}

type AuthHandler struct {
	auth      Authenticator
	publisher events.Publisher
	log       *logger.Logger
	now       func() time.Time
}

func NewAuthHandler(auth Authenticator, publisher events.Publisher, log *logger.Logger) *AuthHandler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &AuthHandler{
		auth:      auth,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req usermodel.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("Failed to decode register request: %v", err)
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.auth.Register(ctx, &req)
	if err != nil {
		h.fail(w, r, "register", err)
		return
	}

	h.publish(r, events.UserRegistered, result.User.ID, result.User.Email)
	h.log.Info("Registered user %d", result.User.ID)

	respondJSON(w, http.StatusCreated, models.AuthResponse{
		Message: msgRegistered,
		Token:   result.Token,
		User:    result.User,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req usermodel.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("Failed to decode login request: %v", err)
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.auth.Login(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.publish(r, events.UserLoginFailed, 0, req.Email)
		}
		h.fail(w, r, "login", err)
		return
	}

	h.publish(r, events.UserLogin, result.User.ID, result.User.Email)

	respondJSON(w, http.StatusOK, models.AuthResponse{
		Message: msgLoggedIn,
		Token:   result.Token,
		User:    result.User,
	})
}

// Me returns the user behind the request's verified token. It must be
// mounted behind middleware.RequireAuth.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := h.auth.GetProfile(ctx, userID)
	if err != nil {
		h.fail(w, r, "profile", err)
		return
	}

	respondJSON(w, http.StatusOK, models.ProfileResponse{User: *user})
}

// fail maps service errors onto responses. Unexpected errors are logged and
// reported as a bare server error.
func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *validation.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, service.ErrDuplicateIdentity):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		h.log.With("request_id", middleware.RequestID(r.Context())).Error("%s failed: %v", op, err)
		respondError(w, http.StatusInternalServerError, msgServerError)
	}
}

func (h *AuthHandler) publish(r *http.Request, eventType events.EventType, userID int64, email string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), eventPublishLimit)
	defer cancel()

	err := h.publisher.Publish(ctx, &events.AuthEvent{
		Type:      eventType,
		UserID:    userID,
		Email:     email,
		Timestamp: h.now().UTC(),
		IP:        middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		h.log.Warn("Dropped auth event: %v", err)
	}
}
