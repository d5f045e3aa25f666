package users

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vlearn/vlearn-backend/internal/auth"
	"github.com/vlearn/vlearn-backend/internal/errors"
	"github.com/vlearn/vlearn-backend/internal/logger"
)

// Handler exposes the user profile endpoints.
type Handler struct {
	store  *FirestoreStore
	logger *logger.Logger
}

func NewHandler(store *FirestoreStore, log *logger.Logger) *Handler {
	return &Handler{store: store, logger: log}
}

// GetMe handles GET /api/v1/users/me.
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		errors.AbortWithUnauthorized(c, "User not authenticated", nil)
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			errors.AbortWithNotFound(c, "User profile not found", nil)
			return
		}
		h.logger.LogError(c.Request.Context(), err, "failed to get user profile")
		errors.AbortWithInternal(c, "Failed to get user profile", nil)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateProfile handles POST /api/v1/users. Called once after signup to
// bootstrap the profile document; retries are harmless.
func (h *Handler) CreateProfile(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		errors.AbortWithUnauthorized(c, "User not authenticated", nil)
		return
	}
	email, _ := auth.GetUserUUID(c)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.AbortWithBadRequest(c, "name is required", nil)
		return
	}

	user := &User{
		ID:      userID,
		Email:   email,
		Name:    req.Name,
		Profile: DefaultProfile(time.Now().UTC().Format(time.RFC3339)),
	}

	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		h.logger.LogError(c.Request.Context(), err, "failed to create user profile")
		errors.AbortWithInternal(c, "Failed to create user profile", nil)
		return
	}

	h.logger.WithContext(c.Request.Context()).Info("user profile created", "user_id", userID)
	c.JSON(http.StatusCreated, user)
}

// UpdateMe handles PATCH /api/v1/users/me.
func (h *Handler) UpdateMe(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		errors.AbortWithUnauthorized(c, "User not authenticated", nil)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.AbortWithBadRequest(c, "Invalid request body", nil)
		return
	}

	if err := h.store.UpdateUser(c.Request.Context(), userID, req); err != nil {
		switch status.Code(err) {
		case codes.NotFound:
			errors.AbortWithNotFound(c, "User profile not found", nil)
		case codes.InvalidArgument:
			errors.AbortWithBadRequest(c, "No updatable fields provided", nil)
		default:
			h.logger.LogError(c.Request.Context(), err, "failed to update user profile")
			errors.AbortWithInternal(c, "Failed to update user profile", nil)
		}
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.LogError(c.Request.Context(), err, "failed to reload user profile")
		errors.AbortWithInternal(c, "Failed to get user profile", nil)
		return
	}

	c.JSON(http.StatusOK, user)
}
