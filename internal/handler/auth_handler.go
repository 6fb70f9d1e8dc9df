package handler

import (
	"net/http"

	"github.com/AGKL-Team/AGKL-Sales-backend/internal/middleware"
	"github.com/AGKL-Team/AGKL-Sales-backend/internal/model"
	"github.com/AGKL-Team/AGKL-Sales-backend/internal/repository"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/identity"
	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/logger"
	"github.com/AGKL-Team/AGKL-Sales-backend/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SignUpRequest registers a new user with the identity provider
type SignUpRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Height   float64 `json:"height" validate:"omitempty,gt=0"`
}

// SignInRequest authenticates a user
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateHeightRequest updates the shadow account's height
type UpdateHeightRequest struct {
	Height float64 `json:"height" validate:"required,gt=0"`
}

// SignUp handles user registration. Credentials live entirely at the
// identity provider; locally only a shadow account keyed by the
// provider's user id is created.
func SignUp(c echo.Context) error {
	log := logger.FromContext(c)

	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := identity.SignUp(req.Email, req.Password)
	if err != nil {
		log.Error("Identity provider rejected sign-up", zap.String("email", req.Email), zap.Error(err))
		prometheus.RecordAuthOperation("signup", "error")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	account := model.NewAccount(user.ID, req.Height)
	account.StampCreated(user.ID)
	if err := repository.CreateAccount(account); err != nil {
		log.Error("Failed to create shadow account", zap.String("user_id", user.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create account"})
	}

	log.Info("User registered successfully", zap.String("user_id", user.ID))
	prometheus.RecordAuthOperation("signup", "ok")
	return c.JSON(http.StatusCreated, echo.Map{
		"user":    user,
		"account": account,
	})
}

// SignIn handles user authentication and returns the provider session
func SignIn(c echo.Context) error {
	log := logger.FromContext(c)

	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := identity.SignIn(req.Email, req.Password)
	if err != nil {
		log.Warn("Sign-in failed", zap.String("email", req.Email), zap.Error(err))
		prometheus.RecordAuthOperation("signin", "error")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	log.Info("User signed in", zap.String("email", req.Email))
	prometheus.RecordAuthOperation("signin", "ok")
	return c.JSON(http.StatusOK, session)
}

// SignOut handles closing every session of the authenticated user
func SignOut(c echo.Context) error {
	log := logger.FromContext(c)

	token, ok := middleware.TokenFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	if err := identity.SignOut(token); err != nil {
		log.Error("Sign-out failed", zap.Error(err))
		prometheus.RecordAuthOperation("signout", "error")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	prometheus.RecordAuthOperation("signout", "ok")
	return c.JSON(http.StatusOK, echo.Map{"message": "signed out successfully"})
}

// Me returns the provider's view of the authenticated user together
// with the local shadow account
func Me(c echo.Context) error {
	log := logger.FromContext(c)

	token, ok := middleware.TokenFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
	}

	user, err := identity.CurrentUser(token)
	if err != nil {
		log.Error("Failed to resolve current user", zap.Error(err))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
	}

	account, err := repository.FindAccountByUserID(user.ID)
	if err != nil {
		log.Warn("No shadow account for user", zap.String("user_id", user.ID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":    user,
		"account": account,
	})
}

// UpdateHeight updates the authenticated user's shadow account height
func UpdateHeight(c echo.Context) error {
	log := logger.FromContext(c)
	actor := actorFrom(c)

	var req UpdateHeightRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := repository.FindAccountByUserID(actor)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
	}

	account.ChangeHeight(req.Height)
	account.StampUpdated(actor)
	if err := repository.SaveAccount(account); err != nil {
		log.Error("Failed to update account", zap.String("user_id", actor), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update account"})
	}

	return c.JSON(http.StatusOK, account)
}
