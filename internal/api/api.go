package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yafiirfan/backend.movie/internal/apperr"
	"github.com/yafiirfan/backend.movie/internal/service"
)

// UserHandler exposes the authentication flows over HTTP. Handlers return
// errors; the router's error handler classifies them into responses.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register creates a user --> POST /register
func (h *UserHandler) Register(c echo.Context) error {
	req := registerRequest{}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("body", "Invalid request payload")
	}

	user, err := h.userService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Login verifies credentials and issues an access token --> POST /login
func (h *UserHandler) Login(c echo.Context) error {
	req := loginRequest{}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("body", "Invalid request payload")
	}

	token, err := h.userService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token})
}

type googleLoginRequest struct {
	GoogleToken string `json:"googleToken"`
}

// GoogleLogin exchanges a Google ID token for an access token, provisioning
// the user on first login --> POST /google-login
func (h *UserHandler) GoogleLogin(c echo.Context) error {
	req := googleLoginRequest{}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("body", "Invalid request payload")
	}

	token, err := h.userService.GoogleLogin(c.Request().Context(), req.GoogleToken)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token})
}

type updateUserRequest struct {
	Username string `json:"username"`
}

type updateUserResponse struct {
	Message  string  `json:"message"`
	Username string  `json:"username"`
	ImageURL *string `json:"imageUrl"`
}

// UpdateUser renames the authenticated user --> PUT /user-update
func (h *UserHandler) UpdateUser(c echo.Context) error {
	req := updateUserRequest{}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("body", "Invalid request payload")
	}

	id, ok := UserID(c)
	if !ok {
		return apperr.ErrInvalidToken
	}

	user, err := h.userService.UpdateUsername(c.Request().Context(), id, req.Username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateUserResponse{
		Message:  "Username updated successfully",
		Username: user.Username,
		ImageURL: user.ImageURL,
	})
}

// DeleteUser removes the authenticated user's account --> DELETE /user-delete
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, ok := UserID(c)
	if !ok {
		return apperr.ErrInvalidToken
	}

	if err := h.userService.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}
