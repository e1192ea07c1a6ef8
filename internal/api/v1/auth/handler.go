package auth

import (
	"errors"
	"net/http"

	"aicodegen-backend/config"
	"aicodegen-backend/internal/api/v1/user"
	"aicodegen-backend/internal/middleware"
	"aicodegen-backend/internal/services"
	"aicodegen-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	jwt config.JWTConfig
}

func NewHandler(cfg config.JWTConfig) *Handler {
	return &Handler{jwt: cfg}
}

// Register godoc
// @Summary Register a new user
// @Description Create an account with a name, email and password
// @Tags user
// @Accept  json
// @Produce  json
// @Param   input     body   RegisterInput  true  "Register Input"
// @Success 201 {object} utils.Response{data=user.UserResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /user/register [post]
func (h *Handler) Register(c *gin.Context) {
	var input RegisterInput
	if err := utils.BindAndValidate(c, &input); err != nil {
		c.Error(err)
		return
	}

	u, err := services.RegisterUser(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			c.Error(utils.NewConflictError("User already exists with this email"))
			return
		}
		c.Error(utils.NewInternalServerError("Failed to register user due to an internal error").Wrap(err))
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "User created successfully", user.NewUserResponse(u)))
}

// Login godoc
// @Summary Log in a user
// @Description Exchange email and password for an access and a refresh token
// @Tags user
// @Accept  json
// @Produce  json
// @Param   input     body   LoginInput  true  "Login Input"
// @Success 200 {object} utils.Response{data=LoginResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /user/login [post]
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := utils.BindAndValidate(c, &input); err != nil {
		c.Error(err)
		return
	}

	result, err := services.LoginUser(c.Request.Context(), h.jwt, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.Error(utils.NewNotFoundError("User not found with this email"))
		case errors.Is(err, services.ErrInvalidCredentials):
			c.Error(utils.NewUnauthorizedError("Invalid password"))
		default:
			c.Error(utils.NewInternalServerError("Failed to log in").Wrap(err))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User logged in successfully", newLoginResponse(result)))
}

// RefreshToken godoc
// @Summary Refresh tokens
// @Description Rotate the refresh token and issue a new access token
// @Tags user
// @Accept  json
// @Produce  json
// @Param   input     body   RefreshTokenInput  true  "Refresh Token Input"
// @Success 200 {object} utils.Response{data=LoginResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /user/refresh-token [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	var input RefreshTokenInput
	if err := utils.BindAndValidate(c, &input); err != nil {
		c.Error(err)
		return
	}

	result, err := services.RefreshTokens(c.Request.Context(), h.jwt, input.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRefreshToken) {
			c.Error(utils.NewUnauthorizedError("Invalid or expired refresh token"))
			return
		}
		c.Error(utils.NewInternalServerError("Failed to refresh token").Wrap(err))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Token refreshed successfully", newLoginResponse(result)))
}

// Logout godoc
// @Summary Log out a user
// @Description Revoke the current access token and forget the refresh token
// @Tags user
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /user/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.Error(utils.NewUnauthorizedError("Unauthorized"))
		return
	}
	token, claims := middleware.CurrentClaims(c)

	if err := services.LogoutUser(c.Request.Context(), identity.ID, token, claims); err != nil {
		c.Error(utils.NewInternalServerError("Failed to log out").Wrap(err))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out successfully", nil))
}

func newLoginResponse(result *services.AuthResult) LoginResponse {
	return LoginResponse{
		User:         user.NewUserResponse(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}
}
