package transport

import (
	"net/http"
	"storefront-be/internal/auth"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"
	"time"

	"github.com/gin-gonic/gin"
)

type authHandler struct {
	users        user.Service
	cookieTTL    time.Duration
	secureCookie bool
}

type signupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	FullName *string `json:"full_name"`
	IsAdmin  bool    `json:"is_admin"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *authHandler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	u, err := h.users.Register(c.Request.Context(), user.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, u)
}

// login answers with the bearer token and also sets it as an HttpOnly cookie.
func (h *authHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	token, _, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.AccessTokenCookie, token, int(h.cookieTTL.Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *authHandler) me(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		abortWithError(c, user.ErrUnauthorized)
		return
	}

	u, err := h.users.GetByID(ctx, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}
