package handlers

import (
	"expvar"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/workspace-hub/internal/application"
	"github.com/oksasatya/workspace-hub/internal/interface/middleware"
	"github.com/oksasatya/workspace-hub/pkg/helpers"
	"github.com/oksasatya/workspace-hub/pkg/response"
)

var signIns = expvar.NewInt("sign_ins")

type AuthHandler struct {
	Svc     *application.UserService
	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.UserService, jwt *helpers.JWTManager, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, JWT: jwt, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignIn checks credentials and stores a signed session token in the token cookie.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	u, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	token, exp, err := h.JWT.GenerateToken(u.ID)
	if err != nil {
		helpers.LogError(h.Logger, "generate session token failed", err, logrus.Fields{"user_id": u.ID})
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	h.Cookies.SetToken(c, token, exp)
	signIns.Add(1)
	response.Success(c, http.StatusOK, u, "signed in", map[string]any{"expires_at": exp})
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"signed_out": true}, "signed out", nil)
}

// Me returns the user behind the session token.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.GetByID(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}
