package api

import (
	"net/http"

	reqdto "ski-stays/internal/handler/dto/request"
	resdto "ski-stays/internal/handler/dto/response"
	"ski-stays/internal/handler/httperr"
	"ski-stays/internal/handler/middleware"
	"ski-stays/internal/pkg/config"
	"ski-stays/internal/pkg/cookie"
	"ski-stays/internal/usecase/commands"
	"ski-stays/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds      commands.AuthCommands
	users     queries.UserQueries
	cookieCfg config.CookieConfig
}

func NewAuthHandler(cmds commands.AuthCommands, users queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		cmds:      cmds,
		users:     users,
		cookieCfg: cfg.Cookie,
	}
}

// @Summary User login
// @Description Login with email and password. The session token is set as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BindError(c, err)
		return
	}

	meta := commands.ClientMeta{IPAddress: c.ClientIP(), UserAgent: c.Request.UserAgent()}
	res, err := h.cmds.Login(c.Request.Context(), req, meta)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	cookie.SetAuthCookie(c, h.cookieCfg, res.Token, cookie.SessionMaxAge)
	c.JSON(http.StatusOK, resdto.LoginResponse{
		ExpiresAt: res.ExpiresAt,
		User:      resdto.FromUserView(res.User),
	})
}

// @Summary User logout
// @Description Deletes the current session, revoking its token
// @Tags auth
// @Security CookieAuth
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}

	if err := h.cmds.Logout(c.Request.Context(), sessionID); err != nil {
		httperr.Handle(c, err)
		return
	}

	cookie.ClearAuthCookie(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security CookieAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}

	user, err := h.users.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserView(user))
}
