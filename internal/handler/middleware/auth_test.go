//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"ski-stays/internal/domain/user"
	"ski-stays/internal/handler/middleware"
	usecasemock "ski-stays/internal/mock/usecase"
	"ski-stays/internal/pkg/cookie"
	"ski-stays/internal/pkg/errs"
	"ski-stays/internal/testutil/httptest"
	"ski-stays/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockValidator *usecasemock.MockTokenValidator
	authCtx       *usecase.AuthContext
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockValidator = usecasemock.NewMockTokenValidator(s.mockCtrl)
	s.authCtx = &usecase.AuthContext{SessionID: uuid.New(), UserID: uuid.New(), Role: user.RoleGuest}

	m := middleware.NewAuthMiddleware(s.mockValidator)
	whoami := func(c *gin.Context) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user_id": ""})
			return
		}
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "role": string(role)})
	}

	s.router.GET("/private", m.RequireAuth(), whoami)
	s.router.GET("/admin", m.RequireAuth(), m.RequireRole(user.RoleAdmin), whoami)
	s.router.GET("/optional", m.OptionalAuth(), whoami)
}

func (s *AuthMiddlewareTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

type whoamiResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("bearer token", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "good").Return(s.authCtx, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/private", nil, "good")

		var response whoamiResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.authCtx.UserID.String(), response.UserID)
	})

	s.Run("cookie wins over the header", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "from-cookie").Return(s.authCtx, nil)

		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodGet, "/private", nil,
			[]*http.Cookie{{Name: cookie.AuthTokenCookieName, Value: "from-cookie"}}, "from-header")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: no token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/private", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: revoked session", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "revoked").Return(nil, errs.ErrSessionNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/private", nil, "revoked")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireRole() {
	s.Run("error: guest on an admin route", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "good").Return(s.authCtx, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin", nil, "good")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("admin passes", func() {
		admin := *s.authCtx
		admin.Role = user.RoleAdmin
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "admin").Return(&admin, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin", nil, "admin")

		var response whoamiResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("admin", response.Role)
	})
}

func (s *AuthMiddlewareTestSuite) TestOptionalAuth() {
	s.Run("anonymous", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/optional", nil, "")

		var response whoamiResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response.UserID)
	})

	s.Run("invalid token is ignored", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "stale").Return(nil, errs.ErrSessionExpired)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/optional", nil, "stale")

		var response whoamiResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response.UserID)
	})

	s.Run("valid token attaches the user", func() {
		s.mockValidator.EXPECT().ValidateToken(gomock.Any(), "good").Return(s.authCtx, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/optional", nil, "good")

		var response whoamiResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.authCtx.UserID.String(), response.UserID)
	})
}
