package cookie

import (
	"net/http"
	"time"

	"ski-stays/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const AuthTokenCookieName = "auth_token"

// SessionMaxAge matches the server-side session lifetime.
const SessionMaxAge = 7 * 24 * time.Hour

func SetAuthCookie(c *gin.Context, cfg config.CookieConfig, token string, maxAge time.Duration) {
	c.SetSameSite(getSameSite(cfg.SameSite))

	c.SetCookie(
		AuthTokenCookieName,
		token,
		int(maxAge.Seconds()),
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)
}

func ClearAuthCookie(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(getSameSite(cfg.SameSite))

	c.SetCookie(
		AuthTokenCookieName,
		"",
		-1,
		"/",
		cfg.Domain,
		cfg.Secure,
		true,
	)
}

func GetAuthToken(c *gin.Context) string {
	token, _ := c.Cookie(AuthTokenCookieName)
	return token
}

func getSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
