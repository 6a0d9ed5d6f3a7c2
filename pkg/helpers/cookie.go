package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"

	// DefaultRefreshPath limits the refresh cookie to the auth endpoints.
	DefaultRefreshPath = "/api/auth"
)

// Manager writes the session cookie pair. The access cookie is sent on every
// request; the refresh cookie only on RefreshPath.
type Manager struct {
	Domain      string
	Secure      bool
	RefreshPath string
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure, RefreshPath: DefaultRefreshPath}
}

func (m *Manager) SetPair(c *gin.Context, access string, aexp time.Time, refresh string, rexp time.Time) {
	m.set(c, AccessCookie, access, maxAgeFrom(aexp), "/")
	m.set(c, RefreshCookie, refresh, maxAgeFrom(rexp), m.refreshPath())
}

func (m *Manager) Clear(c *gin.Context) {
	m.set(c, AccessCookie, "", -1, "/")
	m.set(c, RefreshCookie, "", -1, m.refreshPath())
}

func (m *Manager) set(c *gin.Context, name, value string, maxAge int, path string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, path, m.Domain, m.Secure, true)
}

func (m *Manager) refreshPath() string {
	if m.RefreshPath == "" {
		return "/"
	}
	return m.RefreshPath
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
