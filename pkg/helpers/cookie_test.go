package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SetPairAndClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewCookie("localhost", true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	now := time.Now()
	m.SetPair(c, "acc", now.Add(time.Hour), "ref", now.Add(-time.Minute))

	cookies := map[string]*http.Cookie{}
	for _, ck := range w.Result().Cookies() {
		cookies[ck.Name] = ck
	}
	require.Len(t, cookies, 2)
	assert.Equal(t, "/", cookies[AccessCookie].Path)
	assert.True(t, cookies[AccessCookie].HttpOnly)
	assert.True(t, cookies[AccessCookie].Secure)
	assert.Greater(t, cookies[AccessCookie].MaxAge, 3500)
	assert.Equal(t, DefaultRefreshPath, cookies[RefreshCookie].Path)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	m.Clear(c)
	for _, ck := range w.Result().Cookies() {
		assert.Empty(t, ck.Value)
		assert.Negative(t, ck.MaxAge)
	}
}
