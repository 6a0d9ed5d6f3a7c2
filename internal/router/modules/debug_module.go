package modules

import (
	"expvar"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/rb-marketplace/internal/container"
	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
	"github.com/oksasatya/rb-marketplace/internal/interface/middleware"
)

// statsSource is implemented by stores that can report collection sizes.
type statsSource interface {
	Stats() entity.StoreStats
}

var (
	publishOnce sync.Once
	startedAt   = time.Now()
)

// publishVars registers the marketplace expvars. expvar.Publish panics on a
// duplicate name, so it runs once per process; the values are read from the
// container on every scrape.
func publishVars() {
	publishOnce.Do(func() {
		expvar.Publish("uptime_seconds", expvar.Func(func() any {
			return int64(time.Since(startedAt).Seconds())
		}))
		expvar.Publish("marketplace", expvar.Func(func() any {
			if src, ok := container.GetStore().(statsSource); ok {
				return src.Stats()
			}
			return nil
		}))
	})
}

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	publishVars()
	// Private addresses bypass the limit so local scrapers are never throttled
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
