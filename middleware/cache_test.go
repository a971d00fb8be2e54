package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/middleware"
	"github.com/stretchr/testify/assert"
)

func newCachedEngine(cache *middleware.PageCache, body *string, status *int) *gin.Engine {
	r := gin.New()
	r.GET("/", cache.Handler(), func(c *gin.Context) {
		c.String(*status, *body)
	})
	return r
}

func TestPageCache_ServesStaleUntilCleared(t *testing.T) {
	cache := middleware.NewPageCache(time.Minute)
	body, status := "first", http.StatusOK
	r := newCachedEngine(cache, &body, &status)

	assert.Equal(t, "first", get(r, "/", "").Body.String())
	body = "second"
	w := get(r, "/", "")
	assert.Equal(t, "first", w.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))

	// query strings are cached separately
	assert.Equal(t, "second", get(r, "/?page=2", "").Body.String())

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, "second", get(r, "/", "").Body.String())
}

func TestPageCache_Expires(t *testing.T) {
	cache := middleware.NewPageCache(50 * time.Millisecond)
	body, status := "first", http.StatusOK
	r := newCachedEngine(cache, &body, &status)

	assert.Equal(t, "first", get(r, "/", "").Body.String())
	body = "second"
	assert.Equal(t, "first", get(r, "/", "").Body.String())

	assert.Eventually(t, func() bool {
		return get(r, "/", "").Body.String() == "second"
	}, time.Second, 20*time.Millisecond)
}

func TestPageCache_PerSession(t *testing.T) {
	cache := middleware.NewPageCache(time.Minute)
	body, status := "anonymous", http.StatusOK
	r := newCachedEngine(cache, &body, &status)

	assert.Equal(t, "anonymous", get(r, "/", "").Body.String())
	body = "leo"
	assert.Equal(t, "leo", get(r, "/", "uid-leo").Body.String())
	assert.Equal(t, "anonymous", get(r, "/", "").Body.String())
	assert.Equal(t, 2, cache.Len())
}

func TestPageCache_SkipsErrors(t *testing.T) {
	cache := middleware.NewPageCache(time.Minute)
	body, status := "broken", http.StatusInternalServerError
	r := newCachedEngine(cache, &body, &status)

	assert.Equal(t, http.StatusInternalServerError, get(r, "/", "").Code)
	assert.Equal(t, 0, cache.Len())

	body, status = "fixed", http.StatusOK
	assert.Equal(t, "fixed", get(r, "/", "").Body.String())
}
