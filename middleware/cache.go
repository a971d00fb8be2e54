package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/metrics"
	"github.com/patrickmn/go-cache"
)

type cachedPage struct {
	status      int
	contentType string
	body        []byte
}

// PageCache stores whole GET responses for a fixed time. Entries are keyed by
// the request URI and the session, so visitors never see each other's pages.
type PageCache struct {
	store *cache.Cache
}

func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{
		store: cache.New(ttl, 2*ttl),
	}
}

// Clear drops every cached page
func (pc *PageCache) Clear() {
	pc.store.Flush()
}

func (pc *PageCache) Len() int {
	return pc.store.ItemCount()
}

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Handler serves cached copies of successful GET responses
func (pc *PageCache) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			return
		}
		key := pageCacheKey(c)
		if cached, found := pc.store.Get(key); found {
			metrics.PageCacheLookups.WithLabelValues("hit").Inc()
			page := cached.(*cachedPage)
			c.Data(page.status, page.contentType, page.body)
			c.Abort()
			return
		}
		metrics.PageCacheLookups.WithLabelValues("miss").Inc()

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()
		c.Writer = writer.ResponseWriter

		if writer.Status() != http.StatusOK {
			return
		}
		pc.store.SetDefault(key, &cachedPage{
			status:      writer.Status(),
			contentType: writer.Header().Get("Content-Type"),
			body:        writer.body.Bytes(),
		})
	}
}

func pageCacheKey(c *gin.Context) string {
	key := c.Request.URL.RequestURI()
	if session, err := c.Cookie(SESSION_COOKIE); err == nil && session != "" {
		sum := sha256.Sum256([]byte(session))
		key += "|" + hex.EncodeToString(sum[:])
	}
	return key
}
