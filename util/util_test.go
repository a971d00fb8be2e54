package util_test

import (
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseId(t *testing.T) {
	id, httpErr := util.ParseId("42")
	require.Nil(t, httpErr)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		_, httpErr := util.ParseId(raw)
		require.NotNil(t, httpErr, raw)
		assert.Equal(t, http.StatusNotFound, httpErr.Status, raw)
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "hello <b>world</b>", util.CleanText("  hello <b>world</b> "))
	assert.Equal(t, "a < b & c", util.CleanText("a < b & c"))
	assert.Equal(t, "line one\nline two", util.CleanText("line one\nline two"))
}

func TestLineBreaksBR(t *testing.T) {
	assert.Equal(t, template.HTML("a &lt; b<br>c"), util.LineBreaksBR("a < b\nc"))
	assert.Equal(t, template.HTML("one<br>two"), util.LineBreaksBR("one\r\ntwo"))
	assert.Equal(t, template.HTML("&lt;script&gt;alert(1)&lt;/script&gt;"), util.LineBreaksBR("<script>alert(1)</script>"))
}

func TestHandlerWrapper(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ok", util.HandlerWrapper(func(c *gin.Context) *util.HTTPError {
		c.String(http.StatusOK, "fine")
		return nil
	}, &util.HandlerOpts{}))
	r.GET("/db", util.HandlerWrapper(func(c *gin.Context) *util.HTTPError {
		return util.BuildDbHTTPErr(errors.New("connection refused"))
	}, &util.HandlerOpts{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fine", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/db", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "database error", w.Body.String())
}

func TestHTTPErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	httpErr := util.BuildDbHTTPErr(cause)
	assert.ErrorIs(t, httpErr, cause)
	assert.Contains(t, httpErr.Error(), "statusCode=500")
}

func TestAvatar(t *testing.T) {
	assert.Equal(t, "https://api.dicebear.com/7.x/bottts/svg?seed=leo&size=64", util.Avatar("leo"))
}
