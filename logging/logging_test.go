package logging_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	require.NoError(t, logging.Configure("DEBUG", "json"))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Error(t, logging.Configure("loud", "json"))
}

func TestConfigureOutput_ReachesExistingLoggers(t *testing.T) {
	defer func() { require.NoError(t, logging.Configure("info", "json")) }()
	logger := logging.NewPackageLogger("early")

	console := &bytes.Buffer{}
	require.NoError(t, logging.ConfigureOutput("info", "console", console))
	logger.Info().Msg("hello")
	assert.Contains(t, console.String(), "hello")
	assert.Contains(t, console.String(), "pkg=early")
	assert.NotContains(t, console.String(), "{")

	jsonOut := &bytes.Buffer{}
	require.NoError(t, logging.ConfigureOutput("info", "json", jsonOut))
	logger.Info().Msg("again")
	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(jsonOut.Bytes(), &event))
	assert.Equal(t, "early", event[logging.PACKAGE])
	assert.Equal(t, "again", event["message"])
	assert.NotContains(t, console.String(), "again")
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := &bytes.Buffer{}
	original := log.Logger
	log.Logger = zerolog.New(buf)
	defer func() { log.Logger = original }()

	r := gin.New()
	r.Use(logging.RequestLogger(func(c *gin.Context) string { return "leo" }))
	r.GET("/missing", func(c *gin.Context) {
		c.String(http.StatusNotFound, "nope")
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing?page=2", nil))

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "warn", event["level"])
	assert.Equal(t, "http", event[logging.PACKAGE])
	assert.Equal(t, "GET", event[logging.METHOD])
	assert.Equal(t, "/missing?page=2", event[logging.PATH])
	assert.Equal(t, float64(http.StatusNotFound), event[logging.STATUS])
	assert.Equal(t, "leo", event[logging.USER])
}
