package config_test

import (
	"testing"
	"time"

	"github.com/navbryce/yatube/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/yatube-test.db")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, uint(10), cfg.PostsOnPage)
	assert.Equal(t, 20*time.Second, cfg.IndexCacheTTL)
	assert.Equal(t, 14*24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SecureCookies)
	assert.Empty(t, cfg.Origins)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_HOST", "db.example.com:3306")
	t.Setenv("DB_USER", "yatube")
	t.Setenv("POSTS_ON_PAGE", "5")
	t.Setenv("INDEX_CACHE_TTL", "1m")
	t.Setenv("SESSION_COOKIE_SECURE", "false")
	t.Setenv("FE_ORIGINS", "https://a.example.com;https://b.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, config.DriverMySQL, cfg.DB.Driver)
	assert.Equal(t, "db.example.com:3306", cfg.DB.Host)
	assert.Equal(t, "yatube", cfg.DB.User)
	assert.Equal(t, uint(5), cfg.PostsOnPage)
	assert.Equal(t, time.Minute, cfg.IndexCacheTTL)
	assert.False(t, cfg.SecureCookies)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Origins)
}

func TestValidate(t *testing.T) {
	for name, tc := range map[string]struct {
		cfg   config.Config
		valid bool
	}{
		"sqlite":         {config.Config{Port: "80", PostsOnPage: 10, DB: config.DBConfig{Driver: "sqlite", Path: "x.db"}}, true},
		"mysql":          {config.Config{Port: "80", PostsOnPage: 10, DB: config.DBConfig{Driver: "mysql", Host: "db"}}, true},
		"mysql no host":  {config.Config{Port: "80", PostsOnPage: 10, DB: config.DBConfig{Driver: "mysql"}}, false},
		"unknown driver": {config.Config{Port: "80", PostsOnPage: 10, DB: config.DBConfig{Driver: "oracle"}}, false},
		"zero page size": {config.Config{Port: "80", DB: config.DBConfig{Driver: "sqlite", Path: "x.db"}}, false},
		"no port":        {config.Config{PostsOnPage: 10, DB: config.DBConfig{Driver: "sqlite", Path: "x.db"}}, false},
	} {
		t.Run(name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
