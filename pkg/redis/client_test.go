package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	t.Run("missing URL", func(t *testing.T) {
		_, err := options(Config{})
		assert.Error(t, err)
	})

	t.Run("plain URL gets default port and password from userinfo", func(t *testing.T) {
		opts, err := options(Config{URL: "redis://default:pw@cache.local"})
		require.NoError(t, err)
		assert.Equal(t, "cache.local:6379", opts.Addr)
		assert.Equal(t, "pw", opts.Password)
		assert.Nil(t, opts.TLSConfig)
	})

	t.Run("rediss enables TLS and explicit password wins", func(t *testing.T) {
		opts, err := options(Config{URL: "rediss://default:pw@cache.local:6380", Password: "explicit"})
		require.NoError(t, err)
		assert.Equal(t, "cache.local:6380", opts.Addr)
		assert.Equal(t, "explicit", opts.Password)
		assert.NotNil(t, opts.TLSConfig)
	})
}

func TestHealthCheckWithoutClient(t *testing.T) {
	assert.Error(t, HealthCheck(context.Background()))
	assert.Nil(t, Client())
}
