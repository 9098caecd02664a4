package main

import (
	"context"
	"path/filepath"
	"testing"

	"homebite/internal/auth"
	"homebite/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenStore(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     config.TokenStoreConfig
		wantErr string
	}{
		{name: "Memory", cfg: config.TokenStoreConfig{Backend: config.StoreMemory}},
		{name: "File", cfg: config.TokenStoreConfig{Backend: config.StoreFile, Path: filepath.Join(t.TempDir(), "token.json")}},
		{name: "Redis", cfg: config.TokenStoreConfig{Backend: config.StoreRedis, RedisAddr: mr.Addr(), RedisPrefix: "hb:"}},
		{name: "Redis unreachable", cfg: config.TokenStoreConfig{Backend: config.StoreRedis, RedisAddr: "127.0.0.1:1"}, wantErr: "failed to connect to redis"},
		{name: "Unknown backend", cfg: config.TokenStoreConfig{Backend: "keychain"}, wantErr: "unknown token store backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			store, closeStore, err := newTokenStore(ctx, tt.cfg, zerolog.Nop())
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, closeStore()) })

			require.NoError(t, store.Set(ctx, auth.TokenKey, "opaque-token"))
			got, err := store.Get(ctx, auth.TokenKey)
			require.NoError(t, err)
			assert.Equal(t, "opaque-token", got)
		})
	}

	assert.True(t, mr.Exists("hb:"+auth.TokenKey))
}
