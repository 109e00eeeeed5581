package dbmanager

import (
	"context"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uiuclibrary/tyko/internal/tykosrv/config"
)

func TestSqlitePool(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	cfg := &config.ConfigParam{}
	cfg.DB.Driver = config.DriverSqlite
	cfg.DB.Path = ":memory:"

	p, err := NewPool(ctx, cfg)
	require.NoError(t, err)
	defer p.Close()

	type probe struct {
		ID   int `gorm:"primaryKey"`
		Name string
	}

	conn, err := p.Conn(ctx)
	require.NoError(t, err)
	require.NoError(t, conn.Gorm().AutoMigrate(&probe{}))
	require.NoError(t, conn.Gorm().Create(&probe{Name: "a"}).Error)
	conn.Close(ctx)
	conn.Close(ctx)

	conn, err = p.Conn(ctx)
	require.NoError(t, err)
	var count int64
	require.NoError(t, conn.Gorm().Model(&probe{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "in-memory database must survive between connections")
	conn.Close(ctx)

	requests, returns := p.Stats()
	assert.EqualValues(t, 2, requests)
	assert.EqualValues(t, 2, returns)
}

func TestUnsupportedDriver(t *testing.T) {
	ctx := context.Background()
	cfg := &config.ConfigParam{}
	cfg.DB.Driver = "oracle"
	_, err := NewPool(ctx, cfg)
	assert.Error(t, err)
}

func TestSessionParams(t *testing.T) {
	cfg := &config.ConfigParam{}
	cfg.DB.StatementTimeout = "2s"
	params := sessionParams(cfg)
	assert.Equal(t, "2000ms", params["statement_timeout"])
	assert.Equal(t, "2000ms", params["lock_timeout"])
}
