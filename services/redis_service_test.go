package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshvali1990/Society-maintenance-tracker/services"
)

func TestRedisServiceDegradesWithoutClient(t *testing.T) {
	// Client 为 nil 时所有操作都应当无害：写入丢弃，读取未命中
	svc := &services.RedisService{Client: nil, Ctx: context.Background()}

	require.NoError(t, svc.CacheStatement(2025, 1, []string{"anything"}))

	var dest []string
	hit, err := svc.GetStatement(2025, 1, &dest)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, dest)

	require.NoError(t, svc.InvalidateStatement(2025, 1))
	require.NoError(t, svc.InvalidateAllStatements())
}
