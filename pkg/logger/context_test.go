package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestContextCarriesLogger(t *testing.T) {
	log := zap.NewNop().With(zap.String("request_id", "abc-123"))

	ctx := WithContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	assert.Same(t, zap.L(), log)
}
