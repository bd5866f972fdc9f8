package contextutil_test

import (
	"context"
	"testing"

	"go-leave/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMetadata(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "REQ-1")
	ctx = contextutil.WithActorID(ctx, "emp-1")

	md := contextutil.ExtractMetadata(ctx)

	assert.Equal(t, "REQ-1", md.RequestID)
	assert.Equal(t, "emp-1", md.ActorID)
	assert.Empty(t, contextutil.GetRequestID(context.Background()))
}

func TestGetLogger(t *testing.T) {
	fallback := zap.NewExample()
	scoped := zap.NewExample().Named("scoped")

	assert.Same(t, fallback, contextutil.GetLogger(context.Background(), fallback))
	assert.Same(t, scoped, contextutil.GetLogger(contextutil.WithLogger(context.Background(), scoped), fallback))
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))
}
