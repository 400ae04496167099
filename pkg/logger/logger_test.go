package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewNop()
	log.SetOutput(&buf)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, UserIDKey, "user-7")
	log.WithContext(ctx).Info("handled")

	assert.Contains(t, buf.String(), "request_id=req-1")
	assert.Contains(t, buf.String(), "user_id=user-7")
}

func TestWithContext_NoValues(t *testing.T) {
	var buf bytes.Buffer
	log := NewNop()
	log.SetOutput(&buf)

	log.WithContext(context.Background()).Info("handled")

	assert.Contains(t, buf.String(), "handled")
	assert.NotContains(t, buf.String(), "request_id")
}
