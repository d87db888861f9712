//go:build unit

package queries_test

import (
	"testing"
	"time"

	"promo-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterCursorRoundTrip(t *testing.T) {
	usedAt := time.Date(2026, 3, 1, 12, 30, 45, 123456000, time.UTC)
	id := uuid.New()

	encoded := queries.EncodeAfterCursor(usedAt, id)
	gotTime, gotID, err := queries.DecodeAfterCursor(encoded)

	require.NoError(t, err)
	assert.True(t, gotTime.Equal(usedAt), "got %s, want %s", gotTime, usedAt)
	assert.Equal(t, id, gotID)
}

func TestDecodeAfterCursorRejectsGarbage(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
	}{
		{name: "empty", cursor: ""},
		{name: "not base64", cursor: "!!not-base64!!"},
		{name: "wrong version", cursor: "djI6MTIzLWFiYw=="},
		{name: "missing uuid", cursor: "djE6MTIzNDU2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := queries.DecodeAfterCursor(tt.cursor)
			assert.Error(t, err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 20, queries.ValidateLimit(0))
	assert.Equal(t, 20, queries.ValidateLimit(-5))
	assert.Equal(t, 50, queries.ValidateLimit(50))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10000))
}
