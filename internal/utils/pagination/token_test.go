package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	journalDate := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)

	token := EncodeToken(journalDate, 42)
	assert.NotEmpty(t, token)

	decodedDate, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, journalDate, decodedDate)
	assert.Equal(t, int64(42), decodedID)

	// Sub-second precision survives the round trip
	now := time.Now().UTC()
	decodedNow, _, err := DecodeToken(EncodeToken(now, 1))
	require.NoError(t, err)
	assert.True(t, now.Equal(decodedNow))
}

func TestDecodeTokenError(t *testing.T) {
	encode := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

	tests := []struct {
		name    string
		token   string
		wantMsg string
	}{
		{"invalid base64", "this is not base64!", "base64 decode"},
		{"missing separator", encode("2023-05-15T00:00:00Z"), "split"},
		{"invalid date", encode("notadate|3"), "journal date parse"},
		{"invalid id", encode("2023-05-15T00:00:00Z|abc"), "id parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeToken(tt.token)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
