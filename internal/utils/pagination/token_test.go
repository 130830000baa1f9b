package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeCursor(t *testing.T) {
	createdAt := time.Date(2026, 3, 15, 14, 30, 45, 123456789, time.UTC)
	id := "8f14e45f-ceea-467f-9575-0e8b2f0683b6"

	token := EncodeCursor(createdAt, id)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedCreatedAt, decodedID, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(decodedCreatedAt), "Created at should match after round trip")
	assert.Equal(t, id, decodedID)
}

func TestDecodeCursorInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		token string
	}{
		{name: "not base64", token: "%%% not base64 %%%"},
		{name: "missing separator", token: "MjAyNi0wMy0xNVQxNDozMDo0NVo"},
		{name: "empty id", token: EncodeCursor(time.Now(), "")},
		{name: "bad timestamp", token: "bm90LWEtdGltZXxzb21lLWlk"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DecodeCursor(tc.token)
			assert.Error(t, err)
		})
	}
}
