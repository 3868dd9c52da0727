package apierr

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageTableIsComplete(t *testing.T) {
	codes := ImageErrorCodes()
	assert.Len(t, imageErrors, len(codes))
	for _, code := range codes {
		entry, ok := imageErrors[code]
		require.True(t, ok, "missing table entry for %s", code)
		assert.NotZero(t, entry.Status, "%s has no status", code)
		assert.NotEmpty(t, entry.Message, "%s has no message", code)
		assert.NotEmpty(t, entry.Hint, "%s has no hint", code)
	}
}

func TestFileTableIsComplete(t *testing.T) {
	codes := FileErrorCodes()
	assert.Len(t, fileErrors, len(codes))
	for _, code := range codes {
		entry, ok := fileErrors[code]
		require.True(t, ok, "missing table entry for %s", code)
		assert.NotZero(t, entry.Status, "%s has no status", code)
		assert.NotEmpty(t, entry.Message, "%s has no message", code)
		assert.NotEmpty(t, entry.Hint, "%s has no hint", code)
	}
}

func TestVectorStoreTableIsComplete(t *testing.T) {
	codes := VectorStoreErrorCodes()
	assert.Len(t, vectorStoreErrors, len(codes))
	for _, code := range codes {
		entry, ok := vectorStoreErrors[code]
		require.True(t, ok, "missing table entry for %s", code)
		assert.NotZero(t, entry.Status, "%s has no status", code)
		assert.NotEmpty(t, entry.Message, "%s has no message", code)
		assert.NotEmpty(t, entry.Hint, "%s has no hint", code)
	}
}

func TestNetworkTableIsComplete(t *testing.T) {
	codes := NetworkErrorCodes()
	assert.Len(t, networkErrors, len(codes))
	for _, code := range codes {
		entry, ok := networkErrors[code]
		require.True(t, ok, "missing table entry for %s", code)
		assert.NotZero(t, entry.Status, "%s has no status", code)
		assert.NotEmpty(t, entry.Message, "%s has no message", code)
		assert.NotEmpty(t, entry.Hint, "%s has no hint", code)
	}
}

func TestLookupCode(t *testing.T) {
	t.Run("image code", func(t *testing.T) {
		entry, ok := lookupCode("image_too_large")
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, entry.Status)
		assert.Equal(t, imageErrors[ImageTooLarge], entry)
	})

	t.Run("file code", func(t *testing.T) {
		entry, ok := lookupCode("file_not_found")
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, entry.Status)
	})

	t.Run("vector store code", func(t *testing.T) {
		entry, ok := lookupCode("vector_store_expired")
		require.True(t, ok)
		assert.Equal(t, http.StatusGone, entry.Status)
	})

	t.Run("network codes are not request codes", func(t *testing.T) {
		_, ok := lookupCode("ECONNREFUSED")
		assert.False(t, ok)
	})

	t.Run("unknown code misses", func(t *testing.T) {
		_, ok := lookupCode("no_such_code")
		assert.False(t, ok)
	})
}
