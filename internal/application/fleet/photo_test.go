package fleet

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImageDataURL(t *testing.T) {
	t.Run("decodes a png data URL", func(t *testing.T) {
		payload := []byte{0x89, 'P', 'N', 'G'}
		dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

		data, contentType, ext, err := decodeImageDataURL(dataURL)

		require.NoError(t, err)
		assert.Equal(t, payload, data)
		assert.Equal(t, "image/png", contentType)
		assert.Equal(t, "png", ext)
	})

	t.Run("maps jpeg subtype to jpg extension", func(t *testing.T) {
		dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("x"))

		_, contentType, ext, err := decodeImageDataURL(dataURL)

		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", contentType)
		assert.Equal(t, "jpg", ext)
	})

	t.Run("rejects non-image data URL", func(t *testing.T) {
		_, _, _, err := decodeImageDataURL("data:text/plain;base64,aGVsbG8=")
		assert.Error(t, err)
	})

	t.Run("rejects unsupported image format", func(t *testing.T) {
		_, _, _, err := decodeImageDataURL("data:image/tiff;base64,aGVsbG8=")
		assert.Error(t, err)
	})

	t.Run("rejects malformed base64", func(t *testing.T) {
		_, _, _, err := decodeImageDataURL("data:image/png;base64,%%%")
		assert.Error(t, err)
	})

	t.Run("rejects empty payload", func(t *testing.T) {
		_, _, _, err := decodeImageDataURL("data:image/png;base64,")
		assert.Error(t, err)
	})
}
