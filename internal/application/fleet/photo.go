package fleet

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gatesec/backend/internal/domain/shared"
)

// extensions of the accepted upload formats, keyed by MIME subtype
var imageExtensions = map[string]string{
	"jpeg": "jpg",
	"jpg":  "jpg",
	"png":  "png",
	"gif":  "gif",
	"webp": "webp",
}

// decodeImageDataURL parses a base64 data URL of the form
// "data:image/png;base64,..." and returns the raw bytes, the content
// type and the file extension.
func decodeImageDataURL(dataURL string) (data []byte, contentType, ext string, err error) {
	const prefix = "data:image/"
	if !strings.HasPrefix(dataURL, prefix) {
		return nil, "", "", shared.NewDomainError("INVALID_IMAGE", "Image must be a base64 data URL")
	}

	rest := dataURL[len(prefix):]
	semi := strings.Index(rest, ";base64,")
	if semi < 0 {
		return nil, "", "", shared.NewDomainError("INVALID_IMAGE", "Image must be base64 encoded")
	}

	subtype := rest[:semi]
	ext, ok := imageExtensions[subtype]
	if !ok {
		return nil, "", "", shared.NewDomainError("INVALID_IMAGE", fmt.Sprintf("Unsupported image format: %s", subtype))
	}

	data, err = base64.StdEncoding.DecodeString(rest[semi+len(";base64,"):])
	if err != nil {
		return nil, "", "", shared.NewDomainError("INVALID_IMAGE", "Malformed base64 image data")
	}
	if len(data) == 0 {
		return nil, "", "", shared.NewDomainError("INVALID_IMAGE", "Image data is empty")
	}

	return data, "image/" + subtype, ext, nil
}

// storeImage decodes a data URL and writes the blob under a fresh key
// in the given folder, returning the storage key.
func storeImage(ctx context.Context, storage ObjectStorage, folder, dataURL string) (string, error) {
	data, contentType, ext, err := decodeImageDataURL(dataURL)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s.%s", folder, uuid.New().String(), ext)
	if err := storage.PutObject(ctx, key, contentType, data); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return key, nil
}
