package utils

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// Avatars larger than this on either side get downscaled before storage.
const maxAvatarDimension = 512

// NormalizeAvatar decodes an avatar payload and scales it down to fit
// maxAvatarDimension, re-encoding in the declared format. Formats the codec
// cannot round-trip (gif animations, webp) are stored byte-for-byte.
func NormalizeAvatar(data []byte, contentType string) ([]byte, error) {
	var format imaging.Format
	switch contentType {
	case "image/jpeg", "image/jpg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return data, nil
	}

	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode avatar image: %v", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() <= maxAvatarDimension && bounds.Dy() <= maxAvatarDimension {
		return data, nil
	}

	resized := imaging.Fit(src, maxAvatarDimension, maxAvatarDimension, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, resized, format); err != nil {
		return nil, fmt.Errorf("failed to encode avatar image: %v", err)
	}
	return buf.Bytes(), nil
}
