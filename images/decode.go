package images

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"regexp"
	"strings"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp" // register BMP
)

var dataURLPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// DecodePayload decodes a base64 image payload, optionally wrapped as a data URL.
//
// Arguments:
//   - payload: Base64 image bytes, with or without a "data:image/<fmt>;base64," prefix.
//
// Returns:
//   - image.Image: The decoded image.
//   - error: An error if the payload is not valid base64 or not a supported image.
func DecodePayload(payload string) (image.Image, error) {
	payload = dataURLPrefix.ReplaceAllString(strings.TrimSpace(payload), "")
	if payload == "" {
		return nil, errors.New("empty image payload")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		var rawErr error
		data, rawErr = base64.RawStdEncoding.DecodeString(payload)
		if rawErr != nil {
			return nil, errors.Wrap(err, "invalid base64 image payload")
		}
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an encoded image. JPEG, PNG, GIF, BMP and WebP are supported.
func DecodeBytes(data []byte) (image.Image, error) {
	if DetectFormat(data) == FormatWebP {
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode webp image")
		}
		return img, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}
	return img, nil
}
