// Package media turns uploaded images into payloads that can be inlined in a
// generation request or previewed in a document.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrEncoding indicates an upload could not be read.
var ErrEncoding = errors.New("encoding upload")

// Upload is an uploaded file. Reader must be seekable: it is rewound after
// encoding so the same upload can be read again for a preview.
type Upload struct {
	Name      string
	MediaType string
	Reader    io.ReadSeeker
}

// EncodedImage is the transport form of an upload.
type EncodedImage struct {
	Data      string // base64, standard alphabet
	MediaType string
}

// DataURL renders the image for inline display.
func (e EncodedImage) DataURL() string {
	return "data:" + e.MediaType + ";base64," + e.Data
}

// Encode reads the whole upload, base64-encodes it, and rewinds the reader.
// When the upload does not declare a media type it is sniffed from the bytes.
func Encode(u Upload) (EncodedImage, error) {
	if u.Reader == nil {
		return EncodedImage{}, fmt.Errorf("%w %q: no reader", ErrEncoding, u.Name)
	}
	if _, err := u.Reader.Seek(0, io.SeekStart); err != nil {
		return EncodedImage{}, fmt.Errorf("%w %q: rewinding: %v", ErrEncoding, u.Name, err)
	}
	raw, err := io.ReadAll(u.Reader)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("%w %q: reading: %v", ErrEncoding, u.Name, err)
	}
	if _, err := u.Reader.Seek(0, io.SeekStart); err != nil {
		return EncodedImage{}, fmt.Errorf("%w %q: rewinding: %v", ErrEncoding, u.Name, err)
	}

	mediaType := strings.TrimSpace(u.MediaType)
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = mimetype.Detect(raw).String()
	}
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}

	return EncodedImage{
		Data:      base64.StdEncoding.EncodeToString(raw),
		MediaType: mediaType,
	}, nil
}

// Warner receives per-file encoding failures.
type Warner interface {
	Warn(msg string, keysAndValues ...interface{})
}

// EncodeAll encodes each upload in order. A failing upload is reported to
// warn and skipped; the rest of the batch still gets encoded. The names of
// skipped uploads are returned alongside the encoded images.
func EncodeAll(uploads []Upload, warn Warner) ([]EncodedImage, []string) {
	var (
		images  []EncodedImage
		skipped []string
	)
	for _, u := range uploads {
		img, err := Encode(u)
		if err != nil {
			if warn != nil {
				warn.Warn("skipping upload", "file", u.Name, "error", err)
			}
			skipped = append(skipped, u.Name)
			continue
		}
		images = append(images, img)
	}
	return images, skipped
}
