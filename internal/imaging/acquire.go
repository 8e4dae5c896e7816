// Package imaging accepts a user-supplied image payload, checks that it really
// is an image and keeps an in-memory representation that can be previewed.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // imported to register decoder
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mrsinham/diagassist/internal/lexicon"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MediaTypeDICOM is reported for DICOM Part 10 files.
const MediaTypeDICOM = "application/dicom"

// ErrInvalidImageType matches every InvalidImageTypeError.
var ErrInvalidImageType = errors.New("imaging: not an image")

// InvalidImageTypeError is returned when a payload is not an image.
type InvalidImageTypeError struct {
	Name      string
	MediaType string
	Err       error
}

func (e *InvalidImageTypeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("imaging: %s is not a usable image (%s): %s", e.Name, e.MediaType, e.Err)
	}
	return fmt.Sprintf("imaging: %s is not an image (%s)", e.Name, e.MediaType)
}

// Is makes errors.Is(err, ErrInvalidImageType) work.
func (e *InvalidImageTypeError) Is(target error) bool {
	return target == ErrInvalidImageType
}

func (e *InvalidImageTypeError) Unwrap() error {
	return e.Err
}

// Image is an accepted image payload.
type Image struct {
	Name      string
	MediaType string
	Format    string // decoder name, or "dicom"
	Width     int
	Height    int
	Data      []byte

	// Set for DICOM payloads only
	Modality string
	BodyPart string

	decoded image.Image
}

// Size returns the payload size in bytes.
func (img *Image) Size() int {
	return len(img.Data)
}

// HumanSize returns the payload size for display, e.g. "82 kB".
func (img *Image) HumanSize() string {
	return humanize.Bytes(uint64(len(img.Data)))
}

// Decoded returns the decoded raster, or nil for DICOM payloads.
func (img *Image) Decoded() image.Image {
	return img.decoded
}

// SuggestedCategory guesses a category from DICOM metadata.
func (img *Image) SuggestedCategory() (lexicon.Category, bool) {
	switch strings.ToUpper(strings.TrimSpace(img.BodyPart)) {
	case "CHEST", "LUNG", "THORAX":
		return lexicon.Chest, true
	case "HEAD", "BRAIN", "SKULL":
		return lexicon.Brain, true
	}
	return "", false
}

// LoadFile reads path and acquires it as an image.
func LoadFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return Acquire(filepath.Base(path), data)
}

// Acquire validates data and returns the accepted image. Any payload whose
// media type is not an image fails with an InvalidImageTypeError.
func Acquire(name string, data []byte) (*Image, error) {
	mediaType := DetectMediaType(data)

	switch {
	case mediaType == MediaTypeDICOM:
		return acquireDICOM(name, data)
	case strings.HasPrefix(mediaType, "image/"):
		return acquireRaster(name, mediaType, data)
	default:
		return nil, &InvalidImageTypeError{Name: name, MediaType: mediaType}
	}
}

// DetectMediaType sniffs the media type of data.
func DetectMediaType(data []byte) string {
	if isDICOM(data) {
		return MediaTypeDICOM
	}
	mediaType := http.DetectContentType(data)
	// http.DetectContentType does not know TIFF.
	if mediaType == "application/octet-stream" && isTIFF(data) {
		return "image/tiff"
	}
	return mediaType
}

func isTIFF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*"))
}

func acquireRaster(name, mediaType string, data []byte) (*Image, error) {
	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &InvalidImageTypeError{Name: name, MediaType: mediaType, Err: err}
	}

	bounds := decoded.Bounds()
	return &Image{
		Name:      name,
		MediaType: mediaType,
		Format:    format,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Data:      data,
		decoded:   decoded,
	}, nil
}
