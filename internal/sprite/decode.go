package sprite

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

var errNotDataURL = errors.New("not a data URL")

// Decode resolves an image reference and decodes it.
// References starting with "data:" are decoded in memory, anything else is a file path.
func Decode(ref string, maxSize int) (image.Image, error) {
	raw, err := readRef(ref)
	if err != nil {
		return nil, err
	}

	img, err := decodeBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("sprite: decode %s: %w", shortRef(ref), err)
	}

	return fit(img, maxSize), nil
}

// decodeBytes picks the decoder from the leading magic bytes.
// TGA has no magic and is the fallback.
func decodeBytes(raw []byte) (image.Image, error) {
	var dec func(io.Reader) (image.Image, error)
	switch {
	case bytes.HasPrefix(raw, []byte("\x89PNG\r\n\x1a\n")):
		dec = png.Decode
	case bytes.HasPrefix(raw, []byte("\xff\xd8")):
		dec = jpeg.Decode
	case bytes.HasPrefix(raw, []byte("GIF8")):
		dec = gif.Decode
	case bytes.HasPrefix(raw, []byte("BM")):
		dec = bmp.Decode
	case len(raw) >= 12 && string(raw[:4]) == "RIFF" && string(raw[8:12]) == "WEBP":
		dec = webp.Decode
	default:
		dec = tga.Decode
	}
	return dec(bytes.NewReader(raw))
}

func readRef(ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "data:") {
		raw, err := parseDataURL(ref)
		if err != nil {
			return nil, fmt.Errorf("sprite: data URL: %w", err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("sprite: read %s: %w", ref, err)
	}
	return raw, nil
}

// parseDataURL extracts the payload of data:[<mime>][;base64],<data>.
func parseDataURL(ref string) ([]byte, error) {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return nil, errNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, errors.New("missing comma")
	}

	if strings.HasSuffix(meta, ";base64") {
		// Browsers emit standard padding; tolerate its absence too
		raw, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		return raw, err
	}

	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// fit downscales img so neither side exceeds maxSize, keeping the aspect ratio.
func fit(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}

	tw, th := maxSize, maxSize
	if w > h {
		th = max(1, h*maxSize/w)
	} else {
		tw = max(1, w*maxSize/h)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func shortRef(ref string) string {
	if len(ref) > 48 {
		return ref[:48] + "..."
	}
	return ref
}
