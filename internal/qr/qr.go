// Package qr renders QR codes for short URLs.
package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// imageSize is the rendered PNG width and height in pixels.
const imageSize = 300

// DataURL renders the given short URL as a PNG QR code and returns it as a
// base64 data URL suitable for direct use in an <img> tag. High error
// correction keeps the code scannable when overlaid with a logo.
func DataURL(shortURL string) (string, error) {
	png, err := qrcode.Encode(shortURL, qrcode.High, imageSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
