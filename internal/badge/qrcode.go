package badge

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// modulePixels is the edge length of one QR module; negative sizes tell go-qrcode
// to scale per module instead of fitting a fixed image size.
const modulePixels = 10

// PNGDataURI renders text as a QR code and returns it as a base64 PNG data URI.
func PNGDataURI(text string) (string, error) {
	q, err := qrcode.New(text, qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	png, err := q.PNG(-modulePixels)
	if err != nil {
		return "", fmt.Errorf("render qr png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
