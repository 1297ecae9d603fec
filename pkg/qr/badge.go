package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// badgeSize is the PNG edge length in pixels. Rendering is synchronous inside
// the request handler, so the size is fixed to keep the operation bounded.
const badgeSize = 256

// BadgePNG encodes the payload and renders it as a QR image for printing on
// a student badge.
func (c *Codec) BadgePNG(p Payload) ([]byte, error) {
	token, err := c.Encode(p)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(token, qrcode.Medium, badgeSize)
	if err != nil {
		return nil, fmt.Errorf("generar imagen QR: %w", err)
	}
	return png, nil
}
