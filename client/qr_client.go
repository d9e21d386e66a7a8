package client

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// QRClient reads QR payloads printed on invoices, such as e-invoice
// signatures or payment links, which often carry the total and date.
type QRClient struct{}

func NewQRClient() *QRClient {
	return &QRClient{}
}

// Decode returns the text of the first QR code found in img.
func (q *QRClient) Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to create bitmap: %w", err)
	}

	// Readers keep decoding state, so each call gets its own.
	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("no QR code found: %w", err)
	}
	return result.GetText(), nil
}
