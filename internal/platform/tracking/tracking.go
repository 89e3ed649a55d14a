// Package tracking allocates order tracking numbers and renders them as
// scannable images. The same opaque string feeds both the linear barcode on
// the parcel label and the QR code shown in the customer's order view.
package tracking

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/qr"
	"github.com/google/uuid"

	ordersports "github.com/everestcart/storefront-api/internal/domains/orders/ports"
)

// Generator allocates UUID tracking numbers.
type Generator struct{}

func NewGenerator() Generator { return Generator{} }

func (Generator) NewTrackingNumber() string { return uuid.NewString() }

var _ ordersports.TrackingGenerator = Generator{}

const (
	barcodeWidth  = 400
	barcodeHeight = 120
	qrSize        = 256
)

// BarcodePNG renders the tracking number as a Code 128 barcode.
func BarcodePNG(trackingNumber string) ([]byte, error) {
	if trackingNumber == "" {
		return nil, fmt.Errorf("tracking number is empty")
	}
	code, err := code128.Encode(trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("encode barcode: %w", err)
	}
	scaled, err := barcode.Scale(code, barcodeWidth, barcodeHeight)
	if err != nil {
		return nil, fmt.Errorf("scale barcode: %w", err)
	}
	return encodePNG(scaled)
}

// QRCodePNG renders the tracking number as a QR code.
func QRCodePNG(trackingNumber string) ([]byte, error) {
	if trackingNumber == "" {
		return nil, fmt.Errorf("tracking number is empty")
	}
	code, err := qr.Encode(trackingNumber, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	scaled, err := barcode.Scale(code, qrSize, qrSize)
	if err != nil {
		return nil, fmt.Errorf("scale qr code: %w", err)
	}
	return encodePNG(scaled)
}

func encodePNG(img barcode.Barcode) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
