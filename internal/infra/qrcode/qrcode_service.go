// Package qrcode renders shareable QR codes for listings.
package qrcode

import (
	"fmt"
	"strings"

	"rentease/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	baseURL              string
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance. The generated
// codes encode the public URL of a listing under baseURL.
func NewQRCodeService(baseURL string, size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = 256
	}

	return &qrcodeService{
		baseURL:              strings.TrimRight(baseURL, "/"),
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateListingQR renders a PNG QR code pointing at the listing's public URL.
func (s *qrcodeService) GenerateListingQR(listingID uuid.UUID) ([]byte, error) {
	url := fmt.Sprintf("%s/posts/%s", s.baseURL, listingID)

	qrCode, err := qrcode.New(url, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
