package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for generating shareable listing QR codes.
type QRCodeService interface {
	// GenerateListingQR renders a PNG QR code encoding the public URL of
	// the given listing.
	GenerateListingQR(listingID uuid.UUID) ([]byte, error)
}
