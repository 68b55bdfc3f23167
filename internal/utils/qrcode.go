package utils

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const entryPassSize = 256

// EntryPassPNG encodes the registration id as a PNG QR code.
func EntryPassPNG(registrationID uuid.UUID) ([]byte, error) {
	png, err := qrcode.Encode(registrationID.String(), qrcode.Medium, entryPassSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}
