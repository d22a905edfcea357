package services

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/abhiraj-restaurant/restaurant-api/models"
)

// qrCodeSize is the PNG edge length in pixels
const qrCodeSize = 256

// ReservationLink is the public URL a booking QR code points to
func ReservationLink(baseURL string, r models.Reservation) string {
	return fmt.Sprintf("%s/bookings/%s", strings.TrimRight(baseURL, "/"), r.Reference)
}

// ReservationQRCode renders the booking link as a PNG
func ReservationQRCode(baseURL string, r models.Reservation) ([]byte, error) {
	png, err := qrcode.Encode(ReservationLink(baseURL, r), qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}
