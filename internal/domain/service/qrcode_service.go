package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateStoreQR renders a PNG QR code that identifies a store for rating.
	GenerateStoreQR(storeID int64) ([]byte, error)

	// ParseStoreQR decodes a scanned payload and returns the store ID.
	ParseStoreQR(qrData string) (int64, error)
}
