package qrcode

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"

	"storerating/config"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/service"
)

const (
	// StoreRatingType marks a payload as a store rating code.
	StoreRatingType = "store_rating"

	defaultSize = 256
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData represents the QR code data structure
type QRCodeData struct {
	StoreID int64  `json:"store_id"`
	Type    string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
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
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// NewFromConfig builds the service from the qrcode config section.
func NewFromConfig(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return NewQRCodeService(defaultSize, "M")
	}

	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// GenerateStoreQR generates a PNG QR code for rating a store
func (s *qrcodeService) GenerateStoreQR(storeID int64) ([]byte, error) {
	jsonData, err := json.Marshal(QRCodeData{StoreID: storeID, Type: StoreRatingType})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseStoreQR parses QR code data and returns the store ID
func (s *qrcodeService) ParseStoreQR(qrData string) (int64, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return 0, domainerrors.ErrInvalidQRCode.WrapMessage("payload is not valid JSON")
	}

	if data.Type != StoreRatingType {
		return 0, domainerrors.ErrInvalidQRCode.WrapMessage("unexpected type " + data.Type)
	}

	if data.StoreID <= 0 {
		return 0, domainerrors.ErrInvalidQRCode.WrapMessage("missing store id")
	}

	return data.StoreID, nil
}
