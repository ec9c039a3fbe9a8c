package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// TableQRGenerator encodes the menu URL for a dine-in table so guests can
// scan straight into the ordering flow.
type TableQRGenerator struct {
	BaseURL string
}

func (g TableQRGenerator) Generate(tableNumber int) ([]byte, error) {
	qrData := fmt.Sprintf("%s/menu?table=%d", g.BaseURL, tableNumber)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}

var _ QRGenerator = TableQRGenerator{}
