package seed

import (
	"fmt"
	"io"

	"github.com/mdp/qrterminal/v3"
	"rsc.io/qr"
)

// QRPNG renders payload as a QR code PNG, scale pixels per module.
func QRPNG(payload string, scale int) ([]byte, error) {
	code, err := qr.Encode(payload, qr.M)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	if scale > 0 {
		code.Scale = scale
	}
	return code.PNG(), nil
}

// PrintQR writes payload to w as a half-block terminal QR code.
func PrintQR(w io.Writer, payload string) {
	qrterminal.GenerateHalfBlock(payload, qrterminal.M, w)
}
