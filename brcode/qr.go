package brcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// RenderPNG encodes a BR Code payload as a size x size pixel PNG QR image
// with medium error correction and the standard quiet-zone border.
func RenderPNG(code string, size int) ([]byte, error) {
	png, err := qrcode.Encode(code, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	return png, nil
}
