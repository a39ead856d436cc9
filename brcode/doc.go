// Package brcode builds PIX "BR Code" payment payloads following the
// Brazilian Central Bank's EMV QR specification.
//
// A payload is a sequence of tag-length-value fields terminated by a
// CRC-16/CCITT-FALSE checksum. The package normalizes the merchant's PIX
// key (email, phone, CPF, CNPJ or random/EVP key) and free-text fields to
// the shapes wallet apps expect, assembles the fields in the fixed order
// the spec requires, and can render the finished code as a PNG QR image.
//
// Basic usage:
//
//	merchant := brcode.NewMerchant("test@example.com", "Loja Teste", "São Paulo")
//	enc := brcode.NewEncoder(merchant)
//
//	code, err := enc.Encode(brcode.Charge{
//	    Amount:      decimal.NewFromFloat(25.00),
//	    Description: "Mensalidade",
//	    TxID:        "ABC123",
//	})
//
// The resulting string can be copy-pasted into a banking app or rendered
// as a scannable image:
//
//	png, err := brcode.RenderPNG(code, 512)
//
// Everything here is pure computation over the inputs; encoders are safe
// for concurrent use.
package brcode
