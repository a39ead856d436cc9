package brcode

import "testing"

// 0x29B1 is the published CRC-16/CCITT-FALSE check value for "123456789".
func TestCRC16CheckValue(t *testing.T) {
	if got := crc16([]byte("123456789")); got != 0x29B1 {
		t.Errorf("crc16(123456789) = %04X, want 29B1", got)
	}
}

func TestVerifyChecksum(t *testing.T) {
	enc := NewEncoder(NewMerchant("test@example.com", "Loja", "Sao Paulo"))
	code, err := enc.Encode(Charge{TxID: "ABC"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if !VerifyChecksum(code) {
		t.Errorf("VerifyChecksum(%q) = false, want true", code)
	}

	// Flip the last hex digit.
	tampered := code[:len(code)-1] + flipHex(code[len(code)-1])
	if VerifyChecksum(tampered) {
		t.Error("VerifyChecksum accepted a tampered code")
	}

	if VerifyChecksum("") {
		t.Error("VerifyChecksum accepted an empty string")
	}
}

func flipHex(c byte) string {
	if c == '0' {
		return "1"
	}
	return "0"
}
