package brcode

import "fmt"

// crc16 implements CRC-16/CCITT-FALSE: polynomial 0x1021, initial value
// 0xFFFF, no reflection, no final XOR.
func crc16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// checksum computes the 4-hex-digit CRC value for a payload that already
// ends with the "6304" tag+length of the CRC field itself.
func checksum(payload string) string {
	return fmt.Sprintf("%04X", crc16([]byte(payload)))
}

// VerifyChecksum reports whether code ends with a CRC field whose value
// matches the checksum recomputed over the rest of the code.
func VerifyChecksum(code string) bool {
	if len(code) < 8 {
		return false
	}
	body, sum := code[:len(code)-4], code[len(code)-4:]
	if body[len(body)-4:] != tagCRC+"04" {
		return false
	}
	return checksum(body) == sum
}
