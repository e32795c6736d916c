package gen4

import (
	"encoding/binary"
	"fmt"

	"github.com/sigurn/crc16"
)

// Gen IV blocks use CRC-16 with poly 0x1021, init 0xFFFF, no reflection and
// no final xor (CRC-16/IBM-3740, listed as CCITT-FALSE by crc16).
var checksumTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// Checksum computes the block checksum of data
func Checksum(data []byte) uint16 {
	return crc16.Checksum(data, checksumTable)
}

// ChecksumBytes returns the checksum of data in footer storage order (little-endian)
func ChecksumBytes(data []byte) [ChecksumSize]byte {
	var out [ChecksumSize]byte
	binary.LittleEndian.PutUint16(out[:], Checksum(data))
	return out
}

// FormatChecksum renders stored checksum bytes as exactly four hex digits
func FormatChecksum(b [ChecksumSize]byte) string {
	return fmt.Sprintf("%02X%02X", b[0], b[1])
}

func readStored(image []byte, start int) [ChecksumSize]byte {
	var out [ChecksumSize]byte
	copy(out[:], image[start:start+ChecksumSize])
	return out
}
