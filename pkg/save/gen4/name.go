package gen4

import (
	"fmt"

	saveerrors "github.com/provide-io/pkgender/pkg/save/errors"
)

// Character code bases. Each character is stored as [code, charHighByte].
const (
	codeDigit0 = 0x21
	codeUpperA = 0x2B
	codeLowerA = 0x45

	charHighByte = 0x01
	terminator   = 0xFF
)

// ValidateName checks that name can be encoded: 1 to MaxNameLength ASCII
// letters or digits.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", saveerrors.ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: %q has more than %d characters", saveerrors.ErrInvalidName, name, MaxNameLength)
	}
	for i := 0; i < len(name); i++ {
		if _, ok := encodeChar(name[i]); !ok {
			return fmt.Errorf("%w: %q may only contain ASCII letters and digits", saveerrors.ErrInvalidName, name)
		}
	}
	return nil
}

// EncodeName converts name to the in-game representation: two bytes per
// character, a 0xFFFF terminator, then zero fill.
func EncodeName(name string) ([NameSize]byte, error) {
	var buf [NameSize]byte
	if err := ValidateName(name); err != nil {
		return buf, err
	}

	i := 0
	for ; i < len(name); i++ {
		code, _ := encodeChar(name[i])
		buf[2*i] = code
		buf[2*i+1] = charHighByte
	}
	buf[2*i] = terminator
	buf[2*i+1] = terminator
	return buf, nil
}

// DecodeName converts an encoded name region back to a string
func DecodeName(buf []byte) (string, error) {
	out := make([]byte, 0, MaxNameLength)
	for i := 0; i+1 < len(buf) && i < NameSize; i += 2 {
		code, high := buf[i], buf[i+1]
		if code == terminator && high == terminator {
			return string(out), nil
		}
		ch, ok := decodeChar(code)
		if !ok || high != charHighByte {
			return "", fmt.Errorf("%w: unsupported character code %02X%02X at offset %d", saveerrors.ErrInvalidName, code, high, i)
		}
		out = append(out, ch)
	}
	return "", fmt.Errorf("%w: missing terminator", saveerrors.ErrInvalidName)
}

func encodeChar(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return codeDigit0 + (c - '0'), true
	case c >= 'A' && c <= 'Z':
		return codeUpperA + (c - 'A'), true
	case c >= 'a' && c <= 'z':
		return codeLowerA + (c - 'a'), true
	default:
		return 0, false
	}
}

func decodeChar(code byte) (byte, bool) {
	switch {
	case code >= codeDigit0 && code < codeDigit0+10:
		return '0' + (code - codeDigit0), true
	case code >= codeUpperA && code < codeUpperA+26:
		return 'A' + (code - codeUpperA), true
	case code >= codeLowerA && code < codeLowerA+26:
		return 'a' + (code - codeLowerA), true
	default:
		return 0, false
	}
}
