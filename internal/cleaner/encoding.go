package cleaner

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding names accepted by Options.Encoding. Empty means UTF-8.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1251 = "windows-1251"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "latin-1"
)

// decoderFor maps an encoding name to its decoder, nil for UTF-8.
func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return nil, nil
	case EncodingWindows1251:
		return charmap.Windows1251.NewDecoder(), nil
	case EncodingWindows1252:
		return charmap.Windows1252.NewDecoder(), nil
	case EncodingLatin1, "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// sanitize converts raw file bytes to clean UTF-8 text: decodes legacy
// codepages when asked, strips a UTF-8 BOM, and silently drops invalid
// UTF-8 byte sequences. Phone exports are full of stray bytes; losing
// them beats refusing the whole file.
func sanitize(data []byte, encodingName string) (string, error) {
	dec, err := decoderFor(encodingName)
	if err != nil {
		return "", err
	}
	if dec != nil {
		converted, _, err := transform.Bytes(dec, data)
		if err != nil {
			return "", fmt.Errorf("decoding %s input: %w", encodingName, err)
		}
		data = converted
	}
	text := strings.TrimPrefix(string(data), "\uFEFF")
	return strings.ToValidUTF8(text, ""), nil
}

// ValidateEncoding reports whether name is a supported source encoding.
func ValidateEncoding(name string) error {
	_, err := decoderFor(name)
	return err
}

// usesCRLF reports whether the input uses Windows line endings. The
// cleaned output keeps whichever style the source had.
func usesCRLF(data []byte) bool {
	return bytes.Contains(data, []byte("\r\n"))
}
