package logfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrTooLarge is returned when a log exceeds the configured size limit.
var ErrTooLarge = errors.New("log file too large")

// Encoding names reported by Detect.
const (
	EncodingUTF8         = "utf-8"
	EncodingUTF8BOM      = "utf-8-bom"
	EncodingUTF16LE      = "utf-16le"
	EncodingUTF16BE      = "utf-16be"
	EncodingUTF16LENoBOM = "utf-16le-nobom"
	EncodingWindows1252  = "windows-1252"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Read loads path and decodes it. A maxBytes of zero or less disables the
// size limit.
func Read(path string, maxBytes int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return "", fmt.Errorf("%s: %d bytes exceeds %d: %w", path, info.Size(), maxBytes, ErrTooLarge)
	}

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%s grew past %d bytes: %w", path, maxBytes, ErrTooLarge)
	}

	text, err := Decode(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return text, nil
}

// Decode converts raw log bytes to UTF-8 text with LF line endings.
func Decode(data []byte) (string, error) {
	name := Detect(data)
	var text string
	switch name {
	case EncodingUTF8:
		text = string(data)
	case EncodingUTF8BOM:
		text = string(data[len(bomUTF8):])
	default:
		decoded, err := decodeWith(decoderFor(name), data)
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		text = decoded
	}
	return normalizeNewlines(text), nil
}

// Detect names the encoding Decode will use for data.
func Detect(data []byte) string {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return EncodingUTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		return EncodingUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return EncodingUTF16BE
	case looksUTF16LE(data):
		return EncodingUTF16LENoBOM
	case utf8.Valid(data):
		return EncodingUTF8
	default:
		return EncodingWindows1252
	}
}

func decoderFor(name string) encoding.Encoding {
	switch name {
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	case EncodingUTF16LENoBOM:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	default:
		return charmap.Windows1252
	}
}

func decodeWith(enc encoding.Encoding, data []byte) (string, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// looksUTF16LE reports whether most high bytes in the leading sample are NUL,
// which is how ASCII-range text looks when written as UTF-16LE without a BOM.
func looksUTF16LE(data []byte) bool {
	const sample = 512
	if len(data) < 2 || len(data)%2 != 0 {
		return false
	}
	n := min(len(data), sample)
	pairs, nulHigh := 0, 0
	for i := 0; i+1 < n; i += 2 {
		pairs++
		if data[i] != 0 && data[i+1] == 0 {
			nulHigh++
		}
	}
	return nulHigh*4 >= pairs*3
}

func normalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
