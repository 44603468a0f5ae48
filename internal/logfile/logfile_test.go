package logfile_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"riplogcheck/internal/logfile"
)

const sample = "Exact Audio Copy V1.6 from 23. October 2020\r\n\r\nRead mode               : Secure\r\nDefeat audio cache      : Yes\r\n"

const wantText = "Exact Audio Copy V1.6 from 23. October 2020\n\nRead mode               : Secure\nDefeat audio cache      : Yes\n"

func encodeUTF16(t *testing.T, endian unicode.Endianness, bom unicode.BOMPolicy, text string) []byte {
	t.Helper()
	out, err := unicode.UTF16(endian, bom).NewEncoder().String(text)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return []byte(out)
}

func TestDecodeEncodings(t *testing.T) {
	cases := []struct {
		name     string
		data     []byte
		encoding string
	}{
		{"utf-8", []byte(sample), logfile.EncodingUTF8},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, sample...), logfile.EncodingUTF8BOM},
		{"utf-16le bom", encodeUTF16(t, unicode.LittleEndian, unicode.UseBOM, sample), logfile.EncodingUTF16LE},
		{"utf-16be bom", encodeUTF16(t, unicode.BigEndian, unicode.UseBOM, sample), logfile.EncodingUTF16BE},
		{"utf-16le no bom", encodeUTF16(t, unicode.LittleEndian, unicode.IgnoreBOM, sample), logfile.EncodingUTF16LENoBOM},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := logfile.Detect(tc.data); got != tc.encoding {
				t.Fatalf("Detect = %q, want %q", got, tc.encoding)
			}
			text, err := logfile.Decode(tc.data)
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}
			if text != wantText {
				t.Fatalf("unexpected text:\n%q\nwant\n%q", text, wantText)
			}
		})
	}
}

func TestDecodeWindows1252(t *testing.T) {
	data := []byte("Artist: Bj\xf6rk\r\nRead mode : Secure\r\n")
	if got := logfile.Detect(data); got != logfile.EncodingWindows1252 {
		t.Fatalf("Detect = %q", got)
	}
	text, err := logfile.Decode(data)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if text != "Artist: Björk\nRead mode : Secure\n" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestDecodeLoneCarriageReturns(t *testing.T) {
	text, err := logfile.Decode([]byte("a\rb\r\nc"))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if text != "a\nb\nc" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rip.log")
	if err := os.WriteFile(path, encodeUTF16(t, unicode.LittleEndian, unicode.UseBOM, sample), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	text, err := logfile.Read(path, 1<<20)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if text != wantText {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestReadRejectsOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.log")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 128)), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := logfile.Read(path, 64)
	if !errors.Is(err, logfile.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if _, err := logfile.Read(path, 0); err != nil {
		t.Fatalf("unlimited read returned error: %v", err)
	}
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := logfile.Read(filepath.Join(dir, "missing.log"), 0); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := logfile.Read(dir, 0); err == nil {
		t.Fatal("expected error reading a directory")
	}
}
