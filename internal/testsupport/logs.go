package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// EACSettings are the "Used drive" section values written into a fixture log.
type EACSettings struct {
	ReadMode         string
	DefeatAudioCache string
	C2Pointers       string
	// OmitReadMode drops the read mode line entirely.
	OmitReadMode bool
}

// SecureSettings returns settings that satisfy every implemented EAC rule.
func SecureSettings() EACSettings {
	return EACSettings{ReadMode: "Secure", DefeatAudioCache: "Yes", C2Pointers: "No"}
}

// EACLog renders a trimmed Exact Audio Copy extraction log.
func EACLog(s EACSettings) string {
	var b strings.Builder
	b.WriteString("Exact Audio Copy V1.6 from 23. October 2020\n\n")
	b.WriteString("EAC extraction logfile from 12. March 2024, 21:04\n\n")
	b.WriteString("Artist / Album\n\n")
	b.WriteString("Used drive  : PLEXTOR DVDR   PX-716A   Adapter: 1  ID: 0\n\n")
	if !s.OmitReadMode {
		fmt.Fprintf(&b, "Read mode               : %s\n", s.ReadMode)
	}
	fmt.Fprintf(&b, "Utilize accurate stream : Yes\n")
	fmt.Fprintf(&b, "Defeat audio cache      : %s\n", s.DefeatAudioCache)
	fmt.Fprintf(&b, "Make use of C2 pointers : %s\n\n", s.C2Pointers)
	b.WriteString("Read offset correction                      : 30\n")
	b.WriteString("Overread into Lead-In and Lead-Out          : No\n")
	b.WriteString("Fill up missing offset samples with silence : Yes\n")
	b.WriteString("Delete leading and trailing silent blocks   : No\n")
	b.WriteString("Null samples used in CRC calculations       : Yes\n")
	b.WriteString("Gap handling                                : Appended to previous track\n\n")
	b.WriteString("Track  1\n\n")
	b.WriteString("     Filename C:\\Music\\01 - Track.wav\n\n")
	b.WriteString("     Peak level 98.0 %\n")
	b.WriteString("     Test CRC 9A3B1C2D\n")
	b.WriteString("     Copy CRC 9A3B1C2D\n")
	b.WriteString("     Copy OK\n\n")
	b.WriteString("No errors occurred\n\nEnd of status report\n")
	return b.String()
}

// WriteFile writes content under a fresh temp dir and returns its path.
func WriteFile(t testing.TB, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
