package document

import (
	"os"

	"github.com/go-pdf/fpdf"
)

// Typeface is the resolved rendering configuration produced by the startup
// capability probe. Builtin faces need the cp1252 translator applied to text.
type Typeface struct {
	Family  string
	TTFPath string
	Builtin bool
}

const embeddedFamily = "Geom"

// fallbackFace is the builtin default used when no embedded font is usable.
var fallbackFace = Typeface{Family: "Helvetica", Builtin: true}

// ResolveTypeface probes the embedded font at path. It returns the embedded
// face only when the file exists and fpdf can actually register it; any
// problem falls back to the builtin face and never fails.
func ResolveTypeface(path string) Typeface {
	if path == "" {
		return fallbackFace
	}
	if _, err := os.Stat(path); err != nil {
		return fallbackFace
	}

	// Trial registration on a scratch document so a malformed font file
	// cannot poison real builds later.
	probe := fpdf.New("P", "mm", "A4", "")
	probe.AddUTF8Font(embeddedFamily, "", path)
	probe.SetFont(embeddedFamily, "", 12)
	if probe.Err() {
		return fallbackFace
	}

	return Typeface{Family: embeddedFamily, TTFPath: path}
}
