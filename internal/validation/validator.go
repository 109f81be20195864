// Package validation implements content-based file validation for the
// Gemini File Search supported formats, defending against extension
// spoofing before any bytes are sent upstream.
package validation

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gemini-rag/backend/internal/models"
)

// supportedExtensions is the Google File Search supported format list.
var supportedExtensions = map[string]struct{}{
	// Documents
	".pdf": {}, ".doc": {}, ".docx": {}, ".docm": {}, ".odt": {}, ".rtf": {},
	// Spreadsheets
	".xls": {}, ".xlsx": {}, ".xlsm": {}, ".csv": {}, ".tsv": {},
	// Presentations
	".ppt": {}, ".pptx": {},
	// Text
	".txt": {}, ".md": {}, ".markdown": {}, ".rst": {}, ".tex": {}, ".latex": {},
	// Code
	".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {}, ".py": {}, ".java": {},
	".c": {}, ".cpp": {}, ".h": {}, ".hpp": {}, ".cs": {}, ".go": {},
	".rs": {}, ".rb": {}, ".php": {}, ".swift": {}, ".kt": {}, ".scala": {},
	".r": {}, ".dart": {}, ".lua": {}, ".pl": {}, ".sh": {}, ".bash": {},
	".zsh": {}, ".ps1": {}, ".sql": {}, ".xml": {}, ".json": {}, ".yaml": {},
	".yml": {}, ".toml": {}, ".ini": {}, ".cfg": {},
	// Markup and styles
	".html": {}, ".htm": {}, ".css": {}, ".scss": {}, ".sass": {}, ".less": {},
	// Other
	".hwp": {}, ".zip": {},
}

// blockedExtensions are rejected outright, independent of content.
var blockedExtensions = map[string]struct{}{
	".exe": {}, ".dll": {}, ".bat": {}, ".cmd": {}, ".com": {}, ".scr": {},
	".vbs": {}, ".vbe": {}, ".msi": {}, ".app": {}, ".deb": {}, ".rpm": {},
	".dmg": {}, ".pkg": {}, ".apk": {}, ".ipa": {},
}

// ValidationError wraps a failed verdict so callers above the network
// boundary can distinguish user-actionable rejections from transport
// failures.
type ValidationError struct {
	Verdict *models.ValidationVerdict
}

func (e *ValidationError) Error() string {
	return e.Verdict.ErrorMessage
}

// Validator checks candidate files against the supported-format list and
// verifies that their content matches the declared extension.
type Validator struct{}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate inspects a file and returns a verdict. It is deterministic for
// identical bytes and name, and restores the stream position to the start
// after every probe so the caller's reader is left untouched.
func (v *Validator) Validate(r io.ReadSeeker, fileName string) *models.ValidationVerdict {
	ext := strings.ToLower(filepath.Ext(fileName))
	verdict := &models.ValidationVerdict{Extension: ext}

	if _, blocked := blockedExtensions[ext]; blocked {
		verdict.ErrorMessage = fmt.Sprintf("file type %q is not allowed for security reasons", ext)
		return verdict
	}

	if _, supported := supportedExtensions[ext]; !supported {
		verdict.ErrorMessage = fmt.Sprintf("file type %q is not supported by File Search; supported formats include PDF, DOCX, TXT, MD, code files, and more", ext)
		return verdict
	}

	prefix, err := readProbe(r, MagicPrefixSize)
	if err != nil {
		verdict.ErrorMessage = "unable to read file content for validation"
		return verdict
	}

	sniff := Sniff(prefix)

	// Executable detection runs before extension magic matching and
	// overrides it: a PE/ELF/Mach-O header fails regardless of extension.
	if sniff.LooksExecutable() {
		verdict.IsPotentiallySpoofed = true
		verdict.ErrorMessage = "file appears to be an executable disguised with a different extension; upload blocked for security"
		return verdict
	}

	if HasMagicTableEntry(ext) && !sniff.MatchesExtension(ext) {
		verdict.IsPotentiallySpoofed = true
		verdict.ErrorMessage = fmt.Sprintf("file content does not match the %q extension; this may be a renamed file", ext)
		return verdict
	}

	if IsTextExtension(ext) {
		sample, err := readProbe(r, TextSampleSize)
		if err != nil {
			verdict.ErrorMessage = "unable to validate text file content"
			return verdict
		}
		if !LooksLikeText(sample) {
			verdict.IsPotentiallySpoofed = true
			verdict.ErrorMessage = "file appears to contain binary data but has a text file extension"
			return verdict
		}
	}

	verdict.IsValid = true
	verdict.DetectedMimeType = MimeTypeFor(fileName)
	return verdict
}

// ValidateBytes is a convenience wrapper over Validate for in-memory data.
func (v *Validator) ValidateBytes(data []byte, fileName string) *models.ValidationVerdict {
	return v.Validate(bytes.NewReader(data), fileName)
}

// SupportedExtensions returns the sorted list of accepted extensions.
func (v *Validator) SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// MimeTypeFor resolves the MIME type to declare for a filename, falling
// back to octet-stream when the platform tables have no answer.
func MimeTypeFor(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".md", ".markdown":
		return "text/markdown"
	case ".pdf":
		return "application/pdf"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		// Strip any charset parameter; the upload header wants the bare type.
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = t[:i]
		}
		return t
	}
	return "application/octet-stream"
}

// readProbe reads up to n bytes from the start of the stream and rewinds
// it afterwards.
func readProbe(r io.ReadSeeker, n int) ([]byte, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return buf[:read], nil
}
