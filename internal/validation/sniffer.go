package validation

import "encoding/binary"

// Byte prefix sizes used by the sniffer. Magic-number checks read at most
// the first 8 bytes; the text heuristic samples at most 1024 bytes.
const (
	MagicPrefixSize = 8
	TextSampleSize  = 1024
)

// magicBytes maps extensions to the byte patterns their content must start
// with. An extension with no entry is content-unverifiable and passes the
// magic check. The .exe/.dll entries exist only so renamed executables are
// caught; those extensions are rejected before content is ever inspected.
var magicBytes = map[string][][]byte{
	".pdf": {{0x25, 0x50, 0x44, 0x46}}, // %PDF
	".zip": {
		{0x50, 0x4B, 0x03, 0x04}, // PK local file header
		{0x50, 0x4B, 0x05, 0x06}, // PK empty archive
		{0x50, 0x4B, 0x07, 0x08}, // PK spanned archive
	},
	".docx": {{0x50, 0x4B, 0x03, 0x04}}, // OOXML containers are ZIPs
	".xlsx": {{0x50, 0x4B, 0x03, 0x04}},
	".pptx": {{0x50, 0x4B, 0x03, 0x04}},
	".exe":  {{0x4D, 0x5A}},
	".dll":  {{0x4D, 0x5A}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".jpg": {
		{0xFF, 0xD8, 0xFF, 0xE0},
		{0xFF, 0xD8, 0xFF, 0xE1},
		{0xFF, 0xD8, 0xFF, 0xE2},
	},
	".gif": {
		{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, // GIF87a
		{0x47, 0x49, 0x46, 0x38, 0x39, 0x61}, // GIF89a
	},
}

// textExtensions are the extensions whose content must look like text.
var textExtensions = map[string]struct{}{
	".txt": {}, ".md": {}, ".markdown": {}, ".rst": {}, ".csv": {}, ".tsv": {},
	".json": {}, ".xml": {}, ".html": {}, ".htm": {}, ".css": {}, ".js": {},
	".ts": {}, ".py": {}, ".java": {}, ".c": {}, ".cpp": {}, ".h": {},
	".cs": {}, ".go": {}, ".rs": {}, ".rb": {}, ".php": {}, ".sh": {},
	".sql": {}, ".yaml": {}, ".yml": {},
}

// SniffResult holds a byte prefix and answers content questions about it.
type SniffResult struct {
	prefix []byte
}

// Sniff captures the leading bytes of a file for inspection. Only the
// first MagicPrefixSize bytes are considered.
func Sniff(prefix []byte) SniffResult {
	if len(prefix) > MagicPrefixSize {
		prefix = prefix[:MagicPrefixSize]
	}
	return SniffResult{prefix: prefix}
}

// LooksExecutable reports whether the prefix carries a known executable
// magic number: Windows PE (MZ), ELF, or any Mach-O variant.
func (r SniffResult) LooksExecutable() bool {
	p := r.prefix
	if len(p) >= 2 && p[0] == 0x4D && p[1] == 0x5A { // MZ
		return true
	}
	if len(p) >= 4 && p[0] == 0x7F && p[1] == 0x45 && p[2] == 0x4C && p[3] == 0x46 { // ELF
		return true
	}
	if len(p) >= 4 {
		magic := binary.LittleEndian.Uint32(p[:4])
		switch magic {
		case 0xFEEDFACE, 0xFEEDFACF, 0xCEFAEDFE, 0xCFFAEDFE: // Mach-O 32/64 BE/LE
			return true
		}
	}
	return false
}

// MatchesExtension reports whether the prefix is consistent with the given
// extension. Extensions without a magic table entry pass unconditionally.
func (r SniffResult) MatchesExtension(ext string) bool {
	patterns, ok := magicBytes[ext]
	if !ok {
		return true
	}
	for _, magic := range patterns {
		if len(r.prefix) < len(magic) {
			continue
		}
		matched := true
		for i := range magic {
			if r.prefix[i] != magic[i] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// HasMagicTableEntry reports whether content verification is possible for
// the extension at all.
func HasMagicTableEntry(ext string) bool {
	_, ok := magicBytes[ext]
	return ok
}

// IsTextExtension reports whether the extension is held to the text
// content heuristic.
func IsTextExtension(ext string) bool {
	_, ok := textExtensions[ext]
	return ok
}

// LooksLikeText applies the binary-content heuristic to a sample: more
// than 5% null bytes or 10% control characters (tab/CR/LF excluded) means
// the sample is binary, not text. An empty sample is valid text.
func LooksLikeText(sample []byte) bool {
	if len(sample) == 0 {
		return true
	}
	var nullBytes, controlChars int
	for _, b := range sample {
		if b == 0 {
			nullBytes++
		}
		if b < 32 && b != '\t' && b != '\n' && b != '\r' {
			controlChars++
		}
	}
	nullRatio := float64(nullBytes) / float64(len(sample))
	controlRatio := float64(controlChars) / float64(len(sample))
	return nullRatio < 0.05 && controlRatio < 0.10
}
