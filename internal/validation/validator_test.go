package validation

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestValidator_Validate(t *testing.T) {
	validPDF := append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte("x"), 64)...)
	nullHeavy := append([]byte("text"), make([]byte, 96)...) // 96% nulls

	tests := []struct {
		name        string
		fileName    string
		data        []byte
		wantValid   bool
		wantSpoofed bool
		wantMsgPart string
	}{
		{
			name:        "blocked extension exe",
			fileName:    "setup.exe",
			data:        []byte("not even executable content"),
			wantValid:   false,
			wantMsgPart: "not allowed for security",
		},
		{
			name:        "blocked extension bat",
			fileName:    "run.BAT",
			data:        []byte("echo hi"),
			wantValid:   false,
			wantMsgPart: "not allowed for security",
		},
		{
			name:        "unsupported extension",
			fileName:    "photo.bmp",
			data:        []byte("BM123456"),
			wantValid:   false,
			wantMsgPart: "not supported",
		},
		{
			name:        "executable disguised as pdf",
			fileName:    "report.pdf",
			data:        []byte{0x4D, 0x5A, 0x90, 0x00, 0x03, 0x00},
			wantValid:   false,
			wantSpoofed: true,
		},
		{
			name:        "elf disguised as txt",
			fileName:    "notes.txt",
			data:        []byte{0x7F, 0x45, 0x4C, 0x46, 0x02, 0x01},
			wantValid:   false,
			wantSpoofed: true,
		},
		{
			name:      "valid pdf",
			fileName:  "report.pdf",
			data:      validPDF,
			wantValid: true,
		},
		{
			name:      "valid pdf uppercase name",
			fileName:  "REPORT.PDF",
			data:      validPDF,
			wantValid: true,
		},
		{
			name:        "renamed binary as pdf",
			fileName:    "fake.pdf",
			data:        []byte("ZZZZnot a pdf at all"),
			wantValid:   false,
			wantSpoofed: true,
			wantMsgPart: "does not match",
		},
		{
			name:        "binary data in txt",
			fileName:    "notes.txt",
			data:        nullHeavy,
			wantValid:   false,
			wantSpoofed: true,
			wantMsgPart: "binary data",
		},
		{
			name:      "clean text file",
			fileName:  "notes.txt",
			data:      []byte("plain text content\nwith lines\n"),
			wantValid: true,
		},
		{
			name:      "empty text file",
			fileName:  "empty.md",
			data:      nil,
			wantValid: true,
		},
		{
			name:      "go source file",
			fileName:  "main.go",
			data:      []byte("package main\n\nfunc main() {}\n"),
			wantValid: true,
		},
		{
			name:      "docx with zip header",
			fileName:  "paper.docx",
			data:      []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00},
			wantValid: true,
		},
		{
			name:      "no extension unsupported",
			fileName:  "Makefile",
			data:      []byte("all:\n\techo hi\n"),
			wantValid: false,
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := v.ValidateBytes(tt.data, tt.fileName)
			if verdict.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v (msg: %s)", verdict.IsValid, tt.wantValid, verdict.ErrorMessage)
			}
			if verdict.IsPotentiallySpoofed != tt.wantSpoofed {
				t.Errorf("IsPotentiallySpoofed = %v, want %v", verdict.IsPotentiallySpoofed, tt.wantSpoofed)
			}
			if tt.wantMsgPart != "" && !strings.Contains(verdict.ErrorMessage, tt.wantMsgPart) {
				t.Errorf("ErrorMessage = %q, want substring %q", verdict.ErrorMessage, tt.wantMsgPart)
			}
		})
	}
}

func TestValidator_ExecutableOverridesAnyExtension(t *testing.T) {
	// Any content starting with MZ must be rejected as spoofed no matter
	// which supported extension it claims.
	mz := []byte{0x4D, 0x5A, 0x00, 0x01, 0x02, 0x03}
	v := NewValidator()

	for _, name := range []string{"a.pdf", "a.txt", "a.docx", "a.zip", "a.py", "a.csv"} {
		verdict := v.ValidateBytes(mz, name)
		if verdict.IsValid {
			t.Errorf("%s: MZ content accepted", name)
		}
		if !verdict.IsPotentiallySpoofed {
			t.Errorf("%s: MZ content not flagged as spoofed", name)
		}
	}
}

func TestValidator_RestoresStreamPosition(t *testing.T) {
	data := append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte("y"), 2000)...)
	r := bytes.NewReader(data)

	v := NewValidator()
	verdict := v.Validate(r, "doc.pdf")
	if !verdict.IsValid {
		t.Fatalf("unexpected invalid verdict: %s", verdict.ErrorMessage)
	}

	// The caller must be able to read the full content afterwards.
	rest, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading after validation: %v", err)
	}
	if len(rest) != len(data) {
		t.Errorf("stream position not restored: %d bytes left, want %d", len(rest), len(data))
	}
}

func TestValidator_SupportedExtensions(t *testing.T) {
	v := NewValidator()
	exts := v.SupportedExtensions()

	if len(exts) == 0 {
		t.Fatal("no supported extensions returned")
	}

	seen := make(map[string]struct{}, len(exts))
	for i, ext := range exts {
		if i > 0 && exts[i-1] >= ext {
			t.Errorf("extensions not sorted at %d: %q >= %q", i, exts[i-1], ext)
		}
		if _, dup := seen[ext]; dup {
			t.Errorf("duplicate extension %q", ext)
		}
		seen[ext] = struct{}{}

		// Every listed extension must pass the supported check. Text
		// extensions get harmless text content; binary ones get their
		// magic where one is required.
		data := []byte("plain sample text\n")
		if patterns, ok := magicBytes[ext]; ok {
			data = append([]byte{}, patterns[0]...)
		}
		verdict := v.ValidateBytes(data, "sample"+ext)
		if !verdict.IsValid && strings.Contains(verdict.ErrorMessage, "not supported") {
			t.Errorf("listed extension %q fails the supported check", ext)
		}
	}
}

func TestValidator_Deterministic(t *testing.T) {
	data := []byte{0x4D, 0x5A, 0xAA}
	v := NewValidator()
	first := v.ValidateBytes(data, "x.pdf")
	second := v.ValidateBytes(data, "x.pdf")
	if *first != *second {
		t.Errorf("verdicts differ across identical calls: %+v vs %+v", first, second)
	}
}
