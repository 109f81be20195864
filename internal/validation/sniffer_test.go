package validation

import (
	"bytes"
	"testing"
)

func TestSniffResult_LooksExecutable(t *testing.T) {
	tests := []struct {
		name   string
		prefix []byte
		want   bool
	}{
		{name: "windows PE", prefix: []byte{0x4D, 0x5A, 0x90, 0x00}, want: true},
		{name: "ELF", prefix: []byte{0x7F, 0x45, 0x4C, 0x46, 0x02, 0x01}, want: true},
		{name: "mach-o 32 LE", prefix: []byte{0xCE, 0xFA, 0xED, 0xFE}, want: true},
		{name: "mach-o 64 LE", prefix: []byte{0xCF, 0xFA, 0xED, 0xFE}, want: true},
		{name: "mach-o 32 BE", prefix: []byte{0xFE, 0xED, 0xFA, 0xCE}, want: true},
		{name: "mach-o 64 BE", prefix: []byte{0xFE, 0xED, 0xFA, 0xCF}, want: true},
		{name: "pdf", prefix: []byte("%PDF-1.7"), want: false},
		{name: "plain text", prefix: []byte("hello wo"), want: false},
		{name: "empty", prefix: nil, want: false},
		{name: "single byte", prefix: []byte{0x4D}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sniff(tt.prefix).LooksExecutable(); got != tt.want {
				t.Errorf("LooksExecutable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSniffResult_MatchesExtension(t *testing.T) {
	tests := []struct {
		name   string
		prefix []byte
		ext    string
		want   bool
	}{
		{name: "pdf magic", prefix: []byte("%PDF-1.4"), ext: ".pdf", want: true},
		{name: "pdf mismatch", prefix: []byte("notapdf!"), ext: ".pdf", want: false},
		{name: "zip local header", prefix: []byte{0x50, 0x4B, 0x03, 0x04}, ext: ".zip", want: true},
		{name: "zip empty archive", prefix: []byte{0x50, 0x4B, 0x05, 0x06}, ext: ".zip", want: true},
		{name: "zip spanned", prefix: []byte{0x50, 0x4B, 0x07, 0x08}, ext: ".zip", want: true},
		{name: "docx is zip", prefix: []byte{0x50, 0x4B, 0x03, 0x04}, ext: ".docx", want: true},
		{name: "docx mismatch", prefix: []byte("plaintxt"), ext: ".docx", want: false},
		{name: "png magic", prefix: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, ext: ".png", want: true},
		{name: "gif87a", prefix: []byte("GIF87a"), ext: ".gif", want: true},
		{name: "gif89a", prefix: []byte("GIF89a"), ext: ".gif", want: true},
		{name: "jpeg app0", prefix: []byte{0xFF, 0xD8, 0xFF, 0xE0}, ext: ".jpg", want: true},
		{name: "no table entry passes", prefix: []byte("anything"), ext: ".txt", want: true},
		{name: "prefix shorter than magic", prefix: []byte{0x89}, ext: ".png", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sniff(tt.prefix).MatchesExtension(tt.ext); got != tt.want {
				t.Errorf("MatchesExtension(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestLooksLikeText(t *testing.T) {
	tests := []struct {
		name   string
		sample []byte
		want   bool
	}{
		{name: "empty sample is valid", sample: nil, want: true},
		{name: "ascii text", sample: []byte("hello world\nline two\ttabbed\r\n"), want: true},
		{name: "five percent nulls rejected", sample: append(bytes.Repeat([]byte("a"), 95), make([]byte, 5)...), want: false},
		{name: "just under null threshold", sample: append(bytes.Repeat([]byte("a"), 96), make([]byte, 4)...), want: true},
		{name: "ten percent control chars rejected", sample: append(bytes.Repeat([]byte("a"), 90), bytes.Repeat([]byte{0x01}, 10)...), want: false},
		{name: "just under control threshold", sample: append(bytes.Repeat([]byte("a"), 91), bytes.Repeat([]byte{0x01}, 9)...), want: true},
		{name: "tabs and newlines not control", sample: bytes.Repeat([]byte{'\t', '\n', '\r', 'x'}, 64), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikeText(tt.sample); got != tt.want {
				t.Errorf("LooksLikeText() = %v, want %v", got, tt.want)
			}
		})
	}
}
