package sniff

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsBinary(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		maxBytes int
		want     bool
	}{
		{
			name:     "empty source",
			data:     nil,
			maxBytes: 1024,
			want:     false,
		},
		{
			name:     "plain text",
			data:     []byte("package main\n\nfunc main() {}\n"),
			maxBytes: 1024,
			want:     false,
		},
		{
			name:     "nul at start",
			data:     []byte{0x00, 'a', 'b'},
			maxBytes: 1024,
			want:     true,
		},
		{
			name:     "elf header",
			data:     []byte{0x7f, 'E', 'L', 'F', 0x02, 0x01, 0x01, 0x00},
			maxBytes: 1024,
			want:     true,
		},
		{
			name:     "nul past the bound is not seen",
			data:     append(bytes.Repeat([]byte{'x'}, 64), 0x00),
			maxBytes: 64,
			want:     false,
		},
		{
			name:     "nul exactly at last inspected byte",
			data:     append(bytes.Repeat([]byte{'x'}, 63), 0x00),
			maxBytes: 64,
			want:     true,
		},
		{
			name:     "default bound applies for non-positive maxBytes",
			data:     append(bytes.Repeat([]byte{'x'}, 100), 0x00),
			maxBytes: 0,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsBinary(bytes.NewReader(tt.data), tt.maxBytes)
			if got != tt.want {
				t.Errorf("IsBinary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNulIndexReportsFirstNul(t *testing.T) {
	data := []byte("abc\x00def\x00")
	if got := NulIndex(bytes.NewReader(data), 1024); got != 3 {
		t.Errorf("NulIndex() = %d, want 3", got)
	}
	if got := NulIndex(strings.NewReader("no nul here"), 1024); got != -1 {
		t.Errorf("NulIndex() = %d, want -1", got)
	}
}

func TestNulIndexDoesNotReadPastBound(t *testing.T) {
	// A reader that fails when asked for more than the bound.
	r := &boundedReader{data: append(bytes.Repeat([]byte{'a'}, 10), 0x00), limit: 10, t: t}
	if got := NulIndex(r, 10); got != -1 {
		t.Errorf("NulIndex() = %d, want -1", got)
	}
}

type boundedReader struct {
	data  []byte
	pos   int
	limit int
	t     *testing.T
}

func (r *boundedReader) Read(p []byte) (int, error) {
	if r.pos >= r.limit {
		r.t.Fatalf("read past the %d-byte bound", r.limit)
	}
	n := copy(p, r.data[r.pos:r.limit])
	r.pos += n
	return n, nil
}

func TestFile(t *testing.T) {
	dir := t.TempDir()

	binPath := filepath.Join(dir, "bin")
	if err := os.WriteFile(binPath, []byte{0x7f, 'E', 'L', 'F', 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}
	textPath := filepath.Join(dir, "text")
	if err := os.WriteFile(textPath, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got, err := File(binPath, 1024); err != nil || !got {
		t.Errorf("File(bin) = %v, %v, want true, nil", got, err)
	}
	if got, err := File(textPath, 1024); err != nil || got {
		t.Errorf("File(text) = %v, %v, want false, nil", got, err)
	}
	if _, err := File(filepath.Join(dir, "missing"), 1024); err == nil {
		t.Error("File(missing) expected error")
	}
}
