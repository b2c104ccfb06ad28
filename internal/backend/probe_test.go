package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"disview/internal/config"
)

// writeFakeBackend installs a shell script that mimics the backend's CLI
// contract: --file-headers recognizes *.bin files only, -d emits a fixed
// listing with the working directory on the first line.
func writeFakeBackend(t *testing.T, dir string) string {
	t.Helper()

	script := `#!/bin/sh
flag="$1"
file="$2"
case "$flag" in
--file-headers)
	case "$file" in
	*.bin)
		printf '\n%s:     file format elf64-x86-64\n' "$file"
		exit 0
		;;
	*)
		printf '%s: file format not recognized\n' "$file" >&2
		exit 1
		;;
	esac
	;;
-d)
	printf 'cwd=%s\n' "$PWD"
	cat <<'LST'

Disassembly of section .text:

0000000000001139 <main>:
    1139:	55                   	push   %rbp
    113a:	c3                   	ret
LST
	exit 0
	;;
esac
exit 2
`
	path := filepath.Join(dir, "fake-objdump")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProbeRejections(t *testing.T) {
	dir := t.TempDir()
	fake := writeFakeBackend(t, dir)

	elfish := writeFile(t, dir, "a.bin", []byte{0x7f, 'E', 'L', 'F', 0x00, 0x01})
	textFile := writeFile(t, dir, "notes.txt", []byte("just text\n"))
	empty := writeFile(t, dir, "empty.bin", nil)

	tests := []struct {
		name    string
		backend string
		path    string
		wantOK  bool
		want    Reason
	}{
		{
			name:    "nonexistent path",
			backend: fake,
			path:    filepath.Join(dir, "missing.bin"),
			want:    ReasonNotFound,
		},
		{
			name:    "broken symlink",
			backend: fake,
			path:    brokenSymlink(t, dir),
			want:    ReasonNotFound,
		},
		{
			name:    "backend not installed",
			backend: "definitely-not-a-real-disassembler",
			path:    elfish,
			want:    ReasonBackendMissing,
		},
		{
			name:    "directory",
			backend: fake,
			path:    dir,
			want:    ReasonIsDirectory,
		},
		{
			name:    "zero-size file",
			backend: fake,
			path:    empty,
			want:    ReasonZeroSize,
		},
		{
			name:    "unrecognized format",
			backend: fake,
			path:    textFile,
			want:    ReasonFormatUnrecognized,
		},
		{
			name:    "recognized binary",
			backend: fake,
			path:    elfish,
			wantOK:  true,
			want:    ReasonOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.BackendExecutable = tt.backend

			res := NewProber(cfg).Probe(context.Background(), tt.path)
			if res.OK != tt.wantOK {
				t.Errorf("Probe().OK = %v, want %v", res.OK, tt.wantOK)
			}
			if res.Reason != tt.want {
				t.Errorf("Probe().Reason = %s, want %s", res.Reason, tt.want)
			}
		})
	}
}

func brokenSymlink(t *testing.T, dir string) string {
	t.Helper()
	link := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "gone"), link); err != nil {
		t.Skipf("symlink: %v", err)
	}
	return link
}

func TestProbeIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	fake := writeFakeBackend(t, dir)
	path := writeFile(t, dir, "a.bin", []byte{0x7f, 'E', 'L', 'F', 0x00})

	cfg := config.Default()
	cfg.BackendExecutable = fake
	prober := NewProber(cfg)

	first := prober.Probe(context.Background(), path)
	second := prober.Probe(context.Background(), path)
	if first != second {
		t.Errorf("probe not idempotent: %+v vs %+v", first, second)
	}
}

func TestProbeIdentitySnapshot(t *testing.T) {
	dir := t.TempDir()
	fake := writeFakeBackend(t, dir)
	path := writeFile(t, dir, "a.bin", []byte{0x7f, 'E', 'L', 'F', 0x00, 0x01})

	cfg := config.Default()
	cfg.BackendExecutable = fake

	res := NewProber(cfg).Probe(context.Background(), path)
	if !res.OK {
		t.Fatalf("Probe() rejected: %s", res.Reason)
	}
	if !res.Identity.Exists {
		t.Error("identity should record existence")
	}
	if res.Identity.Size != 6 {
		t.Errorf("identity size = %d, want 6", res.Identity.Size)
	}
	if !filepath.IsAbs(res.Identity.Path) {
		t.Errorf("identity path %q is not absolute", res.Identity.Path)
	}
}

func TestReasonStrings(t *testing.T) {
	tests := []struct {
		reason Reason
		want   string
	}{
		{ReasonOK, "ok"},
		{ReasonNotFound, "not-found"},
		{ReasonBackendMissing, "backend-missing"},
		{ReasonRemoteDisallowed, "remote-disallowed"},
		{ReasonIsDirectory, "is-directory"},
		{ReasonZeroSize, "zero-size"},
		{ReasonFormatUnrecognized, "format-unrecognized"},
	}
	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("Reason(%d).String() = %q, want %q", tt.reason, got, tt.want)
		}
	}
}
