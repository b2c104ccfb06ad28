// Package backend gates and invokes the external disassembler. The probe
// decides whether a file can be handed to the backend at all; the runner
// performs the actual disassembly. Both run the backend with the working
// directory set to the file's directory and the filename passed
// unqualified, so path quoting stays simple and behaves identically in
// remote execution contexts.
package backend

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"disview/internal/config"
	"disview/internal/sniff"
)

// headerFlag asks the backend for file headers only, a cheap way to learn
// whether it recognizes the format without a full disassembly.
const headerFlag = "--file-headers"

// formatNotRecognized is the backend's diagnostic for unsupported inputs.
// Scanning human-readable output is fragile (locale, backend version); a
// zero exit status therefore also counts as recognition.
const formatNotRecognized = "file format not recognized"

// Reason classifies a probe outcome.
type Reason int

const (
	ReasonOK Reason = iota
	ReasonNotFound
	ReasonBackendMissing
	ReasonRemoteDisallowed
	ReasonIsDirectory
	ReasonZeroSize
	ReasonFormatUnrecognized
)

func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonNotFound:
		return "not-found"
	case ReasonBackendMissing:
		return "backend-missing"
	case ReasonRemoteDisallowed:
		return "remote-disallowed"
	case ReasonIsDirectory:
		return "is-directory"
	case ReasonZeroSize:
		return "zero-size"
	case ReasonFormatUnrecognized:
		return "format-unrecognized"
	default:
		return "unknown"
	}
}

// ProbeResult is the probe's verdict on one path. Rejections are normal,
// frequent outcomes, not errors: most files are simply not disassemblable.
type ProbeResult struct {
	OK       bool
	Reason   Reason
	Identity FileIdentity
}

// Prober decides whether the configured backend can process a file.
type Prober struct {
	cfg config.Config
}

func NewProber(cfg config.Config) *Prober {
	return &Prober{cfg: cfg}
}

// Probe runs the gate checks in order, cheapest first, short-circuiting on
// the first failure. Only the final format check spawns a process; zero-size
// files, directories and missing paths are rejected without one. Probing
// the same unchanged path twice yields identical results.
func (p *Prober) Probe(ctx context.Context, path string) ProbeResult {
	id := Identify(path)

	if !id.Exists {
		return ProbeResult{Reason: ReasonNotFound, Identity: id}
	}

	if _, err := exec.LookPath(p.cfg.BackendExecutable); err != nil {
		return ProbeResult{Reason: ReasonBackendMissing, Identity: id}
	}

	if id.Remote && p.cfg.DisableOnRemote {
		return ProbeResult{Reason: ReasonRemoteDisallowed, Identity: id}
	}

	if id.Dir {
		return ProbeResult{Reason: ReasonIsDirectory, Identity: id}
	}

	if id.Size == 0 {
		return ProbeResult{Reason: ReasonZeroSize, Identity: id}
	}

	// Remote stat results can be stale or synthetic; confirm the file
	// actually looks binary before paying for a subprocess against it.
	if id.Remote {
		binary, err := sniff.File(id.Path, p.cfg.SniffChunkSize)
		if err != nil || !binary {
			return ProbeResult{Reason: ReasonFormatUnrecognized, Identity: id}
		}
	}

	if !p.headerCheck(ctx, id) {
		return ProbeResult{Reason: ReasonFormatUnrecognized, Identity: id}
	}

	return ProbeResult{OK: true, Reason: ReasonOK, Identity: id}
}

// headerCheck asks the backend for file headers and reports whether it
// recognized the format.
func (p *Prober) headerCheck(ctx context.Context, id FileIdentity) bool {
	cmd := exec.CommandContext(ctx, p.cfg.BackendExecutable, headerFlag, filepath.Base(id.Path))
	cmd.Dir = filepath.Dir(id.Path)

	out, err := cmd.CombinedOutput()
	if strings.Contains(string(out), formatNotRecognized) {
		return false
	}
	return err == nil
}
