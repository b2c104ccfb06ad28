// Package view orchestrates the reversible transformation from an original
// binary file to its disassembled presentation and back. One View exists
// per open presentation instance; it owns its state and symbol cache
// exclusively and is not safe for concurrent transitions.
package view

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"disview/internal/backend"
	"disview/internal/config"
	"disview/internal/symtab"
)

// MarkerExt replaces the original extension on the presented identity. It
// both signals "derived view" and drives content-type selection in the
// surrounding shell.
const MarkerExt = ".objdump"

// ErrViewActive is returned by Setup on a view that is already active.
// Reentry semantics are deliberately undefined, so the transition is
// rejected outright.
var ErrViewActive = errors.New("view already active")

// State is the lifecycle tag of a view.
type State int

const (
	StateInactive State = iota
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "inactive"
}

// View is a single reversible disassembly presentation.
type View struct {
	prober *backend.Prober
	runner *backend.Runner

	state     State
	original  backend.FileIdentity
	presented string
	content   string
	modified  bool

	symbols symtab.Table // built on first Symbols call, dropped at teardown
}

func New(cfg config.Config) *View {
	return &View{
		prober: backend.NewProber(cfg),
		runner: backend.NewRunner(cfg),
	}
}

// PresentedName derives the view identity for an original path by
// replacing its extension with the marker extension.
func PresentedName(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + MarkerExt
}

// Setup probes path and, when the probe passes, replaces the presented
// content with the backend's disassembly and transitions to active.
//
// A failed probe is the normal rejection outcome: the result carries the
// reason, the error is nil, and the view is left untouched. An error is
// returned only when the backend could not be run after a passing probe.
func (v *View) Setup(ctx context.Context, path string) (backend.ProbeResult, error) {
	if v.state == StateActive {
		return backend.ProbeResult{}, ErrViewActive
	}

	res := v.prober.Probe(ctx, path)
	if !res.OK {
		return res, nil
	}

	out, err := v.runner.Disassemble(ctx, res.Identity.Path)
	if err != nil {
		// No partial activation: the view stays inactive.
		return res, err
	}

	v.original = res.Identity
	v.presented = PresentedName(res.Identity.Path)
	v.content = out.Text
	v.modified = false
	v.state = StateActive
	return res, nil
}

// Teardown restores the original identity and reloads the presented
// content from the original file, discarding the disassembly text, any
// in-view edits, and the cached symbol table. Calling it on an inactive
// view is a no-op.
//
// The original file on disk is the source of truth and is never written;
// even when the reload fails the identity is restored and the view ends up
// inactive.
func (v *View) Teardown() error {
	if v.state != StateActive {
		return nil
	}

	var err error
	data, readErr := os.ReadFile(v.original.Path)
	if readErr != nil {
		err = fmt.Errorf("reload original: %w", readErr)
		v.content = ""
	} else {
		v.content = string(data)
	}

	v.presented = v.original.Path
	v.modified = false
	v.symbols = nil
	v.state = StateInactive
	return err
}

// State returns the current lifecycle state.
func (v *View) State() State { return v.state }

// Original returns the identity snapshot saved at setup.
func (v *View) Original() backend.FileIdentity { return v.original }

// PresentedPath is the identity currently shown: the marker-extension name
// while active, the original path after teardown.
func (v *View) PresentedPath() string { return v.presented }

// Content is the text currently presented.
func (v *View) Content() string { return v.content }

// Modified reports whether the presented content carries unsaved edits.
// The view is read-only by contract, so this stays false.
func (v *View) Modified() bool { return v.modified }

// Symbols returns the symbol table for the active disassembly, building it
// on first use and caching it for the lifetime of the view.
func (v *View) Symbols() symtab.Table {
	if v.state != StateActive {
		return symtab.Table{}
	}
	if v.symbols == nil {
		v.symbols = symtab.Build(v.content)
	}
	return v.symbols
}
