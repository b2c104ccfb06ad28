package view

import (
	"context"

	"disview/internal/backend"
	"disview/internal/config"
)

// Hook is the registration surface offered to a file-opening subsystem:
// CanOpen as the recognition predicate and Open as the activation
// callback. The registry itself belongs to the integrating shell.
type Hook struct {
	cfg    config.Config
	prober *backend.Prober
}

func NewHook(cfg config.Config) Hook {
	return Hook{cfg: cfg, prober: backend.NewProber(cfg)}
}

// CanOpen reports whether path would survive the probe.
func (h Hook) CanOpen(ctx context.Context, path string) bool {
	return h.prober.Probe(ctx, path).OK
}

// Open creates a fresh view for path and activates it. A probe rejection
// returns a nil view with the reason and no error; callers treat that as
// "not ours" and fall through to their default handling.
func (h Hook) Open(ctx context.Context, path string) (*View, backend.ProbeResult, error) {
	v := New(h.cfg)
	res, err := v.Setup(ctx, path)
	if err != nil {
		return nil, res, err
	}
	if !res.OK {
		return nil, res, nil
	}
	return v, res, nil
}
