// Package config holds the pipeline configuration. A Config is built once
// at startup and treated as read-only afterwards; components receive it
// explicitly instead of consulting ambient globals.
package config

import (
	"os"
	"strconv"
)

const (
	// DefaultBackend is the disassembler invoked when nothing else is
	// configured.
	DefaultBackend = "objdump"

	// DefaultSniffChunkSize bounds how much of a file the binary sniffer
	// reads.
	DefaultSniffChunkSize = 1024
)

// Config is the recognized configuration surface for the disassembly
// pipeline.
type Config struct {
	// BackendExecutable is the name or path of the disassembler binary.
	BackendExecutable string `json:"backendExecutable" jsonschema:"title=Backend Executable,description=Name or path of the disassembler binary"`

	// SniffChunkSize is the number of leading bytes inspected when
	// deciding whether a file is binary.
	SniffChunkSize int `json:"binarySniffChunkSize" jsonschema:"title=Binary Sniff Chunk Size,description=Leading byte count inspected by the binary sniffer"`

	// DisableOnRemote rejects files on remote or virtual filesystems,
	// where the backend may not exist in the execution context.
	DisableOnRemote bool `json:"disableOnRemoteFilesystems" jsonschema:"title=Disable On Remote Filesystems,description=Reject files living on remote or virtual filesystems"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		BackendExecutable: DefaultBackend,
		SniffChunkSize:    DefaultSniffChunkSize,
		DisableOnRemote:   false,
	}
}

// FromEnv returns the default configuration with environment overrides
// applied.
// DISVIEW_BACKEND: disassembler executable (default: objdump)
// DISVIEW_SNIFF_CHUNK: sniff chunk size in bytes (default: 1024)
// DISVIEW_NO_REMOTE: when set to "1", disable remote filesystems
func FromEnv() Config {
	cfg := Default()

	if backend := os.Getenv("DISVIEW_BACKEND"); backend != "" {
		cfg.BackendExecutable = backend
	}

	if chunk := os.Getenv("DISVIEW_SNIFF_CHUNK"); chunk != "" {
		if n, err := strconv.Atoi(chunk); err == nil && n > 0 {
			cfg.SniffChunkSize = n
		}
	}

	if os.Getenv("DISVIEW_NO_REMOTE") == "1" {
		cfg.DisableOnRemote = true
	}

	return cfg
}
