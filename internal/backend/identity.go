package backend

import (
	"os"
	"path/filepath"
	"syscall"
)

// FileIdentity is a snapshot of a file taken at probe time. Later
// filesystem mutations are not observed until the path is probed again.
type FileIdentity struct {
	Path   string // canonical absolute path
	Exists bool
	Dir    bool
	Size   int64
	Remote bool
}

// Identify resolves path to its canonical form and snapshots what the
// probe needs to know about it.
func Identify(path string) FileIdentity {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return FileIdentity{Path: path}
	}
	if resolved, err = filepath.Abs(resolved); err != nil {
		return FileIdentity{Path: path}
	}

	fi, err := os.Stat(resolved)
	if err != nil {
		return FileIdentity{Path: resolved}
	}

	return FileIdentity{
		Path:   resolved,
		Exists: true,
		Dir:    fi.IsDir(),
		Size:   fi.Size(),
		Remote: onRemoteFilesystem(resolved),
	}
}

// Filesystem magic numbers for mounts the backend cannot be assumed to
// reach: network filesystems and FUSE-backed virtual ones.
const (
	nfsSuperMagic  = 0x6969
	smbSuperMagic  = 0x517b
	smb2Magic      = 0xfe534d42
	cifsMagic      = 0xff534d42
	codaSuperMagic = 0x73757245
	fuseSuperMagic = 0x65735546
	v9fsMagic      = 0x01021997
	afsSuperMagic  = 0x5346414f
)

// onRemoteFilesystem reports whether path lives on a remote or virtual
// filesystem. Classification is best-effort: unknown filesystem types are
// treated as local so the remote opt-out never blocks ordinary disks.
func onRemoteFilesystem(path string) bool {
	var st syscall.Statfs_t
	if err := syscall.Statfs(path, &st); err != nil {
		return false
	}

	switch uint32(st.Type) {
	case nfsSuperMagic, smbSuperMagic, smb2Magic, cifsMagic,
		codaSuperMagic, fuseSuperMagic, v9fsMagic, afsSuperMagic:
		return true
	}
	return false
}
