/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package filesystem is the file-system bridge (spec §6): the external
// collaborator behind java.io.WinNTFileSystem/UnixFileSystem's native
// methods. Those classes dispatch every filesystem operation through a
// single FileManager rather than reaching into os/io/fs directly, so a
// gfunction native can be handed any FileManager (the default OS-backed one,
// or a test double) without caring which concrete implementation it got --
// the same external-collaborator-as-interface shape the teacher's own
// gfunction natives use for everything they don't implement themselves.
package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Attribute bits match the JDK's own BA_EXISTS/BA_REGULAR/BA_DIRECTORY
// union encoding, returned by getAttributes and consumed directly by
// java.io.File's boolean accessors (exists/isFile/isDirectory).
const (
	AttrExists    = 1
	AttrRegular   = 2
	AttrDirectory = 4
)

// FileManager is every filesystem operation a java.io.File native method
// bridge needs, grounded on spec §6's explicit method list. One call per
// File operation: no batching, no caching -- a native method calls straight
// through to the host OS and returns whatever it finds.
type FileManager interface {
	Canonicalize(path string) (string, error)
	List(dir string) ([]string, error)
	GetAttributes(path string) (int, error)
	Rename(oldPath, newPath string) error
	Delete(path string) error
	SetLastModifiedTime(path string, millis int64) error
	SetReadOnly(path string) error
	CreateFileExclusively(path string) (bool, error)
	SetPermission(path string, enable, owner bool, writable bool) error
	GetSpace(path string, which SpaceKind) (int64, error)
	CheckAccess(path string, mode AccessMode) (bool, error)
}

// SpaceKind selects which of File's three disk-space queries GetSpace
// answers (total/free/usable), mirroring java.io.FileSystem's own
// SPACE_TOTAL/SPACE_FREE/SPACE_USABLE constants.
type SpaceKind int

const (
	SpaceTotal SpaceKind = iota
	SpaceFree
	SpaceUsable
)

// AccessMode selects which of File.canRead/canWrite/canExecute CheckAccess
// is answering.
type AccessMode int

const (
	AccessRead AccessMode = iota
	AccessWrite
	AccessExecute
)

// LocalFileManager is the default FileManager, backed directly by the host
// OS via os/io/fs/path/filepath -- no example repo in the pack offers a
// virtual-filesystem library, and this is squarely what the teacher's own
// java.io natives (javaIoInputStreamReader.go's os.File side table) already
// reach for.
type LocalFileManager struct{}

// NewLocalFileManager constructs the default OS-backed FileManager.
func NewLocalFileManager() *LocalFileManager { return &LocalFileManager{} }

func (LocalFileManager) Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

func (LocalFileManager) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

func (LocalFileManager) GetAttributes(path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	attrs := AttrExists
	if info.IsDir() {
		attrs |= AttrDirectory
	} else if info.Mode().IsRegular() {
		attrs |= AttrRegular
	}
	return attrs, nil
}

func (LocalFileManager) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (LocalFileManager) Delete(path string) error {
	return os.Remove(path)
}

func (LocalFileManager) SetLastModifiedTime(path string, millis int64) error {
	t := time.UnixMilli(millis)
	return os.Chtimes(path, t, t)
}

func (LocalFileManager) SetReadOnly(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.Chmod(path, info.Mode()&^0222)
}

func (LocalFileManager) CreateFileExclusively(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0666)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, err
	}
	_ = f.Close()
	return true, nil
}

func (LocalFileManager) SetPermission(path string, enable, owner bool, writable bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	mode := info.Mode()
	var bits fs.FileMode = 0444
	if writable {
		bits = 0222
	}
	if !owner {
		// extend to group/world as well as owner, matching File.setWritable/
		// setReadable's own ownerOnly=false semantics.
		bits |= bits >> 3
		bits |= bits >> 6
	}
	if enable {
		mode |= bits
	} else {
		mode &^= bits
	}
	return os.Chmod(path, mode)
}

func (LocalFileManager) GetSpace(path string, which SpaceKind) (int64, error) {
	// No third-party or stdlib cross-platform disk-usage query exists in
	// this pack (syscall.Statfs is Unix-only and no example repo wraps it),
	// so this reports "unknown" rather than guessing at a platform-specific
	// syscall the teacher's own code never needed either.
	return 0, nil
}

func (LocalFileManager) CheckAccess(path string, mode AccessMode) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	perm := info.Mode().Perm()
	switch mode {
	case AccessRead:
		return perm&0444 != 0, nil
	case AccessWrite:
		return perm&0222 != 0, nil
	case AccessExecute:
		return perm&0111 != 0, nil
	default:
		return false, nil
	}
}
