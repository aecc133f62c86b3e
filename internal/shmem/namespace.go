// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package shmem

import (
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// DefaultDir is the directory POSIX shared memory objects live in.
const DefaultDir = "/dev/shm"

// objectMode is the fixed mode shared objects are created with. Only the
// owner may map the segment.
const objectMode = 0o600

// Namespace is the shared object namespace segments are resolved in.
//
// CreateExclusive must be atomic with respect to concurrent creators of
// the same name and must return an error matching [fs.ErrExist] if the
// name is already present.
type Namespace interface {
	// CreateExclusive creates the named object and opens it read-write.
	CreateExclusive(name string) (int, error)
	// OpenExisting opens an already present named object read-write.
	OpenExisting(name string) (int, error)
	// Resize sets the size of the object in bytes.
	Resize(fd int, size int64) error
	// Size returns the current size of the object in bytes.
	Size(fd int) (int64, error)
	// Map maps the object's full extent read-write with shared semantics.
	Map(fd int, size int) ([]byte, error)
	// Unmap removes a mapping obtained from Map.
	Unmap(mem []byte) error
	// Close releases the descriptor. The object stays present.
	Close(fd int) error
	// Unlink removes the name from the namespace. The underlying memory
	// stays valid for all processes that still have it open or mapped.
	Unlink(name string) error
}

// DevShm is the POSIX shared memory object namespace.
//
// The zero value uses [DefaultDir]. Tests may point Dir at a scratch
// directory instead.
type DevShm struct {
	// Dir is the directory the objects are created in. Empty means
	// [DefaultDir].
	Dir string
}

// ensure interface is implemented.
var _ Namespace = DevShm{}

func (n DevShm) path(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}

	if strings.ContainsRune(name, filepath.Separator) {
		return "", ErrInvalidName
	}

	dir := n.Dir
	if dir == "" {
		dir = DefaultDir
	}

	return filepath.Join(dir, name), nil
}

// CreateExclusive creates the named object and opens it read-write.
func (n DevShm) CreateExclusive(name string) (int, error) {
	path, err := n.path(name)
	if err != nil {
		return -1, err
	}

	return unix.Open(
		path,
		unix.O_CREAT|unix.O_EXCL|unix.O_RDWR|unix.O_CLOEXEC,
		objectMode,
	)
}

// OpenExisting opens an already present named object read-write.
func (n DevShm) OpenExisting(name string) (int, error) {
	path, err := n.path(name)
	if err != nil {
		return -1, err
	}

	return unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, objectMode)
}

// Resize sets the size of the object in bytes.
func (DevShm) Resize(fd int, size int64) error {
	return unix.Ftruncate(fd, size)
}

// Size returns the current size of the object in bytes.
func (DevShm) Size(fd int) (int64, error) {
	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return 0, err
	}

	return stat.Size, nil
}

// Map maps the object's full extent read-write with shared semantics.
func (DevShm) Map(fd int, size int) ([]byte, error) {
	return unix.Mmap(
		fd,
		0,
		size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED,
	)
}

// Unmap removes a mapping obtained from Map.
func (DevShm) Unmap(mem []byte) error {
	return unix.Munmap(mem)
}

// Close releases the descriptor.
func (DevShm) Close(fd int) error {
	return unix.Close(fd)
}

// Unlink removes the name from the namespace.
func (n DevShm) Unlink(name string) error {
	path, err := n.path(name)
	if err != nil {
		return err
	}

	return unix.Unlink(path)
}
