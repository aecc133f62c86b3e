// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package shmem

import (
	"errors"
	"io/fs"
	"log/slog"
	"unsafe"
)

const (
	// MinSize is the smallest valid segment size.
	MinSize = 4096
	// MaxSize is the largest valid segment size.
	MaxSize = 128 << 20
)

// CheckSize validates a requested segment size. It must be a power of
// two in the range [MinSize, MaxSize].
func CheckSize(size uint64) error {
	if size < MinSize || size > MaxSize || size&(size-1) != 0 {
		return ErrSizeRange
	}

	return nil
}

// MemMapper maps a range of the own virtual address space into the guest
// physical address space. It is implemented by the virtual machine the
// device is attached to.
type MemMapper interface {
	// MapMemRegion makes size bytes at hostAddr appear read-write at
	// guestAddr in the guest physical address space.
	MapMemRegion(guestAddr uint64, hostAddr uintptr, size uint64) error
}

// Segment is a resolved shared memory segment. It is exclusively owned
// by the device it was resolved for and must be released with
// [Segment.Close] exactly once.
type Segment struct {
	ns      Namespace
	name    string
	fd      int
	mem     []byte
	creator bool
	closed  bool
}

// Resolve creates or joins the named shared memory segment, maps it into
// the own address space and makes it visible at guestBase in the guest
// physical address space.
//
// The process that creates the object becomes its creator and sizes it.
// Joiners must request the exact size of the existing object. On any
// failure all resources acquired so far are released again. The name is
// never unlinked on failure, since a racing process may already have
// joined the object legitimately.
func Resolve(
	ns Namespace,
	vm MemMapper,
	name string,
	size uint64,
	guestBase uint64,
) (*Segment, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if err := CheckSize(size); err != nil {
		return nil, err
	}

	creator := true

	fd, err := ns.CreateExclusive(name)
	if errors.Is(err, fs.ErrExist) {
		creator = false
		fd, err = ns.OpenExisting(name)
	}

	if err != nil {
		return nil, &NamespaceError{Op: "open", Name: name, Err: err}
	}

	if creator {
		if err := ns.Resize(fd, int64(size)); err != nil {
			_ = ns.Close(fd)
			return nil, &ResizeError{Name: name, Size: size, Err: err}
		}
	} else {
		existing, err := ns.Size(fd)
		if err != nil {
			_ = ns.Close(fd)
			return nil, &NamespaceError{Op: "stat", Name: name, Err: err}
		}

		if existing != int64(size) {
			_ = ns.Close(fd)

			return nil, &SizeMismatchError{
				Name:      name,
				Requested: size,
				Existing:  existing,
			}
		}
	}

	mem, err := ns.Map(fd, int(size))
	if err != nil {
		_ = ns.Close(fd)
		return nil, &MapError{Name: name, Err: err}
	}

	hostAddr := uintptr(unsafe.Pointer(&mem[0]))

	slog.Debug("Resolved shared memory segment",
		slog.String("name", name),
		slog.Bool("creator", creator),
		slog.Uint64("hostAddr", uint64(hostAddr)),
		slog.Uint64("guestBase", guestBase),
		slog.Uint64("size", size))

	if err := vm.MapMemRegion(guestBase, hostAddr, size); err != nil {
		_ = ns.Unmap(mem)
		_ = ns.Close(fd)

		return nil, &MapError{Name: name, Guest: true, Err: err}
	}

	segment := &Segment{
		ns:      ns,
		name:    name,
		fd:      fd,
		mem:     mem,
		creator: creator,
	}

	return segment, nil
}

// Name returns the segment's name in the shared object namespace.
func (s *Segment) Name() string {
	return s.name
}

// Size returns the segment's size in bytes.
func (s *Segment) Size() uint64 {
	return uint64(len(s.mem))
}

// Creator returns whether this instance created the segment instead of
// joining an existing one.
func (s *Segment) Creator() bool {
	return s.creator
}

// Bytes returns the mapped segment memory. It stays valid until the
// segment is closed.
func (s *Segment) Bytes() []byte {
	return s.mem
}

// Close releases the segment. The mapping is removed, the descriptor is
// closed and, only if this instance created the segment, the name is
// unlinked. Unlinking only detaches the name. The memory stays valid for
// all other processes that still have the segment open or mapped.
//
// All release steps are attempted even if earlier ones fail. Failures
// are logged and collected into the returned error.
func (s *Segment) Close() error {
	if s.closed {
		return ErrSegmentClosed
	}

	s.closed = true

	var errs []error

	if err := s.ns.Unmap(s.mem); err != nil {
		slog.Warn("Failed to unmap shared memory segment",
			slog.String("name", s.name),
			slog.Any("error", err))

		errs = append(errs, err)
	}

	s.mem = nil

	if err := s.ns.Close(s.fd); err != nil {
		slog.Warn("Failed to close shared memory segment",
			slog.String("name", s.name),
			slog.Any("error", err))

		errs = append(errs, err)
	}

	if s.creator {
		if err := s.ns.Unlink(s.name); err != nil {
			slog.Warn("Failed to unlink shared memory segment",
				slog.String("name", s.name),
				slog.Any("error", err))

			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
