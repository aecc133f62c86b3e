// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package shmem

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned if an empty segment name is given.
	ErrEmptyName = errors.New("segment name must not be empty")

	// ErrInvalidName is returned if a segment name contains a path
	// separator.
	ErrInvalidName = errors.New("segment name must not contain a path separator")

	// ErrSizeRange is returned if a segment size is not a power of two or
	// outside the range [MinSize, MaxSize].
	ErrSizeRange = errors.New("segment size must be a power of two in [4K,128M] bytes")

	// ErrSegmentClosed is returned if a closed segment is closed again.
	ErrSegmentClosed = errors.New("segment already closed")
)

// NamespaceError wraps a failed operation of the shared object namespace.
type NamespaceError struct {
	Op   string
	Name string
	Err  error
}

// Error implements the [error] interface.
func (e *NamespaceError) Error() string {
	return fmt.Sprintf("shared object %s %s: %v", e.Name, e.Op, e.Err)
}

// Is implements the [errors.Is] interface.
func (*NamespaceError) Is(other error) bool {
	_, ok := other.(*NamespaceError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *NamespaceError) Unwrap() error {
	return e.Err
}

// ResizeError is returned if a freshly created segment cannot be resized
// to the requested size.
type ResizeError struct {
	Name string
	Size uint64
	Err  error
}

// Error implements the [error] interface.
func (e *ResizeError) Error() string {
	return fmt.Sprintf("resize shared object %s to %d bytes: %v",
		e.Name, e.Size, e.Err)
}

// Is implements the [errors.Is] interface.
func (*ResizeError) Is(other error) bool {
	_, ok := other.(*ResizeError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ResizeError) Unwrap() error {
	return e.Err
}

// SizeMismatchError is returned if an existing segment is joined with a
// size differing from the size it was created with.
type SizeMismatchError struct {
	Name      string
	Requested uint64
	Existing  int64
}

// Error implements the [error] interface.
func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("shared object %s size differs, requested %d, existing %d",
		e.Name, e.Requested, e.Existing)
}

// Is implements the [errors.Is] interface.
func (*SizeMismatchError) Is(other error) bool {
	_, ok := other.(*SizeMismatchError)
	return ok
}

// MapError wraps a failed host or guest address space mapping.
type MapError struct {
	Name string
	// Guest is set if the guest address space mapping failed instead of
	// the own one.
	Guest bool
	Err   error
}

// Error implements the [error] interface.
func (e *MapError) Error() string {
	scope := "host"
	if e.Guest {
		scope = "guest"
	}

	return fmt.Sprintf("map shared object %s into %s address space: %v",
		e.Name, scope, e.Err)
}

// Is implements the [errors.Is] interface.
func (*MapError) Is(other error) bool {
	_, ok := other.(*MapError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *MapError) Unwrap() error {
	return e.Err
}
