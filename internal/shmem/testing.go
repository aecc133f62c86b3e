// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package shmem

import "io/fs"

// GuestMapping records a single guest address space mapping request.
type GuestMapping struct {
	GuestAddr uint64
	HostAddr  uintptr
	Size      uint64
}

// MockVM is a [MemMapper] that records all requested mappings.
type MockVM struct {
	Err      error
	Mappings []GuestMapping
}

// MapMemRegion implements the [MemMapper] interface.
func (m *MockVM) MapMemRegion(guestAddr uint64, hostAddr uintptr, size uint64) error {
	if m.Err != nil {
		return m.Err
	}

	m.Mappings = append(m.Mappings, GuestMapping{
		GuestAddr: guestAddr,
		HostAddr:  hostAddr,
		Size:      size,
	})

	return nil
}

type mockObject struct {
	data []byte
}

// MockNamespace is an in-memory [Namespace] that records releases and
// supports failure injection for single operations.
type MockNamespace struct {
	CreateErr error
	OpenErr   error
	ResizeErr error
	SizeErr   error
	MapErr    error

	Closed   []int
	Unmapped int
	Unlinked []string

	objects map[string]*mockObject
	fds     map[int]*mockObject
	nextFD  int
}

func (m *MockNamespace) init() {
	if m.objects == nil {
		m.objects = make(map[string]*mockObject)
		m.fds = make(map[int]*mockObject)
		m.nextFD = 3
	}
}

func (m *MockNamespace) newFD(obj *mockObject) int {
	fd := m.nextFD
	m.nextFD++
	m.fds[fd] = obj

	return fd
}

// CreateExclusive implements the [Namespace] interface.
func (m *MockNamespace) CreateExclusive(name string) (int, error) {
	m.init()

	if m.CreateErr != nil {
		return -1, m.CreateErr
	}

	if _, exists := m.objects[name]; exists {
		return -1, fs.ErrExist
	}

	obj := &mockObject{}
	m.objects[name] = obj

	return m.newFD(obj), nil
}

// OpenExisting implements the [Namespace] interface.
func (m *MockNamespace) OpenExisting(name string) (int, error) {
	m.init()

	if m.OpenErr != nil {
		return -1, m.OpenErr
	}

	obj, exists := m.objects[name]
	if !exists {
		return -1, fs.ErrNotExist
	}

	return m.newFD(obj), nil
}

// Resize implements the [Namespace] interface.
func (m *MockNamespace) Resize(fd int, size int64) error {
	if m.ResizeErr != nil {
		return m.ResizeErr
	}

	m.fds[fd].data = make([]byte, size)

	return nil
}

// Size implements the [Namespace] interface.
func (m *MockNamespace) Size(fd int) (int64, error) {
	if m.SizeErr != nil {
		return 0, m.SizeErr
	}

	return int64(len(m.fds[fd].data)), nil
}

// Map implements the [Namespace] interface. All mappers of the same
// object share the same backing bytes, like a real shared mapping.
func (m *MockNamespace) Map(fd int, size int) ([]byte, error) {
	if m.MapErr != nil {
		return nil, m.MapErr
	}

	return m.fds[fd].data[:size], nil
}

// Unmap implements the [Namespace] interface.
func (m *MockNamespace) Unmap(_ []byte) error {
	m.Unmapped++
	return nil
}

// Close implements the [Namespace] interface.
func (m *MockNamespace) Close(fd int) error {
	m.Closed = append(m.Closed, fd)
	delete(m.fds, fd)

	return nil
}

// Unlink implements the [Namespace] interface.
func (m *MockNamespace) Unlink(name string) error {
	m.Unlinked = append(m.Unlinked, name)
	delete(m.objects, name)

	return nil
}
