// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ivshmem

// BARAlloc records a single BAR allocation request.
type BARAlloc struct {
	Index int
	Type  BARType
	Size  uint64
}

// MockConfigSpace is a [ConfigSpace] that records everything the device
// writes through it and stores BAR base addresses the way the real
// framework does, outside of the device.
type MockConfigSpace struct {
	AllocErr error

	VendorID   uint16
	DeviceID   uint16
	RevisionID uint8
	ClassCode  uint8
	BARs       []BARAlloc
	BARBases   map[int]uint64
}

// SetVendorID implements the [ConfigSpace] interface.
func (m *MockConfigSpace) SetVendorID(id uint16) {
	m.VendorID = id
}

// SetDeviceID implements the [ConfigSpace] interface.
func (m *MockConfigSpace) SetDeviceID(id uint16) {
	m.DeviceID = id
}

// SetRevisionID implements the [ConfigSpace] interface.
func (m *MockConfigSpace) SetRevisionID(id uint8) {
	m.RevisionID = id
}

// SetClassCode implements the [ConfigSpace] interface.
func (m *MockConfigSpace) SetClassCode(class uint8) {
	m.ClassCode = class
}

// AllocBAR implements the [ConfigSpace] interface.
func (m *MockConfigSpace) AllocBAR(index int, typ BARType, size uint64) error {
	if m.AllocErr != nil {
		return m.AllocErr
	}

	m.BARs = append(m.BARs, BARAlloc{Index: index, Type: typ, Size: size})

	return nil
}

// SetBARAddress reprograms a BAR base address. This is a framework-side
// operation the device is not involved in, like a guest rewriting the
// BAR through config space.
func (m *MockConfigSpace) SetBARAddress(index int, base uint64) {
	if m.BARBases == nil {
		m.BARBases = make(map[int]uint64)
	}

	m.BARBases[index] = base
}
