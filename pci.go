// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ivshmem

import "github.com/aibor/ivshmem/internal/shmem"

// PCI identity of the ivshmem-v1 device.
const (
	VendorID   uint16 = 0x1af4
	DeviceID   uint16 = 0x1110
	ClassCode  uint8  = 0x05
	RevisionID uint8  = 0x01
)

// BAR layout of the device.
const (
	// ControlBAR is the 32-bit memory BAR holding the control registers.
	ControlBAR = 0
	// MemoryBAR is the 64-bit memory BAR backed by the shared segment. It
	// occupies BAR 3 as well for the high half of the base address.
	MemoryBAR = 2

	// ControlBARSize is the fixed size of the control region.
	ControlBARSize = 0x100
)

// BARType is the type of a PCI base address register.
type BARType int

const (
	// BARTypeMem32 is a 32-bit memory mapped BAR.
	BARTypeMem32 BARType = iota
	// BARTypeMem64 is a 64-bit memory mapped BAR.
	BARTypeMem64
)

// ConfigSpace is the PCI configuration space of the device as managed by
// the surrounding device-model framework. The device writes its identity
// and requests its BARs through it during initialization.
//
// BAR base addresses live entirely in the framework. The device never
// reads them back, so guest reprogramming of a BAR base is accepted by
// the framework without effect on the device's established mappings.
type ConfigSpace interface {
	SetVendorID(id uint16)
	SetDeviceID(id uint16)
	SetRevisionID(id uint8)
	SetClassCode(class uint8)
	// AllocBAR registers a BAR of the given type and size.
	AllocBAR(index int, typ BARType, size uint64) error
}

// MemMapper maps host memory into the guest physical address space. See
// [shmem.MemMapper].
type MemMapper = shmem.MemMapper

// Namespace is the shared object namespace segments are resolved in. See
// [shmem.Namespace].
type Namespace = shmem.Namespace
