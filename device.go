// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ivshmem

import (
	"fmt"
	"log/slog"

	"github.com/aibor/ivshmem/internal/shmem"
)

type deviceState int

const (
	stateUninitialized deviceState = iota
	stateInitialized
	stateDestroyed
)

// Device is a single ivshmem PCI device instance.
//
// A zero Device with the collaborator fields set is ready for [Device.Init].
// All methods must be called from the single thread servicing the
// device, register handlers never block.
type Device struct {
	// VM maps host memory into the guest physical address space. It is
	// required.
	VM MemMapper
	// Namespace is the shared object namespace backing the memory BAR.
	// If nil, the POSIX [shmem.DevShm] namespace is used.
	Namespace Namespace
	// Config is the device's PCI configuration space. If set, Init
	// writes the PCI identity and BAR layout through it.
	Config ConfigSpace

	state   deviceState
	opts    Options
	segment *shmem.Segment
}

// Init constructs the device from its option string and makes the shared
// memory segment visible at guestBase in the guest physical address
// space.
//
// On failure the device stays uninitialized and all partially acquired
// resources are released again. There are no retries, a failed
// construction attempt is terminal.
func (d *Device) Init(opts string, guestBase uint64) error {
	if d.state != stateUninitialized {
		return ErrInvalidInstance
	}

	parsed, err := ParseOptions(opts)
	if err != nil {
		return err
	}

	if d.Config != nil {
		d.Config.SetVendorID(VendorID)
		d.Config.SetDeviceID(DeviceID)
		d.Config.SetRevisionID(RevisionID)
		d.Config.SetClassCode(ClassCode)

		err := d.Config.AllocBAR(ControlBAR, BARTypeMem32, ControlBARSize)
		if err != nil {
			return fmt.Errorf("alloc control BAR: %w", err)
		}

		err = d.Config.AllocBAR(MemoryBAR, BARTypeMem64, parsed.Size)
		if err != nil {
			return fmt.Errorf("alloc memory BAR: %w", err)
		}
	}

	ns := d.Namespace
	if ns == nil {
		ns = shmem.DevShm{}
	}

	// TODO: Remap the segment if the guest reprograms the memory BAR
	// base. Until then the initial guest mapping stays in place and the
	// shared memory becomes unreachable for that guest.
	segment, err := shmem.Resolve(ns, d.VM, parsed.Name, parsed.Size, guestBase)
	if err != nil {
		return err
	}

	d.opts = parsed
	d.segment = segment
	d.state = stateInitialized

	return nil
}

// Options returns the parsed device options.
func (d *Device) Options() Options {
	return d.opts
}

// Creator returns whether this instance created the shared memory
// segment instead of joining an existing one.
func (d *Device) Creator() bool {
	return d.state == stateInitialized && d.segment.Creator()
}

// Memory returns the shared mapping backing the memory BAR. Guest
// accesses to the memory BAR read and write these bytes directly without
// being trapped. It returns nil unless the device is initialized.
func (d *Device) Memory() []byte {
	if d.state != stateInitialized {
		return nil
	}

	return d.segment.Bytes()
}

// BarRead services a trapped read on one of the device's BARs. Only
// control BAR accesses carry meaning. Reads of any other BAR or of
// undefined offsets return all-ones masked to the access width.
//
// It never blocks and never fails.
func (d *Device) BarRead(bar int, offset uint64, width int) uint64 {
	if d.state != stateInitialized {
		slog.Warn("Register read on invalid ivshmem instance",
			slog.Int("bar", bar),
			slog.Uint64("offset", offset))

		return maskToWidth(^uint64(0), width)
	}

	if bar != ControlBAR {
		// The memory BAR is directly backed guest memory, its accesses
		// are never routed here.
		slog.Debug("Read of unhandled BAR",
			slog.Int("bar", bar),
			slog.Uint64("offset", offset))

		return maskToWidth(^uint64(0), width)
	}

	return regRead(offset, width)
}

// BarWrite services a trapped write on one of the device's BARs. No
// write has any effect beyond diagnostic logging.
//
// It never blocks and never fails.
func (d *Device) BarWrite(bar int, offset uint64, width int, value uint64) {
	if d.state != stateInitialized {
		slog.Warn("Register write on invalid ivshmem instance",
			slog.Int("bar", bar),
			slog.Uint64("offset", offset))

		return
	}

	if bar != ControlBAR {
		slog.Debug("Write to unhandled BAR",
			slog.Int("bar", bar),
			slog.Uint64("offset", offset))

		return
	}

	regWrite(offset, width, value)
}

// Deinit destroys the device. The segment is unmapped, its descriptor
// closed and, only if this instance created the segment, the name is
// unlinked from the shared object namespace. Teardown step failures are
// logged but do not keep the device from being destroyed.
//
// Destroying a device that is not initialized reports
// [ErrInvalidInstance] and changes nothing.
func (d *Device) Deinit() error {
	if d.state != stateInitialized {
		slog.Warn("Destroy of invalid ivshmem instance")
		return ErrInvalidInstance
	}

	if err := d.segment.Close(); err != nil {
		slog.Warn("Teardown of shared memory segment incomplete",
			slog.String("name", d.opts.Name),
			slog.Any("error", err))
	}

	d.segment = nil
	d.state = stateDestroyed

	return nil
}
