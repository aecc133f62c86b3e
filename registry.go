// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ivshmem

import "sync"

// ClassName is the device class name the ivshmem device registers under.
const ClassName = "ivshmem"

// DeviceOps bundles the callbacks the device-model framework dispatches
// for one emulated PCI device class. The instance handle returned by
// Init is passed back unchanged on every later callback.
type DeviceOps struct {
	// Init constructs a device instance from its option string.
	Init func(vm MemMapper, cfg ConfigSpace, opts string, guestBase uint64) (any, error)
	// Deinit destroys the instance.
	Deinit func(instance any) error
	// BarRead services a trapped read on one of the instance's BARs.
	BarRead func(instance any, bar int, offset uint64, width int) uint64
	// BarWrite services a trapped write on one of the instance's BARs.
	BarWrite func(instance any, bar int, offset uint64, width int, value uint64)
}

func (ops DeviceOps) complete() bool {
	return ops.Init != nil &&
		ops.Deinit != nil &&
		ops.BarRead != nil &&
		ops.BarWrite != nil
}

// Registry maps device class names to their [DeviceOps]. It is populated
// by explicit [Registry.Add] calls at framework startup. The zero value
// is ready to use.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]DeviceOps
}

// Add registers the ops bundle under the given device class name. The
// bundle must have all callbacks set and the name must not be taken.
func (r *Registry) Add(name string, ops DeviceOps) error {
	if name == "" {
		return ErrEmptyClassName
	}

	if !ops.complete() {
		return ErrDeviceOpsIncomplete
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.devices[name]; exists {
		return ErrDeviceTypeExists
	}

	if r.devices == nil {
		r.devices = make(map[string]DeviceOps)
	}

	r.devices[name] = ops

	return nil
}

// Lookup returns the ops bundle registered under the given device class
// name.
func (r *Registry) Lookup(name string) (DeviceOps, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ops, exists := r.devices[name]

	return ops, exists
}

// Ops returns the [DeviceOps] bundle of the ivshmem device class for
// registration with a [Registry].
func Ops() DeviceOps {
	return DeviceOps{
		Init: func(
			vm MemMapper,
			cfg ConfigSpace,
			opts string,
			guestBase uint64,
		) (any, error) {
			dev := &Device{VM: vm, Config: cfg}
			if err := dev.Init(opts, guestBase); err != nil {
				return nil, err
			}

			return dev, nil
		},
		Deinit: func(instance any) error {
			return instance.(*Device).Deinit()
		},
		BarRead: func(instance any, bar int, offset uint64, width int) uint64 {
			return instance.(*Device).BarRead(bar, offset, width)
		},
		BarWrite: func(instance any, bar int, offset uint64, width int, value uint64) {
			instance.(*Device).BarWrite(bar, offset, width, value)
		},
	}
}
