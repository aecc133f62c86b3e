// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ivshmem_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibor/ivshmem"
	"github.com/aibor/ivshmem/internal/shmem"
)

func TestRegistryAdd(t *testing.T) {
	tests := []struct {
		name        string
		className   string
		ops         ivshmem.DeviceOps
		expectedErr error
	}{
		{
			name:      "complete ops",
			className: ivshmem.ClassName,
			ops:       ivshmem.Ops(),
		},
		{
			name:        "empty class name",
			className:   "",
			ops:         ivshmem.Ops(),
			expectedErr: ivshmem.ErrEmptyClassName,
		},
		{
			name:        "incomplete ops",
			className:   "incomplete",
			ops:         ivshmem.DeviceOps{Init: ivshmem.Ops().Init},
			expectedErr: ivshmem.ErrDeviceOpsIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := &ivshmem.Registry{}

			err := registry.Add(tt.className, tt.ops)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)

				_, exists := registry.Lookup(tt.className)
				assert.False(t, exists)

				return
			}

			require.NoError(t, err)

			_, exists := registry.Lookup(tt.className)
			assert.True(t, exists)
		})
	}
}

func TestRegistryAddDuplicate(t *testing.T) {
	registry := &ivshmem.Registry{}

	require.NoError(t, registry.Add(ivshmem.ClassName, ivshmem.Ops()))
	assert.ErrorIs(
		t,
		registry.Add(ivshmem.ClassName, ivshmem.Ops()),
		ivshmem.ErrDeviceTypeExists,
	)
}

func TestRegistryLookupUnknown(t *testing.T) {
	registry := &ivshmem.Registry{}

	_, exists := registry.Lookup("virtio-net")
	assert.False(t, exists)
}

// TestRegistryDispatch drives a device through the registered ops bundle
// the way a device-model framework does. It uses the real POSIX
// namespace, so the segment lives in /dev/shm for the duration of the
// test.
func TestRegistryDispatch(t *testing.T) {
	registry := &ivshmem.Registry{}
	require.NoError(t, registry.Add(ivshmem.ClassName, ivshmem.Ops()))

	ops, exists := registry.Lookup(ivshmem.ClassName)
	require.True(t, exists)

	name := fmt.Sprintf("ivshmem-dispatch-test-%d", os.Getpid())
	opts := fmt.Sprintf("%s,4096", name)

	vm := &shmem.MockVM{}
	cfg := &ivshmem.MockConfigSpace{}

	instance, err := ops.Init(vm, cfg, opts, 0xc0000000)
	require.NoError(t, err)

	destroyed := false

	t.Cleanup(func() {
		if !destroyed {
			_ = ops.Deinit(instance)
		}
	})

	assert.Equal(t, ivshmem.VendorID, cfg.VendorID)
	require.Len(t, vm.Mappings, 1)

	assert.Zero(t, ops.BarRead(instance, ivshmem.ControlBAR, 0x08, 4))
	ops.BarWrite(instance, ivshmem.ControlBAR, 0x0c, 4, 0x00010001)

	require.NoError(t, ops.Deinit(instance))

	destroyed = true

	// Destroy through the bundle removed the segment name again.
	_, err = os.Stat("/dev/shm/" + name)
	assert.Error(t, err)
}
