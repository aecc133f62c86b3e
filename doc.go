// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ivshmem emulates an ivshmem-v1 inter-VM shared memory PCI
// device for device-model frameworks.
//
// The device exposes a named POSIX shared memory segment as a guest
// visible PCI memory BAR. Two virtual machines whose devices resolve the
// same segment name exchange data through the same bytes without any
// copies mediated by the device model. The first device instance to
// resolve a name creates and sizes the segment, all later instances join
// it and must request the exact same size.
//
// The device has two BARs. BAR 0 is a small 32-bit control region whose
// accesses are trapped and answered by the device. BAR 2 is a 64-bit
// memory region backed directly by the shared mapping, so guest accesses
// to it never reach the device model. Interrupt delivery between peers
// is not implemented: the doorbell register accepts and discards writes
// and IVPosition always reads as zero.
//
// The surrounding device-model framework attaches the device by looking
// up its [DeviceOps] bundle from a [Registry] it populated with
// [Registry.Add] at startup. The framework provides the guest address
// space mapping and PCI configuration space collaborators; this package
// does not implement guest MMU mechanics or config space storage.
//
// A device is configured with a two-field option string:
//
//	<name>,<size>
//
// where name identifies the shared segment and size is its size in
// bytes, a power of two between 4 KiB and 128 MiB.
package ivshmem
