// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ivshmem

import "log/slog"

// Control register offsets of the ivshmem-v1 protocol. The interrupt
// related registers are present for protocol compatibility only, since
// the device does not support notification delivery.
const (
	regIRQMask    = 0x00 // interrupt mask, reserved for future use (RW)
	regIRQStatus  = 0x04 // interrupt status, reserved for future use (RW)
	regIVPosition = 0x08 // own peer id, zero without interrupt support (R)
	regDoorbell   = 0x0c // peer notification, accepted and discarded (W)
)

// regRead answers a trapped read of a control register. Undefined
// offsets read as all-ones. The result is masked to the access width.
func regRead(offset uint64, width int) uint64 {
	val := ^uint64(0)

	switch offset {
	case regIRQMask, regIRQStatus:
		val = 0
	case regIVPosition:
		// Without interrupt support no peer id is ever assigned.
		val = 0
	default:
		slog.Debug("Read of unknown control register",
			slog.Uint64("offset", offset))
	}

	return maskToWidth(val, width)
}

// regWrite answers a trapped write of a control register. No write has
// any effect beyond diagnostic logging.
func regWrite(offset uint64, width int, value uint64) {
	slog.Debug("Control register write",
		slog.Uint64("offset", offset),
		slog.Int("width", width),
		slog.Uint64("value", value))

	switch offset {
	case regIRQMask, regIRQStatus:
	case regDoorbell:
		slog.Warn("Doorbell not supported, dropping notification",
			slog.Uint64("vector", value&0xff),
			slog.Uint64("peer", (value>>16)&0xff))
	default:
		slog.Debug("Write to unknown control register",
			slog.Uint64("offset", offset))
	}
}

// maskToWidth masks a register value to an access width in bytes.
func maskToWidth(val uint64, width int) uint64 {
	switch width {
	case 1:
		val &= 0xff
	case 2:
		val &= 0xffff
	case 4:
		val &= 0xffffffff
	}

	return val
}
