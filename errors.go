// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ivshmem

import "errors"

var (
	// ErrInvalidInstance is returned if a device that is not initialized
	// is destroyed.
	ErrInvalidInstance = errors.New("invalid ivshmem instance")

	// ErrDeviceTypeExists is returned if a device type name is registered
	// twice.
	ErrDeviceTypeExists = errors.New("device type already registered")

	// ErrDeviceOpsIncomplete is returned if a registered [DeviceOps]
	// bundle is missing a callback.
	ErrDeviceOpsIncomplete = errors.New("device ops must set all callbacks")

	// ErrEmptyClassName is returned if a device type is registered without
	// a name.
	ErrEmptyClassName = errors.New("device class name must not be empty")
)

// OptionError indicates an issue with the device option string.
type OptionError struct {
	msg string
	err error
}

// Error implements the [error] interface.
func (e *OptionError) Error() string {
	return "option error: " + e.msg
}

// Is implements the [errors.Is] interface.
func (*OptionError) Is(other error) bool {
	_, ok := other.(*OptionError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *OptionError) Unwrap() error {
	return e.err
}
