// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ivshmem

import (
	"strconv"
	"strings"

	"github.com/aibor/ivshmem/internal/shmem"
)

// Options are the parsed device options.
type Options struct {
	// Name identifies the shared memory segment in the shared object
	// namespace.
	Name string
	// Size is the segment size in bytes. It must be a power of two
	// between [shmem.MinSize] and [shmem.MaxSize].
	Size uint64
}

// ParseOptions parses the device option string "<name>,<size>".
//
// The size is a decimal unsigned integer in bytes and is validated with
// [shmem.CheckSize].
func ParseOptions(opts string) (Options, error) {
	name, sizeField, found := strings.Cut(opts, ",")
	if !found {
		return Options{}, &OptionError{msg: "shared memory size is not set"}
	}

	if name == "" {
		return Options{}, &OptionError{msg: "shared memory name is not set"}
	}

	size, err := strconv.ParseUint(sizeField, 10, 32)
	if err != nil {
		return Options{}, &OptionError{
			msg: "invalid shared memory size: " + sizeField,
			err: err,
		}
	}

	if err := shmem.CheckSize(size); err != nil {
		return Options{}, err
	}

	return Options{Name: name, Size: size}, nil
}
