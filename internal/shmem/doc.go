// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package shmem resolves the named shared memory segments backing the
// ivshmem memory BAR.
//
// A segment is resolved with create-or-join semantics: the first process
// that creates the named object becomes its creator and sizes it, any
// later process joins the existing object and must request the exact
// same size. Lost races are detected by the exclusive-create guarantee
// of the underlying namespace, so no additional locking is needed.
//
// The resolved segment is mapped into the own address space with shared
// semantics and handed to the guest address space collaborator, making
// the same bytes visible to guest software in all virtual machines that
// resolved the same name.
package shmem
