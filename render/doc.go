// Copyright 2026 The openpit Authors
// SPDX-License-Identifier: MIT

// Package render owns every GPU-resident resource built from the
// working set: chunked line geometry for holes and KAD entities,
// value-deduplicated materials, and the handle table that guarantees
// a replaced or torn-down resource is always released exactly once.
//
// The package never creates a GPU device. The host application hands
// it a DeviceHandle (the gpucontext.DeviceProvider it already owns)
// and an Uploader for buffer traffic; with a nil uploader the manager
// still builds and tracks CPU-side geometry, which is what the
// software 2D canvas consumes.
//
// On a graphics-device loss the manager stops issuing device calls,
// drops its logical references (the underlying resources are already
// gone) and reports ErrContextLost until the host hands it a fresh
// device via Recover.
package render
