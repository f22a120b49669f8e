// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scan

import (
	"github.com/gogpu/scan/internal/compose"
	"github.com/gogpu/scan/internal/image"
	"github.com/gogpu/scan/internal/pool"
)

// Sentinel errors surfaced by the package. Compare with errors.Is.
var (
	// ErrNoMemory reports that a rasterizer allocation pool hit its
	// configured limit.
	ErrNoMemory = pool.ErrNoMemory

	// ErrUnsupported reports that no compositing backend could handle
	// an operation.
	ErrUnsupported = compose.ErrUnsupported

	// ErrInvalidDimensions reports a non-positive surface size.
	ErrInvalidDimensions = image.ErrInvalidDimensions
)
