// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scan is a software scanline rasterizer and span compositor
// for 2D vector graphics.
//
// The rasterizer converts polygon edges in 26.6 fixed-point device
// coordinates into horizontal coverage spans with exact area
// antialiasing. The compositor applies those spans to pixel surfaces
// through the Porter-Duff operators, with fast paths for the fills
// that dominate real workloads.
//
// The two halves can be used together through Device, which composites
// shapes onto a Surface, or separately: Converter feeds spans to any
// SpanRenderer, so callers with their own pixel pipelines can consume
// raw coverage.
//
//	conv, _ := scan.NewConverter(0, 0, w, h)
//	conv.AddEdge(scan.LineEdge(p0, p1))
//	conv.AddEdge(scan.LineEdge(p1, p2))
//	conv.AddEdge(scan.LineEdge(p2, p0))
//	err := conv.Generate(renderer)
//
// Converters and Devices are not safe for concurrent use; Surfaces
// serialize pixel access internally.
package scan
