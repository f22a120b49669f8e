// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

// areaToAlpha maps a grid area in [0, gridXY] to 8-bit coverage.
// 1920*17 == 255*128, so alpha = area*255/1920 reduces to shifts with
// round-to-nearest.
func areaToAlpha(area int32) uint8 {
	return uint8((area + area<<4 + 64) >> 7)
}

// areaToA1 thresholds a grid area at 50% coverage for the 1-bit mode.
func areaToA1(area int32) uint8 {
	if areaToAlpha(area) > 127 {
		return 255
	}
	return 0
}

// blitA8 converts the row's coverage cells into a minimal span list
// (consecutive spans never share a coverage value) and delivers it to
// the renderer for height identical rows starting at y.
func (c *Converter) blitA8(r SpanRenderer, y, height int, xmin, xmax int32) error {
	cur := c.coverages.head.next
	if cur == &c.coverages.tail {
		return nil
	}

	// Coverage entering the clip from cells on its left.
	cover := int32(0)
	for cur.x < xmin {
		cover += cur.coveredHeight
		cur = cur.next
	}
	cover *= gridX * 2

	spans := c.spans[:0]
	prevX := xmin
	lastX := int32(-1)
	lastCover := int32(0)

	for ; cur.x < xmax; cur = cur.next {
		x := cur.x

		// The run between the previous cell and this one is interior
		// (or exterior) at the running cover value.
		if x > prevX && cover != lastCover {
			spans = append(spans, Span{X: prevX, Coverage: areaToAlpha(cover)})
			lastCover = cover
			lastX = prevX
		}

		cover += cur.coveredHeight * gridX * 2
		area := cover - cur.uncoveredArea

		if area != lastCover {
			spans = append(spans, Span{X: x, Coverage: areaToAlpha(area)})
			lastCover = area
			lastX = x
		}

		prevX = x + 1
	}

	if prevX <= xmax && cover != lastCover {
		spans = append(spans, Span{X: prevX, Coverage: areaToAlpha(cover)})
		lastCover = cover
		lastX = prevX
	}

	if lastX < xmax && lastCover != 0 {
		spans = append(spans, Span{X: xmax, Coverage: 0})
	}

	c.spans = spans[:0]
	return r.RenderRows(y, height, spans)
}

// blitA1 is the 1-bit variant: coverage is thresholded at 50% and rows
// that reduce to a single all-zero span are suppressed entirely.
func (c *Converter) blitA1(r SpanRenderer, y, height int, xmin, xmax int32) error {
	cur := c.coverages.head.next
	if cur == &c.coverages.tail {
		return nil
	}

	cover := int32(0)
	for cur.x < xmin {
		cover += cur.coveredHeight
		cur = cur.next
	}
	cover *= gridX * 2

	spans := c.spans[:0]
	prevX := xmin
	lastX := int32(-1)
	lastCover := uint8(0)

	for ; cur.x < xmax; cur = cur.next {
		x := cur.x

		coverage := areaToA1(cover)
		if x > prevX && coverage != lastCover {
			spans = append(spans, Span{X: prevX, Coverage: coverage})
			lastCover = coverage
			lastX = prevX
		}

		cover += cur.coveredHeight * gridX * 2
		area := cover - cur.uncoveredArea

		coverage = areaToA1(area)
		if coverage != lastCover {
			spans = append(spans, Span{X: x, Coverage: coverage})
			lastCover = coverage
			lastX = x
		}

		prevX = x + 1
	}

	coverage := areaToA1(cover)
	if prevX <= xmax && coverage != lastCover {
		spans = append(spans, Span{X: prevX, Coverage: coverage})
		lastCover = coverage
		lastX = prevX
	}

	if lastX < xmax && lastCover != 0 {
		spans = append(spans, Span{X: xmax, Coverage: 0})
	}

	c.spans = spans[:0]
	if len(spans) <= 1 {
		return nil
	}
	return r.RenderRows(y, height, spans)
}
