// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "github.com/gogpu/scan/internal/pool"

// embeddedBuckets is the number of pixel-row buckets held inline;
// taller clip windows allocate a bucket slice on Reset.
const embeddedBuckets = 64

// polygon collects the vertically clipped, grid-quantized edges of
// the shape being rasterized, bucketed by the pixel row their clipped
// top falls into. Edges migrate from here to the active list as the
// sweep reaches their row.
type polygon struct {
	// Vertical clip extents in grid y units.
	ymin, ymax int32

	buckets         []*edge
	bucketsEmbedded [embeddedBuckets]*edge

	edges pool.Pool[edge]
}

func (p *polygon) init() {
	p.buckets = p.bucketsEmbedded[:0]
	p.edges.Init(256)
}

func (p *polygon) bucketIndex(ytop int32) int {
	return int(ytop-p.ymin) / gridY
}

// reset empties the polygon and prepares it to accept edges clipped to
// [ymin, ymax) in grid y units.
func (p *polygon) reset(ymin, ymax int32) error {
	h := ymax - ymin
	numBuckets := int(ymax+gridY-1-ymin) / gridY

	p.edges.Reset()

	if uint32(h) > uint32(0x7FFFFFFF-gridY) {
		// Even if such a window could be bucketed, the sweep would
		// never complete in reasonable time.
		p.ymin, p.ymax = 0, 0
		return pool.ErrNoMemory
	}

	if numBuckets <= embeddedBuckets {
		p.buckets = p.bucketsEmbedded[:numBuckets]
	} else {
		p.buckets = make([]*edge, numBuckets)
	}
	clear(p.buckets)

	p.ymin = ymin
	p.ymax = ymax
	return nil
}

// addEdge clips in to the polygon's vertical range, quantizes it onto
// the grid and inserts it into the bucket of its starting row. Edges
// with no clipped height are dropped. All slope arithmetic is done in
// 64 bits so large dy cannot overflow.
func (p *polygon) addEdge(in Edge) error {
	ytop := inputToGridY(in.Top)
	if ytop < p.ymin {
		ytop = p.ymin
	}
	ybot := inputToGridY(in.Bottom)
	if ybot > p.ymax {
		ybot = p.ymax
	}
	if ybot <= ytop {
		return nil
	}

	e, err := p.edges.Alloc()
	if err != nil {
		return err
	}

	e.ytop = ytop
	e.heightLeft = ybot - ytop

	p1, p2 := in.P1, in.P2
	e.dir = int32(in.Dir)
	if p2.Y <= p1.Y {
		e.dir = -e.dir
		p1, p2 = p2, p1
	}

	if p2.X == p1.X {
		e.cell = int32(p1.X)
		e.x.quo = int32(p1.X)
		e.x.rem = 0
		e.dxdy = quorem{}
		e.dxdyFull = quorem{}
		e.dy = 0
	} else {
		// The sample point of a sub-row is its vertical midpoint, so
		// the initial intercept is evaluated at ytop + half a sub-row:
		// all quantities are scaled by 2<<inputBits to keep the
		// half-unit offsets integral.
		ex := int64(p2.X-p1.X) * gridX
		ey := int64(p2.Y-p1.Y) * gridY * (2 << inputBits)

		e.dxdy.quo = int32(ex * (2 << inputBits) / ey)
		e.dxdy.rem = ex * (2 << inputBits) % ey

		tmp := int64(2*ytop+1) << inputBits
		tmp -= int64(p1.Y) * gridY * 2
		tmp *= ex
		e.x.quo = int32(tmp / ey)
		e.x.rem = tmp % ey

		// gridXBits == inputBits, so the input x needs no rescaling.
		e.x.quo += int32(p1.X)

		if e.x.rem < 0 {
			e.x.quo--
			e.x.rem += ey
		} else if e.x.rem >= ey {
			e.x.quo++
			e.x.rem -= ey
		}

		if e.heightLeft >= gridY {
			tmp = ex * (2 * gridY << inputBits)
			e.dxdyFull.quo = int32(tmp / ey)
			e.dxdyFull.rem = tmp % ey
		} else {
			e.dxdyFull = quorem{}
		}

		e.cell = e.x.quo
		if e.x.rem >= ey/2 {
			e.cell++
		}
		e.dy = ey
	}

	ix := p.bucketIndex(e.ytop)
	e.next = p.buckets[ix]
	p.buckets[ix] = e
	return nil
}
