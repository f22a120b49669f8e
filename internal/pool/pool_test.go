package pool

import "testing"

type cell struct {
	x    int
	area int32
}

func TestAllocReusesEmbeddedBuffer(t *testing.T) {
	p := New[cell](64)

	first, err := p.Alloc()
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	first.x = 42

	p.Reset()

	again, err := p.Alloc()
	if err != nil {
		t.Fatalf("Alloc after Reset: %v", err)
	}
	if again != first {
		t.Errorf("expected the embedded slot to be reused after Reset")
	}
	if again.x != 0 {
		t.Errorf("Alloc returned non-zeroed element: %+v", *again)
	}
}

func TestAllocGrowsPastEmbeddedBuffer(t *testing.T) {
	p := New[cell](64)

	seen := make(map[*cell]bool)
	for i := 0; i < 1000; i++ {
		c, err := p.Alloc()
		if err != nil {
			t.Fatalf("Alloc %d: %v", i, err)
		}
		if seen[c] {
			t.Fatalf("Alloc %d returned a live pointer twice", i)
		}
		seen[c] = true
		c.x = i
	}
}

func TestResetRecyclesChunks(t *testing.T) {
	p := New[cell](64)

	for i := 0; i < 200; i++ {
		if _, err := p.Alloc(); err != nil {
			t.Fatalf("Alloc: %v", err)
		}
	}
	p.Reset()
	if p.firstFree == nil {
		t.Fatalf("Reset did not keep overflow chunks on the free list")
	}

	// A second fill of the same size must not allocate fresh chunks.
	free := 0
	for c := p.firstFree; c != nil; c = c.prev {
		free++
	}
	for i := 0; i < 200; i++ {
		if _, err := p.Alloc(); err != nil {
			t.Fatalf("Alloc: %v", err)
		}
	}
	remaining := 0
	for c := p.firstFree; c != nil; c = c.prev {
		remaining++
	}
	if remaining >= free && free > 0 {
		t.Errorf("second fill did not draw from the free list (%d -> %d)", free, remaining)
	}
}

func TestSetLimit(t *testing.T) {
	p := New[cell](64)
	p.SetLimit(3)

	for i := 0; i < 3; i++ {
		if _, err := p.Alloc(); err != nil {
			t.Fatalf("Alloc %d under limit: %v", i, err)
		}
	}
	if _, err := p.Alloc(); err != ErrNoMemory {
		t.Fatalf("Alloc over limit = %v, want ErrNoMemory", err)
	}

	// Reset restores a usable pool under the same limit.
	p.Reset()
	if _, err := p.Alloc(); err != nil {
		t.Fatalf("Alloc after Reset: %v", err)
	}
}

func BenchmarkAllocReset(b *testing.B) {
	p := New[cell](256)
	for i := 0; i < b.N; i++ {
		for i := 0; i < 100; i++ {
			_, _ = p.Alloc()
		}
		p.Reset()
	}
}
