// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sortedints

// cursorHeap is a binary min-heap of cursors ordered by their
// current value. The cursor with the smallest value is at index 0.
type cursorHeap []*cursor

func (h cursorHeap) less(i, j int) bool {
	return h[i].x < h[j].x
}

func (h cursorHeap) swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// init establishes the heap invariant.
// The complexity is O(n) where n = len(h).
func (h cursorHeap) init() {
	n := len(h)
	for i := n/2 - 1; i >= 0; i-- {
		h.down(i, n)
	}
}

// fix re-establishes the heap ordering after the value of the
// cursor at index i has changed.
func (h cursorHeap) fix(i int) {
	if !h.down(i, len(h)) {
		h.up(i)
	}
}

// pop removes the minimum cursor from the heap.
func (h *cursorHeap) pop() *cursor {
	old := *h
	n := len(old) - 1
	old.swap(0, n)
	old.down(0, n)
	c := old[n]
	old[n] = nil
	*h = old[:n]
	return c
}

func (h cursorHeap) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(j, i) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

func (h cursorHeap) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2 // right child
		}
		if !h.less(j, i) {
			break
		}
		h.swap(i, j)
		i = j
	}
	return i > i0
}
