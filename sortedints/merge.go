package sortedints

import (
	"fmt"
	"iter"
)

// Merge returns the ordered union of two strictly increasing
// sequences. A value present in both is produced once.
// It panics if either sequence is out of order.
func Merge(it0, it1 iter.Seq[int]) iter.Seq[int] {
	return func(yield func(int) bool) {
		next0, stop0 := iter.Pull(it0)
		defer stop0()
		next1, stop1 := iter.Pull(it1)
		defer stop1()
		c0 := cursor{next: next0}
		c1 := cursor{next: next1}
		c0.advance()
		c1.advance()
		for c0.ok || c1.ok {
			var x int
			switch {
			case c0.ok && c1.ok && c0.x == c1.x:
				x = c0.x
				c0.advance()
				c1.advance()
			case !c1.ok || c0.ok && c0.x < c1.x:
				x = c0.x
				c0.advance()
			default:
				x = c1.x
				c1.advance()
			}
			if !yield(x) {
				return
			}
		}
	}
}

// MergeMulti returns the ordered union of all the given
// strictly increasing sequences.
func MergeMulti(its ...iter.Seq[int]) iter.Seq[int] {
	switch len(its) {
	case 0:
		return func(yield func(int) bool) {}
	case 1:
		return its[0]
	case 2:
		return Merge(its[0], its[1])
	}
	return func(yield func(int) bool) {
		h := make(cursorHeap, 0, len(its))
		for _, it := range its {
			next, stop := iter.Pull(it)
			defer stop()
			c := &cursor{next: next}
			if c.advance() {
				h = append(h, c)
			}
		}
		h.init()
		var (
			last    int
			yielded bool
		)
		for len(h) > 0 {
			c := h[0]
			x := c.x
			if c.advance() {
				h.fix(0)
			} else {
				h.pop()
			}
			if yielded && x == last {
				continue
			}
			if !yield(x) {
				return
			}
			last, yielded = x, true
		}
	}
}

// cursor holds the current head of a pulled sequence.
type cursor struct {
	next func() (int, bool)
	x    int
	ok   bool
	// seen records whether x holds a value that
	// has already been produced by next.
	seen bool
}

// advance moves to the next value of the sequence and reports
// whether there was one.
func (c *cursor) advance() bool {
	x, ok := c.next()
	if ok && c.seen && x <= c.x {
		panic(fmt.Errorf("out of order item in sequence (%d <= %d)", x, c.x))
	}
	c.x, c.ok = x, ok
	c.seen = c.seen || ok
	return ok
}
