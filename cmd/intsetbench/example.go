package main

import (
	"fmt"
	"io"

	"github.com/gravitational/trace"

	"github.com/rogpeppe/intset/intset"
)

const exampleSize = 10

func newSets(workers, n int) ([]*intset.Set, error) {
	sets := make([]*intset.Set, 0, n)
	for i := 0; i < n; i++ {
		s, err := intset.New(intset.Config{Workers: workers})
		if err != nil {
			releaseAll(sets)
			return nil, trace.Wrap(err)
		}
		sets = append(sets, s)
	}
	return sets, nil
}

func releaseAll(sets []*intset.Set) {
	for _, s := range sets {
		s.Release()
	}
}

func printFind(w io.Writer, s *intset.Set) {
	fmt.Fprintf(w, "\n---- find ----\n")
	for v := 0; v < exampleSize; v++ {
		if s.Contains(v) {
			fmt.Fprintf(w, "%d: found\n", v)
		} else {
			fmt.Fprintf(w, "%d: not found\n", v)
		}
	}
	fmt.Fprintf(w, "size: %d\n", s.Len())
}

// exampleAdd fills one set value by value and another from a
// slice, then adds the second to the first.
func exampleAdd(w io.Writer, workers int) error {
	sets, err := newSets(workers, 2)
	if err != nil {
		return trace.Wrap(err)
	}
	defer releaseAll(sets)
	a, b := sets[0], sets[1]

	values := make([]int, exampleSize)
	for i := range values {
		values[i] = i
	}

	fmt.Fprintf(w, "---- add ----\n")
	fmt.Fprintf(w, "adding %d..%d one at a time\n", 0, exampleSize/2-1)
	for _, v := range values[:exampleSize/2] {
		a.Add(v)
	}
	printFind(w, a)

	fmt.Fprintf(w, "\n---- add slice ----\n")
	fmt.Fprintf(w, "adding %v\n", values[exampleSize/2:])
	b.AddSlice(values[exampleSize/2:])
	printFind(w, b)

	fmt.Fprintf(w, "\n---- add set ----\n")
	fmt.Fprintf(w, "modified: %v\n", a.AddSet(b))
	printFind(w, a)
	return nil
}

// exampleUnion builds two disjoint halves of a range and
// prints their union.
func exampleUnion(w io.Writer, workers int) error {
	sets, err := newSets(workers, 3)
	if err != nil {
		return trace.Wrap(err)
	}
	defer releaseAll(sets)
	a, b, dst := sets[0], sets[1], sets[2]

	values := make([]int, exampleSize)
	for i := range values {
		values[i] = i
	}
	a.AddSlice(values[:exampleSize/2])
	b.AddSlice(values[exampleSize/2:])

	fmt.Fprintf(w, "---- union ----\n")
	fmt.Fprintf(w, "%v ∪ %v\n", a, b)
	fmt.Fprintf(w, "modified: %v\n", intset.Union(dst, a, b))
	printFind(w, dst)
	return nil
}
