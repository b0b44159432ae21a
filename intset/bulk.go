package intset

import (
	"github.com/sirupsen/logrus"

	"github.com/rogpeppe/intset/parallel"
)

// AddSet adds every value of other to s. It reports whether s
// was modified.
func (s *Set) AddSet(other *Set) bool {
	return s.withSet(OpAdd, other)
}

// RemoveSet removes every value of other from s. It reports
// whether s was modified.
func (s *Set) RemoveSet(other *Set) bool {
	return s.withSet(OpRemove, other)
}

// RetainSet removes every value from s that is not in other,
// leaving the intersection of the two. It reports whether s
// was modified.
func (s *Set) RetainSet(other *Set) bool {
	return s.withSet(OpRetain, other)
}

// ContainsSet reports whether every value of other is in s.
// The buckets are checked by several workers, none of which
// stops early when another finds a missing value.
func (s *Set) ContainsSet(other *Set) bool {
	return s.withSet(OpFind, other)
}

// AddSlice adds every value in vs to s. It reports whether s
// was modified.
func (s *Set) AddSlice(vs []int) bool {
	return s.withSlice(OpAdd, vs)
}

// RemoveSlice removes every value in vs from s. It reports
// whether s was modified.
func (s *Set) RemoveSlice(vs []int) bool {
	return s.withSlice(OpRemove, vs)
}

// ContainsSlice reports whether every value in vs is in s.
// As with ContainsSet, every worker runs to completion.
func (s *Set) ContainsSlice(vs []int) bool {
	return s.withSlice(OpFind, vs)
}

// RetainSlice removes every value from s that is not in vs.
// The values in vs need not be sorted or distinct. It reports
// whether s was modified.
func (s *Set) RetainSlice(vs []int) bool {
	if !s.valid() || vs == nil {
		return false
	}
	keep, err := s.scratch()
	if err != nil {
		s.config.Logger.WithError(err).Warn("Failed to create scratch set.")
		return false
	}
	defer keep.Release()
	keep.withSlice(OpAdd, vs)
	return s.withSet(OpRetain, keep)
}

// withSet applies op between s and other, bucket by bucket.
// Each worker owns a disjoint range of bucket indexes in both
// sets, so no locking is needed.
func (s *Set) withSet(op Op, other *Set) bool {
	if !s.valid() || !other.valid() {
		return false
	}
	s.logDispatch(op, "set", NumBuckets)
	before := s.len
	ok := s.engine.Run(NumBuckets, func(r parallel.Range) bool {
		ok := true
		for i := r.From; i < r.To; i++ {
			if !op.combine(&s.buckets[i], &other.buckets[i]) {
				ok = false
			}
		}
		return ok
	})
	s.updateLen()
	return s.result(op, ok, before)
}

// withSlice applies op to s for each value in vs. Workers own
// disjoint ranges of vs but not of buckets, so each bucket is
// accessed under its stripe of the shared lock table.
func (s *Set) withSlice(op Op, vs []int) bool {
	if !s.valid() || vs == nil {
		return false
	}
	s.logDispatch(op, "slice", len(vs))
	locks := tableLocks()
	before := s.len
	ok := s.engine.Run(len(vs), func(r parallel.Range) bool {
		ok := true
		for _, v := range vs[r.From:r.To] {
			b := Hash(v)
			if !locks.Do(b, func() bool {
				return op.step(&s.buckets[b], v)
			}) {
				ok = false
			}
		}
		return ok
	})
	s.updateLen()
	return s.result(op, ok, before)
}

// result turns the combined worker outcome of a bulk call into
// its return value. Add, remove and retain only ever grow or only
// ever shrink the set, so a change in length tells whether the
// set was modified.
func (s *Set) result(op Op, ok bool, before int) bool {
	if !op.mutates() {
		return ok
	}
	return ok && s.len != before
}

func (s *Set) logDispatch(op Op, mode string, space int) {
	s.config.Logger.WithFields(logrus.Fields{
		"op":      op,
		"mode":    mode,
		"space":   space,
		"workers": parallel.Workers(s.engine.MaxWorkers, space),
	}).Debug("Dispatching bulk operation.")
}
