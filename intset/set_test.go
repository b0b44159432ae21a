package intset

import (
	"maps"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/go-quicktest/qt"
	"golang.org/x/sync/semaphore"
)

func newSet(t *testing.T, vs ...int) *Set {
	t.Helper()
	s, err := New(Config{Workers: 4})
	qt.Assert(t, qt.IsNil(err))
	if vs != nil {
		s.AddSlice(vs)
	}
	t.Cleanup(s.Release)
	return s
}

func span(from, to int) []int {
	vs := make([]int, 0, to-from)
	for v := from; v < to; v++ {
		vs = append(vs, v)
	}
	return vs
}

func verifySet(t *testing.T, s *Set) {
	t.Helper()
	qt.Assert(t, qt.IsNil(s.Verify()))
}

func TestHash(t *testing.T) {
	qt.Assert(t, qt.Equals(Hash(0), 0))
	qt.Assert(t, qt.Equals(Hash(31), 0))
	qt.Assert(t, qt.Equals(Hash(33), 2))
	qt.Assert(t, qt.Equals(Hash(-1), 30))
	qt.Assert(t, qt.Equals(Hash(-31), 0))
	qt.Assert(t, qt.Equals(Hash(-32), 30))
}

func TestSameBucket(t *testing.T) {
	s := newSet(t)
	for _, v := range []int{0, 31, 62} {
		qt.Assert(t, qt.IsTrue(s.Add(v)))
	}
	qt.Assert(t, qt.Equals(s.BucketLen(0), 3))
	for i := 1; i < NumBuckets; i++ {
		qt.Assert(t, qt.Equals(s.BucketLen(i), 0))
	}
	for _, v := range []int{0, 31, 62} {
		qt.Assert(t, qt.IsTrue(s.Contains(v)))
	}
	qt.Assert(t, qt.IsFalse(s.Contains(93)))
	qt.Assert(t, qt.Equals(s.Len(), 3))
}

func TestNegativeValues(t *testing.T) {
	s := newSet(t, -1, -31, -62, 5, -100)
	verifySet(t, s)
	qt.Assert(t, qt.DeepEquals(s.Values(), []int{-100, -62, -31, -1, 5}))
	qt.Assert(t, qt.Equals(s.BucketLen(30), 1))
	qt.Assert(t, qt.IsTrue(s.Remove(-31)))
	qt.Assert(t, qt.IsFalse(s.Contains(-31)))
}

func TestSingleOps(t *testing.T) {
	s := newSet(t)
	qt.Assert(t, qt.IsTrue(s.Add(7)))
	qt.Assert(t, qt.IsFalse(s.Add(7)))
	qt.Assert(t, qt.Equals(s.Len(), 1))
	qt.Assert(t, qt.IsTrue(s.Contains(7)))
	qt.Assert(t, qt.IsTrue(s.Remove(7)))
	qt.Assert(t, qt.IsFalse(s.Remove(7)))
	qt.Assert(t, qt.Equals(s.Len(), 0))
}

func TestSliceOps(t *testing.T) {
	s := newSet(t)
	qt.Assert(t, qt.IsTrue(s.AddSlice(span(0, 100))))
	qt.Assert(t, qt.Equals(s.Len(), 100))
	// Nothing new to add.
	qt.Assert(t, qt.IsFalse(s.AddSlice(span(0, 50))))
	qt.Assert(t, qt.IsTrue(s.ContainsSlice(span(10, 90))))
	qt.Assert(t, qt.IsFalse(s.ContainsSlice(span(90, 110))))
	qt.Assert(t, qt.IsTrue(s.RemoveSlice(span(50, 150))))
	qt.Assert(t, qt.Equals(s.Len(), 50))
	qt.Assert(t, qt.IsFalse(s.RemoveSlice(span(50, 150))))
	qt.Assert(t, qt.DeepEquals(s.Values(), span(0, 50)))
	verifySet(t, s)
}

func TestSliceDuplicates(t *testing.T) {
	s := newSet(t)
	qt.Assert(t, qt.IsTrue(s.AddSlice([]int{3, 3, 34, 3, 65, 34})))
	qt.Assert(t, qt.DeepEquals(s.Values(), []int{3, 34, 65}))
	qt.Assert(t, qt.IsTrue(s.ContainsSlice([]int{65, 3, 3})))
	verifySet(t, s)
}

func TestEmptyAndNilSlices(t *testing.T) {
	s := newSet(t, 1, 2, 3)
	for _, f := range []func([]int) bool{s.AddSlice, s.RemoveSlice, s.ContainsSlice, s.RetainSlice} {
		qt.Assert(t, qt.IsFalse(f(nil)))
	}
	qt.Assert(t, qt.Equals(s.Len(), 3))
	qt.Assert(t, qt.IsTrue(s.ContainsSlice([]int{})))
	qt.Assert(t, qt.IsFalse(s.AddSlice([]int{})))
	qt.Assert(t, qt.IsTrue(s.RetainSlice([]int{})))
	qt.Assert(t, qt.Equals(s.Len(), 0))
}

func TestRetainSlice(t *testing.T) {
	s := newSet(t, 1, 2, 3, 4, 5)
	qt.Assert(t, qt.IsTrue(s.RetainSlice([]int{2, 4, 4, 6})))
	qt.Assert(t, qt.DeepEquals(s.Values(), []int{2, 4}))
	qt.Assert(t, qt.Equals(s.Len(), 2))
	verifySet(t, s)
	// Retaining a superset changes nothing.
	qt.Assert(t, qt.IsFalse(s.RetainSlice([]int{4, 2, 99})))
	qt.Assert(t, qt.DeepEquals(s.Values(), []int{2, 4}))
}

func TestSetOps(t *testing.T) {
	a := newSet(t, span(0, 8)...)
	b := newSet(t, span(4, 12)...)

	qt.Assert(t, qt.IsTrue(a.ContainsSet(newSet(t, 1, 7))))
	qt.Assert(t, qt.IsFalse(a.ContainsSet(b)))
	qt.Assert(t, qt.IsTrue(a.ContainsSet(newSet(t))))

	qt.Assert(t, qt.IsTrue(a.AddSet(b)))
	qt.Assert(t, qt.DeepEquals(a.Values(), span(0, 12)))
	qt.Assert(t, qt.IsFalse(a.AddSet(b)))
	qt.Assert(t, qt.IsTrue(a.ContainsSet(b)))

	qt.Assert(t, qt.IsTrue(a.RemoveSet(b)))
	qt.Assert(t, qt.DeepEquals(a.Values(), span(0, 4)))
	qt.Assert(t, qt.IsFalse(a.RemoveSet(b)))

	c := newSet(t, span(0, 20)...)
	qt.Assert(t, qt.IsTrue(c.RetainSet(b)))
	qt.Assert(t, qt.DeepEquals(c.Values(), span(4, 12)))
	qt.Assert(t, qt.IsFalse(c.RetainSet(b)))
	verifySet(t, c)
}

func TestSelfOps(t *testing.T) {
	s := newSet(t, span(0, 40)...)
	qt.Assert(t, qt.IsTrue(s.ContainsSet(s)))
	qt.Assert(t, qt.IsFalse(s.AddSet(s)))
	qt.Assert(t, qt.IsFalse(s.RetainSet(s)))
	qt.Assert(t, qt.Equals(s.Len(), 40))
	qt.Assert(t, qt.IsTrue(s.RemoveSet(s)))
	qt.Assert(t, qt.Equals(s.Len(), 0))
	verifySet(t, s)
}

func TestIntersectionAndSymmetricDifference(t *testing.T) {
	a := newSet(t)
	a.AddSlice(span(0, 8))
	b := newSet(t)
	b.AddSlice(span(4, 12))

	dst := newSet(t)
	qt.Assert(t, qt.IsTrue(Intersection(dst, a, b)))
	qt.Assert(t, qt.DeepEquals(dst.Values(), []int{4, 5, 6, 7}))

	dst = newSet(t)
	qt.Assert(t, qt.IsTrue(SymmetricDifference(dst, a, b)))
	qt.Assert(t, qt.DeepEquals(dst.Values(), []int{0, 1, 2, 3, 8, 9, 10, 11}))

	// The operands are left untouched.
	qt.Assert(t, qt.DeepEquals(a.Values(), span(0, 8)))
	qt.Assert(t, qt.DeepEquals(b.Values(), span(4, 12)))
}

func TestUnionAndDifference(t *testing.T) {
	a := newSet(t, span(0, 5)...)
	b := newSet(t, span(5, 10)...)

	dst := newSet(t)
	qt.Assert(t, qt.IsTrue(Union(dst, a, b)))
	qt.Assert(t, qt.DeepEquals(dst.Values(), span(0, 10)))

	dst = newSet(t)
	qt.Assert(t, qt.IsTrue(Difference(dst, newSet(t, 1, 2, 3), newSet(t, 2))))
	qt.Assert(t, qt.DeepEquals(dst.Values(), []int{1, 3}))

	// Values added from a and then removed again still count as a
	// modification of dst.
	dst = newSet(t)
	qt.Assert(t, qt.IsTrue(Difference(dst, newSet(t, 1, 2), newSet(t, 1, 2, 3))))
	qt.Assert(t, qt.Equals(dst.Len(), 0))

	dst = newSet(t)
	qt.Assert(t, qt.IsFalse(Union(dst, newSet(t), newSet(t))))
}

func TestAlgebraLaws(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 1))
	randomSet := func() (*Set, map[int]bool) {
		ref := make(map[int]bool)
		vs := make([]int, r.IntN(300))
		for i := range vs {
			vs[i] = r.IntN(500) - 250
			ref[vs[i]] = true
		}
		return newSet(t, vs...), ref
	}
	for i := 0; i < 20; i++ {
		a, refA := randomSet()
		b, refB := randomSet()

		union, inter, diff, sym := newSet(t), newSet(t), newSet(t), newSet(t)
		Union(union, a, b)
		Intersection(inter, a, b)
		Difference(diff, a, b)
		SymmetricDifference(sym, a, b)
		for _, s := range []*Set{union, inter, diff, sym} {
			verifySet(t, s)
		}

		var wantUnion, wantInter, wantDiff, wantSym []int
		for v := -250; v < 250; v++ {
			inA, inB := refA[v], refB[v]
			if inA || inB {
				wantUnion = append(wantUnion, v)
			}
			if inA && inB {
				wantInter = append(wantInter, v)
			}
			if inA && !inB {
				wantDiff = append(wantDiff, v)
			}
			if inA != inB {
				wantSym = append(wantSym, v)
			}
		}
		qt.Assert(t, qt.DeepEquals(union.Values(), nonNil(wantUnion)))
		qt.Assert(t, qt.DeepEquals(inter.Values(), nonNil(wantInter)))
		qt.Assert(t, qt.DeepEquals(diff.Values(), nonNil(wantDiff)))
		qt.Assert(t, qt.DeepEquals(sym.Values(), nonNil(wantSym)))

		// |A ∪ B| = |A| + |B| - |A ∩ B|
		qt.Assert(t, qt.Equals(union.Len(), a.Len()+b.Len()-inter.Len()))
		// A Δ B = (A ∪ B) \ (A ∩ B)
		rest := newSet(t)
		Difference(rest, union, inter)
		qt.Assert(t, qt.DeepEquals(rest.Values(), sym.Values()))
	}
}

func nonNil(vs []int) []int {
	if vs == nil {
		return []int{}
	}
	return vs
}

func TestRandomAgainstMap(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 3))
	s := newSet(t)
	ref := make(map[int]bool)
	randomSlice := func() []int {
		vs := make([]int, r.IntN(200))
		for i := range vs {
			vs[i] = r.IntN(1000) - 500
		}
		return vs
	}
	for step := 0; step < 300; step++ {
		switch r.IntN(6) {
		case 0:
			v := r.IntN(1000) - 500
			qt.Assert(t, qt.Equals(s.Add(v), !ref[v]))
			ref[v] = true
		case 1:
			v := r.IntN(1000) - 500
			qt.Assert(t, qt.Equals(s.Remove(v), ref[v]))
			delete(ref, v)
		case 2:
			vs := randomSlice()
			s.AddSlice(vs)
			for _, v := range vs {
				ref[v] = true
			}
		case 3:
			vs := randomSlice()
			s.RemoveSlice(vs)
			for _, v := range vs {
				delete(ref, v)
			}
		case 4:
			vs := randomSlice()
			want := true
			for _, v := range vs {
				want = want && ref[v]
			}
			qt.Assert(t, qt.Equals(s.ContainsSlice(vs), want))
		case 5:
			vs := append(randomSlice(), slices.Collect(maps.Keys(ref))[:len(ref)/2]...)
			s.RetainSlice(vs)
			keep := make(map[int]bool)
			for _, v := range vs {
				if ref[v] {
					keep[v] = true
				}
			}
			ref = keep
		}
		qt.Assert(t, qt.Equals(s.Len(), len(ref)), qt.Commentf("step %d", step))
	}
	verifySet(t, s)
	qt.Assert(t, qt.DeepEquals(s.Values(), nonNil(slices.Sorted(maps.Keys(ref)))))
}

func TestWorkerCounts(t *testing.T) {
	vs := span(-1000, 1000)
	var want []int
	for _, w := range []int{1, 2, 3, 7, 31, 64} {
		s, err := New(Config{Workers: w})
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.IsTrue(s.AddSlice(vs)))
		qt.Assert(t, qt.IsTrue(s.RemoveSlice(span(-1000, -500))))
		other := MustNew(Config{Workers: w})
		other.AddSlice(span(0, 2000))
		qt.Assert(t, qt.IsTrue(s.RetainSet(other)))
		verifySet(t, s)
		got := s.Values()
		if want == nil {
			want = got
		}
		qt.Assert(t, qt.DeepEquals(got, want), qt.Commentf("workers %d", w))
		s.Release()
		other.Release()
	}
	qt.Assert(t, qt.DeepEquals(want, span(0, 1000)))
}

func TestNoWorkerSlots(t *testing.T) {
	slots := semaphore.NewWeighted(1)
	qt.Assert(t, qt.IsTrue(slots.TryAcquire(1)))
	defer slots.Release(1)

	s, err := New(Config{Workers: 8, Slots: slots})
	qt.Assert(t, qt.IsNil(err))
	defer s.Release()
	qt.Assert(t, qt.IsTrue(s.AddSlice(span(0, 500))))
	qt.Assert(t, qt.IsTrue(s.ContainsSlice(span(0, 500))))
	qt.Assert(t, qt.Equals(s.Len(), 500))
	verifySet(t, s)
}

func TestRelease(t *testing.T) {
	s := MustNew(Config{})
	s.AddSlice(span(0, 100))
	s.Release()
	qt.Assert(t, qt.Equals(s.Len(), 0))
	qt.Assert(t, qt.IsFalse(s.Add(1)))
	qt.Assert(t, qt.IsFalse(s.Contains(1)))
	qt.Assert(t, qt.IsFalse(s.AddSlice([]int{1})))
	qt.Assert(t, qt.IsFalse(s.ContainsSlice([]int{})))
	qt.Assert(t, qt.HasLen(s.Values(), 0))
	qt.Assert(t, qt.Equals(s.String(), "{}"))
	// Releasing twice is harmless.
	s.Release()

	live := newSet(t, 1, 2)
	qt.Assert(t, qt.IsFalse(live.AddSet(s)))
	qt.Assert(t, qt.IsFalse(Union(newSet(t), live, s)))
	qt.Assert(t, qt.Equals(live.Len(), 2))
}

func TestNilSet(t *testing.T) {
	var s *Set
	qt.Assert(t, qt.Equals(s.Len(), 0))
	qt.Assert(t, qt.IsFalse(s.Add(1)))
	qt.Assert(t, qt.IsFalse(s.RemoveSlice([]int{1})))
	qt.Assert(t, qt.IsFalse(s.ContainsSet(newSet(t))))
	qt.Assert(t, qt.IsFalse(newSet(t).ContainsSet(s)))
	qt.Assert(t, qt.IsFalse(Intersection(newSet(t), s, newSet(t))))
	qt.Assert(t, qt.IsFalse(SymmetricDifference(nil, newSet(t), newSet(t))))
	s.Release()
}

func TestExport(t *testing.T) {
	s := newSet(t, 40, 9, 71, 2, -3)
	dst := make([]int, 3)
	qt.Assert(t, qt.Equals(s.Export(dst), 3))
	qt.Assert(t, qt.DeepEquals(dst, []int{-3, 2, 9}))
	dst = make([]int, 10)
	n := s.Export(dst)
	qt.Assert(t, qt.Equals(n, 5))

	copied := newSet(t, dst[:n]...)
	qt.Assert(t, qt.DeepEquals(copied.Values(), s.Values()))
	qt.Assert(t, qt.Equals(s.String(), "{-3, 2, 9, 40, 71}"))
}

func TestConfig(t *testing.T) {
	_, err := New(Config{Workers: -2})
	qt.Assert(t, qt.ErrorMatches(err, `Workers must not be negative, got -2`))
	qt.Assert(t, qt.PanicMatches(func() {
		MustNew(Config{Workers: -1})
	}, `Workers must not be negative, got -1`))
}

func TestVerifyDetectsMisplacedValue(t *testing.T) {
	s := newSet(t, 1, 2, 3)
	qt.Assert(t, qt.IsNil(s.Verify()))
	s.buckets[5].Insert(6)
	qt.Assert(t, qt.ErrorMatches(s.Verify(), `value 6 found in bucket 5, hashes to 6`))
	s.buckets[5].Delete(6)
	s.len = 7
	qt.Assert(t, qt.ErrorMatches(s.Verify(), `set holds 3 values but records length 7`))
}

func TestOpString(t *testing.T) {
	qt.Assert(t, qt.Equals(OpAdd.String(), "add"))
	qt.Assert(t, qt.Equals(OpRetain.String(), "retain"))
	qt.Assert(t, qt.Equals(Op(9).String(), "Op(9)"))
}

func BenchmarkAddSlice(b *testing.B) {
	vs := span(0, 100000)
	for i := 0; i < b.N; i++ {
		s := MustNew(Config{})
		s.AddSlice(vs)
		s.Release()
	}
}
