// Package intset implements a set of ints held in a fixed-size hash
// table whose buckets are AVL trees.
//
// Bulk operations between two sets, or between a set and a slice,
// are spread over several worker goroutines. Set-vs-set operations
// give each worker a disjoint range of bucket indexes and need no
// locking. Set-vs-slice operations give each worker a range of the
// slice; since values from different ranges may hash to the same
// bucket, each bucket access is made under that bucket's stripe of a
// process-wide lock table.
//
// A Set is not safe for concurrent use. The locking done by slice
// operations only protects the workers of a single call from each
// other; callers sharing a Set between goroutines must serialize all
// calls themselves.
package intset

import (
	"iter"
	"strconv"
	"strings"
	"sync"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/rogpeppe/intset/avltree"
	"github.com/rogpeppe/intset/parallel"
	"github.com/rogpeppe/intset/sortedints"
)

var log = logrus.WithField(trace.Component, "intset")

// NumBuckets holds the number of buckets in every Set.
const NumBuckets = 31

// Hash returns the index of the bucket holding v. It is v modulo
// NumBuckets, shifted into [0, NumBuckets) for negative values.
//
// The distribution is only as uniform as the input values are.
func Hash(v int) int {
	h := v % NumBuckets
	if h < 0 {
		h += NumBuckets
	}
	return h
}

// tableLocks returns the lock table guarding bucket access during
// slice operations. It is shared by all sets and created on first use.
var tableLocks = sync.OnceValue(func() *parallel.Striped {
	return parallel.NewStriped(NumBuckets)
})

// Config configures a Set.
type Config struct {
	// Workers caps the number of worker goroutines used by a single
	// bulk operation. It defaults to runtime.GOMAXPROCS(0).
	Workers int
	// Slots optionally bounds the number of worker goroutines running
	// at once across all sets sharing it. See parallel.Config.
	Slots *semaphore.Weighted
	// Logger is the logger to use.
	Logger logrus.FieldLogger
}

// CheckAndSetDefaults validates the config and sets default values.
func (c *Config) CheckAndSetDefaults() error {
	if c.Workers < 0 {
		return trace.BadParameter("Workers must not be negative, got %d", c.Workers)
	}
	if c.Logger == nil {
		c.Logger = log
	}
	return nil
}

// Set holds a set of ints.
type Set struct {
	config Config
	engine *parallel.Engine
	// buckets is nil once the set has been released.
	buckets []avltree.Tree
	len     int
}

// New returns a new empty set. It returns an error if the
// configuration is invalid.
func New(config Config) (*Set, error) {
	if err := config.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	engine, err := parallel.New(parallel.Config{
		MaxWorkers: config.Workers,
		Slots:      config.Slots,
		Logger:     config.Logger,
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return &Set{
		config:  config,
		engine:  engine,
		buckets: make([]avltree.Tree, NumBuckets),
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(config Config) *Set {
	s, err := New(config)
	if err != nil {
		panic(err)
	}
	return s
}

// valid reports whether s can be operated on.
func (s *Set) valid() bool {
	return s != nil && s.buckets != nil
}

// Release removes every value from the set and frees its buckets.
// A released set behaves as an absent one: it reports a length of
// zero and every operation on it is a no-op returning false.
func (s *Set) Release() {
	if !s.valid() {
		return
	}
	for i := range s.buckets {
		s.buckets[i].Clear()
	}
	s.buckets = nil
	s.len = 0
}

// Len returns the number of values in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return s.len
}

// updateLen recomputes the length of the set from its buckets.
func (s *Set) updateLen() {
	n := 0
	for i := range s.buckets {
		n += s.buckets[i].Len()
	}
	s.len = n
}

// BucketLen returns the number of values held in bucket i.
func (s *Set) BucketLen(i int) int {
	if !s.valid() || i < 0 || i >= len(s.buckets) {
		return 0
	}
	return s.buckets[i].Len()
}

// Verify checks the internal consistency of the set: every bucket
// must be a valid AVL tree holding only values that hash to it, and
// the recorded length must match the bucket contents.
func (s *Set) Verify() error {
	if !s.valid() {
		return nil
	}
	n := 0
	for i := range s.buckets {
		b := &s.buckets[i]
		if err := b.Verify(); err != nil {
			return trace.BadParameter("bucket %d: %v", i, err)
		}
		for v := range b.All() {
			if h := Hash(v); h != i {
				return trace.BadParameter("value %d found in bucket %d, hashes to %d", v, i, h)
			}
		}
		n += b.Len()
	}
	if n != s.len {
		return trace.BadParameter("set holds %d values but records length %d", n, s.len)
	}
	return nil
}

// Add adds v to the set and reports whether it was not
// already present.
func (s *Set) Add(v int) bool {
	return s.apply(OpAdd, v)
}

// Remove removes v from the set and reports whether it
// was present.
func (s *Set) Remove(v int) bool {
	return s.apply(OpRemove, v)
}

// Contains reports whether v is in the set.
func (s *Set) Contains(v int) bool {
	return s.apply(OpFind, v)
}

func (s *Set) apply(op Op, v int) bool {
	if !s.valid() {
		return false
	}
	result := op.applyValue(&s.buckets[Hash(v)], v)
	s.updateLen()
	return result
}

// All returns an iterator over the values in the set in
// ascending order. The set must not be modified during iteration.
func (s *Set) All() iter.Seq[int] {
	if !s.valid() {
		return func(yield func(int) bool) {}
	}
	its := make([]iter.Seq[int], 0, len(s.buckets))
	for i := range s.buckets {
		if s.buckets[i].Len() > 0 {
			its = append(its, s.buckets[i].All())
		}
	}
	return sortedints.MergeMulti(its...)
}

// Values returns the values in the set in ascending order.
func (s *Set) Values() []int {
	vs := make([]int, 0, s.Len())
	for v := range s.All() {
		vs = append(vs, v)
	}
	return vs
}

// Export copies the values of the set in ascending order into
// dst and returns the number copied. It never writes past len(dst).
func (s *Set) Export(dst []int) int {
	n := 0
	for v := range s.All() {
		if n >= len(dst) {
			break
		}
		dst[n] = v
		n++
	}
	return n
}

// String returns the values of the set formatted as {v0, v1, ...}.
func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for v := range s.All() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte('}')
	return b.String()
}

// scratch returns a new empty set configured like s.
func (s *Set) scratch() (*Set, error) {
	return New(s.config)
}
