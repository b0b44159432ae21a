package main

import (
	"io"
	"maps"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/codahale/hdrhistogram"
	"github.com/dustin/go-humanize"
	"github.com/gravitational/trace"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"github.com/rogpeppe/intset/intset"
)

type benchConfig struct {
	// Size is the number of values each operation handles.
	Size int
	// Workers caps the workers used by bulk set operations.
	Workers int
	// Seed seeds the order in which values are presented.
	Seed uint64
	// Verify enables consistency checks after each operation.
	Verify bool
	// Ops lists the operations to run. Empty means all.
	Ops []string
}

func (c *benchConfig) CheckAndSetDefaults() error {
	if c.Size <= 0 {
		return trace.BadParameter("size must be positive, got %d", c.Size)
	}
	if c.Workers < 0 {
		return trace.BadParameter("workers must not be negative, got %d", c.Workers)
	}
	if len(c.Ops) == 0 {
		c.Ops = benchOpNames()
	}
	return nil
}

// benchEnv holds the data for a single benchmark operation. set
// and ref start out empty and must hold the same values after
// every operation.
type benchEnv struct {
	config benchConfig
	values []int
	// other holds values overlapping half of values.
	other []int
	set   *intset.Set
	ref   map[int]struct{}
}

// benchResult holds the measurements of one operation on one
// implementation.
type benchResult struct {
	op      string
	impl    string
	count   int
	elapsed time.Duration
	// latency holds per-value latencies in nanoseconds, or nil
	// for bulk operations timed as a whole.
	latency *hdrhistogram.Histogram
}

type benchOp struct {
	name string
	run  func(env *benchEnv) ([]benchResult, error)
}

var benchOps = []benchOp{
	{"add", benchAdd},
	{"add-slice", benchAddSlice},
	{"find-slice", benchFindSlice},
	{"remove", benchRemove},
	{"symmetric-difference", benchSymmetricDifference},
}

func benchOpNames() []string {
	names := make([]string, len(benchOps))
	for i, op := range benchOps {
		names[i] = op.name
	}
	return names
}

func bench(w io.Writer, config benchConfig) error {
	if err := config.CheckAndSetDefaults(); err != nil {
		return trace.Wrap(err)
	}
	r := rand.New(rand.NewPCG(config.Seed, config.Seed))
	values := r.Perm(config.Size)
	other := make([]int, len(values))
	for i, v := range values {
		other[i] = v + config.Size/2
	}
	var results []benchResult
	for _, op := range benchOps {
		if !slices.Contains(config.Ops, op.name) {
			continue
		}
		set, err := intset.New(intset.Config{Workers: config.Workers})
		if err != nil {
			return trace.Wrap(err)
		}
		env := &benchEnv{
			config: config,
			values: values,
			other:  other,
			set:    set,
			ref:    make(map[int]struct{}),
		}
		log.WithFields(logrus.Fields{
			"op":   op.name,
			"size": config.Size,
		}).Debug("Running benchmark.")
		rs, err := op.run(env)
		set.Release()
		if err != nil {
			return trace.Wrap(err, "benchmark %v failed", op.name)
		}
		results = append(results, rs...)
	}
	render(w, results)
	return nil
}

func render(w io.Writer, results []benchResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Operation", "Impl", "Values", "Elapsed", "Rate", "p50", "p99", "Max"})
	var data [][]string
	for _, r := range results {
		row := []string{
			r.op,
			r.impl,
			humanize.Comma(int64(r.count)),
			r.elapsed.Round(time.Microsecond).String(),
			"-", "-", "-", "-",
		}
		if r.elapsed > 0 {
			row[4] = humanize.SI(float64(r.count)/r.elapsed.Seconds(), "op/s")
		}
		if r.latency != nil {
			row[5] = time.Duration(r.latency.ValueAtQuantile(50)).String()
			row[6] = time.Duration(r.latency.ValueAtQuantile(99)).String()
			row[7] = time.Duration(r.latency.Max()).String()
		}
		data = append(data, row)
	}
	table.AppendBulk(data)
	table.Render()
}

// newLatencyHistogram returns a histogram for latencies between
// 1ns and 1s.
func newLatencyHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(1, int64(time.Second), 3)
}

// timeEach calls f for each value, recording the latency of each call.
func timeEach(values []int, f func(v int)) (time.Duration, *hdrhistogram.Histogram, error) {
	h := newLatencyHistogram()
	start := time.Now()
	for _, v := range values {
		t0 := time.Now()
		f(v)
		if err := h.RecordValue(int64(max(time.Since(t0), 1))); err != nil {
			return 0, nil, trace.Wrap(err)
		}
	}
	return time.Since(start), h, nil
}

func timeBulk(f func()) time.Duration {
	start := time.Now()
	f()
	return time.Since(start)
}

// fill adds values to both the set and the reference map, untimed.
func (env *benchEnv) fill(values []int) {
	env.set.AddSlice(values)
	for _, v := range values {
		env.ref[v] = struct{}{}
	}
}

// check verifies the set against the reference map when
// verification is enabled.
func (env *benchEnv) check(op string) error {
	if !env.config.Verify {
		return nil
	}
	if err := env.set.Verify(); err != nil {
		return trace.Wrap(err)
	}
	want := slices.Sorted(maps.Keys(env.ref))
	got := env.set.Values()
	if !slices.Equal(got, want) {
		return trace.BadParameter("after %s: set holds %d values, reference map holds %d", op, len(got), len(want))
	}
	log.WithField("op", op).Debug("Verified set against reference map.")
	return nil
}

func benchAdd(env *benchEnv) ([]benchResult, error) {
	setElapsed, setLatency, err := timeEach(env.values, func(v int) {
		env.set.Add(v)
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	mapElapsed, mapLatency, err := timeEach(env.values, func(v int) {
		env.ref[v] = struct{}{}
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if err := env.check("add"); err != nil {
		return nil, trace.Wrap(err)
	}
	return []benchResult{
		{op: "add", impl: "intset", count: len(env.values), elapsed: setElapsed, latency: setLatency},
		{op: "add", impl: "map", count: len(env.values), elapsed: mapElapsed, latency: mapLatency},
	}, nil
}

func benchAddSlice(env *benchEnv) ([]benchResult, error) {
	setElapsed := timeBulk(func() {
		env.set.AddSlice(env.values)
	})
	mapElapsed := timeBulk(func() {
		for _, v := range env.values {
			env.ref[v] = struct{}{}
		}
	})
	if err := env.check("add-slice"); err != nil {
		return nil, trace.Wrap(err)
	}
	return []benchResult{
		{op: "add-slice", impl: "intset", count: len(env.values), elapsed: setElapsed},
		{op: "add-slice", impl: "map", count: len(env.values), elapsed: mapElapsed},
	}, nil
}

func benchFindSlice(env *benchEnv) ([]benchResult, error) {
	env.fill(env.values)
	var setFound, mapFound bool
	setElapsed := timeBulk(func() {
		setFound = env.set.ContainsSlice(env.values)
	})
	mapElapsed := timeBulk(func() {
		mapFound = true
		for _, v := range env.values {
			if _, ok := env.ref[v]; !ok {
				mapFound = false
			}
		}
	})
	if env.config.Verify && setFound != mapFound {
		return nil, trace.BadParameter("find-slice: set reports %v, reference map reports %v", setFound, mapFound)
	}
	return []benchResult{
		{op: "find-slice", impl: "intset", count: len(env.values), elapsed: setElapsed},
		{op: "find-slice", impl: "map", count: len(env.values), elapsed: mapElapsed},
	}, nil
}

func benchRemove(env *benchEnv) ([]benchResult, error) {
	env.fill(env.values)
	setElapsed, setLatency, err := timeEach(env.values, func(v int) {
		env.set.Remove(v)
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	mapElapsed, mapLatency, err := timeEach(env.values, func(v int) {
		delete(env.ref, v)
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if err := env.check("remove"); err != nil {
		return nil, trace.Wrap(err)
	}
	return []benchResult{
		{op: "remove", impl: "intset", count: len(env.values), elapsed: setElapsed, latency: setLatency},
		{op: "remove", impl: "map", count: len(env.values), elapsed: mapElapsed, latency: mapLatency},
	}, nil
}

func benchSymmetricDifference(env *benchEnv) ([]benchResult, error) {
	env.fill(env.values)
	sets, err := newSets(env.config.Workers, 2)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	defer releaseAll(sets)
	other, dst := sets[0], sets[1]
	other.AddSlice(env.other)
	refOther := make(map[int]struct{}, len(env.other))
	for _, v := range env.other {
		refOther[v] = struct{}{}
	}

	setElapsed := timeBulk(func() {
		intset.SymmetricDifference(dst, env.set, other)
	})
	refDst := make(map[int]struct{})
	mapElapsed := timeBulk(func() {
		for v := range env.ref {
			if _, ok := refOther[v]; !ok {
				refDst[v] = struct{}{}
			}
		}
		for v := range refOther {
			if _, ok := env.ref[v]; !ok {
				refDst[v] = struct{}{}
			}
		}
	})
	if env.config.Verify {
		if err := dst.Verify(); err != nil {
			return nil, trace.Wrap(err)
		}
		if !slices.Equal(dst.Values(), slices.Sorted(maps.Keys(refDst))) {
			return nil, trace.BadParameter("symmetric-difference: set holds %d values, reference map holds %d", dst.Len(), len(refDst))
		}
	}
	count := len(env.values) + len(env.other)
	return []benchResult{
		{op: "symmetric-difference", impl: "intset", count: count, elapsed: setElapsed},
		{op: "symmetric-difference", impl: "map", count: count, elapsed: mapElapsed},
	}, nil
}
