package intset

// The functions below write their result into dst, which should
// be empty, and report whether dst was modified. They return
// false without doing anything if any argument is nil or released.

// Union adds the values of both a and b to dst.
func Union(dst, a, b *Set) bool {
	if !dst.valid() || !a.valid() || !b.valid() {
		return false
	}
	m0 := dst.AddSet(a)
	m1 := dst.AddSet(b)
	return m0 || m1
}

// Intersection adds the values present in both a and b to dst.
func Intersection(dst, a, b *Set) bool {
	if !dst.valid() || !a.valid() || !b.valid() {
		return false
	}
	m0 := dst.AddSet(a)
	m1 := dst.RetainSet(b)
	return m0 || m1
}

// Difference adds the values of a that are not in b to dst.
func Difference(dst, a, b *Set) bool {
	if !dst.valid() || !a.valid() || !b.valid() {
		return false
	}
	m0 := dst.AddSet(a)
	m1 := dst.RemoveSet(b)
	return m0 || m1
}

// SymmetricDifference adds the values that are in exactly one
// of a and b to dst.
func SymmetricDifference(dst, a, b *Set) bool {
	if !dst.valid() || !a.valid() || !b.valid() {
		return false
	}
	right, err := dst.scratch()
	if err != nil {
		dst.config.Logger.WithError(err).Warn("Failed to create scratch set.")
		return false
	}
	defer right.Release()

	m0 := Difference(dst, a, b)
	Difference(right, b, a)
	m1 := dst.AddSet(right)
	return m0 || m1
}
