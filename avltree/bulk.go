package avltree

import (
	"github.com/rogpeppe/intset/sortedints"
)

// AddSlice inserts all the values in vs into the tree.
// It reports whether any value was inserted. A nil
// tree or nil slice is rejected and reports false.
func (t *Tree) AddSlice(vs []int) bool {
	if t == nil || vs == nil {
		return false
	}
	modified := false
	for _, v := range vs {
		if t.Insert(v) {
			modified = true
		}
	}
	return modified
}

// AddTree inserts all the values of src into the tree.
// It reports whether any value was inserted.
func (t *Tree) AddTree(src *Tree) bool {
	if t == nil || src == nil {
		return false
	}
	return t.AddSlice(src.Values())
}

// RemoveSlice deletes all the values in vs from the tree.
// Absent values are ignored, so the operation succeeds
// whenever its operands are valid.
func (t *Tree) RemoveSlice(vs []int) bool {
	if t == nil || vs == nil {
		return false
	}
	for _, v := range vs {
		t.Delete(v)
	}
	return true
}

// RemoveTree deletes all the values of src from the tree.
func (t *Tree) RemoveTree(src *Tree) bool {
	if t == nil || src == nil {
		return false
	}
	if t == src {
		t.Clear()
		return true
	}
	return t.RemoveSlice(src.Values())
}

// ContainsSlice reports whether every value in vs is in the tree.
func (t *Tree) ContainsSlice(vs []int) bool {
	if t == nil || vs == nil {
		return false
	}
	for _, v := range vs {
		if !t.Contains(v) {
			return false
		}
	}
	return true
}

// ContainsTree reports whether every value of src is in the tree.
func (t *Tree) ContainsTree(src *Tree) bool {
	if t == nil || src == nil {
		return false
	}
	for v := range src.All() {
		if !t.Contains(v) {
			return false
		}
	}
	return true
}

// RetainSlice deletes every value of the tree that is not in keep,
// leaving the intersection of the two. The values in keep need not
// be sorted or distinct. It reports whether the operation succeeded.
func (t *Tree) RetainSlice(keep []int) bool {
	if t == nil || keep == nil {
		return false
	}
	current := t.Values()
	retained := make([]int, 0, min(len(current), len(keep)))
	for _, v := range keep {
		if sortedints.Contains(current, v) {
			retained = append(retained, v)
		}
	}
	sortedints.MergeSort(retained)
	for _, v := range current {
		if !sortedints.Contains(retained, v) {
			t.Delete(v)
		}
	}
	return true
}

// RetainTree deletes every value of the tree that is not in keep.
func (t *Tree) RetainTree(keep *Tree) bool {
	if t == nil || keep == nil {
		return false
	}
	if t == keep {
		return true
	}
	return t.RetainSlice(keep.Values())
}
