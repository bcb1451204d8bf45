package appsettings

import "iter"

// ResidualSet is an insertion-ordered set of legacy settings that still need
// migrating. Keys are unique; the first Add of a key wins.
type ResidualSet struct {
	keys   []string
	values map[string]string
}

// NewResidualSet returns an empty set.
func NewResidualSet() *ResidualSet {
	return &ResidualSet{values: make(map[string]string)}
}

// Add inserts key with value unless key is already present. It reports
// whether the entry was added.
func (r *ResidualSet) Add(key, value string) bool {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; ok {
		return false
	}
	r.keys = append(r.keys, key)
	r.values[key] = value
	return true
}

// Get returns the raw value stored for key.
func (r *ResidualSet) Get(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	v, ok := r.values[key]
	return v, ok
}

// Len returns the number of entries. A nil set is empty.
func (r *ResidualSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the keys in insertion order.
func (r *ResidualSet) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// All iterates over the entries in insertion order.
func (r *ResidualSet) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if r == nil {
			return
		}
		for _, k := range r.keys {
			if !yield(k, r.values[k]) {
				return
			}
		}
	}
}

// Settings returns the entries as a slice in insertion order.
func (r *ResidualSet) Settings() []Setting {
	out := make([]Setting, 0, r.Len())
	for k, v := range r.All() {
		out = append(out, Setting{Key: k, Value: v})
	}
	return out
}
