package dataprep

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyLabelSet is returned when a label set is built from no names.
	ErrEmptyLabelSet = errors.New("dataprep: label set is empty")
	// ErrDuplicateLabel is returned when the same name appears twice in a label set.
	ErrDuplicateLabel = errors.New("dataprep: duplicate label")
)

// LabelSet is an ordered vocabulary of class names. A name's position is its
// encoded index and the set's size is the one-hot width. It is immutable.
type LabelSet struct {
	names []string
	index map[string]int
}

// NewLabelSet copies names into a new set. Names must be distinct and there must
// be at least one.
func NewLabelSet(names []string) (*LabelSet, error) {
	if len(names) == 0 {
		return nil, ErrEmptyLabelSet
	}
	ls := &LabelSet{
		names: append([]string(nil), names...),
		index: make(map[string]int, len(names)),
	}
	for i, n := range ls.names {
		if j, ok := ls.index[n]; ok {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateLabel, n, j, i)
		}
		ls.index[n] = i
	}
	return ls, nil
}

// Index returns the encoded index of name. ok is false when name is not in the set.
func (ls *LabelSet) Index(name string) (idx int, ok bool) {
	idx, ok = ls.index[name]
	if !ok {
		return -1, false
	}
	return idx, true
}

// Len is the number of labels, which is also the one-hot width.
func (ls *LabelSet) Len() int { return len(ls.names) }

// Name returns the label encoded as i.
func (ls *LabelSet) Name(i int) string { return ls.names[i] }

// Names returns a copy of the labels in encoding order.
func (ls *LabelSet) Names() []string { return append([]string(nil), ls.names...) }
