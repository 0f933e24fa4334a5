package common

import (
	"strings"

	"golang.org/x/text/cases"
)

type keyKind int

const (
	keyFirst keyKind = iota
	keyString
	keyLast
)

// SortKey is the comparable value derived from a node. It is either a
// string, compared case-insensitively, or one of the First/Last sentinels.
type SortKey struct {
	kind   keyKind
	value  string
	folded string
}

// StringKey creates a key from text.
func StringKey(value string) SortKey {
	// A Caser keeps state, so one is created per call.
	return SortKey{kind: keyString, value: value, folded: cases.Fold().String(value)}
}

// FirstKey sorts before every string key.
func FirstKey() SortKey {
	return SortKey{kind: keyFirst}
}

// LastKey sorts after every string key.
func LastKey() SortKey {
	return SortKey{kind: keyLast}
}

// IsSentinel reports whether k is FirstKey or LastKey.
func (k SortKey) IsSentinel() bool {
	return k.kind != keyString
}

// Value returns the original text of a string key.
func (k SortKey) Value() string {
	return k.value
}

func (k SortKey) String() string {
	switch k.kind {
	case keyFirst:
		return "<first>"
	case keyLast:
		return "<last>"
	}
	return k.value
}

// Compare orders keys: FirstKey < string keys < LastKey. String keys are
// compared after Unicode case folding; keys equal under folding compare equal.
func (k SortKey) Compare(other SortKey) int {
	if k.kind != other.kind {
		if k.kind < other.kind {
			return -1
		}
		return 1
	}
	if k.kind != keyString {
		return 0
	}
	return strings.Compare(k.folded, other.folded)
}

// Less reports whether k sorts strictly before other.
func (k SortKey) Less(other SortKey) bool {
	return k.Compare(other) < 0
}

// MinKey returns the smallest of keys, or an empty string key when keys is empty.
func MinKey(keys []SortKey) SortKey {
	if len(keys) == 0 {
		return StringKey("")
	}
	lowest := keys[0]
	for _, k := range keys[1:] {
		if k.Less(lowest) {
			lowest = k
		}
	}
	return lowest
}
