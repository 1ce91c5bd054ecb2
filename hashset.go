package gitredate

import (
	"github.com/go-git/go-git/v5/plumbing"
)

type empty = struct{}

// HashSet is simply map from [plumbing.Hash] to [empty]
type HashSet = map[plumbing.Hash]empty

// NewHashSet creates a new set of Hash
func NewHashSet(hashes ...plumbing.Hash) HashSet {
	result := make(map[plumbing.Hash]empty)

	for _, v := range hashes {
		result[v] = empty{}
	}

	return result
}

// NewHashSetFromStrings decodes the input strings and creates a new [HashSet]
func NewHashSetFromStrings(strs ...string) (HashSet, error) {
	hashes, err := DecodeHashHexes(strs...)
	if err != nil {
		return nil, err
	}

	return NewHashSet(hashes...), nil
}
