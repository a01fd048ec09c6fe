package utils

import (
	"sort"
)

type Set map[int]struct{}

// a value to the set.
func (this Set) Add(value int) { this[value] = struct{}{} }

// returns all keys in the set, sorted.
func (this Set) GetKeys() []int {
	keys := make([]int, 0, len(this))
	for key := range this { keys = append(keys, key) }
	sort.Ints(keys) // Sort the keys
	return keys
}
