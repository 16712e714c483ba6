// Package ints implements a compact set of small non-negative integers.
// Sets are used for NFA state subsets, DFA state identities, and terminal sets of grammar analysis.
package ints

import (
	"encoding/binary"
	"math/bits"

	"github.com/dchest/siphash"
)

const IntSizeShift = 5 + (^uint(0) >> 32 & 1)
const IntSize = 1 << IntSizeShift

// fingerprint keys, any fixed values will do
const (
	hashKey0 = 0x6c6c315f73657430
	hashKey1 = 0x6964656e74697479
)

// Set is a bit set covering the range [lowItem, highItem).
// Zero value is not usable, use NewSet.
type Set struct {
	lowItem, highItem int
	chunks            []uint
}

func NewSet(items ...int) *Set {
	result := &Set{0, 0, []uint{}}
	if len(items) > 0 {
		result.Add(items...)
	}
	return result
}

// Len returns the number of items in the set.
func (s *Set) Len() int {
	result := 0
	for _, chunk := range s.chunks {
		result += bits.OnesCount(chunk)
	}
	return result
}

// ToSlice returns set items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, 0, s.Len())
	item := s.lowItem
	for _, chunk := range s.chunks {
		for chunk != 0 {
			tz := bits.TrailingZeros(chunk)
			result = append(result, item+tz)
			chunk &= chunk - 1
		}
		item += IntSize
	}
	return result
}

// Hash returns siphash fingerprint of set items.
// Equal sets have equal fingerprints regardless of allocated ranges.
func (s *Set) Hash() uint64 {
	buf := make([]byte, 0, s.Len()<<2)
	for _, item := range s.ToSlice() {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(item))
	}
	return siphash.Hash(hashKey0, hashKey1, buf)
}

func (s *Set) baseItem(item int) int {
	return item & ^(IntSize - 1)
}

func (s *Set) allocate(low, high int) {
	lowItem := s.baseItem(low)
	highItem := s.baseItem(high) + IntSize
	if len(s.chunks) == 0 {
		s.chunks = make([]uint, (highItem-lowItem)>>IntSizeShift)
		s.lowItem = lowItem
		s.highItem = highItem
		return
	}

	if lowItem >= s.lowItem && highItem <= s.highItem {
		return
	}

	if lowItem > s.lowItem {
		lowItem = s.lowItem
	}
	if highItem < s.highItem {
		highItem = s.highItem
	}

	chunks := make([]uint, (highItem-lowItem)>>IntSizeShift)
	offset := (s.lowItem - lowItem) >> IntSizeShift
	copy(chunks[offset:], s.chunks)
	s.chunks = chunks
	s.lowItem = lowItem
	s.highItem = highItem
}

func (s *Set) chunkIndex(item int) int {
	return (item - s.lowItem) >> IntSizeShift
}

func bitMask(item int) uint {
	return 1 << (uint(item) & (IntSize - 1))
}

func minMax(items []int) (min, max int) {
	min = items[0]
	max = items[0]
	for _, item := range items[1:] {
		if item < min {
			min = item
		}
		if item > max {
			max = item
		}
	}
	return
}

// Add adds items to the set and returns the set itself.
func (s *Set) Add(items ...int) *Set {
	if len(items) == 0 {
		return s
	}

	min, max := minMax(items)
	s.allocate(min, max)
	for _, item := range items {
		s.chunks[s.chunkIndex(item)] |= bitMask(item)
	}
	return s
}

// Remove removes items from the set and returns the set itself.
func (s *Set) Remove(items ...int) *Set {
	for _, item := range items {
		if s.Contains(item) {
			s.chunks[s.chunkIndex(item)] &= ^bitMask(item)
		}
	}
	return s
}

func (s *Set) Contains(item int) bool {
	if item < s.lowItem || item >= s.highItem {
		return false
	}

	return s.chunks[s.chunkIndex(item)]&bitMask(item) != 0
}

func (s *Set) Copy() *Set {
	chunks := make([]uint, len(s.chunks))
	copy(chunks, s.chunks)
	return &Set{s.lowItem, s.highItem, chunks}
}

func isEmpty(chunks []uint) bool {
	for _, chunk := range chunks {
		if chunk != 0 {
			return false
		}
	}

	return true
}

func (s *Set) IsEmpty() bool {
	return isEmpty(s.chunks)
}

// IsEqual tells whether both sets contain the same items.
func (s *Set) IsEqual(t *Set) bool {
	if s.IsEmpty() || t.IsEmpty() {
		return s.IsEmpty() == t.IsEmpty()
	}

	low, high := s.lowItem, s.highItem
	if t.lowItem < low {
		low = t.lowItem
	}
	if t.highItem > high {
		high = t.highItem
	}

	for base := low; base < high; base += IntSize {
		if s.chunkAt(base) != t.chunkAt(base) {
			return false
		}
	}
	return true
}

func (s *Set) chunkAt(base int) uint {
	if base < s.lowItem || base >= s.highItem {
		return 0
	}

	return s.chunks[s.chunkIndex(base)]
}

// Union adds all items of t to the set and reports whether the set has changed.
func (s *Set) Union(t *Set) (changed bool) {
	if t.IsEmpty() {
		return false
	}

	s.allocate(t.lowItem, t.highItem-1)
	offset := s.chunkIndex(t.lowItem)
	for i, chunk := range t.chunks {
		merged := s.chunks[offset+i] | chunk
		if merged != s.chunks[offset+i] {
			s.chunks[offset+i] = merged
			changed = true
		}
	}
	return
}

// Subtract returns a new set containing items of s missing in t.
func Subtract(s, t *Set) *Set {
	result := s.Copy()
	for i := range result.chunks {
		result.chunks[i] &= ^t.chunkAt(result.lowItem + i<<IntSizeShift)
	}
	return result
}

// Union returns a new set containing items of both s and t.
func Union(s, t *Set) *Set {
	result := s.Copy()
	result.Union(t)
	return result
}
