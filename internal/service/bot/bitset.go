package bot

import "math/bits"

const wordBits = 64

// bitset is a fixed-size bit vector used to track cell availability.
// Both set-bit and clear-bit iteration are hot paths, so each has a
// dedicated walk that skips whole words where possible.
type bitset struct {
	words []uint64
	n     int
}

func newBitset(n int) *bitset {
	return &bitset{
		words: make([]uint64, (n+wordBits-1)/wordBits),
		n:     n,
	}
}

func (b *bitset) set(i int) {
	b.words[i/wordBits] |= 1 << uint(i%wordBits)
}

func (b *bitset) clear(i int) {
	b.words[i/wordBits] &^= 1 << uint(i%wordBits)
}

func (b *bitset) test(i int) bool {
	return b.words[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

func (b *bitset) count() int {
	total := 0
	for _, w := range b.words {
		total += bits.OnesCount64(w)
	}
	return total
}

// ones calls fn for each set bit in ascending order, stopping early if fn
// returns false.
func (b *bitset) ones(fn func(i int) bool) {
	for wi, w := range b.words {
		for w != 0 {
			i := wi*wordBits + bits.TrailingZeros64(w)
			if !fn(i) {
				return
			}
			w &= w - 1
		}
	}
}

// zeroes is the complement walk: every clear bit below n, ascending.
func (b *bitset) zeroes(fn func(i int) bool) {
	for wi, word := range b.words {
		w := ^word
		for w != 0 {
			i := wi*wordBits + bits.TrailingZeros64(w)
			if i >= b.n {
				return
			}
			if !fn(i) {
				return
			}
			w &= w - 1
		}
	}
}

// appendOnes collects the set bits into dst, reusing its capacity.
func (b *bitset) appendOnes(dst []int) []int {
	b.ones(func(i int) bool {
		dst = append(dst, i)
		return true
	})
	return dst
}

// firstOne returns the lowest set bit, or -1 when the set is empty.
func (b *bitset) firstOne() int {
	for wi, w := range b.words {
		if w != 0 {
			return wi*wordBits + bits.TrailingZeros64(w)
		}
	}
	return -1
}
