package bloom

import (
	"sync/atomic"
)

// bitArray is a fixed set of bits packed into 64-bit words. Every access goes
// through the word's atomic operations, so concurrent writers touching
// different bits of the same word never lose each other's updates.
type bitArray struct {
	words []atomic.Uint64
}

func newBitArray(bitCount uint64) bitArray {
	return bitArray{words: make([]atomic.Uint64, (bitCount+wordBits-1)/wordBits)}
}

func wordAndMask(pos uint64) (idx uint64, mask uint64) {
	return pos >> 6, 1 << (pos & (wordBits - 1))
}

// set reports whether the bit was clear before the call.
func (b bitArray) set(pos uint64) bool {
	idx, mask := wordAndMask(pos)
	return b.words[idx].Or(mask)&mask == 0
}

func (b bitArray) test(pos uint64) bool {
	idx, mask := wordAndMask(pos)
	return b.words[idx].Load()&mask != 0
}

// clear is not atomic as a whole: every word is zeroed on its own.
func (b bitArray) clear() {
	for i := range b.words {
		b.words[i].Store(0)
	}
}

func (b bitArray) load() []uint64 {
	out := make([]uint64, len(b.words))
	for i := range b.words {
		out[i] = b.words[i].Load()
	}
	return out
}

func (b bitArray) store(words []uint64) {
	for i, w := range words {
		b.words[i].Store(w)
	}
}
