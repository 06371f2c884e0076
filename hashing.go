package bloom

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// HashFamily selects the seeded 64-bit hash the two base hashes are drawn from.
type HashFamily uint8

const (
	// XXHash seeds xxHash64 with the full 64-bit seeds.
	XXHash HashFamily = iota
	// Murmur3 uses MurmurHash3 x64 with each seed folded to 32 bits.
	Murmur3
)

func (h HashFamily) String() string {
	switch h {
	case XXHash:
		return "xxhash"
	case Murmur3:
		return "murmur3"
	default:
		return "unknown"
	}
}

func (h HashFamily) valid() bool {
	return h <= Murmur3
}

func (h HashFamily) sum64(seed uint64, data []byte) uint64 {
	if h == Murmur3 {
		return murmur3.Sum64WithSeed(data, foldSeed(seed))
	}
	var d xxhash.Digest
	d.ResetWithSeed(seed)
	_, _ = d.Write(data)
	return d.Sum64()
}

// foldSeed keeps the high half of a 64-bit seed relevant for 32-bit seeded hashes.
func foldSeed(seed uint64) uint32 {
	return uint32(seed ^ seed>>32)
}

func randomSeeds() [2]uint64 {
	s := [2]uint64{rand.Uint64(), rand.Uint64()}
	for foldSeed(s[0]) == foldSeed(s[1]) {
		s[1] = rand.Uint64()
	}
	return s
}

// indexer derives the k bit positions of an item with double hashing:
// position i is (h1 + i*h2) mod m.
type indexer struct {
	family    HashFamily
	seeds     [2]uint64
	bitCount  uint64
	hashCount uint64
}

func (ix indexer) baseHashes(data []byte) (h1, h2 uint64) {
	h1 = ix.family.sum64(ix.seeds[0], data) % ix.bitCount
	h2 = ix.family.sum64(ix.seeds[1], data) % ix.bitCount
	// a zero step would collapse all k probes onto h1
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}

func position(h1, h2, i, bitCount uint64) uint64 {
	return (h1 + i*h2) % bitCount
}

func (ix indexer) locations(data []byte) []uint64 {
	h1, h2 := ix.baseHashes(data)
	locs := make([]uint64, ix.hashCount)
	for i := range locs {
		locs[i] = position(h1, h2, uint64(i), ix.bitCount)
	}
	return locs
}
