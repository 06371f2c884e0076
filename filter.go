package bloom

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
)

// Filter is a Bloom filter whose Insert and Contains may be called from any
// number of goroutines without locking. Reset needs exclusive access.
//
// A call to Contains made concurrently with an Insert of the same item may
// observe it or not. Once Insert has returned, and the caller has a
// happens-before edge to the query (a channel, a sync.WaitGroup, ...),
// Contains is guaranteed to report true until the next Reset.
//
// Inserting more than Capacity distinct items is allowed; the real false
// positive rate then rises above FalsePositiveRate.
type Filter struct {
	params FilterParams
	idx    indexer
	bits   bitArray

	bitsSet        atomic.Uint64
	saturationBits uint64
	overCapacity   atomic.Bool

	logger Logger
	hooks  *Hooks
}

// NewWithEstimates builds a filter sized for capacity items at the given
// false positive rate.
func NewWithEstimates(capacity uint64, falsePositiveRate float64, opts ...Option) (*Filter, error) {
	return New(FilterParams{Capacity: capacity, FalsePositiveRate: falsePositiveRate}, opts...)
}

func New(params FilterParams, opts ...Option) (*Filter, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	bitCount, hashCount := params.EstimatedParameters()
	return newFilter(params, bitCount, hashCount, newConfig(opts)), nil
}

func newFilter(params FilterParams, bitCount, hashCount uint64, cfg config) *Filter {
	return &Filter{
		params: params,
		idx: indexer{
			family:    cfg.family,
			seeds:     cfg.seeds,
			bitCount:  bitCount,
			hashCount: hashCount,
		},
		bits:           newBitArray(bitCount),
		saturationBits: saturationThreshold(bitCount, hashCount, params.Capacity),
		logger:         cfg.logger,
		hooks:          cfg.hooks,
	}
}

// Insert adds data to the filter. Inserting the same data again is a no-op.
func (f *Filter) Insert(data []byte) {
	h1, h2 := f.idx.baseHashes(data)
	var newlySet uint64
	for i := uint64(0); i < f.idx.hashCount; i++ {
		if f.bits.set(position(h1, h2, i, f.idx.bitCount)) {
			newlySet++
		}
	}
	if newlySet == 0 {
		return
	}
	if total := f.bitsSet.Add(newlySet); total > f.saturationBits {
		f.capacityExceeded()
	}
}

// Contains reports whether data may have been inserted. A false result is
// definite.
func (f *Filter) Contains(data []byte) bool {
	h1, h2 := f.idx.baseHashes(data)
	for i := uint64(0); i < f.idx.hashCount; i++ {
		if !f.bits.test(position(h1, h2, i, f.idx.bitCount)) {
			return false
		}
	}
	return true
}

// Reset clears every bit, keeping the parameters and seeds.
//
// Reset must not overlap with any other call on f: an in-flight Insert may
// have some of its bits cleared and others kept, which breaks the
// no-false-negatives guarantee for that item.
func (f *Filter) Reset() {
	f.hooks.Before(ClearBits)
	f.bits.clear()
	f.bitsSet.Store(0)
	f.overCapacity.Store(false)
	f.hooks.After(ClearBits, nil)
}

func (f *Filter) capacityExceeded() {
	if !f.overCapacity.CompareAndSwap(false, true) {
		return
	}
	f.hooks.Before(CapacityExceeded, f)
	f.logger(
		"bloom: filter is filled beyond its capacity of", f.params.Capacity,
		"items, estimated false positive rate", f.EstimatedFalsePositiveRate(),
		"target", f.params.FalsePositiveRate,
	)
	f.hooks.After(CapacityExceeded, nil, f)
}

func (f *Filter) Capacity() uint64 {
	return f.params.Capacity
}

func (f *Filter) FalsePositiveRate() float64 {
	return f.params.FalsePositiveRate
}

// BitCount is the number of bits, a multiple of 64.
func (f *Filter) BitCount() uint64 {
	return f.idx.bitCount
}

func (f *Filter) HashCount() uint64 {
	return f.idx.hashCount
}

func (f *Filter) Seeds() (seed1, seed2 uint64) {
	return f.idx.seeds[0], f.idx.seeds[1]
}

func (f *Filter) HashFamily() HashFamily {
	return f.idx.family
}

// BitsSet is the number of bits currently set.
func (f *Filter) BitsSet() uint64 {
	return f.bitsSet.Load()
}

func (f *Filter) FillRatio() float64 {
	return float64(f.BitsSet()) / float64(f.idx.bitCount)
}

// EstimatedFalsePositiveRate is the probability that a never inserted item
// hits only set bits, given the current fill.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	return math.Pow(f.FillRatio(), float64(f.idx.hashCount))
}

// ApproximatedSize estimates the number of distinct items inserted since the
// last Reset as -(m/k) * ln(1 - X/m), X being the bits set.
func (f *Filter) ApproximatedSize() uint64 {
	m := float64(f.idx.bitCount)
	x := float64(f.BitsSet())
	if x >= m {
		return math.MaxUint64
	}
	return uint64(math.Round(-m / float64(f.idx.hashCount) * math.Log(1-x/m)))
}

// Locations returns the bit positions data maps to.
func (f *Filter) Locations(data []byte) []uint64 {
	return f.idx.locations(data)
}

func (f *Filter) String() string {
	var head strings.Builder
	for pos := uint64(0); pos < 10 && pos < f.idx.bitCount; pos++ {
		if f.bits.test(pos) {
			head.WriteByte('1')
		} else {
			head.WriteByte('0')
		}
	}
	return fmt.Sprintf(
		"Bloom{hashes: %d, bits: %d, bits set: %d, head: %s..}",
		f.idx.hashCount,
		f.idx.bitCount,
		f.BitsSet(),
		head.String(),
	)
}
