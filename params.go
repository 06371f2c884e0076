package bloom

import (
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const wordBits = 64

// FilterParams describes the expected load of a filter.
type FilterParams struct {
	// Capacity is the expected number of distinct items.
	Capacity uint64 `json:"capacity"`
	// FalsePositiveRate is the target false positive probability once
	// Capacity items have been inserted.
	FalsePositiveRate float64 `json:"false_positive_rate"`
}

// Validate reports every violated constraint at once. Each of them matches
// ErrInvalidParameters with errors.Is.
func (fp FilterParams) Validate() error {
	var validationErr *multierror.Error
	if fp.Capacity == 0 {
		validationErr = multierror.Append(validationErr, errors.Wrap(ErrInvalidParameters, "capacity must be at least 1"))
	}
	// the negated form also rejects NaN
	if !(fp.FalsePositiveRate > 0 && fp.FalsePositiveRate < 1) {
		validationErr = multierror.Append(
			validationErr,
			errors.Wrapf(ErrInvalidParameters, "false positive rate %v is outside of (0, 1)", fp.FalsePositiveRate),
		)
	}
	return validationErr.ErrorOrNil()
}

// EstimatedParameters returns the word aligned bit count and the hash count for fp.
// fp is expected to be valid.
func (fp FilterParams) EstimatedParameters() (bitCount, hashCount uint64) {
	return EstimateParameters(fp.Capacity, fp.FalsePositiveRate)
}

// OptimalBitCount returns ceil(-n*ln(p) / ln(2)^2), at least 1.
func OptimalBitCount(capacity uint64, falsePositiveRate float64) uint64 {
	m := math.Ceil(-float64(capacity) * math.Log(falsePositiveRate) / (math.Ln2 * math.Ln2))
	if m < 1 {
		return 1
	}
	return uint64(m)
}

// OptimalHashCount returns round((m/n) * ln(2)), at least 1.
func OptimalHashCount(capacity, bitCount uint64) uint64 {
	k := math.Round(float64(bitCount) / float64(capacity) * math.Ln2)
	if k < 1 {
		return 1
	}
	return uint64(k)
}

// EstimateParameters derives the filter geometry. The hash count is computed from
// the optimal bit count, the returned bit count is then rounded up to a whole
// number of 64-bit storage words.
func EstimateParameters(capacity uint64, falsePositiveRate float64) (bitCount, hashCount uint64) {
	m := OptimalBitCount(capacity, falsePositiveRate)
	return alignToWords(m), OptimalHashCount(capacity, m)
}

// EstimateFalsePositiveRate returns the expected false positive probability
// (1 - e^(-k*n/m))^k of a filter with m bits and k hashes holding n items.
func EstimateFalsePositiveRate(bitCount, hashCount, inserted uint64) float64 {
	if bitCount == 0 {
		return 1
	}
	fill := 1 - math.Exp(-float64(hashCount)*float64(inserted)/float64(bitCount))
	return math.Pow(fill, float64(hashCount))
}

// saturationThreshold is the bit count above which a filter almost surely
// holds more than inserted distinct items. Around n inserts the number of set
// bits is m*(1-e^(-c)) with variance about m*(e^(-c) - (1+c)*e^(-2c)), c=k*n/m;
// the threshold sits four standard deviations above that mean.
func saturationThreshold(bitCount, hashCount, inserted uint64) uint64 {
	m := float64(bitCount)
	c := float64(hashCount) * float64(inserted) / m
	mean := m * (1 - math.Exp(-c))
	variance := m * (math.Exp(-c) - (1+c)*math.Exp(-2*c))
	return uint64(math.Ceil(mean + 4*math.Sqrt(math.Max(variance, 0))))
}

func alignToWords(bitCount uint64) uint64 {
	return (bitCount + wordBits - 1) / wordBits * wordBits
}
