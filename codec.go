package bloom

import (
	"encoding/binary"
	"io"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

const (
	streamMagic   = "ABF1"
	streamVersion = 1
)

// streamHeader precedes the bit words, which follow in the bitset stream format.
type streamHeader struct {
	Magic             [4]byte
	Version           uint8
	Family            uint8
	_                 [2]byte
	Capacity          uint64
	FalsePositiveRate float64
	BitCount          uint64
	HashCount         uint64
	Seeds             [2]uint64
}

// Snapshot copies the current bits. Each word is loaded atomically, so with
// concurrent inserts the copy holds every insert completed before the call
// and possibly parts of the ones in flight.
func (f *Filter) Snapshot() *bitset.BitSet {
	return bitset.From(f.bits.load())
}

// WriteTo writes the parameters, seeds and bits of f to stream. It has the
// same visibility guarantees as Snapshot.
func (f *Filter) WriteTo(stream io.Writer) (int64, error) {
	header := streamHeader{
		Version:           streamVersion,
		Family:            uint8(f.idx.family),
		Capacity:          f.params.Capacity,
		FalsePositiveRate: f.params.FalsePositiveRate,
		BitCount:          f.idx.bitCount,
		HashCount:         f.idx.hashCount,
		Seeds:             f.idx.seeds,
	}
	copy(header.Magic[:], streamMagic)
	if err := binary.Write(stream, binary.BigEndian, &header); err != nil {
		return 0, errors.Wrap(err, "bloom header write failed")
	}
	headerSize := int64(binary.Size(&header))
	n, err := f.Snapshot().WriteTo(stream)
	if err != nil {
		return headerSize + n, errors.Wrap(err, "bloom bits write failed")
	}
	return headerSize + n, nil
}

// Restore builds a filter from a stream produced by WriteTo. Seeds and hash
// family always come from the stream; logger and hooks options apply.
func Restore(stream io.Reader, opts ...Option) (filter *Filter, err error) {
	cfg := newConfig(opts)
	cfg.hooks.Before(RestoreFromStream)
	defer func() {
		cfg.hooks.After(RestoreFromStream, err, filter)
	}()

	var header streamHeader
	if readErr := binary.Read(stream, binary.BigEndian, &header); readErr != nil {
		return nil, errors.Wrap(readErr, "bloom header read failed")
	}
	if string(header.Magic[:]) != streamMagic {
		return nil, errors.Wrapf(ErrBadMagic, "got %q", header.Magic[:])
	}
	if header.Version != streamVersion {
		return nil, errors.Wrapf(ErrBadVersion, "got %d", header.Version)
	}
	family := HashFamily(header.Family)
	if !family.valid() {
		return nil, errors.Wrapf(ErrBadHashFamily, "got %d", header.Family)
	}
	params := FilterParams{Capacity: header.Capacity, FalsePositiveRate: header.FalsePositiveRate}
	if validationErr := params.Validate(); validationErr != nil {
		return nil, errors.Wrap(validationErr, "bloom stream parameters")
	}
	bitCount, hashCount := params.EstimatedParameters()
	if bitCount != header.BitCount || hashCount != header.HashCount {
		return nil, errors.Wrapf(
			ErrCorruptPayload,
			"geometry m=%d k=%d does not match the parameters (m=%d k=%d)",
			header.BitCount, header.HashCount, bitCount, hashCount,
		)
	}

	var prefix [8]byte
	if _, readErr := io.ReadFull(stream, prefix[:]); readErr != nil {
		return nil, errors.Wrap(readErr, "bloom bits length read failed")
	}
	if declared := binary.BigEndian.Uint64(prefix[:]); declared != bitCount {
		return nil, errors.Wrapf(ErrCorruptPayload, "declared %d bits, expected %d", declared, bitCount)
	}
	words, readErr := readWords(stream, bitCount/wordBits)
	if readErr != nil {
		return nil, errors.Wrap(readErr, "bloom bits read failed")
	}
	set := bitset.From(words)

	cfg.seeds = header.Seeds
	cfg.family = family
	filter = newFilter(params, bitCount, hashCount, cfg)
	filter.bits.store(words)
	filter.bitsSet.Store(uint64(set.Count()))
	if filter.BitsSet() > filter.saturationBits {
		filter.overCapacity.Store(true)
	}
	return filter, nil
}

// readWords reads count big-endian words in chunks, so a header claiming a
// huge filter costs memory only for the bytes that actually arrive.
func readWords(stream io.Reader, count uint64) ([]uint64, error) {
	const chunkWords = 4096
	words := make([]uint64, 0, min(count, chunkWords))
	chunk := make([]uint64, chunkWords)
	for remaining := count; remaining > 0; {
		n := min(remaining, chunkWords)
		if err := binary.Read(stream, binary.BigEndian, chunk[:n]); err != nil {
			return nil, err
		}
		words = append(words, chunk[:n]...)
		remaining -= n
	}
	return words, nil
}
