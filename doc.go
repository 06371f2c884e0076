/*
Package bloom implements a Bloom filter that many goroutines can insert into and
query at the same time without locks.

A filter answers "might this item have been inserted?". A negative answer is
definite; a positive one is wrong with a probability close to the configured
false positive rate, as long as no more than Capacity distinct items were
inserted. Overfilling is not an error, the false positive rate just grows.

	f, err := bloom.NewWithEstimates(1000, 0.01)
	if err != nil {
		return err
	}
	f.InsertString("example")
	f.ContainsString("example") // true

# Layout

The bits live in 64-bit words and are set with atomic OR, so concurrent inserts
never lose each other's bits. The bit count is rounded up to a whole number of
words. Each item is hashed twice with seeded 64-bit hashes (xxHash by default,
MurmurHash3 optionally) and its k positions are derived by double hashing:

	pos(i) = (h1 + i*h2) mod m,  i in [0, k)

# Reset

Reset is the only operation that needs exclusive access. Running it alongside
Insert can leave an item half inserted.
*/
package bloom
