package store

// DefaultChunkSize bounds the number of bound parameters per statement when a
// backend expands a list into placeholders.
const DefaultChunkSize = 500

// Chunk splits items into consecutive slices of at most size elements. The
// slices share items' backing array. size below 1 yields a single chunk.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size < 1 {
		size = len(items)
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}
