package pipeline

import "github.com/Veraticus/sweep/internal/model"

// Split partitions records into consecutive chunks of at most size
// records, preserving order. Records are deep-copied so chunks never alias
// the input or each other. A non-positive size yields a single chunk.
func Split(records []model.Record, size int) [][]model.Record {
	if len(records) == 0 {
		return nil
	}
	if size <= 0 || size > len(records) {
		size = len(records)
	}

	chunks := make([][]model.Record, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		chunk := make([]model.Record, 0, end-start)
		for _, rec := range records[start:end] {
			chunk = append(chunk, rec.Clone())
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}
