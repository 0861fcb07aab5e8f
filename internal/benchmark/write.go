package benchmark

import (
	"errors"
	"fmt"
	"os"
)

// IOVMax is the largest number of buffers handed to a single vectored write.
const IOVMax = 1024

// maxZeroWrites is how many writes may make no progress before giving up.
const maxZeroWrites = 3

// ErrNoProgress is returned when repeated writes write zero bytes.
var ErrNoProgress = errors.New("write made no progress")

// Consolidate concatenates the chunks into a single shard.
func Consolidate(chunks [][]byte) []byte {
	size := 0
	for _, c := range chunks {
		size += len(c)
	}
	shard := make([]byte, 0, size)
	for _, c := range chunks {
		shard = append(shard, c...)
	}
	return shard
}

// WriteConsolidated writes data to path at offset 0 with positional writes.
func WriteConsolidated(path string, data []byte) error {
	f, err := openSink(path)
	if err != nil {
		return err
	}
	defer f.Close()

	off := int64(0)
	zeroWrites := 0
	for len(data) > 0 {
		n, err := pwrite(f, data, off)
		if err != nil {
			return fmt.Errorf("failed to write to %s: %w", path, err)
		}
		if n == 0 {
			zeroWrites++
			if zeroWrites >= maxZeroWrites {
				return fmt.Errorf("%s: %w", path, ErrNoProgress)
			}
			continue
		}
		data = data[n:]
		off += int64(n)
	}
	return closeSink(f)
}

// WriteVectorized writes the chunks back to back at offset 0, handing the
// kernel up to IOVMax buffers per call.
func WriteVectorized(path string, chunks [][]byte) error {
	f, err := openSink(path)
	if err != nil {
		return err
	}
	defer f.Close()

	off := int64(0)
	for start := 0; start < len(chunks); start += IOVMax {
		batch := chunks[start:min(start+IOVMax, len(chunks))]
		n, err := writeVectors(f, batch, off)
		if err != nil {
			return fmt.Errorf("failed to write to %s: %w", path, err)
		}
		off += n
	}
	return closeSink(f)
}

// writeVectors issues vectored writes until every buffer is written, resuming
// after partial writes.
func writeVectors(f *os.File, bufs [][]byte, off int64) (int64, error) {
	bufs = append([][]byte(nil), bufs...)

	var total int64
	zeroWrites := 0
	for {
		for len(bufs) > 0 && len(bufs[0]) == 0 {
			bufs = bufs[1:]
		}
		if len(bufs) == 0 {
			return total, nil
		}

		n, err := pwritev(f, bufs, off)
		if err != nil {
			return total, err
		}
		if n == 0 {
			zeroWrites++
			if zeroWrites >= maxZeroWrites {
				return total, ErrNoProgress
			}
			continue
		}
		total += int64(n)
		off += int64(n)

		for n > 0 {
			if n >= len(bufs[0]) {
				n -= len(bufs[0])
				bufs = bufs[1:]
				continue
			}
			bufs[0] = bufs[0][n:]
			n = 0
		}
	}
}

func openSink(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	return f, nil
}

func closeSink(f *os.File) error {
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", f.Name(), err)
	}
	return nil
}
