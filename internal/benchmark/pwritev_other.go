//go:build !linux

package benchmark

import "os"

// pwritev falls back to one positional write per buffer where the platform has no pwritev.
func pwritev(f *os.File, bufs [][]byte, off int64) (int, error) {
	total := 0
	for _, b := range bufs {
		n, err := pwrite(f, b, off+int64(total))
		total += n
		if err != nil || n < len(b) {
			return total, err
		}
	}
	return total, nil
}
