//go:build !unix

package benchmark

import "os"

func pwrite(f *os.File, p []byte, off int64) (int, error) {
	return f.WriteAt(p, off)
}
