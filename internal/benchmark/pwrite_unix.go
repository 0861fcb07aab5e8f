//go:build unix

package benchmark

import (
	"os"

	"golang.org/x/sys/unix"
)

func pwrite(f *os.File, p []byte, off int64) (int, error) {
	return unix.Pwrite(int(f.Fd()), p, off)
}
