//go:build unix

package tracker

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// fileIdentity returns the volume and file identity of path: the
// device and inode numbers. Two paths with equal identity on the same
// volume are the same file regardless of name.
func fileIdentity(path string) (device, inode uint64, err error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return uint64(st.Dev), uint64(st.Ino), nil
}
