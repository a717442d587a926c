//go:build !unix

package tracker

import (
	"errors"
	"fmt"
)

var errNoIdentity = errors.New("file identity tracking is not supported on this platform")

func fileIdentity(path string) (device, inode uint64, err error) {
	return 0, 0, fmt.Errorf("%s: %w", path, errNoIdentity)
}
