//go:build !linux && !darwin && !freebsd

package arena

import "os"

var pageSize = os.Getpagesize

// Without a portable reserve/commit split the region is a single zeroed Go
// allocation; the operating system backs its pages lazily.
func reserve(capacity int) ([]byte, error) {
	return make([]byte, capacity), nil
}

func commit([]byte) error { return nil }

func decommit(region []byte) error {
	clear(region)
	return nil
}

func release([]byte) error { return nil }
