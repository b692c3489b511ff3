//go:build linux || darwin || freebsd

package arena

import (
	"sync"

	"golang.org/x/sys/unix"
)

var pageSize = sync.OnceValue(unix.Getpagesize)

func reserve(capacity int) ([]byte, error) {
	return unix.Mmap(-1, 0, capacity, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

func commit(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	return unix.Mprotect(region, unix.PROT_READ|unix.PROT_WRITE)
}

func decommit(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	if err := unix.Madvise(region, unix.MADV_DONTNEED); err != nil {
		return err
	}
	return unix.Mprotect(region, unix.PROT_NONE)
}

func release(data []byte) error {
	return unix.Munmap(data)
}
