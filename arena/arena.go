// Package arena implements a bump allocator over a reserved virtual memory
// region. Address space is reserved once and pages are committed as the
// cursor advances, so unused capacity stays physically unbacked.
//
// Memory handed out by an Arena is invisible to the garbage collector. Only
// pointer-free data may be stored in it; refer to other arena data by offset
// or index instead of by pointer.
package arena

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"
)

// DefaultCapacity is the reservation used when New is given a non-positive
// capacity.
const DefaultCapacity = 256 << 20

var (
	// ErrCapacityExceeded is the panic value (wrapped) raised when a push
	// would move the cursor past the reserved capacity.
	ErrCapacityExceeded = errors.New("arena: capacity exceeded")
	ErrReleased         = errors.New("arena: released")
)

// Arena is a single-owner linear allocator. It is not safe for concurrent
// use.
type Arena struct {
	data      []byte
	pos       int
	committed int
}

// New reserves capacity bytes (rounded up to the page size) and commits the
// first page.
func New(capacity int) (*Arena, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	capacity = roundToPage(capacity)

	data, err := reserve(capacity)
	if err != nil {
		return nil, fmt.Errorf("arena: reserve %d bytes: %w", capacity, err)
	}
	a := &Arena{data: data}
	if err := commit(data[:pageSize()]); err != nil {
		_ = release(data)
		return nil, fmt.Errorf("arena: commit first page: %w", err)
	}
	a.committed = pageSize()
	return a, nil
}

// MustNew is New for callers that treat a failed reservation as fatal.
func MustNew(capacity int) *Arena {
	a, err := New(capacity)
	if err != nil {
		panic(err)
	}
	return a
}

// Pos returns the bump cursor.
func (a *Arena) Pos() int {
	if a == nil {
		return 0
	}
	return a.pos
}

// Cap returns the reserved size in bytes.
func (a *Arena) Cap() int {
	if a == nil {
		return 0
	}
	return len(a.data)
}

// Committed returns how many bytes from the start of the region are backed.
func (a *Arena) Committed() int {
	if a == nil {
		return 0
	}
	return a.committed
}

// Peek returns the address the next push will start at, as an empty slice
// with the remaining capacity.
func (a *Arena) Peek() []byte {
	return a.data[a.pos:a.pos]
}

// Push returns n bytes at the cursor and advances it. The bytes are not
// cleared: memory rewound with Pop or PopTo keeps its old contents.
func (a *Arena) Push(n int) []byte {
	if n < 0 {
		panic(fmt.Sprintf("arena: negative push %d", n))
	}
	end := a.pos + n
	if end > len(a.data) {
		panic(fmt.Errorf("%w: pos=%d push=%d cap=%d", ErrCapacityExceeded, a.pos, n, len(a.data)))
	}
	a.commitTo(end)
	b := a.data[a.pos:end:end]
	a.pos = end
	return b
}

// PushZero is Push with the returned bytes cleared.
func (a *Arena) PushZero(n int) []byte {
	b := a.Push(n)
	clear(b)
	return b
}

// PushData copies src into the arena.
func (a *Arena) PushData(src []byte) []byte {
	b := a.Push(len(src))
	copy(b, src)
	return b
}

// Align pads the cursor up to a multiple of align.
func (a *Arena) Align(align int) {
	if align <= 1 {
		return
	}
	if rem := a.pos % align; rem != 0 {
		a.Push(align - rem)
	}
}

// Pop rewinds the cursor by n bytes, stopping at zero.
func (a *Arena) Pop(n int) {
	if n >= a.pos {
		a.pos = 0
		return
	}
	a.pos -= n
}

// PopTo rewinds the cursor to pos. Positions past the cursor are ignored.
func (a *Arena) PopTo(pos int) {
	if pos < 0 || pos > a.pos {
		return
	}
	a.pos = pos
}

// Clear resets the cursor without releasing committed pages.
func (a *Arena) Clear() {
	a.pos = 0
}

// ClearDecommit resets the cursor and returns every committed page except
// the first to the operating system.
func (a *Arena) ClearDecommit() {
	ps := pageSize()
	if a.committed > ps {
		if err := decommit(a.data[ps:a.committed]); err != nil {
			panic(fmt.Errorf("arena: decommit: %w", err))
		}
		a.committed = ps
	}
	a.Clear()
}

// Release unmaps the whole region. The arena must not be used afterwards.
func (a *Arena) Release() error {
	if a == nil || a.data == nil {
		return ErrReleased
	}
	err := release(a.data)
	a.data = nil
	a.pos = 0
	a.committed = 0
	return err
}

// LoadFile reads the whole file at path into the arena.
func (a *Arena) LoadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	start := a.pos
	buf := a.Push(int(info.Size()))
	if _, err := io.ReadFull(f, buf); err != nil {
		a.PopTo(start)
		return nil, fmt.Errorf("arena: read %s: %w", path, err)
	}
	return buf, nil
}

func (a *Arena) commitTo(end int) {
	if end <= a.committed {
		return
	}
	newEnd := min(roundToPage(end), len(a.data))
	if err := commit(a.data[a.committed:newEnd]); err != nil {
		panic(fmt.Errorf("arena: commit: %w", err))
	}
	a.committed = newEnd
}

// PushSlice returns a zeroed, properly aligned slice of n values of T. T
// must not contain Go pointers.
func PushSlice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return make([]T, n)
	}
	a.Align(int(unsafe.Alignof(zero)))
	b := a.PushZero(size * n)
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// PushCopy copies src into a new arena slice.
func PushCopy[T any](a *Arena, src []T) []T {
	dst := PushSlice[T](a, len(src))
	copy(dst, src)
	return dst
}

// Str references a string stored in an arena.
type Str struct {
	Off uint32
	Len uint32
}

// PushString stores s and returns a reference to it.
func (a *Arena) PushString(s string) Str {
	if len(s) == 0 {
		return Str{}
	}
	off := a.pos
	b := a.Push(len(s))
	copy(b, s)
	return Str{Off: uint32(off), Len: uint32(len(s))}
}

// String resolves ref. The result aliases arena memory and is only valid
// until the arena is rewound past it.
func (a *Arena) String(ref Str) string {
	if ref.Len == 0 || int(ref.Off)+int(ref.Len) > a.pos {
		return ""
	}
	return unsafe.String(&a.data[ref.Off], int(ref.Len))
}

func roundToPage(n int) int {
	ps := pageSize()
	return (n + ps - 1) / ps * ps
}
