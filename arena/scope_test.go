package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopeRestoresPosition(t *testing.T) {
	cases := []struct {
		name string
		run  func(a *Arena)
	}{
		{
			name: "normal_return",
			run: func(a *Arena) {
				defer a.Scope().End()
				a.Push(64)
				a.Push(9000)
			},
		},
		{
			name: "early_return",
			run: func(a *Arena) {
				defer a.Scope().End()
				for i := 0; i < 10; i++ {
					a.Push(128)
					if i == 3 {
						return
					}
				}
			},
		},
		{
			name: "nested",
			run: func(a *Arena) {
				defer a.Scope().End()
				a.Push(10)
				func() {
					defer a.Scope().End()
					a.Push(20)
				}()
				a.Push(30)
			},
		},
		{
			name: "panic",
			run: func(a *Arena) {
				defer func() { _ = recover() }()
				defer a.Scope().End()
				a.Push(256)
				panic("boom")
			},
		},
		{
			name: "overflow_panic",
			run: func(a *Arena) {
				defer func() { _ = recover() }()
				defer a.Scope().End()
				a.Push(a.Cap() + 1)
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := newTestArena(t)
			a.Push(17)
			before := a.Pos()
			c.run(a)
			require.Equal(t, before, a.Pos())
		})
	}
}

func TestScopeRewindsToOpenPosition(t *testing.T) {
	a := newTestArena(t)
	a.Push(5)
	s := a.Scope()
	a.Push(5)
	s.End()
	require.Equal(t, 5, a.Pos())

	var zero Scope
	zero.End()
}
