package iter

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/afm.go/internal/afm"
)

type elem struct {
	value int
}

func TestSlice(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	numValues := 10
	elems := make([]*elem, 0, numValues)
	for y := 0; y < numValues; y = y + 1 {
		elems = append(elems, &elem{value: y})
	}
	it := NewSlice(elems)
	for y := 0; y < numValues; y = y + 1 {
		val := it.Next(ctx)
		require.True(t, val.IsPresent())
		require.Equal(t, y, val.Value().value)
	}
	require.False(t, it.Next(ctx).IsPresent())
	require.False(t, it.Next(ctx).IsPresent())
	require.Nil(t, it.Close(ctx))
}

func TestFilter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	filter := afm.Filter[*elem](FilterFunc[*elem](func(ctx context.Context, val *elem) bool {
		return val.value%2 == 0
	}))
	for numValues := 0; numValues < 6; numValues = numValues + 1 {
		t.Run(fmt.Sprintf("N(%d)", numValues), func(t *testing.T) {
			elems := make([]*elem, 0, numValues)
			for y := 0; y < numValues; y = y + 1 {
				elems = append(elems, &elem{value: y})
			}
			it := NewIteratorFilter(NewSlice(elems), filter)
			got := Collect(ctx, it)
			require.Len(t, got, (numValues+1)/2)
			for offset, e := range got {
				require.Equal(t, offset*2, e.value)
			}
			require.Nil(t, it.Close(ctx))
		})
	}
}

func TestFold(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	// A left fold must see the values in order; last write wins.
	last := Fold(ctx, NewSlice([]string{"a", "b", "c"}), "", func(_ string, v string) string {
		return v
	})
	require.Equal(t, "c", last)

	joined := Fold(ctx, NewSlice([]string{"a", "b", "c"}), "", func(acc string, v string) string {
		return acc + v
	})
	require.Equal(t, "abc", joined)

	empty := Fold(ctx, NewSlice([]int(nil)), 42, func(acc int, v int) int {
		return acc + v
	})
	require.Equal(t, 42, empty)
}

var benchEscapeValue int

func BenchmarkFold(b *testing.B) {
	ctx := context.Background()
	sliceSize := 1000
	slice := make([]int, sliceSize)
	for x := 0; x < sliceSize; x = x + 1 {
		slice[x] = x
	}

	var loopEscapeValue int
	b.ResetTimer()
	for n := 0; n < b.N; n = n + 1 {
		loopEscapeValue = Fold(ctx, NewSlice(slice), 0, func(acc int, v int) int {
			return acc + v
		})
	}
	benchEscapeValue = loopEscapeValue
}
