package idx_test

import (
	"testing"
	"time"

	"github.com/lanternsec/fusionkit/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.NotEmpty(t, id.String())
	require.False(t, id.IsZero())

	// Round-trip through Parse to make sure we only ever hand out canonical
	// form
	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "01HQ7T3Z1M"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, "input %q", s)
	}
}

func TestOrdering(t *testing.T) {
	a := idx.NewAt(time.Unix(1, 0).UTC())
	b := idx.NewAt(time.Unix(2, 0).UTC())

	// Lexical order must follow creation time, the stores rely on this for
	// stable listing without an extra sort column
	require.Less(t, a.String(), b.String())
}

func TestMonotonicWithinSameMillisecond(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()

	prev := idx.NewAt(tm)
	for i := 0; i < 100; i++ {
		next := idx.NewAt(tm)
		require.Less(t, prev.String(), next.String())
		prev = next
	}
}

func TestTimeExtraction(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	id := idx.NewAt(tm)

	require.WithinDuration(t, tm, id.Time(), time.Millisecond)
}
