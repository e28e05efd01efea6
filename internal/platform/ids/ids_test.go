package ids

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g, err := New("")
	require.NoError(t, err)
	assert.IsType(t, UUID{}, g)

	g, err = New("ulid")
	require.NoError(t, err)
	assert.IsType(t, &ULID{}, g)

	_, err = New("snowflake")
	assert.Error(t, err)
}

func TestGenerators_UniqueAndPrefixed(t *testing.T) {
	for _, strategy := range []string{"uuid", "ulid"} {
		t.Run(strategy, func(t *testing.T) {
			g, err := New(strategy)
			require.NoError(t, err)

			var mu sync.Mutex
			seen := make(map[string]struct{})
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 250; j++ {
						id := g.NewID(PrefixWebhook)
						mu.Lock()
						seen[id] = struct{}{}
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			assert.Len(t, seen, 2000)
			for id := range seen {
				assert.True(t, strings.HasPrefix(id, PrefixWebhook), id)
			}
		})
	}
}

func TestULID_Sortable(t *testing.T) {
	g := NewULID()
	a := g.NewID("")
	b := g.NewID("")
	assert.Less(t, a, b)
}
