package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemo_GetOrLoadLoadsOnce(t *testing.T) {
	m := New[string]()
	var calls int

	for range 3 {
		v, err := m.GetOrLoad("https://example.com", func() (string, error) {
			calls++
			return "body", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "body", v)
	}

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, m.Len())
}

func TestMemo_FailedLoadIsNotMemoized(t *testing.T) {
	m := New[int]()
	boom := errors.New("boom")

	_, err := m.GetOrLoad("k", func() (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, m.Len())

	v, err := m.GetOrLoad("k", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestMemo_ConcurrentCallersShareOneLoad(t *testing.T) {
	m := New[int]()
	var calls atomic.Int32
	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := m.GetOrLoad("model", func() (int, error) {
				calls.Add(1)
				return 42, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}
