package utils

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeGenerator_Range(t *testing.T) {
	gen := NewSeededCodeGenerator(42)

	for i := 0; i < 5000; i++ {
		code := gen.Next()
		require.Len(t, code, 4)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, MinRiderCode)
		assert.LessOrEqual(t, n, MaxRiderCode)
	}
}

func TestCodeGenerator_SameSeedSameSequence(t *testing.T) {
	a := NewSeededCodeGenerator(7)
	b := NewSeededCodeGenerator(7)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestCodeGenerator_Concurrent(t *testing.T) {
	gen := NewCodeGenerator()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Len(t, gen.Next(), 4)
			}
		}()
	}
	wg.Wait()
}
