package pyrosimple

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanDuration(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "        0s", humanDuration(0))
	assert.Equal(t, "       45s", humanDuration(45))
	assert.Equal(t, "    1m 30s", humanDuration(90))
	assert.Equal(t, "     1d 1h", humanDuration(90061))
	assert.Equal(t, "       -5s", humanDuration(-5))
}

func TestNaRJust(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "       N/A", naRJust(humanSize(0)))
	assert.Equal(t, "N/A", naRJust("xx"))
}

func TestCompareValues(t *testing.T) {
	t.Parallel()
	assert.Zero(t, compareValues(nil, nil))
	assert.Negative(t, compareValues(nil, 0))
	assert.Negative(t, compareValues(false, true))
	assert.Negative(t, compareValues(3, 5.0))
	assert.Positive(t, compareValues(uint8(7), int64(5)))
	assert.Negative(t, compareValues("a", "b"))
	// Mixed kinds order by kind rank, keeping the ordering transitive.
	assert.Negative(t, compareValues(5, "5"))
	assert.Positive(t, compareValues("x", true))
}

func TestApplyVerb(t *testing.T) {
	t.Parallel()
	out, err := applyVerb("6d", 2048)
	require.NoError(t, err)
	assert.Equal(t, "  2048", out)

	out, err = applyVerb("5.1f", 50)
	require.NoError(t, err)
	assert.Equal(t, " 50.0", out)

	out, err = applyVerb("i", 7.9)
	require.NoError(t, err)
	assert.Equal(t, "7", out)

	out, err = applyVerb("-6s", "ab")
	require.NoError(t, err)
	assert.Equal(t, "ab    ", out)

	_, err = applyVerb("d", "many")
	assert.Error(t, err)

	_, err = applyVerb("q", "x")
	assert.Error(t, err)
}

func TestErrorColumn(t *testing.T) {
	t.Parallel()
	col, ok := errorColumn(errors.New(`template: output:1:9: executing "output" at <.missing>: map has no entry for key "missing"`))
	require.True(t, ok)
	assert.Equal(t, 9, col)

	col, ok = errorColumn(errors.New("[Error (where: execution) in <string> | Line 1 Col 12 near 'x'] token mismatch"))
	require.True(t, ok)
	assert.Equal(t, 12, col)

	col, ok = errorColumn(errors.New("parse failure at line 2, column 7 of input"))
	require.True(t, ok)
	assert.Equal(t, 7, col)

	// Line-only parse errors report no column.
	_, ok = errorColumn(errors.New(`template: output:1: function "bogus" not defined`))
	assert.False(t, ok)

	_, ok = errorColumn(errors.New("no position here"))
	assert.False(t, ok)
}

func TestPathdirBareName(t *testing.T) {
	t.Parallel()
	out, err := fmtPathdir("ubuntu.iso")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestBareName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "size", bareName("size.sz.strip"))
	assert.Equal(t, "size", bareName("size"))
}

func TestRegistryConcurrentAppend(t *testing.T) {
	t.Parallel()
	reg := DefaultRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				reg.Add(FieldDefinition{Name: "custom_a"})
				_, ok := reg.Lookup("size")
				assert.True(t, ok)
			}
		}(i)
	}
	wg.Wait()
	_, ok := reg.Lookup("custom_a")
	assert.True(t, ok)
}

func TestRegistryHookDeclines(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	calls := 0
	reg.SetRegisterHook(func(name string) bool {
		calls++
		return false
	})
	_, ok := reg.Lookup("anything")
	assert.False(t, ok)
	assert.Equal(t, 1, calls)
}
