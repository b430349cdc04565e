package pyrosimple_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohnFlowerful/pyrosimple"
)

func newEngine(t *testing.T) *pyrosimple.Engine {
	t.Helper()
	return pyrosimple.New(pyrosimple.Config{})
}

func TestHeaderModeLabels(t *testing.T) {
	t.Parallel()
	m := newEngine(t).NewMapping(nil, nil)

	label, err := m.Resolve("size")
	require.NoError(t, err)
	assert.Equal(t, "SIZE", label)

	// The formatter chain is never invoked in header mode.
	label, err = m.Resolve("size.sz.strip")
	require.NoError(t, err)
	assert.Equal(t, "SIZE", label)

	label, err = m.Resolve("pc")
	require.NoError(t, err)
	assert.Equal(t, "%", label)
}

func TestRawDisablesIntrinsicOnly(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	item := pyrosimple.ItemMap{"size": 2048}

	// raw skips the intrinsic sz formatter, the explicit chain still runs.
	val, err := eng.NewMapping(item, nil).Resolve("size.raw.json")
	require.NoError(t, err)
	assert.Equal(t, "2048", val)

	val, err = eng.NewMapping(item, nil).Resolve("size.raw")
	require.NoError(t, err)
	assert.Equal(t, 2048, val)
}

func TestIntrinsicAppliesBeforeChain(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	item := pyrosimple.ItemMap{"size": 2048}

	// Chain order is intrinsic-then-chain, so "size.sz" applies sz twice;
	// the second application sees formatted text and degrades to the
	// placeholder.
	val, err := eng.NewMapping(item, nil).Resolve("size.sz")
	require.NoError(t, err)
	assert.Equal(t, "       N/A", val)

	val, err = eng.NewMapping(item, nil).Resolve("size.strip")
	require.NoError(t, err)
	assert.Equal(t, "2.0 KiB", val)
}

func TestUnknownField(t *testing.T) {
	t.Parallel()
	_, err := newEngine(t).NewMapping(pyrosimple.ItemMap{}, nil).Resolve("bogus")
	assert.ErrorIs(t, err, pyrosimple.ErrUnknownField)
	assert.Contains(t, err.Error(), "bogus")
}

func TestUnknownFormatSpec(t *testing.T) {
	t.Parallel()
	_, err := newEngine(t).NewMapping(pyrosimple.ItemMap{}, nil).Resolve("size.frobnicate")
	assert.ErrorIs(t, err, pyrosimple.ErrUnknownFormatSpec)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestMissingFieldFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	item := pyrosimple.ItemMap{"name": "ubuntu"}

	val, err := eng.NewMapping(item, map[string]any{"alias": "tracker-a"}).Resolve("alias")
	require.NoError(t, err)
	assert.Equal(t, "tracker-a", val)

	_, err = eng.NewMapping(item, nil).Resolve("alias")
	assert.ErrorIs(t, err, pyrosimple.ErrMissingField)
	assert.Contains(t, err.Error(), "alias")
}

func TestReservedPercentDefault(t *testing.T) {
	t.Parallel()
	val, err := newEngine(t).NewMapping(pyrosimple.ItemMap{"name": "x"}, nil).Resolve("pc")
	require.NoError(t, err)
	assert.Equal(t, "%", val)
}

func TestChainFailureWrapsOnce(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	item := pyrosimple.ItemMap{"name": "ubuntu"}

	_, err := eng.NewMapping(item, nil).Resolve("name.pc")
	require.Error(t, err)
	assert.ErrorIs(t, err, pyrosimple.ErrFormatting)

	var ferr *pyrosimple.FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "name", ferr.Field)
	assert.Equal(t, "ubuntu", ferr.Value)
	assert.NotNil(t, ferr.Err)
}

func TestDynamicRegistration(t *testing.T) {
	t.Parallel()
	reg := pyrosimple.DefaultRegistry()
	reg.SetRegisterHook(func(name string) bool {
		return strings.HasPrefix(name, "custom_")
	})
	eng := pyrosimple.New(pyrosimple.Config{Registry: reg})
	item := pyrosimple.ItemMap{"custom_label": "keep"}

	val, err := eng.NewMapping(item, nil).Resolve("custom_label")
	require.NoError(t, err)
	assert.Equal(t, "keep", val)

	// Registered for the remainder of the process.
	_, ok := reg.Lookup("custom_label")
	assert.True(t, ok)

	_, err = eng.NewMapping(item, nil).Resolve("other_label")
	assert.True(t, errors.Is(err, pyrosimple.ErrUnknownField))
}

func TestDefaultsResolveBeforeDynamicRegistration(t *testing.T) {
	t.Parallel()
	reg := pyrosimple.DefaultRegistry()
	var hooked []string
	reg.SetRegisterHook(func(name string) bool {
		hooked = append(hooked, name)
		return true
	})
	eng := pyrosimple.New(pyrosimple.Config{Registry: reg})

	// A name the defaults cover never reaches the hook, so nothing gets
	// permanently registered for it.
	val, err := eng.NewMapping(pyrosimple.ItemMap{}, map[string]any{"note": "kept"}).Resolve("note")
	require.NoError(t, err)
	assert.Equal(t, "kept", val)
	assert.Empty(t, hooked)
	assert.NotContains(t, reg.Names(), "note")
}
