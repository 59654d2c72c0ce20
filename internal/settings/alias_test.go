package settings_test

import (
	"testing"

	"github.com/davetashner/glmbridge/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAliasTable_CanonicalOrder(t *testing.T) {
	table := settings.DefaultAliasTable()
	assert.Equal(t, []string{"opus", "sonnet", "haiku"}, table.Aliases())
}

func TestResolveAlias_IdentityShortCircuit(t *testing.T) {
	table := settings.DefaultAliasTable()
	for _, alias := range table.Aliases() {
		got, err := table.ResolveAlias(alias)
		require.NoError(t, err)
		assert.Equal(t, alias, got)
	}
}

func TestResolveAlias_ReverseLookup(t *testing.T) {
	table := settings.DefaultAliasTable()

	got, err := table.ResolveAlias("glm-4.5-air")
	require.NoError(t, err)
	assert.Equal(t, "haiku", got)
}

func TestResolveAlias_CollidingSKUReturnsFirstInTableOrder(t *testing.T) {
	// opus and sonnet both map to glm-4.6 by default; opus comes first.
	table := settings.DefaultAliasTable()

	got, err := table.ResolveAlias("glm-4.6")
	require.NoError(t, err)
	assert.Equal(t, "opus", got)
}

func TestResolveAlias_Unknown(t *testing.T) {
	table := settings.DefaultAliasTable()

	_, err := table.ResolveAlias("gpt-4o")
	require.Error(t, err)

	var umErr *settings.UnsupportedModelError
	require.ErrorAs(t, err, &umErr)
	assert.Equal(t, "gpt-4o", umErr.Requested)
	assert.Equal(t, []string{"opus", "sonnet", "haiku"}, umErr.Known)
	assert.Contains(t, err.Error(), "gpt-4o")
	assert.Contains(t, err.Error(), "opus")
}

func TestResolveAlias_LeftInverseOfTable(t *testing.T) {
	table := settings.DefaultAliasTable().WithOverrides(map[string]string{
		"haiku": "glm-4.5-flash",
		"turbo": "glm-4-turbo",
	})

	for _, alias := range table.Aliases() {
		sku, ok := table.SKU(alias)
		require.True(t, ok)

		got, err := table.ResolveAlias(sku)
		require.NoError(t, err)

		// The first alias in table order owning this SKU must win.
		first := ""
		for _, a := range table.Aliases() {
			if s, _ := table.SKU(a); s == sku {
				first = a
				break
			}
		}
		assert.Equal(t, first, got)
	}
}

func TestWithOverrides_PreservesPositionOfExistingAliases(t *testing.T) {
	table := settings.DefaultAliasTable().WithOverrides(map[string]string{
		"sonnet": "glm-4.7",
		"turbo":  "glm-4-turbo",
	})

	assert.Equal(t, []string{"opus", "sonnet", "haiku", "turbo"}, table.Aliases())

	sku, ok := table.SKU("sonnet")
	require.True(t, ok)
	assert.Equal(t, "glm-4.7", sku)
}

func TestWithOverrides_OverriddenSKUResolvesToOverriddenAlias(t *testing.T) {
	// Requesting an alias's remapped identifier resolves to that alias,
	// confirming override precedence over built-in defaults.
	table := settings.DefaultAliasTable().WithOverrides(map[string]string{
		"haiku": "glm-4.5-flash",
	})

	got, err := table.ResolveAlias("glm-4.5-flash")
	require.NoError(t, err)
	assert.Equal(t, "haiku", got)

	// The old SKU no longer resolves through haiku.
	_, err = table.ResolveAlias("glm-4.5-air")
	require.Error(t, err)
}

func TestWithOverrides_DoesNotMutateReceiver(t *testing.T) {
	base := settings.DefaultAliasTable()
	base.WithOverrides(map[string]string{"opus": "other", "extra": "x"})

	sku, ok := base.SKU("opus")
	require.True(t, ok)
	assert.Equal(t, "glm-4.6", sku)
	assert.Len(t, base.Aliases(), 3)
}

func TestWithOverrides_SkipsEmptyEntries(t *testing.T) {
	table := settings.DefaultAliasTable().WithOverrides(map[string]string{
		"":      "glm-x",
		"blank": "",
	})
	assert.Equal(t, []string{"opus", "sonnet", "haiku"}, table.Aliases())
}

func TestResolveSKU(t *testing.T) {
	table := settings.DefaultAliasTable()

	sku, err := table.ResolveSKU("haiku")
	require.NoError(t, err)
	assert.Equal(t, "glm-4.5-air", sku)

	// Passing a SKU directly round-trips through its alias.
	sku, err = table.ResolveSKU("glm-4.6")
	require.NoError(t, err)
	assert.Equal(t, "glm-4.6", sku)

	_, err = table.ResolveSKU("nope")
	require.Error(t, err)
}
