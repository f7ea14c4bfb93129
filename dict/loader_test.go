package dict

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valueOf(t *testing.T, keys, values []string, syllable string) string {
	t.Helper()
	i, ok := slices.BinarySearch(keys, syllable)
	require.True(t, ok, "syllable %q not in dictionary", syllable)
	return values[i]
}

func TestLoad_Simplified(t *testing.T) {
	keys, values, err := Load(VariantSimplified)
	require.NoError(t, err)

	require.NotEmpty(t, keys)
	assert.Len(t, values, len(keys))
	assert.True(t, slices.IsSorted(keys), "keys must be sorted")

	assert.Contains(t, valueOf(t, keys, values, "zhong"), "中")
	assert.Contains(t, valueOf(t, keys, values, "guo"), "国")
	assert.NotContains(t, valueOf(t, keys, values, "guo"), "國")
	assert.Contains(t, valueOf(t, keys, values, "lv"), "绿")
}

func TestLoad_Traditional(t *testing.T) {
	keys, values, err := Load(VariantTraditional)
	require.NoError(t, err)

	assert.Contains(t, valueOf(t, keys, values, "guo"), "國")
	assert.NotContains(t, valueOf(t, keys, values, "guo"), "国")
}

func TestLoad_Deterministic(t *testing.T) {
	keys1, values1, err := Load(VariantSimplified)
	require.NoError(t, err)
	keys2, values2, err := Load(VariantSimplified)
	require.NoError(t, err)

	assert.Equal(t, keys1, keys2)
	assert.Equal(t, values1, values2)

	keys1[0] = "mutated"
	keys3, _, err := Load(VariantSimplified)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", keys3[0], "callers get their own copy")
}

func TestLoad_UnknownVariant(t *testing.T) {
	_, _, err := Load(Variant(42))
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestLoad_NoDuplicateCharsPerSyllable(t *testing.T) {
	_, values, err := Load(VariantTraditional)
	require.NoError(t, err)

	for _, chars := range values {
		seen := map[rune]bool{}
		for _, r := range chars {
			require.False(t, seen[r], "duplicate %q in %q", r, chars)
			seen[r] = true
		}
	}
}

func TestNormalizeSyllable(t *testing.T) {
	assert.Equal(t, "lv", normalizeSyllable("lü"))
	assert.Equal(t, "e", normalizeSyllable("ê"))
	assert.Equal(t, "zhong", normalizeSyllable(" Zhong "))
	assert.Equal(t, "", normalizeSyllable("zhōng"))
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("Simplified")
	require.NoError(t, err)
	assert.Equal(t, VariantSimplified, v)

	v, err = ParseVariant("traditional")
	require.NoError(t, err)
	assert.Equal(t, VariantTraditional, v)

	_, err = ParseVariant("cantonese")
	assert.ErrorIs(t, err, ErrUnknownVariant)

	assert.Equal(t, VariantTraditional, VariantFor(true))
	assert.Equal(t, VariantSimplified, VariantFor(false))
	assert.True(t, strings.HasPrefix(Variant(7).String(), "variant("))
}
