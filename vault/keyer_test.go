package vault

import (
	"testing"

	"github.com/poiesic/pinyinsearch/dict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallTable covers the characters used throughout the vault tests.
func smallTable(t *testing.T) *dict.Table {
	t.Helper()
	table, err := dict.NewTable(dict.VariantSimplified,
		[]string{"bi", "du", "hang", "hua", "ji", "mu", "shu", "xiang", "xing", "yue"},
		[]string{"笔", "读", "行", "划", "记计", "目", "书", "项", "行", "阅"})
	require.NoError(t, err)
	return table
}

func rekey(t *testing.T, table *dict.Table, scheme string) *dict.Table {
	t.Helper()
	s, err := dict.LookupScheme(scheme)
	require.NoError(t, err)
	keys := make([]string, table.Len())
	for i, syllable := range table.OriginalKeys() {
		keys[i] = dict.Convert(syllable, s)
	}
	rekeyed, err := table.WithKeys(scheme, keys)
	require.NoError(t, err)
	return rekeyed
}

func TestNewKeyer(t *testing.T) {
	_, err := NewKeyer(nil, 0)
	assert.Equal(t, ErrTableSourceRequired, err)

	k, err := NewKeyer(TableFunc(func() *dict.Table { return nil }), 0)
	require.NoError(t, err)
	_, err = k.Key("读书")
	assert.Equal(t, ErrTableRequired, err)
}

func TestKeyer_Key(t *testing.T) {
	table := smallTable(t)
	k, err := NewKeyer(TableFunc(func() *dict.Table { return table }), 16)
	require.NoError(t, err)

	tests := []struct {
		name     string
		full     string
		initials string
		readings []string
	}{
		{"读书笔记", "dushubiji", "dsbj", []string{"du", "shu", "bi", "ji"}},
		{"行", "xing", "x", []string{"xing|hang"}},
		{"Go笔记", "gobiji", "gobj", []string{"g", "o", "bi", "ji"}},
		{"笔记 v2", "biji" + "v2", "bjv2", []string{"bi", "ji", "", "v", "2"}},
		{"README", "", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, err := k.Key(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.full, keys.Full)
			assert.Equal(t, tt.initials, keys.Initials)
			assert.Equal(t, tt.readings, keys.Readings)
		})
	}
}

func TestKeyer_UnknownCharacter(t *testing.T) {
	table := smallTable(t)
	k, err := NewKeyer(TableFunc(func() *dict.Table { return table }), 0)
	require.NoError(t, err)

	keys, err := k.Key("读龘")
	require.NoError(t, err)
	assert.Equal(t, "du", keys.Full)
	assert.Equal(t, []string{"du", ""}, keys.Readings)
}

func TestKeyer_FollowsTableChanges(t *testing.T) {
	current := smallTable(t)
	k, err := NewKeyer(TableFunc(func() *dict.Table { return current }), 16)
	require.NoError(t, err)

	keys, err := k.Key("读书笔记")
	require.NoError(t, err)
	assert.Equal(t, "dushubiji", keys.Full)

	current = rekey(t, current, dict.SchemeXiaohe)
	keys, err = k.Key("读书笔记")
	require.NoError(t, err)
	assert.Equal(t, "duuubiji", keys.Full)
	assert.Equal(t, "dubj", keys.Initials)
	assert.Equal(t, []string{"du", "uu", "bi", "ji"}, keys.Readings)
}

func TestKeyer_ReturnsCopies(t *testing.T) {
	table := smallTable(t)
	k, err := NewKeyer(TableFunc(func() *dict.Table { return table }), 16)
	require.NoError(t, err)

	first, err := k.Key("读书")
	require.NoError(t, err)
	first.Readings[0] = "changed"

	second, err := k.Key("读书")
	require.NoError(t, err)
	assert.Equal(t, []string{"du", "shu"}, second.Readings)
}
