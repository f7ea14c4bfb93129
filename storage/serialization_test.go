package storage

import (
	"testing"

	"github.com/poiesic/pinyinsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []core.Item {
	return []core.Item{
		{
			Id:       core.NewItemID("files", "notes/读书笔记.md"),
			Kind:     core.ItemKindFile,
			Name:     "读书笔记",
			Path:     "notes/读书笔记.md",
			Full:     "dushubiji",
			Initials: "dsbj",
			Readings: []string{"du|dou", "shu", "bi", "ji"},
		},
		{
			Id:   core.NewItemID("commands", "editor:save"),
			Kind: core.ItemKindCommand,
			Name: "Save",
			Path: "editor:save",
		},
	}
}

func TestMarshalUnmarshalItems(t *testing.T) {
	tests := []struct {
		name  string
		items []core.Item
	}{
		{"empty list", []core.Item{}},
		{"han and latin names", sampleItems()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalItems(tt.items)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalItems(data)
			require.NoError(t, err)
			assert.Equal(t, tt.items, decoded)
		})
	}
}

func TestUnmarshalItems_Invalid(t *testing.T) {
	valid := MarshalItems(sampleItems())

	t.Run("empty data", func(t *testing.T) {
		_, err := UnmarshalItems(nil)
		assert.ErrorIs(t, err, ErrTruncatedData)
	})

	t.Run("unknown version", func(t *testing.T) {
		data := append([]byte{}, valid...)
		data[0] = 99
		_, err := UnmarshalItems(data)
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := UnmarshalItems(valid[:len(valid)/2])
		assert.Error(t, err)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		data := append(append([]byte{}, valid...), 0x01)
		_, err := UnmarshalItems(data)
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})
}
