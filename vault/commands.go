package vault

import (
	"context"

	"github.com/poiesic/pinyinsearch/core"
)

// CommandsID is the handle id of the command index.
const CommandsID = "commands"

// Command is a host action that can be searched by title.
type Command struct {
	ID    string
	Title string
}

// CommandIndex indexes a fixed list of commands.
type CommandIndex struct {
	*itemIndex
}

// NewCommandIndex creates the commands index. The list is copied.
func NewCommandIndex(commands []Command, keyer *Keyer, opts ...Option) (*CommandIndex, error) {
	o := buildOptions(opts)
	list := append([]Command(nil), commands...)
	collect := func(ctx context.Context) ([]entry, error) {
		entries := make([]entry, 0, len(list))
		for _, c := range list {
			entries = append(entries, entry{name: c.Title, path: c.ID})
		}
		return entries, nil
	}
	x, err := newItemIndex(CommandsID, core.ItemKindCommand, keyer, collect, o.logger)
	if err != nil {
		return nil, err
	}
	return &CommandIndex{x}, nil
}
