package vault

import (
	"bufio"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/poiesic/pinyinsearch/core"
)

var tagPattern = regexp.MustCompile(`(?:^|[\s(])#([\p{L}\p{N}_][\p{L}\p{N}_/-]*)`)

// TagIndex indexes the distinct #tags written in the vault's markdown notes.
type TagIndex struct {
	*itemIndex
}

// NewTagIndex creates the tags index rooted at root.
func NewTagIndex(root string, keyer *Keyer, opts ...Option) (*TagIndex, error) {
	if root == "" {
		return nil, ErrRootRequired
	}
	o := buildOptions(opts)
	collect := func(ctx context.Context) ([]entry, error) {
		seen := make(map[string]bool)
		var entries []entry
		err := walkVault(ctx, root, o.excludes, func(rel string, d fs.DirEntry) error {
			if !d.Type().IsRegular() || !strings.EqualFold(filepath.Ext(rel), ".md") {
				return nil
			}
			tags, err := readTags(filepath.Join(root, filepath.FromSlash(rel)))
			if err != nil {
				o.logger.Warn("error reading note", "path", rel, "err", err)
				return nil
			}
			for _, tag := range tags {
				if !seen[tag] {
					seen[tag] = true
					entries = append(entries, entry{name: tag, path: "#" + tag})
				}
			}
			return nil
		})
		return entries, err
	}
	x, err := newItemIndex(TagsID, core.ItemKindTag, keyer, collect, o.logger)
	if err != nil {
		return nil, err
	}
	return &TagIndex{x}, nil
}

// readTags returns the tags in a note in order of appearance.
// Fenced code blocks are ignored, as are purely numeric tags.
func readTags(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tags []string
	inFence := false
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		for _, m := range tagPattern.FindAllStringSubmatch(line, -1) {
			tag := strings.TrimRight(m[1], "/-")
			if tag != "" && !isNumeric(tag) {
				tags = append(tags, tag)
			}
		}
	}
	return tags, scanner.Err()
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
