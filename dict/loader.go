package dict

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/longbridgeapp/opencc"
	"github.com/mozillazg/go-pinyin"
)

// CJK Unified Ideographs block. Extension blocks are left out; vault names
// practically never use them and they triple the table size.
const (
	cjkFirst = 0x4E00
	cjkLast  = 0x9FFF
)

// syllableChars is the variant-independent inversion of the embedded
// character dictionary: syllable -> characters in code point order.
type syllableChars struct {
	syllables []string
	chars     [][]rune
}

var baseDictionary = sync.OnceValue(invertPinyinDict)

// invertPinyinDict turns go-pinyin's character -> readings table into a
// syllable -> characters table. Tone marks are stripped and ü is spelled v.
func invertPinyinDict() *syllableChars {
	args := pinyin.NewArgs()
	args.Style = pinyin.Normal
	args.Heteronym = true

	codes := make([]int, 0, cjkLast-cjkFirst+1)
	for code := range pinyin.PinyinDict {
		if code >= cjkFirst && code <= cjkLast {
			codes = append(codes, code)
		}
	}
	slices.Sort(codes)

	bySyllable := make(map[string][]rune)
	for _, code := range codes {
		r := rune(code)
		readings := pinyin.Pinyin(string(r), args)
		if len(readings) == 0 {
			continue
		}
		seen := make(map[string]bool, len(readings[0]))
		for _, reading := range readings[0] {
			syllable := normalizeSyllable(reading)
			if syllable == "" || seen[syllable] {
				continue
			}
			seen[syllable] = true
			bySyllable[syllable] = append(bySyllable[syllable], r)
		}
	}

	out := &syllableChars{
		syllables: make([]string, 0, len(bySyllable)),
		chars:     make([][]rune, 0, len(bySyllable)),
	}
	for syllable := range bySyllable {
		out.syllables = append(out.syllables, syllable)
	}
	slices.Sort(out.syllables)
	for _, syllable := range out.syllables {
		out.chars = append(out.chars, bySyllable[syllable])
	}
	return out
}

// normalizeSyllable lowercases a reading and spells ü as v and ê as e.
func normalizeSyllable(reading string) string {
	s := strings.ToLower(strings.TrimSpace(reading))
	s = strings.ReplaceAll(s, "ü", "v")
	s = strings.ReplaceAll(s, "ê", "e")
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return ""
		}
	}
	return s
}

var (
	convertersMu sync.Mutex
	converters   = map[Variant]*opencc.OpenCC{}
)

// folder returns the OpenCC converter that folds characters into the variant.
func folder(v Variant) (*opencc.OpenCC, error) {
	convertersMu.Lock()
	defer convertersMu.Unlock()

	if cc, ok := converters[v]; ok {
		return cc, nil
	}

	var config string
	switch v {
	case VariantSimplified:
		config = "t2s"
	case VariantTraditional:
		config = "s2t"
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownVariant, v)
	}

	cc, err := opencc.New(config)
	if err != nil {
		return nil, fmt.Errorf("open %s converter: %w", config, err)
	}
	converters[v] = cc
	return cc, nil
}

// Load returns the whole dictionary for the variant: every syllable in
// ascending order and, aligned with it, the characters read that way.
// The same variant always yields the same sequences.
func Load(v Variant) (originalKeys, values []string, err error) {
	cc, err := folder(v)
	if err != nil {
		return nil, nil, err
	}

	base := baseDictionary()
	originalKeys = slices.Clone(base.syllables)
	values = make([]string, len(base.chars))

	folded := make(map[rune]rune)
	for i, chars := range base.chars {
		var sb strings.Builder
		seen := make(map[rune]bool, len(chars))
		for _, r := range chars {
			f, ok := folded[r]
			if !ok {
				f, err = foldRune(cc, r)
				if err != nil {
					return nil, nil, err
				}
				folded[r] = f
			}
			if seen[f] {
				continue
			}
			seen[f] = true
			sb.WriteRune(f)
		}
		values[i] = sb.String()
	}

	return originalKeys, values, nil
}

// foldRune converts a single character. Conversions that do not produce
// exactly one character keep the original.
func foldRune(cc *opencc.OpenCC, r rune) (rune, error) {
	out, err := cc.Convert(string(r))
	if err != nil {
		return 0, fmt.Errorf("fold %q: %w", r, err)
	}
	runes := []rune(out)
	if len(runes) != 1 {
		return r, nil
	}
	return runes[0], nil
}

// LoadTable loads the variant and wraps it in a Table with full-syllable keys.
func LoadTable(v Variant) (*Table, error) {
	originalKeys, values, err := Load(v)
	if err != nil {
		return nil, err
	}
	return NewTable(v, originalKeys, values)
}
