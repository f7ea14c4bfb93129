package vault

import (
	"slices"
	"strings"
	"sync"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/poiesic/pinyinsearch/core"
	"github.com/poiesic/pinyinsearch/dict"
)

// DefaultMemoSize is the number of names a Keyer remembers.
const DefaultMemoSize = 4096

// TableSource provides the dictionary table currently in effect.
type TableSource interface {
	Table() *dict.Table
}

// TableFunc adapts a function to TableSource.
type TableFunc func() *dict.Table

// Table implements TableSource.
func (f TableFunc) Table() *dict.Table { return f() }

// Keys are the phonetic keys derived from one name.
type Keys struct {
	Full     string
	Initials string
	Readings []string
}

// Keyer derives phonetic keys for names.
// Results are memoized per table; a table with a different fingerprint
// empties the memo.
type Keyer struct {
	source      TableSource
	mu          sync.Mutex
	fingerprint string
	memo        *lru.Cache[string, Keys]
}

// NewKeyer creates a keyer over source remembering up to size names.
// A size of zero or less selects DefaultMemoSize.
func NewKeyer(source TableSource, size int) (*Keyer, error) {
	if source == nil {
		return nil, ErrTableSourceRequired
	}
	if size <= 0 {
		size = DefaultMemoSize
	}
	memo, err := lru.New[string, Keys](size)
	if err != nil {
		return nil, err
	}
	return &Keyer{source: source, memo: memo}, nil
}

// Key returns the keys for name under the current table.
// Names without Han characters have empty keys.
func (k *Keyer) Key(name string) (Keys, error) {
	table := k.source.Table()
	if table == nil {
		return Keys{}, ErrTableRequired
	}

	k.mu.Lock()
	if fp := table.Fingerprint(); fp != k.fingerprint {
		k.memo.Purge()
		k.fingerprint = fp
	}
	k.mu.Unlock()

	if keys, ok := k.memo.Get(name); ok {
		return cloneKeys(keys), nil
	}

	keys := deriveKeys(table, name)
	k.memo.Add(name, keys)
	return cloneKeys(keys), nil
}

func cloneKeys(keys Keys) Keys {
	keys.Readings = slices.Clone(keys.Readings)
	return keys
}

func deriveKeys(table *dict.Table, name string) Keys {
	if !containsHan(name) {
		return Keys{}
	}

	var full, initials strings.Builder
	readings := make([]string, 0, len(name))
	for _, r := range name {
		alts := orderedReadings(table, r)
		switch {
		case len(alts) > 0:
			full.WriteString(alts[0])
			initials.WriteByte(alts[0][0])
			readings = append(readings, strings.Join(alts, core.ReadingSeparator))
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			lower := string(unicode.ToLower(r))
			full.WriteString(lower)
			initials.WriteString(lower)
			readings = append(readings, lower)
		default:
			readings = append(readings, "")
		}
	}

	return Keys{
		Full:     full.String(),
		Initials: initials.String(),
		Readings: readings,
	}
}

// orderedReadings returns the active keys for r with the everyday
// pronunciation first. Empty keys left by lookup misses are dropped.
func orderedReadings(table *dict.Table, r rune) []string {
	keys := table.Readings(r)
	if len(keys) == 0 {
		return nil
	}

	if preferred, ok := commonReadings[r]; ok {
		syllables := table.Syllables(r)
		if i := slices.Index(syllables, preferred); i > 0 {
			first := keys[i]
			keys = append([]string{first}, slices.Delete(keys, i, i+1)...)
		}
	}

	return slices.DeleteFunc(keys, func(k string) bool { return k == "" })
}

func containsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// commonReadings picks the everyday pronunciation of frequent polyphonic
// characters. Without it the alphabetically first reading would win.
var commonReadings = map[rune]string{
	'行': "xing", '长': "chang", '長': "chang", '重': "zhong", '乐': "le",
	'樂': "le", '处': "chu", '處': "chu", '还': "hai", '還': "hai",
	'藏': "cang", '假': "jia", '召': "zhao", '的': "de", '了': "le",
	'和': "he", '地': "di", '得': "de", '都': "dou", '着': "zhe",
	'著': "zhu", '会': "hui", '會': "hui", '为': "wei", '為': "wei",
	'说': "shuo", '說': "shuo", '便': "bian", '调': "diao", '調': "diao",
	'觉': "jue", '覺': "jue", '角': "jiao", '数': "shu", '數': "shu",
	'发': "fa", '發': "fa", '干': "gan", '种': "zhong", '種': "zhong",
	'传': "chuan", '傳': "chuan", '朝': "chao", '只': "zhi", '相': "xiang",
	'降': "jiang", '更': "geng", '空': "kong", '曾': "ceng", '解': "jie",
	'差': "cha", '参': "can", '參': "can", '系': "xi", '奇': "qi",
	'单': "dan", '單': "dan", '尽': "jin", '盡': "jin", '几': "ji",
	'幾': "ji", '将': "jiang", '將': "jiang", '没': "mei", '沒': "mei",
	'分': "fen", '教': "jiao", '结': "jie", '結': "jie", '量': "liang",
	'正': "zheng", '中': "zhong", '大': "da", '应': "ying", '應': "ying",
	'给': "gei", '給': "gei", '读': "du", '讀': "du", '要': "yao",
	'看': "kan", '好': "hao", '少': "shao", '过': "guo",
}
