package dict

// Bundled layout names.
const (
	SchemeXiaohe    = "xiaohe"
	SchemeZiranma   = "ziranma"
	SchemeMicrosoft = "microsoft"
	SchemeSogou     = "sogou"
	SchemeZiguang   = "ziguang"
	SchemeABC       = "abc"
)

// Layouts that mark a zero initial by doubling or keeping the vowel.
var vowelZeroInitial = map[string]string{
	"a":   "aa",
	"ai":  "ai",
	"an":  "an",
	"ang": "ah",
	"ao":  "ao",
	"e":   "ee",
	"ei":  "ei",
	"en":  "en",
	"eng": "eg",
	"er":  "er",
	"o":   "oo",
	"ou":  "ou",
}

func init() {
	registerBuiltin(mustScheme(SchemeFull, nil, nil))

	registerBuiltin(mustScheme(SchemeXiaohe, map[string][]string{
		"q": {"iu"},
		"w": {"ei"},
		"e": {"e"},
		"r": {"uan", "van"},
		"t": {"ue", "ve"},
		"y": {"un", "vn"},
		"u": {"u", "sh"},
		"i": {"i", "ch"},
		"o": {"o", "uo"},
		"p": {"ie"},
		"a": {"a"},
		"s": {"ong", "iong"},
		"d": {"ai"},
		"f": {"en"},
		"g": {"eng"},
		"h": {"ang"},
		"j": {"an"},
		"k": {"ing", "uai"},
		"l": {"iang", "uang"},
		"z": {"ou"},
		"x": {"ia", "ua"},
		"c": {"ao"},
		"v": {"v", "ui", "zh"},
		"b": {"in"},
		"n": {"iao"},
		"m": {"ian"},
	}, vowelZeroInitial))

	registerBuiltin(mustScheme(SchemeZiranma, map[string][]string{
		"q": {"iu"},
		"w": {"ia", "ua"},
		"e": {"e"},
		"r": {"uan", "van"},
		"t": {"ue", "ve"},
		"y": {"ing", "uai"},
		"u": {"u", "sh"},
		"i": {"i", "ch"},
		"o": {"o", "uo"},
		"p": {"un", "vn"},
		"a": {"a"},
		"s": {"ong", "iong"},
		"d": {"iang", "uang"},
		"f": {"en"},
		"g": {"eng"},
		"h": {"ang"},
		"j": {"an"},
		"k": {"ao"},
		"l": {"ai"},
		"z": {"ei"},
		"x": {"ie"},
		"c": {"iao"},
		"v": {"v", "ui", "zh"},
		"b": {"ou"},
		"n": {"in"},
		"m": {"ian"},
	}, vowelZeroInitial))

	// Microsoft and Sogou mark a zero initial with "o".
	oZeroInitial := map[string]string{
		"a":   "oa",
		"ai":  "ol",
		"an":  "oj",
		"ang": "oh",
		"ao":  "ok",
		"e":   "oe",
		"ei":  "oz",
		"en":  "of",
		"eng": "og",
		"er":  "or",
		"o":   "oo",
		"ou":  "ob",
	}

	registerBuiltin(mustScheme(SchemeMicrosoft, map[string][]string{
		"q": {"iu"},
		"w": {"ia", "ua"},
		"e": {"e"},
		"r": {"uan", "van", "er"},
		"t": {"ue"},
		"y": {"uai", "v"},
		"u": {"u", "sh"},
		"i": {"i", "ch"},
		"o": {"o", "uo"},
		"p": {"un", "vn"},
		"a": {"a"},
		"s": {"ong", "iong"},
		"d": {"iang", "uang"},
		"f": {"en"},
		"g": {"eng"},
		"h": {"ang"},
		"j": {"an"},
		"k": {"ao"},
		"l": {"ai"},
		";": {"ing"},
		"z": {"ei"},
		"x": {"ie"},
		"c": {"iao"},
		"v": {"ui", "ve", "zh"},
		"b": {"ou"},
		"n": {"in"},
		"m": {"ian"},
	}, oZeroInitial))

	registerBuiltin(mustScheme(SchemeSogou, map[string][]string{
		"q": {"iu"},
		"w": {"ia", "ua"},
		"e": {"e"},
		"r": {"uan", "van", "er"},
		"t": {"ue", "ve"},
		"y": {"uai", "v"},
		"u": {"u", "sh"},
		"i": {"i", "ch"},
		"o": {"o", "uo"},
		"p": {"un", "vn"},
		"a": {"a"},
		"s": {"ong", "iong"},
		"d": {"iang", "uang"},
		"f": {"en"},
		"g": {"eng"},
		"h": {"ang"},
		"j": {"an"},
		"k": {"ao"},
		"l": {"ai"},
		";": {"ing"},
		"z": {"ei"},
		"x": {"ie"},
		"c": {"iao"},
		"v": {"ui", "zh"},
		"b": {"ou"},
		"n": {"in"},
		"m": {"ian"},
	}, oZeroInitial))

	registerBuiltin(mustScheme(SchemeABC, map[string][]string{
		"q": {"ei"},
		"w": {"ian"},
		"e": {"e", "ch"},
		"r": {"iu", "er"},
		"t": {"iang", "uang"},
		"y": {"ing"},
		"u": {"u"},
		"i": {"i"},
		"o": {"o", "uo"},
		"p": {"uan", "van"},
		"a": {"a", "zh"},
		"s": {"ong", "iong"},
		"d": {"ia", "ua"},
		"f": {"en"},
		"g": {"eng"},
		"h": {"ang"},
		"j": {"an"},
		"k": {"ao"},
		"l": {"ai"},
		"z": {"iao"},
		"x": {"ie"},
		"c": {"in", "uai"},
		"v": {"v", "sh"},
		"b": {"ou"},
		"n": {"un", "vn"},
		"m": {"ue", "ve", "ui"},
	}, map[string]string{
		"a":   "oa",
		"ai":  "ol",
		"an":  "oj",
		"ang": "oh",
		"ao":  "ok",
		"e":   "oe",
		"ei":  "oq",
		"en":  "of",
		"eng": "og",
		"er":  "or",
		"o":   "oo",
		"ou":  "ob",
	}))

	registerBuiltin(mustScheme(SchemeZiguang, map[string][]string{
		"q": {"ao"},
		"w": {"en"},
		"e": {"e"},
		"r": {"an"},
		"t": {"eng"},
		"y": {"in", "uai"},
		"u": {"u", "zh"},
		"i": {"i", "sh"},
		"o": {"o", "uo"},
		"p": {"ai"},
		"a": {"a", "ch"},
		"s": {"ang"},
		"d": {"ie"},
		"f": {"ian"},
		"g": {"iang", "uang"},
		"h": {"ong", "iong"},
		"j": {"er", "iu"},
		"k": {"ei"},
		"l": {"uan", "van"},
		";": {"ing"},
		"z": {"ou"},
		"x": {"ia", "ua"},
		"v": {"v"},
		"b": {"iao"},
		"n": {"ue", "ve", "ui"},
		"m": {"un", "vn"},
	}, map[string]string{
		"a":   "oa",
		"ai":  "op",
		"an":  "or",
		"ang": "os",
		"ao":  "oq",
		"e":   "oe",
		"ei":  "ok",
		"en":  "ow",
		"eng": "ot",
		"er":  "oj",
		"o":   "oo",
		"ou":  "oz",
	}))
}
