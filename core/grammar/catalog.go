package grammar

import "strings"

// CatalogEntry is a known grammar error code.
type CatalogEntry struct {
	Code     string `json:"code"`
	Name     string `json:"error"`
	Example  string `json:"example,omitempty"`
	Category string `json:"category"`
}

// Categories
const (
	CategoryArticles     = "Articles"
	CategoryTenses       = "Verb Tenses"
	CategoryAgreement    = "Subject-Verb Agreement"
	CategoryPrepositions = "Prepositions"
	CategoryWordOrder    = "Word Order"
	CategoryPlurals      = "Plurals"
	CategoryPronouns     = "Pronouns"
	CategoryComparatives = "Comparatives"
	CategoryCountable    = "Countable/Uncountable"
	CategoryModals       = "Modal Verbs"
	CategoryGerunds      = "Gerund/Infinitive"
	CategoryTranslation  = "Direct Translation"
	CategoryMarking      = "Marking Codes"
)

var (
	Categories = []string{
		CategoryArticles,
		CategoryTenses,
		CategoryAgreement,
		CategoryPrepositions,
		CategoryWordOrder,
		CategoryPlurals,
		CategoryPronouns,
		CategoryComparatives,
		CategoryCountable,
		CategoryModals,
		CategoryGerunds,
		CategoryTranslation,
		CategoryMarking,
	}

	// code prefix -> category, for the "XXX-nnn" codes
	prefixCategories = map[string]string{
		"ART":    CategoryArticles,
		"TENSE":  CategoryTenses,
		"SVA":    CategoryAgreement,
		"PREP":   CategoryPrepositions,
		"WO":     CategoryWordOrder,
		"PLURAL": CategoryPlurals,
		"PRON":   CategoryPronouns,
		"COMP":   CategoryComparatives,
		"COUNT":  CategoryCountable,
		"MODAL":  CategoryModals,
		"GERUND": CategoryGerunds,
		"TRANS":  CategoryTranslation,
	}

	// Catalog lists every accepted error code in display order.
	Catalog = buildCatalog(
		// common CN-ESL errors
		[][3]string{
			{"ART-001", "Missing article", "I have cat"},
			{"ART-002", "Wrong article (a/an)", "I saw a elephant"},
			{"ART-003", "Unnecessary article", "I like the music"},
			{"TENSE-001", "Simple past vs present perfect", "I have seen him yesterday"},
			{"TENSE-002", "Present tense for past action", "Yesterday I go to school"},
			{"TENSE-003", "Missing auxiliary verb", "I not understand"},
			{"TENSE-004", "Double past tense", "I didn't went"},
			{"SVA-001", "Singular/plural mismatch", "He have three books"},
			{"SVA-002", "Missing 's' in 3rd person", "She walk to school"},
			{"PREP-001", "Wrong preposition", "Listen music"},
			{"PREP-002", "Missing preposition", "I live Beijing"},
			{"PREP-003", "Extra preposition", "Discuss about the topic"},
			{"WO-001", "Adjective after noun", "I have a car red"},
			{"WO-002", "Adverb position", "I very like apples"},
			{"WO-003", "Question word order", "You are from where?"},
			{"PLURAL-001", "Missing plural 's'", "I have two book"},
			{"PLURAL-002", "Wrong plural form", "Many sheeps"},
			{"PRON-001", "Wrong pronoun case", "Me and my friend went"},
			{"PRON-002", "Missing pronoun", "Is very hot today"},
			{"COMP-001", "Double comparative", "More better than before"},
			{"COMP-002", "Wrong comparative form", "More good than yesterday"},
			{"COUNT-001", "Wrong quantifier", "Many water"},
			{"COUNT-002", "Plural uncountable noun", "I need some advices"},
			{"MODAL-001", "Double modal", "I will can do it"},
			{"MODAL-002", "Modal + infinitive", "I can to swim"},
			{"GERUND-001", "Wrong form after verb", "I enjoy to read"},
			{"GERUND-002", "Wrong form after preposition", "Good at play piano"},
			{"TRANS-001", "Direct translation", "Open the light"},
			{"TRANS-002", "Chinese word order", "I today very busy"},
			{"TRANS-003", "Missing copula 'be'", "This book very interesting"},
		},
		// shorthand codes used when marking written work
		[][2]string{
			{"VT", "Verb tenses"},
			{"NG", "Not using paragraphs"},
			{"PREP", "Prepositions (in, on, at etc.)"},
			{"ART", "Articles (a, an, the etc.)"},
			{"SP", "Spelling"},
			{"NN", "Noun number"},
			{"VP", "Verb person"},
			{"VN", "Verb number"},
			{"WO", "Word order"},
			{"PRON", "Pronouns (I, me, we, us, my etc.)"},
			{"TV", "Transitive/intransitive verb"},
			{"MPS", "Mixing parts of speech"},
			{"PV", "Phrasal verbs"},
			{"QUANT", "Quantifiers (many, much, a lot of etc.)"},
			{"ADV", "Adverbs"},
			{"COMP", "Comparatives (-er, -est)"},
			{"CAP", "Capital letters"},
			{"WO2", "Word order (e.g., subject-verb-object)"},
			{"SVA", "Subject-verb agreement"},
			{"FULL", "Full stops"},
			{"CAPS", "Capital letters"},
			{"TASK", "Does not understand the task"},
			{"MW", "Missing words"},
			{"WO_SVO", "Word order (SVO)"},
		},
	)

	catalogIndex = indexCatalog(Catalog)
)

func buildCatalog(common [][3]string, marking [][2]string) []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(common)+len(marking))
	for _, e := range common {
		prefix := strings.SplitN(e[0], "-", 2)[0]
		entries = append(entries, CatalogEntry{Code: e[0], Name: e[1], Example: e[2], Category: prefixCategories[prefix]})
	}
	for _, e := range marking {
		entries = append(entries, CatalogEntry{Code: e[0], Name: e[1], Category: CategoryMarking})
	}
	return entries
}

func indexCatalog(entries []CatalogEntry) map[string]CatalogEntry {
	idx := make(map[string]CatalogEntry, len(entries))
	for _, e := range entries {
		idx[e.Code] = e
	}
	return idx
}

// Lookup finds a catalog entry by its exact code.
func Lookup(code string) (CatalogEntry, bool) {
	e, ok := catalogIndex[code]
	return e, ok
}

// IsKnownCode reports whether code is in the catalog.
func IsKnownCode(code string) bool {
	_, ok := catalogIndex[code]
	return ok
}

// ErrorName returns the display name of code, or code itself when it is not in the catalog.
func ErrorName(code string) string {
	if e, ok := catalogIndex[code]; ok {
		return e.Name
	}
	return code
}

// CategoryGroup is one category of the catalog with its entries.
type CategoryGroup struct {
	Category string         `json:"category"`
	Errors   []CatalogEntry `json:"errors"`
}

// ByCategory groups the catalog by category, in Categories order.
func ByCategory() []CategoryGroup {
	groups := make(map[string][]CatalogEntry, len(Categories))
	for _, e := range Catalog {
		groups[e.Category] = append(groups[e.Category], e)
	}
	res := make([]CategoryGroup, 0, len(Categories))
	for _, cat := range Categories {
		if entries, ok := groups[cat]; ok {
			res = append(res, CategoryGroup{Category: cat, Errors: entries})
		}
	}
	return res
}
