package criteria

import (
	"sort"
	"strings"
)

// The fallback strategy is a prioritized rule table: each rule pairs a query
// predicate with the companies and roles it yields. Rules are evaluated in
// order and the first match wins; adding a domain means adding a row, not
// touching dispatch logic.

// Big 5 executive search firms, expanded whenever the alias appears.
var big5Firms = []string{
	"Korn Ferry",
	"Russell Reynolds",
	"Heidrick & Struggles",
	"Spencer Stuart",
	"Egon Zehnder",
}

// Firm mention tables: lowercase detection token -> canonical name.
// Multi-word keys are matched as substrings, single-word keys as whole tokens
// (so "shi" doesn't fire on "shipping").

var consultingFirms = map[string]string{
	"mckinsey":          "McKinsey & Company",
	"bain":              "Bain & Company",
	"bcg":               "Boston Consulting Group",
	"boston consulting": "Boston Consulting Group",
	"deloitte":          "Deloitte",
	"pwc":               "PwC",
	"accenture":         "Accenture",
}

// Top-tier default when "consulting" appears but no firm is named.
var consultingDefaults = []string{
	"McKinsey & Company",
	"Bain & Company",
	"Boston Consulting Group",
}

var resellerFirms = map[string]string{
	"cdw":                 "CDW",
	"shi":                 "SHI International",
	"insight enterprises": "Insight Enterprises",
}

var fintechFirms = map[string]string{
	"stripe": "Stripe",
	"plaid":  "Plaid",
	"square": "Square",
	"block":  "Block",
	"paypal": "PayPal",
	"adyen":  "Adyen",
	"chime":  "Chime",
}

var bigTechFirms = map[string]string{
	"google":    "Google",
	"microsoft": "Microsoft",
	"amazon":    "Amazon",
	"apple":     "Apple",
	"meta":      "Meta",
	"facebook":  "Meta",
	"netflix":   "Netflix",
	"nvidia":    "NVIDIA",
}

type rule struct {
	name      string
	match     func(q *queryText) bool
	companies func(q *queryText) []string
	roles     []string
}

// fallbackRules is evaluated in priority order.
var fallbackRules = []rule{
	{
		name: "big5-executive-search",
		match: func(q *queryText) bool {
			return q.containsPhrase("big 5") ||
				q.containsPhrase("big five") ||
				q.containsPhrase("executive search firm")
		},
		companies: func(q *queryText) []string { return big5Firms },
		roles:     []string{"Partner", "Principal", "Director"},
	},
	{
		name: "consulting",
		match: func(q *queryText) bool {
			return q.mentionsAny(consultingFirms) || q.containsToken("consulting")
		},
		companies: func(q *queryText) []string {
			if named := q.mentioned(consultingFirms); len(named) > 0 {
				return named
			}
			return consultingDefaults
		},
		roles: []string{"Partner", "Director", "Manager"},
	},
	{
		name: "it-resellers",
		match: func(q *queryText) bool {
			return q.mentionsAny(resellerFirms)
		},
		companies: func(q *queryText) []string { return q.mentioned(resellerFirms) },
		roles:     []string{"Sales", "Account Executive", "Director"},
	},
	{
		name: "fintech",
		match: func(q *queryText) bool {
			return q.mentionsAny(fintechFirms) || q.containsToken("fintech")
		},
		companies: func(q *queryText) []string { return q.mentioned(fintechFirms) },
		roles:     []string{"VP", "Director", "Product", "Engineering"},
	},
	{
		name: "big-tech",
		match: func(q *queryText) bool {
			return q.mentionsAny(bigTechFirms)
		},
		companies: func(q *queryText) []string { return q.mentioned(bigTechFirms) },
		roles:     []string{"VP", "Director", "Engineering", "Product"},
	},
}

// broadSeniorityRoles is the safety net when the default tokenizer yields
// nothing, so the retrieval is never empty-criteria.
var broadSeniorityRoles = []string{"VP", "Director", "Senior", "Lead", "Manager"}

// roleLexicon maps recognizable role words to canonical role keywords for the
// default tokenizer path.
var roleLexicon = map[string]string{
	"vp":          "VP",
	"vps":         "VP",
	"vice":        "VP",
	"director":    "Director",
	"directors":   "Director",
	"engineer":    "Engineering",
	"engineers":   "Engineering",
	"engineering": "Engineering",
	"product":     "Product",
	"sales":       "Sales",
	"marketing":   "Marketing",
	"partner":     "Partner",
	"partners":    "Partner",
	"principal":   "Principal",
	"principals":  "Principal",
	"manager":     "Manager",
	"managers":    "Manager",
	"consultant":  "Consultant",
	"consultants": "Consultant",
	"analyst":     "Analyst",
	"analysts":    "Analyst",
	"cto":         "CTO",
	"cio":         "CIO",
	"ceo":         "CEO",
	"cfo":         "CFO",
	"founder":     "Founder",
	"founders":    "Founder",
	"head":        "Head",
	"lead":        "Lead",
	"senior":      "Senior",
	"executive":   "Executive",
	"executives":  "Executive",
}

// queryStopWords are discarded by the default tokenizer before capitalized
// tokens are treated as company candidates.
var queryStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "who": true, "me": true, "find": true, "show": true,
	"get": true, "people": true, "experts": true, "someone": true, "about": true,
	"any": true, "all": true, "some": true, "or": true,
}

// statusWords are capitalization-independent markers consumed by the
// employment-status detector; they are never company candidates.
var statusWords = map[string]bool{
	"former": true, "current": true, "ex": true,
}

// queryText precomputes the lowercase text and token set of a query for rule
// predicates.
type queryText struct {
	raw    string
	lower  string
	tokens map[string]bool
}

func newQueryText(raw string) *queryText {
	lower := strings.ToLower(raw)
	tokens := make(map[string]bool)
	for _, word := range strings.Fields(lower) {
		cleaned := strings.Trim(word, ".,!?;:'\"-()[]{}")
		if cleaned == "" {
			continue
		}
		tokens[cleaned] = true
		// Hyphenated forms like "ex-mckinsey" must expose their parts so
		// firm detection and status detection agree on the same query.
		if strings.Contains(cleaned, "-") {
			for _, part := range strings.Split(cleaned, "-") {
				if part != "" {
					tokens[part] = true
				}
			}
		}
	}
	return &queryText{raw: raw, lower: lower, tokens: tokens}
}

func (q *queryText) containsPhrase(phrase string) bool {
	return strings.Contains(q.lower, phrase)
}

func (q *queryText) containsToken(token string) bool {
	return q.tokens[token]
}

// mentions reports whether the detection key fires: substring match for
// multi-word keys, whole-token match otherwise.
func (q *queryText) mentions(key string) bool {
	if strings.Contains(key, " ") {
		return q.containsPhrase(key)
	}
	return q.containsToken(key)
}

func (q *queryText) mentionsAny(firms map[string]string) bool {
	for key := range firms {
		if q.mentions(key) {
			return true
		}
	}
	return false
}

// mentioned returns the canonical names of every firm the query names,
// deduplicated, in stable order.
func (q *queryText) mentioned(firms map[string]string) []string {
	seen := make(map[string]bool)
	var names []string
	for key, canonical := range firms {
		if q.mentions(key) && !seen[canonical] {
			seen[canonical] = true
			names = append(names, canonical)
		}
	}
	sort.Strings(names)
	return names
}
