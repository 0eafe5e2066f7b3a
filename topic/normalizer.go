package topic

import (
	"context"
	"log/slog"
	"strings"

	"github.com/candorlabs/expertscope/ai"
)

// Verbose natural-language questions produce near-zero substring matches
// against short interview text fields. The normalizer reduces a raw topic to
// terms that stand a chance: AI semantic expansion when available, a
// deterministic stop-word reduction otherwise, and static synonym clusters
// when the result is too thin to match anything.

const (
	// maxRawLen is the length above which deterministic reduction kicks in.
	// Shorter topics pass through sanitization untouched, which keeps
	// normalization idempotent for already-short input.
	maxRawLen = 50

	// minResultLen triggers synonym-cluster injection.
	minResultLen = 5

	// maxKeptTokens caps the reduced form.
	maxKeptTokens = 4

	// minTokenLen drops filler tokens during reduction.
	minTokenLen = 4
)

// topicStopWords are dropped during deterministic reduction.
var topicStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "what": true, "about": true, "think": true,
	"over": true, "last": true, "compared": true, "versus": true, "how": true,
	"their": true, "they": true, "does": true, "would": true, "should": true,
	"customers": true, "people": true, "years": true, "year": true,
}

// synonymClusters map a recognizable substring of the topic to terms worth
// appending when reduction leaves almost nothing to match on.
var synonymClusters = []struct {
	key   string
	terms string
}{
	{key: "vendor", terms: "procurement sourcing supplier"},
	{key: "consolidat", terms: "procurement sourcing supplier"},
	{key: "budget", terms: "spending investment cost"},
	{key: "allocat", terms: "spending investment cost"},
	{key: "pricing", terms: "price cost subscription"},
	{key: "security", terms: "risk compliance breach"},
}

// Normalizer turns a raw free-text topic into a sanitized search string for
// substring matching against interview content.
type Normalizer struct {
	expander ai.TopicExpander // nil means deterministic reduction only
	logger   *slog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		if logger == nil {
			logger = slog.Default()
		}
		n.logger = logger
	}
}

// NewNormalizer creates a normalizer. A nil expander is valid and means every
// topic goes through deterministic reduction.
func NewNormalizer(expander ai.TopicExpander, opts ...Option) *Normalizer {
	n := &Normalizer{
		expander: expander,
		logger:   slog.Default().With("component", "topic-normalizer"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize produces a sanitized search string for the topic. Never returns
// an empty string: on total failure the sanitized raw topic (or, if
// sanitization consumed everything, the raw topic itself) comes back
// unmodified. Expansion failures are logged and absorbed.
func (n *Normalizer) Normalize(ctx context.Context, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}

	if n.expander != nil {
		terms, err := n.expander.ExpandTopic(ctx, raw)
		if err == nil && len(terms) > 0 {
			expanded := Sanitize(strings.Join(terms, " "))
			if expanded != "" {
				return expanded
			}
		}
		if err != nil {
			n.logger.Warn("topic expansion failed, using reduction", "err", err)
		}
	}

	result := raw
	if len(raw) > maxRawLen {
		result = reduce(raw)
	}
	if len(result) < minResultLen {
		result = appendClusters(result, raw)
	}

	sanitized := Sanitize(result)
	if sanitized == "" {
		sanitized = Sanitize(raw)
	}
	if sanitized == "" {
		return raw
	}
	return sanitized
}

// reduce strips parenthetical asides and filler, keeping the first few
// meaningful tokens.
func reduce(raw string) string {
	stripped := stripParentheticals(raw)

	kept := make([]string, 0, maxKeptTokens)
	for _, word := range strings.Fields(stripped) {
		cleaned := strings.Trim(word, ".,!?;:'\"-()[]{}")
		if len(cleaned) < minTokenLen {
			continue
		}
		if topicStopWords[strings.ToLower(cleaned)] {
			continue
		}
		kept = append(kept, cleaned)
		if len(kept) == maxKeptTokens {
			break
		}
	}

	if len(kept) == 0 {
		return raw
	}
	return strings.Join(kept, " ")
}

func stripParentheticals(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// appendClusters widens a too-short result with synonym clusters keyed by
// recognizable substrings of the original topic. A result under the length
// threshold may be a truncated stub, so a stub that prefixes a key also fires.
func appendClusters(result, raw string) string {
	lower := strings.ToLower(raw)
	for _, cluster := range synonymClusters {
		if strings.Contains(lower, cluster.key) || (lower != "" && strings.HasPrefix(cluster.key, lower)) {
			if result == "" {
				return cluster.terms
			}
			return result + " " + cluster.terms
		}
	}
	return result
}

// Sanitize strips the characters that would break out of the store's
// string-interpolated filter syntax: quotes, semicolons, and backslashes.
// Safe to apply repeatedly.
func Sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', ';', '\\':
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
