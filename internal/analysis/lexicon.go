package analysis

import "strings"

// Lexicon holds the word and phrase sets behind the heuristic scorers.
// Positive and Negative are matched against tokens (Negative also as
// substrings when vetoing resolution); every other set is matched as
// case-insensitive substrings.
type Lexicon struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
	Empathy  []string `yaml:"empathy"`
	Fallback []string `yaml:"fallback"`
	Hedges   []string `yaml:"hedges"`

	// Resolution markers in assistant text that indicate a completed request.
	Resolution []string `yaml:"resolution"`

	// An assistant message asks for information when it contains every
	// InfoRequestAll entry or any InfoRequestAny entry.
	InfoRequestAll []string `yaml:"info_request_all"`
	InfoRequestAny []string `yaml:"info_request_any"`

	Fulfillment []string `yaml:"fulfillment"`
}

// DefaultLexicon returns a fresh copy of the bundled lexicon.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Positive:       []string{"thanks", "thank", "great", "good", "happy", "awesome", "resolved", "ok", "okay"},
		Negative:       []string{"not", "problem", "issue", "unhappy", "angry", "bad", "delay", "late", "wrong"},
		Empathy:        []string{"sorry", "apologize", "understand", "feel", "sympath"},
		Fallback:       []string{"i don't know", "i'm not sure", "can't help", "cannot help", "sorry, i don't", "unable to"},
		Hedges:         []string{"think", "maybe", "probably", "might", "could be", "not sure"},
		Resolution:     []string{"shipped", "delivered", "resolved", "completed", "done", "cancelled"},
		InfoRequestAll: []string{"please", "share"},
		InfoRequestAny: []string{"can you", "could you"},
		Fulfillment:    []string{"shipped", "will arrive", "delivered", "tracking"},
	}
}

// compiledLexicon is the immutable, lowercased form an Analyzer works with.
type compiledLexicon struct {
	positive       map[string]struct{}
	negative       map[string]struct{}
	negativeList   []string
	empathy        []string
	fallback       []string
	hedges         []string
	resolution     []string
	infoRequestAll []string
	infoRequestAny []string
	fulfillment    []string
}

func compile(l Lexicon) compiledLexicon {
	return compiledLexicon{
		positive:       toSet(l.Positive),
		negative:       toSet(l.Negative),
		negativeList:   lowerAll(l.Negative),
		empathy:        lowerAll(l.Empathy),
		fallback:       lowerAll(l.Fallback),
		hedges:         lowerAll(l.Hedges),
		resolution:     lowerAll(l.Resolution),
		infoRequestAll: lowerAll(l.InfoRequestAll),
		infoRequestAny: lowerAll(l.InfoRequestAny),
		fulfillment:    lowerAll(l.Fulfillment),
	}
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.ToLower(w)
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range lowerAll(words) {
		set[w] = struct{}{}
	}
	return set
}

// countContained returns how many distinct phrases occur in the lowercased text.
func countContained(lowered string, phrases []string) int {
	count := 0
	for _, p := range phrases {
		if strings.Contains(lowered, p) {
			count++
		}
	}
	return count
}

func containsAny(lowered string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}

func containsAll(lowered string, phrases []string) bool {
	if len(phrases) == 0 {
		return false
	}
	for _, p := range phrases {
		if !strings.Contains(lowered, p) {
			return false
		}
	}
	return true
}
