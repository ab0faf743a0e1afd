package market

import (
	"strings"
	"unicode"
)

// IntentKind says what, if anything, should be fetched for a query.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentAsset
	IntentGlobal
)

// Intent is the classifier verdict. Asset carries the identifier to look up
// when Kind == IntentAsset; for token matches it is already a canonical
// provider id, for phrase extractions it is raw user text.
type Intent struct {
	Kind  IntentKind
	Asset string
}

// assetTokens maps recognized asset names/tickers to canonical provider ids.
// A direct token match takes priority over phrase extraction because it is
// unambiguous.
var assetTokens = map[string]string{
	"bitcoin":  "bitcoin",
	"btc":      "bitcoin",
	"ethereum": "ethereum",
	"eth":      "ethereum",
	"tether":   "tether",
	"usdt":     "tether",
	"bnb":      "binancecoin",
	"solana":   "solana",
	"sol":      "solana",
	"xrp":      "ripple",
	"ripple":   "ripple",
	"cardano":  "cardano",
	"ada":      "cardano",
	"dogecoin": "dogecoin",
	"doge":     "dogecoin",
	"polkadot": "polkadot",
	"dot":      "polkadot",
	"litecoin": "litecoin",
	"ltc":      "litecoin",
	"monero":   "monero",
	"xmr":      "monero",
}

// triggerPhrases is an ordered list; the first phrase present in the query
// wins and the token immediately after it becomes the lookup candidate.
var triggerPhrases = []string{
	"price of",
	"how much is",
	"value of",
	"how is",
	"what about",
	"data on",
	"information on",
	"stats for",
}

// marketKeywords request a global snapshot when no specific asset was found.
var marketKeywords = []string{"market", "trending", "overall", "general"}

// Classify decides whether a query references a specific asset or the overall
// market. Evaluation order is fixed: exact-token table, then trigger-phrase
// extraction, then market keywords. Deterministic by construction; the
// downstream LLM carries the conversational intelligence.
func Classify(query string) Intent {
	lower := strings.ToLower(query)
	tokens := tokenize(lower)

	for _, tok := range tokens {
		if id, ok := assetTokens[tok]; ok {
			return Intent{Kind: IntentAsset, Asset: id}
		}
	}

	for _, phrase := range triggerPhrases {
		idx := strings.Index(lower, phrase)
		if idx < 0 {
			continue
		}
		rest := strings.Fields(lower[idx+len(phrase):])
		if len(rest) == 0 {
			continue
		}
		candidate := trimEdgePunct(rest[0])
		if len(candidate) > 1 {
			return Intent{Kind: IntentAsset, Asset: candidate}
		}
	}

	for _, kw := range marketKeywords {
		for _, tok := range tokens {
			if tok == kw {
				return Intent{Kind: IntentGlobal}
			}
		}
	}

	return Intent{Kind: IntentNone}
}

// tokenize splits on anything that is not a letter or digit, so "btc?" and
// "what's" both yield clean tokens.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func trimEdgePunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
