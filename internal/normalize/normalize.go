// Package normalize prepares mixed Devanagari/Latin post text for keyword
// matching and gazetteer lookup. All matching layers share these helpers so
// a name indexed once is findable regardless of script variant.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	retweetPattern    = regexp.MustCompile(`^RT\s+@\w+:\s*`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	// \w is ASCII-only in RE2, so hashtag bodies need explicit Unicode
	// classes to capture Devanagari tags.
	hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	handlePattern  = regexp.MustCompile(`@(\w+)`)
)

// stopwords are Hindi postpositions and auxiliaries that never name a place
// or an event on their own.
var stopwords = map[string]struct{}{
	"का": {}, "के": {}, "की": {}, "में": {}, "से": {}, "को": {}, "पर": {},
	"और": {}, "है": {}, "हैं": {}, "कि": {}, "भी": {}, "ही": {}, "ने": {},
	"एक": {}, "किया": {}, "कर": {}, "रहे": {}, "थी": {}, "थे": {},
}

// variantFold collapses spelling variants of the same sound so गाँव and
// गांव index identically.
var variantFold = strings.NewReplacer(
	"ँ", "ं", // candrabindu -> anusvara
)

// devanagariDigits maps ०-९ to ASCII so ward numbers parse uniformly.
var devanagariDigits = strings.NewReplacer(
	"०", "0", "१", "1", "२", "2", "३", "3", "४", "4",
	"५", "5", "६", "6", "७", "7", "८", "8", "९", "9",
)

// nuktaRemover strips the combining nukta mark after NFD decomposition,
// leaving vowel signs and other marks intact.
var nuktaRemover = transform.Chain(
	norm.NFD,
	runes.Remove(runes.Predicate(func(r rune) bool { return r == '़' })),
	norm.NFC,
)

// Clean removes markup noise from raw post text: URLs, retweet prefixes,
// zero-width characters, and redundant whitespace. Unicode is normalized
// to NFC. Clean is idempotent.
func Clean(text string) string {
	s := norm.NFC.String(text)
	s = retweetPattern.ReplaceAllString(s, "")
	s = urlPattern.ReplaceAllString(s, " ")
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			return -1
		}
		return r
	}, s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FoldVariants collapses script variants that spell the same name: nukta
// consonants (क़िला vs किला) fold to their base form, candrabindu folds to
// anusvara, and Devanagari digits become ASCII.
func FoldVariants(s string) string {
	folded, _, err := transform.String(nuktaRemover, s)
	if err != nil {
		folded = s
	}
	folded = variantFold.Replace(folded)
	return devanagariDigits.Replace(folded)
}

// FoldKey prepares a name for map lookup: trim, lowercase the Latin part,
// fold script variants. Gazetteer indices and their queries both go
// through FoldKey.
func FoldKey(s string) string {
	return strings.ToLower(FoldVariants(strings.TrimSpace(s)))
}

// MatchText prepares post text for the regex-based matchers: cleaned,
// NFC-normalized, lowercased. Pair with CompilePattern so pattern
// literals and text agree on nukta composition.
func MatchText(text string) string {
	return strings.ToLower(Clean(text))
}

// CompilePattern builds a case-insensitive regexp for matching against
// MatchText output. NFC decomposes precomposed nukta consonants (क़ is
// a composition exclusion), so pattern literals are normalized the same
// way the text is.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + norm.NFC.String(pattern))
}

// MustCompilePattern is CompilePattern for package-level defaults.
func MustCompilePattern(pattern string) *regexp.Regexp {
	re, err := CompilePattern(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Tokens splits cleaned text into candidate tokens, dropping stopwords.
// Hash and at prefixes are separators, so hashtag bodies surface as
// ordinary tokens.
func Tokens(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		if unicode.IsSpace(r) {
			return true
		}
		switch r {
		case '।', ',', '!', '?', ';', ':', '#', '@', '(', ')', '"', '\'', '…', '|':
			return true
		}
		return false
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".-")
		if f == "" || IsStopword(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// IsStopword reports whether tok is a Hindi postposition or auxiliary.
func IsStopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}

// Hashtags returns the hashtag bodies in order of appearance.
func Hashtags(text string) []string {
	return captureAll(hashtagPattern, text)
}

// Handles returns the @-mention bodies in order of appearance.
func Handles(text string) []string {
	return captureAll(handlePattern, text)
}

func captureAll(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// Profile summarizes the script mix of a post. Used for logging and
// metrics only; routing never branches on it.
type Profile struct {
	Devanagari float64 `json:"devanagari"` // 0.0-1.0
	Latin      float64 `json:"latin"`      // 0.0-1.0
	Digit      float64 `json:"digit"`      // 0.0-1.0
}

// DetectProfile computes the share of Devanagari, Latin, and digit runes
// among the letter/digit runes of text.
func DetectProfile(text string) Profile {
	var deva, latin, digit, total int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Devanagari, r):
			deva++
		case unicode.IsLetter(r):
			latin++
		case unicode.IsDigit(r):
			digit++
		default:
			continue
		}
		total++
	}
	if total == 0 {
		return Profile{}
	}
	return Profile{
		Devanagari: float64(deva) / float64(total),
		Latin:      float64(latin) / float64(total),
		Digit:      float64(digit) / float64(total),
	}
}
