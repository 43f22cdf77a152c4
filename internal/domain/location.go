package domain

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Location holds the address fragments extracted from a report. Every field
// is independently optional.
type Location struct {
	District     *string `json:"district"`
	Neighborhood *string `json:"neighborhood"`
	Avenue       *string `json:"avenue"`
	Street       *string `json:"street"`
	Region       *string `json:"region"`
}

var (
	// neighborhoodRe captures the token before "Mahallesi", e.g.
	// "Cihangir Mahallesi" -> "Cihangir".
	neighborhoodRe = regexp.MustCompile(`([\p{L}\p{N}_]+)\s+Mahallesi`)

	// avenueRe captures the letter tokens before an inflected "Caddesi":
	// "Caddesi", "caddesinde", "caddede".
	avenueRe = regexp.MustCompile(`([A-ZÇĞİÖŞÜa-zçğıöşü]+(?:\s+[A-ZÇĞİÖŞÜa-zçğıöşü]+)*)\s+[Cc]adde(?:si|sinde|de)`)

	// streetRe captures one or two tokens before "Sokak", "Sokağı" or "sokağında".
	streetRe = regexp.MustCompile(`([\p{L}\p{N}_]+(?:\s+[\p{L}\p{N}_]+)?)\s+[Ss]oka(?:k|ğı|ğında)`)

	// streetFallbackRe only accepts the literal "Sokağı" suffix.
	streetFallbackRe = regexp.MustCompile(`([\p{L}\p{N}_]+(?:\s+[\p{L}\p{N}_]+)?)\s+Sokağı`)
)

var (
	avenueWords = map[string]struct{}{"caddesi": {}, "cadde": {}, "cad.": {}}
	streetWords = map[string]struct{}{"sokak": {}, "sokağı": {}, "sok.": {}}
)

// addressWords are tokens that close one address component. A captured
// avenue or street keeps only the tokens after the last of them.
var addressWords = map[string]struct{}{
	"mahallesi": {}, "mahalle": {}, "mah.": {},
	"caddesi": {}, "cadde": {}, "cad.": {},
	"sokak": {}, "sokağı": {}, "sok.": {},
	"bulvarı": {}, "yolu": {},
}

// captureMatcher runs one pattern and returns its first submatch.
type captureMatcher struct {
	re    *regexp.Regexp
	clean func(prefix, value string) string
}

func (m captureMatcher) match(text string) (string, bool) {
	for _, idx := range m.re.FindAllStringSubmatchIndex(text, -1) {
		if idx[2] < 0 {
			continue
		}
		value := text[idx[2]:idx[3]]
		if m.clean != nil {
			value = m.clean(text[:idx[2]], value)
		}
		if value != "" {
			return value, true
		}
	}
	return "", false
}

// firstCapture tries matchers in order; the first success wins.
func firstCapture(text string, matchers []captureMatcher) *string {
	for _, m := range matchers {
		if v, ok := m.match(text); ok {
			return &v
		}
	}
	return nil
}

// LocationExtractor pulls district, neighborhood, avenue, street and
// landmark region out of free Turkish text.
type LocationExtractor struct {
	landmarks       []Landmark
	foldedLandmarks []string
	districts       []string
	districtSet     map[string]struct{}

	neighborhood []captureMatcher
	avenue       []captureMatcher
	street       []captureMatcher
}

// NewLocationExtractor builds an extractor over the given landmark table
// and district list. Both are scanned in the given order.
func NewLocationExtractor(lms []Landmark, dists []string) *LocationExtractor {
	e := &LocationExtractor{
		landmarks:       lms,
		foldedLandmarks: make([]string, len(lms)),
		districts:       dists,
		districtSet:     make(map[string]struct{}, len(dists)),
	}
	e.neighborhood = []captureMatcher{{re: neighborhoodRe}}
	e.avenue = []captureMatcher{{re: avenueRe, clean: e.cleanAvenue}}
	e.street = []captureMatcher{
		{re: streetRe, clean: e.cleanStreet},
		{re: streetFallbackRe, clean: e.cleanStreet},
	}
	for i, lm := range lms {
		e.foldedLandmarks[i] = Fold(lm.Name)
	}
	for _, d := range dists {
		e.districtSet[d] = struct{}{}
	}
	return e
}

// Extract returns the location fields found in text. No match is a normal
// outcome and leaves the field nil.
func (e *LocationExtractor) Extract(text string) Location {
	return e.extract(text, Fold(text))
}

func (e *LocationExtractor) extract(text, folded string) Location {
	var loc Location

	if lm, ok := e.matchLandmark(folded); ok {
		region := lm.Name
		loc.Region = &region
		if lm.District != "" {
			district := lm.District
			loc.District = &district
		}
	}

	if loc.District == nil {
		if d, ok := e.matchDistrict(text); ok {
			loc.District = &d
		}
	}

	loc.Neighborhood = firstCapture(text, e.neighborhood)
	loc.Avenue = firstCapture(text, e.avenue)
	loc.Street = firstCapture(text, e.street)
	return loc
}

func (e *LocationExtractor) matchLandmark(folded string) (Landmark, bool) {
	if folded == "" {
		return Landmark{}, false
	}
	for i, name := range e.foldedLandmarks {
		if strings.Contains(folded, name) {
			return e.landmarks[i], true
		}
	}
	return Landmark{}, false
}

func (e *LocationExtractor) matchDistrict(text string) (string, bool) {
	for _, d := range e.districts {
		if strings.Contains(text, d) {
			return d, true
		}
	}
	return "", false
}

// cleanCapture trims a greedy token run down to the address name itself.
// A run that starts inside a word (after an apostrophe suffix such as
// "Kadıköy'de") loses its first fragment, and everything up to the last
// address word or district name is dropped:
// "Avcılar Cihangir Mahallesi Cumhuriyet" -> "Cumhuriyet".
//
// A run that ends on a boundary keeps its last token that is not an
// address word, so "Beşiktaş Caddesi" still yields "Beşiktaş". Only a run
// made of address words alone comes back empty.
func (e *LocationExtractor) cleanCapture(prefix, value string) string {
	tokens := strings.Fields(value)
	if startsMidWord(prefix) && len(tokens) > 1 {
		tokens = tokens[1:]
	}

	kept := tokens
	for i := len(tokens) - 1; i >= 0; i-- {
		if e.isAddressBoundary(tokens[i]) {
			kept = tokens[i+1:]
			break
		}
	}
	if len(kept) > 0 {
		return strings.Join(kept, " ")
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		if !isAddressWord(tokens[i]) {
			return tokens[i]
		}
	}
	return ""
}

// cleanAvenue stops at the first avenue in a run that spans two of them:
// "Bağdat Caddesi Kadıköy" -> "Bağdat".
func (e *LocationExtractor) cleanAvenue(prefix, value string) string {
	return e.cleanCapture(prefix, cutAtFirst(value, avenueWords))
}

func (e *LocationExtractor) cleanStreet(prefix, value string) string {
	return e.cleanCapture(prefix, cutAtFirst(value, streetWords))
}

// cutAtFirst drops everything from the first token found in words. A run
// that starts with such a token is returned whole.
func cutAtFirst(value string, words map[string]struct{}) string {
	tokens := strings.Fields(value)
	for i, tok := range tokens {
		if _, ok := words[Fold(tok)]; ok && i > 0 {
			return strings.Join(tokens[:i], " ")
		}
	}
	return value
}

func startsMidWord(prefix string) bool {
	r, _ := utf8.DecodeLastRuneInString(prefix)
	if r == utf8.RuneError {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’'
}

func isAddressWord(token string) bool {
	_, ok := addressWords[Fold(token)]
	return ok
}

func (e *LocationExtractor) isAddressBoundary(token string) bool {
	if isAddressWord(token) {
		return true
	}
	_, ok := e.districtSet[token]
	return ok
}
