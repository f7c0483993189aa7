package extract

import (
	"regexp"
	"strings"

	"github.com/atozflooring/xtracr/constants"
)

// phoneToken matches a phone-looking run: optional +, then digits with the
// usual spacing/punctuation. Validation happens in NormalizePhone.
var phoneToken = regexp.MustCompile(`\(?\+?[0-9][0-9 ()\-]{6,}[0-9]`)

// NormalizePhone strips everything but digits and accepts only results whose
// digit count falls inside the configured window. A leading +61/61 is kept
// as digits; out-of-window candidates are rejected outright, never truncated.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < constants.PhoneMinDigits || len(digits) > constants.PhoneMaxDigits {
		return "", false
	}
	return digits, true
}

// phoneCandidate keeps the first-seen original formatting for display next
// to the normalized digit string used for dedup.
type phoneCandidate struct {
	Display string
	Digits  string
}

// labeled phone patterns, built once from the configured label order.
var phoneLabelRes = buildPhoneLabelRes()

func buildPhoneLabelRes() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(constants.PhoneLabels))
	for _, label := range constants.PhoneLabels {
		res = append(res, regexp.MustCompile(
			`(?im)^[ \t]*`+regexp.QuoteMeta(label)+`\.?[ \t]*[:.][ \t]*(\(?\+?[0-9][0-9 ()\-]{6,}[0-9])`))
	}
	return res
}

// collectPhones scans the labeled phone sections in label-priority order and
// returns deduplicated candidates. Dedup key is the normalized digit string;
// the first-seen formatting wins.
func collectPhones(text string) []phoneCandidate {
	var out []phoneCandidate
	seen := make(map[string]struct{})
	for _, re := range phoneLabelRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			digits, ok := NormalizePhone(m[1])
			if !ok {
				continue
			}
			if _, dup := seen[digits]; dup {
				continue
			}
			seen[digits] = struct{}{}
			out = append(out, phoneCandidate{Display: collapseWhitespace(m[1]), Digits: digits})
		}
	}
	return out
}

// contactWindow is how far past a contact label the scan looks for that
// contact's phone numbers and email.
const contactWindow = 240

// collectAlternateContacts walks the configured contact-type labels in
// priority order and builds the ordered alternates list. The first type
// present becomes the primary; the rest are retained, not discarded.
func collectAlternateContacts(text string) []AlternateContact {
	var out []AlternateContact
	seen := make(map[string]struct{}) // dedupe whole contacts by primary digits

	for _, typ := range constants.ContactTypes {
		nameRe := regexp.MustCompile(`(?im)^[ \t]*` + regexp.QuoteMeta(typ) + `(?:[ \t]*name)?[ \t]*[:.][ \t]*(.+)$`)
		loc := nameRe.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		nameLine := text[loc[2]:loc[3]]
		contact := AlternateContact{
			Type: typ,
			// the phone often rides on the same line as the name
			Name: collapseWhitespace(phoneToken.ReplaceAllString(nameLine, "")),
		}

		end := loc[1] + contactWindow
		if end > len(text) {
			end = len(text)
		}
		window := text[loc[0]:end]

		for _, pm := range phoneToken.FindAllString(window, -1) {
			digits, ok := NormalizePhone(pm)
			if !ok {
				continue
			}
			switch {
			case contact.Phone == "":
				contact.Phone = digits
			case contact.Phone2 == "" && digits != contact.Phone:
				contact.Phone2 = digits
			}
		}
		if m := emailInText.FindString(window); m != "" {
			contact.Email = m
		}

		if contact.Name == "" && contact.Phone == "" && contact.Email == "" {
			continue
		}
		if contact.Phone != "" {
			if _, dup := seen[contact.Phone]; dup {
				continue
			}
			seen[contact.Phone] = struct{}{}
		}
		out = append(out, contact)
	}
	return out
}

var emailInText = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
