package template

import (
	"regexp"
	"strings"
)

// Signal names one matched detection signal.
type Signal string

const (
	SignalPONumber    Signal = "po_number"
	SignalKeyword     Signal = "keyword"
	SignalEmailDomain Signal = "email_domain"
)

// Signal weights. The PO-number shape is the strongest evidence a builder
// left in a document, then its name near the top, then a staff email domain.
// MinScore equals the weakest single weight: any one matched signal is
// enough; zero matched signals falls back to the generic template.
const (
	weightPONumber    = 5
	weightKeyword     = 3
	weightEmailDomain = 2
	MinScore          = weightEmailDomain
)

// keywordLines is how many leading lines are searched for builder keywords.
const keywordLines = 5

// Detection is the outcome of scoring the registry against one document.
type Detection struct {
	TemplateID string
	Score      int
	Signals    []Signal
}

// FellBack reports whether detection landed on the generic template.
func (d Detection) FellBack() bool { return IsGeneric(d.TemplateID) }

var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@([A-Za-z0-9.-]+\.[A-Za-z]{2,})`)

// Detector scores registry entries against document text. It is a pure
// function of its inputs: no I/O, no mutation, safe for concurrent use.
type Detector struct {
	reg *Registry
}

func NewDetector(reg *Registry) *Detector {
	return &Detector{reg: reg}
}

// Detect evaluates every registered template's signals against text and
// returns the winner. Ties prefer the template whose PO-number shape
// matched, then the earlier-registered template, so repeated runs over the
// same text always agree.
func (d *Detector) Detect(text string) Detection {
	head := strings.ToLower(firstLines(text, keywordLines))
	domains := emailDomains(text)

	best := Detection{TemplateID: GenericID}
	bestPO := false
	for _, def := range d.reg.Definitions() {
		score := 0
		var signals []Signal
		po := def.Signature.PONumber != nil && def.Signature.PONumber.MatchString(text)
		if po {
			score += weightPONumber
			signals = append(signals, SignalPONumber)
		}
		for _, kw := range def.Signature.Keywords {
			if strings.Contains(head, strings.ToLower(kw)) {
				score += weightKeyword
				signals = append(signals, SignalKeyword)
				break
			}
		}
		for _, dom := range def.Signature.EmailDomains {
			if _, ok := domains[strings.ToLower(dom)]; ok {
				score += weightEmailDomain
				signals = append(signals, SignalEmailDomain)
				break
			}
		}
		if score < MinScore {
			continue
		}
		if score > best.Score || (score == best.Score && po && !bestPO) {
			best = Detection{TemplateID: def.ID, Score: score, Signals: signals}
			bestPO = po
		}
	}
	return best
}

func firstLines(text string, n int) string {
	lines := strings.SplitN(text, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

func emailDomains(text string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, m := range emailRe.FindAllStringSubmatch(text, -1) {
		out[strings.ToLower(m[1])] = struct{}{}
	}
	return out
}
