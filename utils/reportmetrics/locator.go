package reportmetrics

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Aashish23092/default-report-dataset/dto"
	"github.com/Aashish23092/default-report-dataset/utils"
)

var ErrInvalidRules = errors.New("invalid metric rules")

// Locator extracts metric values from the text lines of one report.
// It holds no per-document state and is safe for concurrent use.
type Locator struct {
	pairPattern *regexp.Regexp
	pairAssign  [][2]dto.MetricName
	anchors     []anchor
}

type anchor struct {
	metric        dto.MetricName
	label         string
	confirm       string
	confirmWithin int
	before        int
	after         int
	pattern       *regexp.Regexp
	exclude       string
}

// NewLocator compiles rules. Anchor and confirm phrases are normalized here
// so the rule set can be written as the labels appear in print.
func NewLocator(rules Rules) (*Locator, error) {
	l := &Locator{}

	if rules.Pairs.Pattern != "" {
		re, err := regexp.Compile(rules.Pairs.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: pair pattern: %v", ErrInvalidRules, err)
		}
		if re.NumSubexp() < 2 {
			return nil, fmt.Errorf("%w: pair pattern needs two capture groups", ErrInvalidRules)
		}
		l.pairPattern = re
	}
	for i, pair := range rules.Pairs.Assign {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: pair assignment %d must name two metrics", ErrInvalidRules, i)
		}
		for _, m := range pair {
			if !dto.IsMetric(m) {
				return nil, fmt.Errorf("%w: unknown metric %q", ErrInvalidRules, m)
			}
		}
		l.pairAssign = append(l.pairAssign, [2]dto.MetricName{pair[0], pair[1]})
	}
	if len(l.pairAssign) > 0 && l.pairPattern == nil {
		return nil, fmt.Errorf("%w: pair assignment without a pattern", ErrInvalidRules)
	}

	for _, r := range rules.Anchors {
		a, err := compileAnchor(r)
		if err != nil {
			return nil, err
		}
		l.anchors = append(l.anchors, a)
	}
	return l, nil
}

func compileAnchor(r AnchorRule) (anchor, error) {
	if !dto.IsMetric(r.Metric) {
		return anchor{}, fmt.Errorf("%w: unknown metric %q", ErrInvalidRules, r.Metric)
	}
	label := utils.NormalizeLine(r.Anchor)
	if label == "" {
		return anchor{}, fmt.Errorf("%w: %s: empty anchor", ErrInvalidRules, r.Metric)
	}
	if r.Before < 0 || r.After < 0 || r.ConfirmWithin < 0 {
		return anchor{}, fmt.Errorf("%w: %s: negative window", ErrInvalidRules, r.Metric)
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return anchor{}, fmt.Errorf("%w: %s: %v", ErrInvalidRules, r.Metric, err)
	}
	if re.NumSubexp() < 1 {
		return anchor{}, fmt.Errorf("%w: %s: pattern needs a capture group", ErrInvalidRules, r.Metric)
	}

	a := anchor{
		metric:        r.Metric,
		label:         label,
		confirm:       utils.NormalizeLine(r.Confirm),
		confirmWithin: r.ConfirmWithin,
		before:        r.Before,
		after:         r.After,
		pattern:       re,
		exclude:       strings.ToLower(r.Exclude),
	}
	if a.confirm != "" && a.confirmWithin == 0 {
		a.confirmWithin = 1
	}
	return a, nil
}

// Extract returns a value or nil for every canonical metric. It never fails:
// whatever cannot be located with confidence stays nil.
func (l *Locator) Extract(lines []string) dto.Metrics {
	out := dto.NewMetrics()

	l.extractPairs(strings.Join(lines, "\n"), out)

	norms := utils.NormalizeLines(lines)
	for _, a := range l.anchors {
		out[a.metric] = a.locate(lines, norms)
	}
	return out
}

func (l *Locator) extractPairs(text string, out dto.Metrics) {
	if l.pairPattern == nil || len(l.pairAssign) == 0 {
		return
	}
	matches := l.pairPattern.FindAllStringSubmatch(text, -1)
	if len(matches) < len(l.pairAssign) {
		return
	}
	for k, pair := range l.pairAssign {
		out[pair[0]] = utils.AmountPtr(matches[k][1])
		out[pair[1]] = utils.AmountPtr(matches[k][2])
	}
}

func (a anchor) locate(lines, norms []string) *float64 {
	for i, n := range norms {
		if !strings.Contains(n, a.label) || !a.confirmed(norms, i) {
			continue
		}

		lo := max(i-a.before, 0)
		hi := min(i+a.after, len(lines))
		for j := lo; j < hi; j++ {
			raw, ok := a.match(lines[j])
			if !ok {
				continue
			}
			// the first match closes this window even if the amount is garbage
			if v := utils.AmountPtr(raw); v != nil {
				return v
			}
			break
		}
	}
	return nil
}

func (a anchor) confirmed(norms []string, i int) bool {
	if a.confirm == "" {
		return true
	}
	end := min(i+a.confirmWithin, len(norms))
	for k := i; k < end; k++ {
		if strings.Contains(norms[k], a.confirm) {
			return true
		}
	}
	return false
}

func (a anchor) match(line string) (string, bool) {
	for _, idx := range a.pattern.FindAllStringSubmatchIndex(line, -1) {
		if idx[2] < 0 {
			continue
		}
		if a.exclude != "" && strings.Contains(strings.ToLower(line[idx[3]:]), a.exclude) {
			continue
		}
		return line[idx[2]:idx[3]], true
	}
	return "", false
}
