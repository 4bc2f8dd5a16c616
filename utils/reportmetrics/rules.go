package reportmetrics

import "github.com/Aashish23092/default-report-dataset/dto"

// PairRule describes the paired-pattern strategy. Pattern must have two
// capture groups. Assign maps the k-th occurrence of Pattern to a metric
// pair, in order of appearance in the document. This association is
// positional: an extra or reordered occurrence in a future layout shifts
// every pair after it.
type PairRule struct {
	Pattern string             `mapstructure:"pattern" json:"pattern"`
	Assign  [][]dto.MetricName `mapstructure:"assign" json:"assign"`
}

// AnchorRule locates one metric near a label.
//
// Anchor (and Confirm, if set) are matched against normalized lines, so
// they may be written with accents and any casing. When Confirm is set the
// anchor only counts if Confirm appears within ConfirmWithin lines starting
// at the anchor line. Pattern is searched in raw lines i-Before up to, but
// excluding, i+After, and must have one capture group holding the amount.
// A candidate is discarded when Exclude (case-insensitive) appears after it
// on the same line.
type AnchorRule struct {
	Metric        dto.MetricName `mapstructure:"metric" json:"metric"`
	Anchor        string         `mapstructure:"anchor" json:"anchor"`
	Confirm       string         `mapstructure:"confirm" json:"confirm,omitempty"`
	ConfirmWithin int            `mapstructure:"confirm_within" json:"confirm_within,omitempty"`
	Before        int            `mapstructure:"before" json:"before"`
	After         int            `mapstructure:"after" json:"after"`
	Pattern       string         `mapstructure:"pattern" json:"pattern"`
	Exclude       string         `mapstructure:"exclude" json:"exclude,omitempty"`
}

// Rules is the versionable description of a report layout.
type Rules struct {
	Version string       `mapstructure:"version" json:"version"`
	Pairs   PairRule     `mapstructure:"pairs" json:"pairs"`
	Anchors []AnchorRule `mapstructure:"anchors" json:"anchors"`
}

// DefaultRules matches the monthly default map layout published since 2024.
func DefaultRules() Rules {
	return Rules{
		Version: "2024-10",
		Pairs: PairRule{
			Pattern: `(?i)([\d.,]+)\s*mi\s*R\$\s*([\d.,]+)`,
			Assign: [][]dto.MetricName{
				{dto.MetricDefaulters, dto.MetricAvgPerPerson},
				{dto.MetricDebtCount, dto.MetricAvgPerDebt},
			},
		},
		Anchors: []AnchorRule{
			{
				Metric:  dto.MetricTotalDebt,
				Anchor:  "VALOR TOTAL DAS DIVIDAS",
				Before:  5,
				After:   2,
				Pattern: `(?i)R\$\s*([\d.,]+)\s*bi`,
			},
			{
				Metric:        dto.MetricAvgAgreement,
				Anchor:        "VALOR MEDIO DOS",
				Confirm:       "ACORDOS FECHADOS",
				ConfirmWithin: 5,
				Before:        10,
				After:         1,
				Pattern:       `(?i)R\$\s*([\d.,]+)`,
				Exclude:       "bilh",
			},
			{
				Metric:  dto.MetricDiscountsGiven,
				Anchor:  "DESCONTOS CONCEDIDOS",
				Before:  5,
				After:   3,
				Pattern: `(?i)R\$\s*([\d.,]+).*bilh`,
			},
		},
	}
}
