package dto

import "time"

// MetricName identifies one of the indicators published in a monthly report.
type MetricName string

const (
	MetricDefaulters     MetricName = "INADIMPLENTES_MI" // people in default, millions
	MetricAvgPerPerson   MetricName = "VMPP"             // average debt per person, R$
	MetricDebtCount      MetricName = "DIVIDAS_MI"       // number of debts, millions
	MetricAvgPerDebt     MetricName = "VMCD"             // average value of each debt, R$
	MetricTotalDebt      MetricName = "VTDD_BI"          // total debt value, R$ billions
	MetricAvgAgreement   MetricName = "VMAF"             // average value of settled agreements, R$
	MetricDiscountsGiven MetricName = "DESCONTOS_BI"     // discounts granted, R$ billions
)

// PeriodColumn is the first dataset column.
const PeriodColumn = "PERIODO"

// MetricOrder is the canonical column order of the dataset after PeriodColumn.
var MetricOrder = []MetricName{
	MetricDefaulters,
	MetricAvgPerPerson,
	MetricDebtCount,
	MetricAvgPerDebt,
	MetricTotalDebt,
	MetricAvgAgreement,
	MetricDiscountsGiven,
}

// IsMetric reports whether name is one of the canonical metrics.
func IsMetric(name MetricName) bool {
	for _, m := range MetricOrder {
		if m == name {
			return true
		}
	}
	return false
}

// Header returns the dataset column names in output order.
func Header() []string {
	cols := make([]string, 0, len(MetricOrder)+1)
	cols = append(cols, PeriodColumn)
	for _, m := range MetricOrder {
		cols = append(cols, string(m))
	}
	return cols
}

// Metrics holds one nullable value per metric. A nil value means the
// metric could not be extracted with confidence.
type Metrics map[MetricName]*float64

// NewMetrics returns a Metrics with every canonical metric present and null.
func NewMetrics() Metrics {
	m := make(Metrics, len(MetricOrder))
	for _, name := range MetricOrder {
		m[name] = nil
	}
	return m
}

// Found counts the metrics that resolved to a value.
func (m Metrics) Found() int {
	n := 0
	for _, name := range MetricOrder {
		if m[name] != nil {
			n++
		}
	}
	return n
}

type Record struct {
	Period      string  `json:"period"`
	PeriodLabel string  `json:"period_label"`
	Source      string  `json:"source,omitempty"`
	Metrics     Metrics `json:"metrics"`
}

type Dataset struct {
	RunID       string    `json:"run_id,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	Records     []Record  `json:"records"`
}
