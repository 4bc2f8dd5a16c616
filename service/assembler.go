package service

import (
	"math"
	"sort"
	"time"

	"github.com/Aashish23092/default-report-dataset/dto"
	"github.com/Aashish23092/default-report-dataset/utils"
)

// Assemble turns per-document records into the canonical dataset: every
// metric coerced to a finite number or null, rows in chronological order.
// Records sharing a period are all kept, in their input order.
func Assemble(records []dto.Record) dto.Dataset {
	out := make([]dto.Record, len(records))
	for i, r := range records {
		out[i] = coerceRecord(r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return utils.PeriodLess(out[i].Period, out[j].Period)
	})

	return dto.Dataset{
		GeneratedAt: time.Now(),
		Records:     out,
	}
}

func coerceRecord(r dto.Record) dto.Record {
	metrics := dto.NewMetrics()
	for _, m := range dto.MetricOrder {
		v := r.Metrics[m]
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		val := *v
		metrics[m] = &val
	}
	r.Metrics = metrics
	if r.PeriodLabel == "" {
		r.PeriodLabel = utils.PeriodLabel(r.Period)
	}
	return r
}
