package exporter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Aashish23092/default-report-dataset/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func sampleDataset() dto.Dataset {
	full := dto.NewMetrics()
	full[dto.MetricDefaulters] = ptr(12.3)
	full[dto.MetricAvgPerPerson] = ptr(456.78)
	full[dto.MetricDebtCount] = ptr(7.8)
	full[dto.MetricAvgPerDebt] = ptr(910.11)
	full[dto.MetricTotalDebt] = ptr(402.3)
	full[dto.MetricAvgAgreement] = ptr(562.34)
	full[dto.MetricDiscountsGiven] = ptr(13.7)

	return dto.Dataset{Records: []dto.Record{
		{Period: "jun/25", Metrics: full},
		{Period: "relatorio sem data", Metrics: dto.NewMetrics()},
	}}
}

func TestCSVSinkWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datasets", "serasa.csv")
	sink := &CSVSink{Path: path}

	require.NoError(t, sink.Write(context.Background(), sampleDataset()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"PERIODO,INADIMPLENTES_MI,VMPP,DIVIDAS_MI,VMCD,VTDD_BI,VMAF,DESCONTOS_BI\n"+
			"jun/25,12.3,456.78,7.8,910.11,402.3,562.34,13.7\n"+
			"relatorio sem data,,,,,,,\n",
		string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be gone")
}

func TestCSVSinkOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serasa.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	sink := &CSVSink{Path: path}
	require.NoError(t, sink.Write(context.Background(), dto.Dataset{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PERIODO,INADIMPLENTES_MI,VMPP,DIVIDAS_MI,VMCD,VTDD_BI,VMAF,DESCONTOS_BI\n", string(data))
}

func TestReadCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serasa.csv")
	require.NoError(t, (&CSVSink{Path: path}).Write(context.Background(), sampleDataset()))

	ds, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)

	assert.Equal(t, "jun/25", ds.Records[0].Period)
	assert.Equal(t, "Junho 2025", ds.Records[0].PeriodLabel)
	assert.InDelta(t, 910.11, *ds.Records[0].Metrics[dto.MetricAvgPerDebt], 1e-9)
	assert.Equal(t, 0, ds.Records[1].Metrics.Found())
}

func TestReadCSVCoercesBadCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serasa.csv")
	content := "\ufeffPERIODO,VTDD_BI,VMPP\n" +
		"out/24,abc,1200.5\n" +
		"nov/24,NaN,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	ds, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)

	assert.Nil(t, ds.Records[0].Metrics[dto.MetricTotalDebt])
	assert.InDelta(t, 1200.5, *ds.Records[0].Metrics[dto.MetricAvgPerPerson], 1e-9)
	assert.Nil(t, ds.Records[0].Metrics[dto.MetricDefaulters])
	assert.Nil(t, ds.Records[1].Metrics[dto.MetricTotalDebt])
	assert.Nil(t, ds.Records[1].Metrics[dto.MetricAvgPerPerson])
}

func TestReadCSVMissingPeriodColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serasa.csv")
	require.NoError(t, os.WriteFile(path, []byte("A,B\n1,2\n"), 0644))

	_, err := ReadCSV(path)
	assert.Error(t, err)
}

func TestNewSink(t *testing.T) {
	s, err := NewSink("csv", "out.csv")
	require.NoError(t, err)
	assert.IsType(t, &CSVSink{}, s)

	s, err = NewSink("XLSX", "out.xlsx")
	require.NoError(t, err)
	assert.IsType(t, &XLSXSink{}, s)

	_, err = NewSink("parquet", "out.parquet")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
