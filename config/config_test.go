package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Aashish23092/default-report-dataset/dto"
	"github.com/Aashish23092/default-report-dataset/utils/reportmetrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "datasets/mapas_serasa", cfg.InputDir)
	assert.Equal(t, "*.pdf", cfg.Pattern)
	assert.Equal(t, "datasets/serasa.csv", cfg.OutputPath)
	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
	assert.Nil(t, cfg.Rules)
	assert.Equal(t, reportmetrics.DefaultRules(), cfg.MetricRules())
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("REPORTS_WORKERS", "4")
	t.Setenv("REPORTS_FORMAT", "XLSX")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "xlsx", cfg.Format)
	assert.Equal(t, "9090", cfg.ServerPort)
}

func TestLoadConfigFileWithRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.yaml")
	content := `
input_dir: /srv/mapas
output_path: /srv/out/serasa.xlsx
format: xlsx
rules:
  version: "2026-01"
  pairs:
    pattern: '(?i)([\d.,]+)\s*mi\s*R\$\s*([\d.,]+)'
    assign:
      - [DIVIDAS_MI, VMCD]
      - [INADIMPLENTES_MI, VMPP]
  anchors:
    - metric: VTDD_BI
      anchor: "Valor total das dívidas"
      before: 3
      after: 1
      pattern: '(?i)R\$\s*([\d.,]+)\s*bi'
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/mapas", cfg.InputDir)
	assert.Equal(t, "xlsx", cfg.Format)
	require.NotNil(t, cfg.Rules)

	rules := cfg.MetricRules()
	assert.Equal(t, "2026-01", rules.Version)
	assert.Equal(t, []dto.MetricName{dto.MetricDebtCount, dto.MetricAvgPerDebt}, rules.Pairs.Assign[0])
	require.Len(t, rules.Anchors, 1)
	assert.Equal(t, dto.MetricTotalDebt, rules.Anchors[0].Metric)
	assert.Equal(t, 3, rules.Anchors[0].Before)

	_, err = reportmetrics.NewLocator(rules)
	assert.NoError(t, err)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("REPORTS_FORMAT", "parquet")
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
