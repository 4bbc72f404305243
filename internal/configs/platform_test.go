package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultPlatform(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())
	require.Equal(t, 7, p.NProcs())
	require.Equal(t, []string{"config1", "config2"}, p.Configs)
	require.Equal(t, 235, p.DiagonalCost)
	require.Equal(t, 235, p.PerimeterCost)
	require.Equal(t, 120, p.InteriorCost)
	require.Equal(t, 500, p.CostMax)
}

func TestDefaultIsACopy(t *testing.T) {
	p := Default()
	p.ProcessorConfigs[0] = "config2"
	require.Equal(t, "config1", Default().ProcessorConfigs[0])
}

func TestLoadEmptyPath(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), p)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, "platform.yaml", `
configs: [cpu, gpu]
p_config: [cpu, gpu, gpu]
interior_cost: 90
`)
	p, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"cpu", "gpu"}, p.Configs)
	require.Equal(t, []string{"cpu", "gpu", "gpu"}, p.ProcessorConfigs)
	require.Equal(t, 90, p.InteriorCost)
	require.Equal(t, 235, p.DiagonalCost)
	require.Equal(t, 500, p.CostMax)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidPlatform(t *testing.T) {
	path := writeFile(t, "platform.yaml", `
configs: [cpu]
p_config: [cpu, gpu]
`)
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown configuration \"gpu\"")
	require.Contains(t, err.Error(), "at least 3 processor slots")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Platform)
		want   string
	}{
		{"no configs", func(p *Platform) { p.Configs = nil; p.ProcessorConfigs = nil }, "no configurations defined"},
		{"duplicate", func(p *Platform) { p.Configs = append(p.Configs, "config1") }, "duplicate configuration"},
		{"empty name", func(p *Platform) { p.Configs = append(p.Configs, "") }, "empty configuration name"},
		{"negative cost", func(p *Platform) { p.PerimeterCost = -1 }, "perimeter_cost must not be negative"},
		{"zero cost max", func(p *Platform) { p.CostMax = 0 }, "cost_max must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(p)
			err := p.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}
