package randdag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Vincent-lau/dagbench/internal/configs"
	"github.com/Vincent-lau/dagbench/internal/workload"
)

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultParams(1).Validate())
	require.ErrorContains(t, DefaultParams(0).Validate(), "ntasks must be at least 1")

	p := DefaultParams(4)
	p.Connectivity = 101
	require.NoError(t, p.Validate())
	p.Connectivity = -1
	require.NoError(t, p.Validate())
}

func TestEdgeProbabilitySaturates(t *testing.T) {
	for conn, want := range map[int]float64{-5: 0, 0: 0, 25: 0.25, 100: 1, 250: 1} {
		p := DefaultParams(4)
		p.Connectivity = conn
		require.Equal(t, want, p.EdgeProbability(), "connectivity=%d", conn)
	}
}

func TestConnectivityAboveHundred(t *testing.T) {
	p := DefaultParams(6)
	p.Connectivity = 100
	full, err := Generate(p, configs.Default())
	require.NoError(t, err)

	p.Connectivity = 150
	over, err := Generate(p, configs.Default())
	require.NoError(t, err)
	require.Equal(t, 6*5/2, over.Deps.Edges())

	var a, b bytes.Buffer
	require.NoError(t, workload.Encode(&a, full))
	require.NoError(t, workload.Encode(&b, over))
	require.Equal(t, a.String(), b.String())

	p.Connectivity = -10
	none, err := Generate(p, configs.Default())
	require.NoError(t, err)
	require.Zero(t, none.Deps.Edges())
}

func TestConnectivityExtremes(t *testing.T) {
	p := DefaultParams(6)

	p.Connectivity = 0
	doc, err := Generate(p, configs.Default())
	require.NoError(t, err)
	require.Zero(t, doc.Deps.Edges())

	p.Connectivity = 100
	doc, err = Generate(p, configs.Default())
	require.NoError(t, err)
	require.Equal(t, 6*5/2, doc.Deps.Edges())
	require.Equal(t, []int{1, 2, 3, 4, 5}, doc.Deps.Deps(0))
}

func TestLabels(t *testing.T) {
	doc, err := Generate(DefaultParams(3), configs.Default())
	require.NoError(t, err)
	require.Equal(t, []string{"0", "1", "2"}, doc.TaskLabels)
	require.Equal(t, 7, doc.NProcs)
}

func TestConcurrencyIsIgnored(t *testing.T) {
	var a, b bytes.Buffer

	p := DefaultParams(20)
	d1, err := Generate(p, configs.Default())
	require.NoError(t, err)
	p.Concurrency = 4
	d2, err := Generate(p, configs.Default())
	require.NoError(t, err)

	require.NoError(t, workload.Encode(&a, d1))
	require.NoError(t, workload.Encode(&b, d2))
	require.Equal(t, a.String(), b.String())
}

func TestSeedChangesOutput(t *testing.T) {
	var a, b bytes.Buffer

	p := DefaultParams(30)
	d1, err := Generate(p, configs.Default())
	require.NoError(t, err)
	p.Seed++
	d2, err := Generate(p, configs.Default())
	require.NoError(t, err)

	require.NoError(t, workload.Encode(&a, d1))
	require.NoError(t, workload.Encode(&b, d2))
	require.NotEqual(t, a.String(), b.String())
}

func TestRandomProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := Params{
			NTasks:       rapid.IntRange(1, 40).Draw(t, "ntasks"),
			Connectivity: rapid.IntRange(0, 100).Draw(t, "connectivity"),
			Seed:         rapid.Uint64().Draw(t, "seed"),
		}
		platform := configs.Default()

		doc, err := Generate(p, platform)
		require.NoError(t, err)
		require.Equal(t, p.NTasks, doc.NTasks)
		require.Equal(t, p.NTasks, doc.Deps.Len())
		require.Len(t, doc.Cost, p.NTasks)

		for f := 0; f < p.NTasks; f++ {
			for _, to := range doc.Deps.Deps(f) {
				require.Greater(t, to, f)
			}
			require.Len(t, doc.Cost[f], platform.NProcs())
			for _, c := range doc.Cost[f] {
				v, ok := c.Value()
				require.True(t, ok)
				require.GreaterOrEqual(t, v, 0)
				require.Less(t, v, platform.CostMax)
			}
		}

		again, err := Generate(p, platform)
		require.NoError(t, err)
		require.Equal(t, doc.Cost, again.Cost)
		for f := 0; f < p.NTasks; f++ {
			require.Equal(t, doc.Deps.Deps(f), again.Deps.Deps(f))
		}

		_, err = workload.Analyze(doc)
		require.NoError(t, err)
	})
}
