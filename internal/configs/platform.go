package configs

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Platform describes the processor slots a generated workload targets and the
// costs the generators attach to tasks.
type Platform struct {
	// distinct configuration names, emitted as the "C" set
	Configs []string `mapstructure:"configs"`
	// configuration bound to each processor slot, emitted as "P_config"
	ProcessorConfigs []string `mapstructure:"p_config"`

	// LU role costs
	DiagonalCost  int `mapstructure:"diagonal_cost"`
	PerimeterCost int `mapstructure:"perimeter_cost"`
	InteriorCost  int `mapstructure:"interior_cost"`

	// random generator costs are drawn from [0, CostMax)
	CostMax int `mapstructure:"cost_max"`
}

const (
	// diagonal and perimeter tasks are pinned to slots 0 and 1, interior
	// tasks need at least one slot after them
	MinProcs = 3
)

var (
	defaultConfigs          = []string{"config1", "config2"}
	defaultProcessorConfigs = []string{"config1", "config1", "config1", "config2", "config2", "config2", "config2"}
)

// Default returns the reference platform: two configurations spread over
// seven processor slots.
func Default() *Platform {
	return &Platform{
		Configs:          append([]string(nil), defaultConfigs...),
		ProcessorConfigs: append([]string(nil), defaultProcessorConfigs...),
		DiagonalCost:     235,
		PerimeterCost:    235,
		InteriorCost:     120,
		CostMax:          500,
	}
}

// NProcs is the number of processor slots.
func (p *Platform) NProcs() int {
	return len(p.ProcessorConfigs)
}

// Load reads a platform description from path. Keys missing from the file
// keep their default values. An empty path returns the default platform.
func Load(path string) (*Platform, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	setDefaults(v, Default())
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading platform file %s", path)
	}

	p := &Platform{}
	if err := v.Unmarshal(p); err != nil {
		return nil, errors.Wrapf(err, "decoding platform file %s", path)
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid platform file %s", path)
	}

	log.WithFields(log.Fields{
		"file":    path,
		"configs": p.Configs,
		"nprocs":  p.NProcs(),
	}).Debug("loaded platform")

	return p, nil
}

func setDefaults(v *viper.Viper, p *Platform) {
	v.SetDefault("configs", p.Configs)
	v.SetDefault("p_config", p.ProcessorConfigs)
	v.SetDefault("diagonal_cost", p.DiagonalCost)
	v.SetDefault("perimeter_cost", p.PerimeterCost)
	v.SetDefault("interior_cost", p.InteriorCost)
	v.SetDefault("cost_max", p.CostMax)
}

// Validate reports every inconsistency in the platform at once.
func (p *Platform) Validate() error {
	var result *multierror.Error

	if len(p.Configs) == 0 {
		result = multierror.Append(result, errors.New("no configurations defined"))
	}
	known := make(map[string]bool, len(p.Configs))
	for _, c := range p.Configs {
		if c == "" {
			result = multierror.Append(result, errors.New("empty configuration name"))
			continue
		}
		if known[c] {
			result = multierror.Append(result, errors.Errorf("duplicate configuration %q", c))
		}
		known[c] = true
	}

	if p.NProcs() < MinProcs {
		result = multierror.Append(result, errors.Errorf("need at least %d processor slots, got %d", MinProcs, p.NProcs()))
	}
	for i, c := range p.ProcessorConfigs {
		if !known[c] {
			result = multierror.Append(result, errors.Errorf("processor slot %d bound to unknown configuration %q", i, c))
		}
	}

	costs := []struct {
		name string
		v    int
	}{
		{"diagonal_cost", p.DiagonalCost},
		{"perimeter_cost", p.PerimeterCost},
		{"interior_cost", p.InteriorCost},
	}
	for _, c := range costs {
		if c.v < 0 {
			result = multierror.Append(result, errors.Errorf("%s must not be negative, got %d", c.name, c.v))
		}
	}
	if p.CostMax < 1 {
		result = multierror.Append(result, errors.Errorf("cost_max must be positive, got %d", p.CostMax))
	}

	return result.ErrorOrNil()
}

func (p *Platform) String() string {
	return fmt.Sprintf("Platform{configs=%v, nprocs=%d}", p.Configs, p.NProcs())
}
