// Package config loads the compiler's tunables: allocator costs, the
// inliner's basis set and fuel, and the allocator choice. This is the
// home the teacher's go.mod declared for viper but never exercised in
// code — see DESIGN.md.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/kegliz/qasmc/alloc"
)

// Config holds every tunable named by the reference allocator and
// inliner (§4.G, §4.J, §9 Open Questions).
type Config struct {
	RevCost    int      `mapstructure:"rev_cost"`
	LCNOTCost  int      `mapstructure:"lcnot_cost"`
	InlineFuel int      `mapstructure:"inline_fuel"`
	BasisSet   []string `mapstructure:"basis_set"`
	Allocator  string   `mapstructure:"allocator"`
	Debug      bool     `mapstructure:"debug"`
}

// Defaults mirror original_source's QbitterSolBuilder defaults: both
// penalties are small positive integers, and the basis set reduces to
// the two primitives this middle-end treats as irreducible.
func Defaults() Config {
	return Config{
		RevCost:    4,
		LCNOTCost:  7,
		InlineFuel: 10_000,
		BasisSet:   []string{"CX", "U"},
		Allocator:  "simple",
		Debug:      false,
	}
}

// Load reads qasmc.yaml (searched in the working directory and
// /etc/qasmc) and QASMC_*-prefixed environment overrides on top of
// Defaults(). A missing config file is not an error: Defaults() alone
// is a complete, valid configuration.
func Load(configPath string) (Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetConfigName("qasmc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/qasmc")
	if configPath != "" {
		v.SetConfigFile(configPath)
	}
	v.SetEnvPrefix("QASMC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("rev_cost", cfg.RevCost)
	v.SetDefault("lcnot_cost", cfg.LCNOTCost)
	v.SetDefault("inline_fuel", cfg.InlineFuel)
	v.SetDefault("basis_set", cfg.BasisSet)
	v.SetDefault("allocator", cfg.Allocator)
	v.SetDefault("debug", cfg.Debug)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AllocCosts projects the allocator-relevant fields into alloc.Costs.
func (c Config) AllocCosts() alloc.Costs {
	return alloc.Costs{RevCost: c.RevCost, LCNOTCost: c.LCNOTCost}
}
