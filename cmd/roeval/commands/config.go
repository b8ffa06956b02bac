package commands

import (
	"path/filepath"
	"time"

	"roeval/internal/roevaluate"
	"roeval/lib/configutil"
	"roeval/lib/telemetry"
)

const (
	defaultService = "http://sandbox.wf4ever-project.org/roevaluate/"
	defaultRO      = "http://sandbox.wf4ever-project.org/rodl/ROs/simple-requirements/"
	defaultMinim   = "simple-requirements-minim.rdf"
	defaultPurpose = "runnable"
)

type Config struct {
	Service           string `json:"service"`
	RO                string `json:"ro"`
	Minim             string `json:"minim"`
	Purpose           string `json:"purpose"`
	AllowExternalHost bool   `json:"allow_external_host"`
	// HistoryDb is where `--record` stores runs, it may start with <dev_state>.
	HistoryDb string `json:"history_db"`
	// HistoryRetentionDays of zero keeps runs forever.
	HistoryRetentionDays int              `json:"history_retention_days"`
	Telemetry            telemetry.Config `json:"telemetry"`
}

func DefaultConfig() Config {
	return Config{
		Service:   defaultService,
		RO:        defaultRO,
		Minim:     defaultMinim,
		Purpose:   defaultPurpose,
		HistoryDb: "<dev_state>/history.db",
	}
}

func (c Config) Params() roevaluate.Params {
	return roevaluate.Params{
		RO:      c.RO,
		Minim:   c.Minim,
		Purpose: c.Purpose,
	}
}

func (c Config) HistoryRetention() time.Duration {
	return time.Duration(c.HistoryRetentionDays) * 24 * time.Hour
}

// LoadConfig reads the config file at path. when explicit is false a missing
// file is not an error and relative paths are searched for in parent
// directories as well. fields missing from the file take their value from
// DefaultConfig.
func LoadConfig(path string, explicit bool) (Config, error) {
	defaults := DefaultConfig()
	switch {
	case explicit:
		cfg, err := configutil.ReadConfig[Config](path)
		if err != nil {
			return defaults, err
		}
		return configutil.WithDefaults(cfg, defaults)
	case filepath.IsAbs(path):
		return configutil.ReadConfigWithDefaults(path, defaults)
	}
	return configutil.ReadRecursivelyWithDefaults(path, defaults)
}
