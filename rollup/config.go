package rollup

import (
	"runtime"

	"github.com/kbukum/rollup/errors"
)

// DefaultBatchSize is the number of lines per unit of work.
const DefaultBatchSize = 100_000

// Config tunes the aggregation pipeline.
type Config struct {
	// BatchSize is the number of lines grouped into one unit of work.
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size"`
	// Workers is the number of concurrent aggregation workers.
	Workers int `yaml:"workers" mapstructure:"workers"`
	// Delimiter is the single byte separating the key from the value.
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`
}

// ApplyDefaults applies default values to pipeline configuration.
func (c *Config) ApplyDefaults() {
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Delimiter == "" {
		c.Delimiter = ";"
	}
}

// Validate validates pipeline configuration.
func (c *Config) Validate() *errors.AppError {
	if c.BatchSize < 1 {
		return errors.InvalidConfig("batch_size", "batch_size must be at least 1")
	}
	if c.Workers < 1 {
		return errors.InvalidConfig("workers", "workers must be at least 1")
	}
	if len(c.Delimiter) != 1 {
		return errors.InvalidConfig("delimiter", "delimiter must be exactly one byte")
	}
	return nil
}

// delim returns the delimiter byte. Only valid after Validate.
func (c *Config) delim() byte {
	return c.Delimiter[0]
}
