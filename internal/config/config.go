// Package config loads the YAML settings of the errdetect command.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yyyoichi/errdetect"
	"github.com/yyyoichi/errdetect/checksum"
	"github.com/yyyoichi/errdetect/crc"
	"github.com/yyyoichi/errdetect/lrc"
	"github.com/yyyoichi/errdetect/parity"
)

// Names lists the codecs in the order they are reported.
var Names = []string{"parity", "checksum", "lrc", "crc"}

type Config struct {
	Parity   Parity  `yaml:"parity"`
	Checksum Blocks  `yaml:"checksum"`
	LRC      Blocks  `yaml:"lrc"`
	CRC      CRC     `yaml:"crc"`
	Quality  Quality `yaml:"quality"`
	Logging  Logging `yaml:"logging"`
}

type Parity struct {
	BlockSize int    `yaml:"block_size"`
	Kind      string `yaml:"kind"`
}

type Blocks struct {
	BlockSize int `yaml:"block_size"`
}

type CRC struct {
	Polynomial string `yaml:"polynomial"`
}

// Quality drives the detection-rate evaluation.
type Quality struct {
	Seed        int64 `yaml:"seed"`
	PayloadBits int   `yaml:"payload_bits"`
	Trials      int   `yaml:"trials"`
	Batches     int   `yaml:"batches"`
	Flips       []int `yaml:"flips"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// Default returns 8-bit blocks, even parity and the generator 10011.
func Default() *Config {
	return &Config{
		Parity:   Parity{BlockSize: parity.DefaultBlockSize, Kind: parity.Even.String()},
		Checksum: Blocks{BlockSize: checksum.DefaultBlockSize},
		LRC:      Blocks{BlockSize: lrc.DefaultBlockSize},
		CRC:      CRC{Polynomial: crc.DefaultPolynomial},
		Quality: Quality{
			Seed:        1234567890,
			PayloadBits: 64,
			Trials:      200,
			Batches:     10,
			Flips:       []int{1, 2, 3, 4},
		},
		Logging: Logging{Level: "info"},
	}
}

// Load reads path over the defaults; keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that the codec constructors do not.
func (c *Config) Validate() error {
	q := c.Quality
	if q.PayloadBits <= 0 || q.Trials <= 0 || q.Batches <= 0 {
		return fmt.Errorf("%w: quality payload_bits, trials and batches must be positive", errdetect.ErrInvalidConfig)
	}
	for _, k := range q.Flips {
		if k <= 0 {
			return fmt.Errorf("%w: quality flip count %d", errdetect.ErrInvalidConfig, k)
		}
	}
	return nil
}

// Codec builds the named codec from the settings.
func (c *Config) Codec(name string) (errdetect.Codec, error) {
	var (
		codec errdetect.Codec
		err   error
	)
	switch name {
	case "parity":
		var kind parity.Kind
		if kind, err = parity.ParseKind(c.Parity.Kind); err != nil {
			return nil, err
		}
		codec, err = asCodec(parity.New(parity.WithBlockSize(c.Parity.BlockSize), parity.WithKind(kind)))
	case "checksum":
		codec, err = asCodec(checksum.New(checksum.WithBlockSize(c.Checksum.BlockSize)))
	case "lrc":
		codec, err = asCodec(lrc.New(lrc.WithBlockSize(c.LRC.BlockSize)))
	case "crc":
		codec, err = asCodec(crc.New(crc.WithPolynomial(c.CRC.Polynomial)))
	default:
		return nil, fmt.Errorf("%w: unknown codec %q", errdetect.ErrInvalidConfig, name)
	}
	if err != nil {
		return nil, err
	}
	return codec, nil
}

// asCodec drops the concrete type so a failed constructor yields a nil interface.
func asCodec[C errdetect.Codec](c C, err error) (errdetect.Codec, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Codecs builds every codec in Names order.
func (c *Config) Codecs() ([]errdetect.Codec, error) {
	codecs := make([]errdetect.Codec, 0, len(Names))
	for _, name := range Names {
		codec, err := c.Codec(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		codecs = append(codecs, codec)
	}
	return codecs, nil
}
