package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Overclock-Validator/notepad/pkg/accounts"
	"github.com/Overclock-Validator/notepad/pkg/base58"
	"github.com/Overclock-Validator/notepad/pkg/cu"
	"github.com/Overclock-Validator/notepad/pkg/features"
	"github.com/Overclock-Validator/notepad/pkg/notepad"
	"github.com/Overclock-Validator/notepad/pkg/noteclient"
	"github.com/gagliardetto/solana-go"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type FeaturesConfig struct {
	DelegatedNoteModify bool `yaml:"delegated_note_modify"`
}

type RpcConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

type Config struct {
	ProgramId         string         `yaml:"program_id"`
	Store             StoreConfig    `yaml:"store"`
	ComputeUnitLimit  uint64         `yaml:"compute_unit_limit"`
	MaxNoteAccountLen uint64         `yaml:"max_note_account_len"`
	SlotPolicy        string         `yaml:"slot_policy"`
	Features          FeaturesConfig `yaml:"features"`
	Rpc               RpcConfig      `yaml:"rpc"`
}

func Default() *Config {
	return &Config{
		ProgramId: noteclient.DefaultProgramId.String(),
		Store: StoreConfig{
			Backend: accounts.BackendPebble,
			Path:    "./notepad-ledger",
		},
		ComputeUnitLimit:  cu.DefaultComputeUnitLimit,
		MaxNoteAccountLen: notepad.MaxNoteAccountLen,
		SlotPolicy:        notepad.SlotPolicyExact.String(),
		Rpc: RpcConfig{
			Endpoint: "https://api.devnet.solana.com",
			Timeout:  30 * time.Second,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	err = decoder.Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	klog.V(2).Infof("loaded config from %s", path)
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if _, err := cfg.ProgramPubkey(); err != nil {
		return err
	}

	switch cfg.Store.Backend {
	case accounts.BackendMemory, "":
	case accounts.BackendLotusDb, accounts.BackendPebble, accounts.BackendPogreb:
		if cfg.Store.Path == "" {
			return fmt.Errorf("store backend %s needs a path", cfg.Store.Backend)
		}
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if cfg.ComputeUnitLimit == 0 {
		return errors.New("compute_unit_limit must be positive")
	}
	if cfg.MaxNoteAccountLen == 0 {
		return errors.New("max_note_account_len must be positive")
	}

	if _, err := notepad.ParseSlotPolicy(cfg.SlotPolicy); err != nil {
		return err
	}

	if cfg.Rpc.Timeout < 0 {
		return errors.New("rpc timeout must not be negative")
	}

	return nil
}

func (cfg *Config) ProgramPubkey() (solana.PublicKey, error) {
	programId, err := base58.DecodeFromString(cfg.ProgramId)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid program_id %q: %w", cfg.ProgramId, err)
	}
	return programId, nil
}

func (cfg *Config) NotepadProgram() (*notepad.Program, error) {
	policy, err := notepad.ParseSlotPolicy(cfg.SlotPolicy)
	if err != nil {
		return nil, err
	}
	return &notepad.Program{MaxAccountLen: cfg.MaxNoteAccountLen, SlotPolicy: policy}, nil
}

// FeatureSet returns the features enabled by the config, all activated at
// slot 0.
func (cfg *Config) FeatureSet() *features.Features {
	f := features.NewFeaturesDefault()
	if cfg.Features.DelegatedNoteModify {
		f.EnableFeature(features.DelegatedNoteModify, 0)
	}
	return f
}
