package config

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/opensquare/vdf/shared"
)

const (
	MinModulusBits = 64
	// ProductionModulusBits is the smallest modulus accepted by Validate unless
	// AllowInsecureModulus is set.
	ProductionModulusBits = 2048
	// MaxModulusBits keeps every residue within the proof encoding limit.
	MaxModulusBits = 8 * shared.MaxElementSize

	MaxNonceWindow = 1 << 16

	MinMillerRabinRounds = 1
	MaxMillerRabinRounds = 128
)

const (
	DefaultDST               = "opensquare/vdf/v1"
	DefaultMillerRabinRounds = 15
	DefaultWitnessPolicy     = WitnessPolicySeeded
	DefaultWitnessBase       = 10
	DefaultWitnessSeed       = "opensquare/miller-rabin/v1"
	DefaultNonceWindow       = MaxNonceWindow
	DefaultMaxT              = 1 << 32
	DefaultMaxReferenceT     = 1 << 12
	DefaultParallelChains    = true
)

// Witness selection policies understood by the primality oracle.
const (
	WitnessPolicySeeded = "seeded"
	WitnessPolicyTable  = "table"
	WitnessPolicyFixed  = "fixed"
)

// RSA2048 is the RSA-2048 factoring challenge number. Its factorization is not
// publicly known, which makes it usable as a trusted-setup-free modulus.
const RSA2048 = "25195908475657893494027183240048398571429282126204032027777137836043662020707595556264018525880784406918290641249515082189298559149176184502808489120072844992687392807287776735971418347270261896375014971824691165077613379859095700097330459748808428401797429100642458691817195118746121515172654632282216869987549182422433637259085141865462043576798423387184774447920739934236584823824281198163815010674810451660377306056201619676256133844143603833904414952634432190114657544454178424020924616515723350778707749817125772467962926386356373289912154831438167899885040445364023527381951378636564391212010397122822120720357"

// TestModulus is a 256-bit modulus with known factors. It is only suitable for tests.
//
//	p = 170141183460469231731687303715884118099
//	q = 340282366920938463463374607431768279691
const TestModulus = "57896044618658097711785492504343969745851806936868040736819229595713907227409"

type Config struct {
	// Modulus is the decimal (or 0x-prefixed hex) RSA modulus N.
	Modulus string `mapstructure:"modulus"`
	// DST is the domain-separation tag mixed into every challenge hash.
	DST string `mapstructure:"dst"`

	MillerRabinRounds uint   `mapstructure:"mr-rounds"`
	WitnessPolicy     string `mapstructure:"witness-policy"`
	WitnessBase       uint64 `mapstructure:"witness-base"`
	WitnessSeed       string `mapstructure:"witness-seed"`

	NonceWindow   uint32 `mapstructure:"nonce-window"`
	MaxT          uint64 `mapstructure:"max-t"`
	MaxReferenceT uint64 `mapstructure:"max-reference-t"`

	ParallelChains bool `mapstructure:"parallel-chains"`

	// AllowInsecureModulus disables the production modulus width check.
	AllowInsecureModulus bool `mapstructure:"allow-insecure-modulus"`
}

func DefaultConfig() Config {
	return Config{
		Modulus:           RSA2048,
		DST:               DefaultDST,
		MillerRabinRounds: DefaultMillerRabinRounds,
		WitnessPolicy:     DefaultWitnessPolicy,
		WitnessBase:       DefaultWitnessBase,
		WitnessSeed:       DefaultWitnessSeed,
		NonceWindow:       DefaultNonceWindow,
		MaxT:              DefaultMaxT,
		MaxReferenceT:     DefaultMaxReferenceT,
		ParallelChains:    DefaultParallelChains,
	}
}

// TestConfig returns the default config over TestModulus.
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.Modulus = TestModulus
	cfg.AllowInsecureModulus = true
	return cfg
}

// ParseModulus parses the configured modulus. It does not validate it.
func (cfg *Config) ParseModulus() (*big.Int, error) {
	if cfg.Modulus == "" {
		return nil, errors.New("`Modulus` is required")
	}
	n, ok := new(big.Int).SetString(cfg.Modulus, 0)
	if !ok {
		return nil, fmt.Errorf("invalid `Modulus`; expected: decimal or 0x-prefixed hex integer, given: %q", cfg.Modulus)
	}
	return n, nil
}

func (cfg *Config) Validate() error {
	n, err := cfg.ParseModulus()
	if err != nil {
		return err
	}
	if n.Bit(0) == 0 {
		return errors.New("invalid `Modulus`; expected: odd integer")
	}
	if n.BitLen() < MinModulusBits {
		return fmt.Errorf("invalid `Modulus`; expected: >= %d bits, given: %d", MinModulusBits, n.BitLen())
	}
	if n.BitLen() > MaxModulusBits {
		return fmt.Errorf("invalid `Modulus`; expected: <= %d bits, given: %d", MaxModulusBits, n.BitLen())
	}
	if !cfg.AllowInsecureModulus && n.BitLen() < ProductionModulusBits {
		return fmt.Errorf("invalid `Modulus`; expected: >= %d bits, given: %d (set AllowInsecureModulus for tests)",
			ProductionModulusBits, n.BitLen())
	}

	if cfg.DST == "" {
		return errors.New("invalid `DST`; expected: non-empty")
	}

	if cfg.MillerRabinRounds < MinMillerRabinRounds || cfg.MillerRabinRounds > MaxMillerRabinRounds {
		return fmt.Errorf("invalid `MillerRabinRounds`; expected: %d-%d, given: %d",
			MinMillerRabinRounds, MaxMillerRabinRounds, cfg.MillerRabinRounds)
	}

	switch cfg.WitnessPolicy {
	case WitnessPolicySeeded:
		if cfg.WitnessSeed == "" {
			return errors.New("invalid `WitnessSeed`; expected: non-empty for the seeded policy")
		}
	case WitnessPolicyTable:
	case WitnessPolicyFixed:
		if cfg.WitnessBase < 2 {
			return fmt.Errorf("invalid `WitnessBase`; expected: >= 2, given: %d", cfg.WitnessBase)
		}
	default:
		return fmt.Errorf("invalid `WitnessPolicy`; expected: one of %q, %q, %q, given: %q",
			WitnessPolicySeeded, WitnessPolicyTable, WitnessPolicyFixed, cfg.WitnessPolicy)
	}

	if cfg.NonceWindow == 0 || cfg.NonceWindow > MaxNonceWindow {
		return fmt.Errorf("invalid `NonceWindow`; expected: 1-%d, given: %d", MaxNonceWindow, cfg.NonceWindow)
	}

	if cfg.MaxT == 0 {
		return errors.New("invalid `MaxT`; expected: > 0")
	}
	if cfg.MaxReferenceT > cfg.MaxT {
		return fmt.Errorf("invalid `MaxReferenceT`; expected: <= MaxT (%d), given: %d", cfg.MaxT, cfg.MaxReferenceT)
	}

	return nil
}
