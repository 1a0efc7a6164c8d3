package config_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensquare/vdf/config"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())

	n, err := cfg.ParseModulus()
	require.NoError(t, err)
	require.Equal(t, 2048, n.BitLen())
}

func TestTestConfigIsValid(t *testing.T) {
	t.Parallel()
	cfg := config.TestConfig()
	require.NoError(t, cfg.Validate())

	n, err := cfg.ParseModulus()
	require.NoError(t, err)
	require.Equal(t, 256, n.BitLen())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"empty modulus", func(c *config.Config) { c.Modulus = "" }},
		{"garbage modulus", func(c *config.Config) { c.Modulus = "not a number" }},
		{"even modulus", func(c *config.Config) { c.Modulus = "0x10000000000000000000000" }},
		{"tiny modulus", func(c *config.Config) { c.Modulus = "4294967311" }},
		{"huge modulus", func(c *config.Config) {
			c.Modulus = new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), config.MaxModulusBits), big.NewInt(1)).String()
		}},
		{"insecure modulus", func(c *config.Config) { c.AllowInsecureModulus = false }},
		{"empty dst", func(c *config.Config) { c.DST = "" }},
		{"zero rounds", func(c *config.Config) { c.MillerRabinRounds = 0 }},
		{"too many rounds", func(c *config.Config) { c.MillerRabinRounds = config.MaxMillerRabinRounds + 1 }},
		{"unknown policy", func(c *config.Config) { c.WitnessPolicy = "random" }},
		{"seeded without seed", func(c *config.Config) { c.WitnessSeed = "" }},
		{"fixed base one", func(c *config.Config) {
			c.WitnessPolicy = config.WitnessPolicyFixed
			c.WitnessBase = 1
		}},
		{"zero nonce window", func(c *config.Config) { c.NonceWindow = 0 }},
		{"nonce window too large", func(c *config.Config) { c.NonceWindow = config.MaxNonceWindow + 1 }},
		{"zero max t", func(c *config.Config) { c.MaxT = 0 }},
		{"reference above max t", func(c *config.Config) {
			c.MaxT = 10
			c.MaxReferenceT = 11
		}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.TestConfig()
			tc.modify(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestValidateAcceptsHexModulus(t *testing.T) {
	t.Parallel()
	cfg := config.TestConfig()
	cfg.Modulus = "0x8000000000000000000000000000b59880000000000000000000000032507b11"
	require.NoError(t, cfg.Validate())

	n, err := cfg.ParseModulus()
	require.NoError(t, err)
	require.Equal(t, config.TestModulus, n.String())
}

func TestValidateTablePolicyIgnoresSeed(t *testing.T) {
	t.Parallel()
	cfg := config.TestConfig()
	cfg.WitnessPolicy = config.WitnessPolicyTable
	cfg.WitnessSeed = ""
	require.NoError(t, cfg.Validate())
}
