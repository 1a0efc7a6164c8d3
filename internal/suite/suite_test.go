package suite

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/opensquare/vdf/config"
	"github.com/opensquare/vdf/primality"
)

func TestNew(t *testing.T) {
	r := require.New(t)

	s, err := New(config.TestConfig(), zaptest.NewLogger(t), nil)
	r.NoError(err)
	r.Equal(256, s.Group.BitLen())
	r.Equal(config.WitnessPolicySeeded, s.Oracle.Policy().Name())
	r.Equal(uint32(config.DefaultNonceWindow), s.Deriver.Window())
	r.Same(s.Group, s.Hasher.Group())

	s, err = New(config.TestConfig(), nil, primality.DefaultTable)
	r.NoError(err)
	r.Equal(config.WitnessPolicyTable, s.Oracle.Policy().Name())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	r := require.New(t)

	cfg := config.TestConfig()
	cfg.AllowInsecureModulus = false
	_, err := New(cfg, nil, nil)
	r.Error(err)

	cfg = config.TestConfig()
	cfg.NonceWindow = 0
	_, err = New(cfg, nil, nil)
	r.Error(err)
}
