package verifying_test

import (
	"encoding/json"
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"github.com/opensquare/vdf/config"
	"github.com/opensquare/vdf/proving"
	"github.com/opensquare/vdf/shared"
	"github.com/opensquare/vdf/verifying"
)

var (
	pk      = common.HexToAddress("0x5B38Da6a701c568545dCfcB03FcB875f56beddC4")
	otherPk = common.HexToAddress("0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2")
	fixedX  = big.NewInt(1234567890123456789)
)

func setup(tb testing.TB, opts ...verifying.OptionFunc) (*proving.Prover, *verifying.Verifier) {
	p, err := proving.NewProver(config.TestConfig())
	require.NoError(tb, err)
	v, err := verifying.NewVerifier(config.TestConfig(), opts...)
	require.NoError(tb, err)
	return p, v
}

func requireStep(t *testing.T, err error, step string, msgAndArgs ...any) {
	t.Helper()
	var verr *shared.VerificationError
	require.True(t, errors.As(err, &verr), msgAndArgs...)
	require.Equal(t, step, verr.Step, msgAndArgs...)
	require.ErrorIs(t, err, shared.ErrInvalidProof)
}

func Test_EndToEnd(t *testing.T) {
	r := require.New(t)
	p, v := setup(t, verifying.WithLogger(zaptest.NewLogger(t)))

	proof, err := p.Evaluate(4, fixedX, pk)
	r.NoError(err)

	r.True(v.Verify(fixedX, 4, proof, pk))
	r.False(v.Verify(fixedX, 4, proof, otherPk))
	r.False(v.Verify(fixedX, 5, proof, pk))
	r.False(v.Verify(new(big.Int).Add(fixedX, big.NewInt(1)), 4, proof, pk))

	requireStep(t, v.Check(fixedX, 4, proof, otherPk), shared.StepChallenge)
}

func Test_Completeness(t *testing.T) {
	r := require.New(t)
	p, v := setup(t)
	rng := rand.New(rand.NewSource(1))

	for _, steps := range []uint64{1, 2, 3, 4, 8, 17, 64, 255, 1024} {
		x, err := p.Group().Sample(rng)
		r.NoError(err)
		var id common.Address
		rng.Read(id[:])

		proof, err := p.Evaluate(steps, x, id)
		r.NoError(err)
		r.NoError(v.Check(x, steps, proof, id), "T=%d", steps)
	}
}

func Test_Soundness(t *testing.T) {
	p, v := setup(t)
	n := p.Group().Modulus()
	proof, err := p.Evaluate(32, fixedX, pk)
	require.NoError(t, err)

	bump := func(x *big.Int) *big.Int {
		z := new(big.Int).Add(x, big.NewInt(1))
		return z.Mod(z, n)
	}

	tests := []struct {
		name   string
		mutate func(*shared.Proof)
		step   string
	}{
		{"pi1", func(p *shared.Proof) { p.Pi1 = bump(p.Pi1) }, shared.StepChain1},
		{"pi2", func(p *shared.Proof) { p.Pi2 = bump(p.Pi2) }, shared.StepChain2},
		{"y1", func(p *shared.Proof) { p.Y1 = bump(p.Y1) }, shared.StepChallenge},
		{"y2", func(p *shared.Proof) { p.Y2 = bump(p.Y2) }, shared.StepChallenge},
		{"q1", func(p *shared.Proof) { p.Q1 = bump(p.Q1) }, shared.StepChain1},
		{"q2", func(p *shared.Proof) { p.Q2 = bump(p.Q2) }, shared.StepChain2},
		{"l", func(p *shared.Proof) { p.Challenge.L = new(big.Int).Add(p.Challenge.L, big.NewInt(2)) }, shared.StepChallenge},
		{"nonce", func(p *shared.Proof) { p.Challenge.Nonce++ }, shared.StepChallenge},
		{"swapped chains", func(p *shared.Proof) { p.Pi1, p.Pi2 = p.Pi2, p.Pi1 }, shared.StepChain1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bad := proof.Clone()
			tc.mutate(bad)
			requireStep(t, v.Check(fixedX, 32, bad, pk), tc.step)
			require.False(t, v.Verify(fixedX, 32, bad, pk))
		})
	}

	require.True(t, v.Verify(fixedX, 32, proof, pk))
}

func Test_MalformedInput(t *testing.T) {
	p, v := setup(t)
	n := p.Group().Modulus()
	proof, err := p.Evaluate(8, fixedX, pk)
	require.NoError(t, err)

	tests := []struct {
		name   string
		x      *big.Int
		steps  uint64
		mutate func(*shared.Proof)
	}{
		{"nil l", fixedX, 8, func(p *shared.Proof) { p.Challenge.L = nil }},
		{"nil pi1", fixedX, 8, func(p *shared.Proof) { p.Pi1 = nil }},
		{"nil pi2", fixedX, 8, func(p *shared.Proof) { p.Pi2 = nil }},
		{"nil y1", fixedX, 8, func(p *shared.Proof) { p.Y1 = nil }},
		{"nil y2", fixedX, 8, func(p *shared.Proof) { p.Y2 = nil }},
		{"nil q1", fixedX, 8, func(p *shared.Proof) { p.Q1 = nil }},
		{"nil q2", fixedX, 8, func(p *shared.Proof) { p.Q2 = nil }},
		{"y1 = N", fixedX, 8, func(p *shared.Proof) { p.Y1 = new(big.Int).Set(n) }},
		{"pi2 > N", fixedX, 8, func(p *shared.Proof) { p.Pi2 = new(big.Int).Lsh(n, 3) }},
		{"negative q1", fixedX, 8, func(p *shared.Proof) { p.Q1 = big.NewInt(-1) }},
		{"huge q2", fixedX, 8, func(p *shared.Proof) { p.Q2 = new(big.Int).Lsh(n, 1024) }},
		{"zero T", fixedX, 0, func(*shared.Proof) {}},
		{"T above max", fixedX, config.DefaultMaxT + 1, func(*shared.Proof) {}},
		{"nil x", nil, 8, func(*shared.Proof) {}},
		{"unit x", big.NewInt(1), 8, func(*shared.Proof) {}},
		{"x = N", n, 8, func(*shared.Proof) {}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bad := proof.Clone()
			tc.mutate(bad)
			requireStep(t, v.Check(tc.x, tc.steps, bad, pk), shared.StepStructure)
		})
	}

	requireStep(t, v.Check(fixedX, 8, nil, pk), shared.StepStructure)
	require.False(t, v.Verify(fixedX, 8, &shared.Proof{}, pk))
}

func Test_ReferenceIdentity(t *testing.T) {
	r := require.New(t)
	p, quotient := setup(t)
	_, reference := setup(t, verifying.WithIdentity(verifying.ReferenceIdentity{MaxT: 256}))
	r.Equal("quotient", quotient.Identity().Name())
	r.Equal("reference(256)", reference.Identity().Name())

	rng := rand.New(rand.NewSource(7))
	for _, steps := range []uint64{1, 4, 5, 33, 256} {
		x, err := p.Group().Sample(rng)
		r.NoError(err)
		proof, err := p.Evaluate(steps, x, pk)
		r.NoError(err)

		r.True(quotient.Verify(x, steps, proof, pk), "T=%d", steps)
		r.True(reference.Verify(x, steps, proof, pk), "T=%d", steps)

		bad := proof.Clone()
		bad.Pi2 = new(big.Int).Add(bad.Pi2, big.NewInt(1))
		bad.Pi2.Mod(bad.Pi2, p.Group().Modulus())
		r.False(quotient.Verify(x, steps, bad, pk), "T=%d", steps)
		r.False(reference.Verify(x, steps, bad, pk), "T=%d", steps)
	}

	proof, err := p.Evaluate(257, fixedX, pk)
	r.NoError(err)
	r.True(quotient.Verify(fixedX, 257, proof, pk))
	requireStep(t, reference.Check(fixedX, 257, proof, pk), shared.StepChain1)
}

func Test_Codecs(t *testing.T) {
	r := require.New(t)
	p, v := setup(t)
	proof, err := p.Evaluate(64, fixedX, pk)
	r.NoError(err)

	data, err := json.Marshal(proof)
	r.NoError(err)
	var fromJSON shared.Proof
	r.NoError(json.Unmarshal(data, &fromJSON))
	r.True(v.Verify(fixedX, 64, &fromJSON, pk))

	bin, err := proof.MarshalBinary()
	r.NoError(err)
	var fromXDR shared.Proof
	r.NoError(fromXDR.UnmarshalBinary(bin))
	r.True(v.Verify(fixedX, 64, &fromXDR, pk))
}

func Test_ConcurrentVerify(t *testing.T) {
	r := require.New(t)
	p, v := setup(t)
	proof, err := p.Evaluate(128, fixedX, pk)
	r.NoError(err)

	var eg errgroup.Group
	for i := 0; i < 8; i++ {
		eg.Go(func() error {
			return v.Check(fixedX, 128, proof, pk)
		})
	}
	r.NoError(eg.Wait())
}

func Test_NewVerifier(t *testing.T) {
	r := require.New(t)

	_, err := verifying.NewVerifier(config.TestConfig(), verifying.WithIdentity(nil))
	r.Error(err)
	_, err = verifying.NewVerifier(config.TestConfig(), verifying.WithLogger(nil))
	r.Error(err)
	_, err = verifying.NewVerifier(config.TestConfig(), verifying.WithWitnessPolicy(nil))
	r.Error(err)

	cfg := config.TestConfig()
	cfg.Modulus = "0x10"
	_, err = verifying.NewVerifier(cfg)
	r.Error(err)
}

func BenchmarkVerify(b *testing.B) {
	p, err := proving.NewProver(config.DefaultConfig())
	require.NoError(b, err)
	v, err := verifying.NewVerifier(config.DefaultConfig())
	require.NoError(b, err)
	proof, err := p.Evaluate(1<<10, fixedX, pk)
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		require.True(b, v.Verify(fixedX, 1<<10, proof, pk))
	}
}
