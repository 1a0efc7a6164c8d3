package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPrimeFound is returned when the nonce window is exhausted without a
	// prime candidate. It signals malformed parameters and is never retried.
	ErrNoPrimeFound = errors.New("no prime challenge within nonce window")

	// ErrInvalidProof is matched by every *VerificationError.
	ErrInvalidProof = errors.New("invalid proof")
)

// InputDomainError reports an argument outside the domain of an operation.
type InputDomainError struct {
	Param  string
	Reason string
}

func (err *InputDomainError) Error() string {
	return fmt.Sprintf("invalid `%v`: %v", err.Param, err.Reason)
}

// Verification steps reported by VerificationError.
const (
	StepStructure = "structure"
	StepChallenge = "challenge"
	StepPrimality = "primality"
	StepChain1    = "chain1"
	StepChain2    = "chain2"
)

// VerificationError describes why a proof was rejected.
type VerificationError struct {
	Step   string
	Reason string
}

func (err *VerificationError) Error() string {
	return fmt.Sprintf("proof rejected at %v: %v", err.Step, err.Reason)
}

func (err *VerificationError) Is(target error) bool {
	return target == ErrInvalidProof
}
