package auth

import (
	"context"
	"fmt"
	"strings"
)

// BiometryType is the biometric capability the device offers.
type BiometryType int

const (
	BiometryNone BiometryType = iota
	BiometryFingerprint
	BiometryFace
)

func (b BiometryType) String() string {
	switch b {
	case BiometryFingerprint:
		return "fingerprint"
	case BiometryFace:
		return "face"
	default:
		return "none"
	}
}

func ParseBiometry(s string) (BiometryType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return BiometryNone, nil
	case "fingerprint", "touch", "touchid":
		return BiometryFingerprint, nil
	case "face", "faceid":
		return BiometryFace, nil
	}
	return BiometryNone, fmt.Errorf("unknown biometry type %q", s)
}

// Verifier is the platform biometric check. Evaluate blocks until the user
// (or the OS) answers the prompt and returns nil on success.
type Verifier interface {
	Available(ctx context.Context) BiometryType
	Evaluate(ctx context.Context, reason string) error
}

// UnavailableVerifier is used on devices without biometrics.
type UnavailableVerifier struct{}

func (UnavailableVerifier) Available(context.Context) BiometryType { return BiometryNone }

func (UnavailableVerifier) Evaluate(context.Context, string) error {
	return ErrBiometricsUnavailable
}

// FuncVerifier adapts a prompt function to Verifier.
type FuncVerifier struct {
	Type   BiometryType
	Prompt func(ctx context.Context, reason string) error
}

func (v FuncVerifier) Available(context.Context) BiometryType {
	if v.Prompt == nil {
		return BiometryNone
	}
	return v.Type
}

func (v FuncVerifier) Evaluate(ctx context.Context, reason string) error {
	if v.Prompt == nil || v.Type == BiometryNone {
		return ErrBiometricsUnavailable
	}
	return v.Prompt(ctx, reason)
}
