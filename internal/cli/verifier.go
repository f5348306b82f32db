package cli

import (
	"context"
	"errors"

	"github.com/RomaniOSDev/17PaperRoost/internal/auth"
)

var errBiometricDeclined = errors.New("declined by user")

// promptVerifier simulates the platform biometric sheet with a yes/no
// question. BiometryNone yields a verifier that reports no hardware.
func (a *App) promptVerifier(kind auth.BiometryType) auth.Verifier {
	if kind == auth.BiometryNone {
		return auth.UnavailableVerifier{}
	}
	return auth.FuncVerifier{
		Type: kind,
		Prompt: func(ctx context.Context, reason string) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok, err := Confirm(a.reader, reason+" ("+kind.String()+")", a.out)
			if err != nil {
				return err
			}
			if !ok {
				return errBiometricDeclined
			}
			return nil
		},
	}
}
