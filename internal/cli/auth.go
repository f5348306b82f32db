package cli

import (
	"context"
	"fmt"

	"github.com/RomaniOSDev/17PaperRoost/internal/auth"
	"github.com/RomaniOSDev/17PaperRoost/internal/cryptox"
)

// getSimpleText, getPassword, getMultiline and confirm are indirections
// used to facilitate testing. They point to interactive input helpers and
// can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	confirm       = Confirm
)

// Setup creates the PIN on first launch and unlocks the vault.
func (a *App) Setup(ctx context.Context) error {
	if a.gate.State() != auth.StateFirstLaunch {
		printlnFn("A PIN already exists. Use 'resetpin' to replace it.")
		return nil
	}

	pin, err := getPassword(a.out, "Create a 4-digit PIN")
	if err != nil {
		return err
	}
	defer cryptox.Wipe(pin)

	again, err := getPassword(a.out, "Confirm PIN")
	if err != nil {
		return err
	}
	defer cryptox.Wipe(again)

	if err := auth.ValidatePIN(string(pin), string(again)); err != nil {
		return err
	}
	if err := a.gate.CreatePIN(ctx, string(pin)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "PIN created. Vault unlocked.")
	return nil
}

// Unlock asks for the PIN. The result is final when it returns.
func (a *App) Unlock(ctx context.Context) error {
	if a.gate.State() == auth.StateFirstLaunch {
		printlnFn("No PIN yet. Use 'setup' to create one.")
		return nil
	}

	pin, err := getPassword(a.out, "Enter PIN")
	if err != nil {
		return err
	}
	defer cryptox.Wipe(pin)

	if _, err := a.gate.AuthenticateWithPIN(ctx, string(pin)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Vault unlocked.")
	return nil
}

func (a *App) Biometric(ctx context.Context) error {
	if err := a.gate.AuthenticateWithBiometrics(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Vault unlocked.")
	return nil
}

// Lock is the terminal counterpart of the app going to the background.
func (a *App) Lock(context.Context) error {
	a.gate.Background()
	fmt.Fprintln(a.out, "Vault locked.")
	return nil
}

func (a *App) ResetPIN(ctx context.Context) error {
	ok, err := confirm(a.reader, "Remove the PIN and lock the vault?", a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.gate.ResetPIN(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "PIN removed. Use 'setup' to create a new one.")
	return nil
}
