// Package auth decides whether the vault is open. The Gate keeps the PIN
// settings in the kv store and tracks the volatile "authenticated" flag,
// which is dropped whenever the app loses the foreground.
//
// States:
//
//	Uninitialized --Load--> FirstLaunch (no PIN) | Locked (PIN set)
//	FirstLaunch   --CreatePIN-->                  Authenticated
//	Locked        --AuthenticateWithPIN / biometrics--> Authenticated
//	Authenticated --Logout / Background-->        Locked
//	any loaded    --ResetPIN-->                   FirstLaunch
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/RomaniOSDev/17PaperRoost/internal/cryptox"
	"github.com/RomaniOSDev/17PaperRoost/internal/logging"
	"github.com/RomaniOSDev/17PaperRoost/internal/repositories/kv"
)

// Persisted keys.
const (
	KeyPINCode       = "UserPINCode"
	KeyFirstLaunch   = "IsFirstLaunch"
	KeyUsePIN        = "UsePIN"
	KeyUseBiometrics = "UseBiometrics"
)

const defaultReason = "Authenticate to access your contracts"

type State int

const (
	StateUninitialized State = iota
	StateFirstLaunch
	StateLocked
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateFirstLaunch:
		return "first-launch"
	case StateLocked:
		return "locked"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "uninitialized"
	}
}

// Option configures a Gate.
type Option func(*Gate)

// WithMaxAttempts locks PIN entry for lockout after n consecutive wrong
// PINs. n <= 0 disables the limit, which is the default.
func WithMaxAttempts(n int, lockout time.Duration) Option {
	return func(g *Gate) {
		g.maxAttempts = n
		g.lockout = lockout
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// WithReason sets the text shown in the biometric prompt.
func WithReason(reason string) Option {
	return func(g *Gate) { g.reason = reason }
}

// Gate is safe for concurrent use. One Gate is created per process and
// handed to whoever needs it.
type Gate struct {
	store    kv.Store
	verifier Verifier
	logger   logging.Logger

	mu              sync.Mutex
	loaded          bool
	pinCode         string
	isFirstLaunch   bool
	usePIN          bool
	useBiometrics   bool
	isAuthenticated bool
	biometry        BiometryType

	maxAttempts int
	lockout     time.Duration
	failures    int
	lockedUntil time.Time
	now         func() time.Time
	reason      string
}

func New(store kv.Store, verifier Verifier, logger logging.Logger, opts ...Option) *Gate {
	if verifier == nil {
		verifier = UnavailableVerifier{}
	}
	g := &Gate{
		store:         store,
		verifier:      verifier,
		logger:        logger.With("component", "auth"),
		isFirstLaunch: true,
		useBiometrics: true,
		now:           time.Now,
		reason:        defaultReason,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Load reads the persisted settings and probes biometric support. The gate
// always starts unauthenticated.
func (g *Gate) Load(ctx context.Context) error {
	pin, err := g.store.Get(ctx, KeyPINCode)
	if err != nil {
		return fmt.Errorf("load PIN settings: %w", err)
	}
	useBio, ok, err := kv.GetBool(ctx, g.store, KeyUseBiometrics)
	if err != nil {
		return fmt.Errorf("load PIN settings: %w", err)
	}
	if !ok {
		useBio = true
	}

	biometry := g.verifier.Available(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()

	g.pinCode = string(pin)
	g.isFirstLaunch = g.pinCode == ""
	g.usePIN = g.pinCode != ""
	g.useBiometrics = useBio
	g.biometry = biometry
	g.isAuthenticated = false
	g.loaded = true

	if biometry == BiometryNone {
		g.logger.Info(ctx, "no biometrics available")
	} else {
		g.logger.Info(ctx, "biometrics detected", "type", biometry.String())
	}
	g.logger.Info(ctx, "authentication settings loaded",
		"first_launch", g.isFirstLaunch, "use_pin", g.usePIN)
	return nil
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateLocked()
}

func (g *Gate) stateLocked() State {
	switch {
	case !g.loaded:
		return StateUninitialized
	case g.isAuthenticated:
		return StateAuthenticated
	case g.pinCode == "":
		return StateFirstLaunch
	default:
		return StateLocked
	}
}

func (g *Gate) IsAuthenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isAuthenticated
}

func (g *Gate) IsFirstLaunch() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isFirstLaunch
}

func (g *Gate) UsePIN() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.usePIN
}

func (g *Gate) UseBiometrics() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.useBiometrics
}

// Biometry is the capability detected by Load.
func (g *Gate) Biometry() BiometryType {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.biometry
}

// CreatePIN stores a new PIN and opens the gate. Format checks belong to
// the caller (see ValidatePIN); only an empty PIN is refused here.
func (g *Gate) CreatePIN(ctx context.Context, pin string) error {
	if pin == "" {
		return ErrInvalidPIN
	}
	if err := g.requireLoaded(); err != nil {
		return err
	}

	hashed, err := cryptox.HashPIN(pin)
	if err != nil {
		return fmt.Errorf("hash PIN: %w", err)
	}

	if err := g.persist(ctx, hashed, false, true); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.pinCode = hashed
	g.isFirstLaunch = false
	g.usePIN = true
	g.isAuthenticated = true
	g.failures = 0
	g.lockedUntil = time.Time{}

	g.logger.Info(ctx, "PIN created")
	return nil
}

// AuthenticateWithPIN checks candidate against the stored PIN. The result
// is final when the call returns: on success the gate is already open.
func (g *Gate) AuthenticateWithPIN(ctx context.Context, candidate string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.loaded {
		return false, ErrNotLoaded
	}
	if g.pinCode == "" {
		return false, ErrPINNotSet
	}

	now := g.now()
	if now.Before(g.lockedUntil) {
		return false, fmt.Errorf("%w: retry in %s", ErrTooManyAttempts, g.lockedUntil.Sub(now).Round(time.Second))
	}

	ok, err := cryptox.VerifyPIN(candidate, g.pinCode)
	if err != nil {
		return false, fmt.Errorf("verify PIN: %w", err)
	}

	if !ok {
		g.failures++
		if g.maxAttempts > 0 && g.failures >= g.maxAttempts {
			g.lockedUntil = now.Add(g.lockout)
			g.failures = 0
			g.logger.Warn(ctx, "PIN entry locked", "until", g.lockedUntil)
		}
		g.logger.Info(ctx, "PIN authentication failed")
		return false, ErrPINMismatch
	}

	g.failures = 0
	g.isAuthenticated = true
	g.logger.Info(ctx, "PIN authentication successful")

	if !cryptox.IsHashed(g.pinCode) {
		g.upgradeLegacyPIN(ctx, candidate)
	}
	return true, nil
}

// upgradeLegacyPIN replaces a clear-text PIN left by an older build with
// its hash. Failure only means the upgrade is retried next time.
func (g *Gate) upgradeLegacyPIN(ctx context.Context, pin string) {
	hashed, err := cryptox.HashPIN(pin)
	if err != nil {
		g.logger.Warn(ctx, "PIN upgrade skipped", "error", err)
		return
	}
	if err := g.store.Set(ctx, KeyPINCode, []byte(hashed)); err != nil {
		g.logger.Warn(ctx, "PIN upgrade skipped", "error", err)
		return
	}
	g.pinCode = hashed
}

// AuthenticateWithBiometrics asks the platform verifier. It never falls
// back to PIN entry; the caller offers that separately.
func (g *Gate) AuthenticateWithBiometrics(ctx context.Context) error {
	g.mu.Lock()
	loaded, pinSet := g.loaded, g.pinCode != ""
	usable := g.useBiometrics && g.biometry != BiometryNone
	reason := g.reason
	g.mu.Unlock()

	if !loaded {
		return ErrNotLoaded
	}
	if !pinSet {
		return ErrPINNotSet
	}
	if !usable {
		return ErrBiometricsUnavailable
	}

	// the prompt may block for as long as the user takes; no lock held
	if err := g.verifier.Evaluate(ctx, reason); err != nil {
		g.logger.Info(ctx, "biometric authentication failed", "error", err)
		if errors.Is(err, ErrBiometricsUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrBiometricsFailed, err)
	}

	g.mu.Lock()
	g.isAuthenticated = true
	g.mu.Unlock()

	g.logger.Info(ctx, "biometric authentication successful")
	return nil
}

// Authenticate picks the unlock method the way the app does at start-up:
// biometrics when enabled and available, otherwise it reports that a PIN
// must be entered. A locked gate always has a PIN, so it never opens
// without one of the two.
func (g *Gate) Authenticate(ctx context.Context) error {
	g.mu.Lock()
	state := g.stateLocked()
	useBio := g.useBiometrics && g.biometry != BiometryNone
	g.mu.Unlock()

	switch state {
	case StateUninitialized:
		return ErrNotLoaded
	case StateFirstLaunch:
		return ErrPINNotSet
	case StateAuthenticated:
		return nil
	}

	if useBio {
		return g.AuthenticateWithBiometrics(ctx)
	}
	return ErrPINRequired
}

// Logout closes the gate; the PIN is kept.
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.isAuthenticated = false
}

// Background must be called when the app leaves the foreground.
func (g *Gate) Background() {
	g.Logout()
}

// ResetPIN forgets the PIN and returns the gate to first-launch state.
func (g *Gate) ResetPIN(ctx context.Context) error {
	if err := g.requireLoaded(); err != nil {
		return err
	}
	if err := g.persist(ctx, "", true, false); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.pinCode = ""
	g.isFirstLaunch = true
	g.usePIN = false
	g.isAuthenticated = false
	g.failures = 0
	g.lockedUntil = time.Time{}

	g.logger.Info(ctx, "PIN reset")
	return nil
}

func (g *Gate) SetUseBiometrics(ctx context.Context, enabled bool) error {
	if err := kv.SetBool(ctx, g.store, KeyUseBiometrics, enabled); err != nil {
		return fmt.Errorf("save biometrics setting: %w", err)
	}
	g.mu.Lock()
	g.useBiometrics = enabled
	g.mu.Unlock()
	return nil
}

func (g *Gate) requireLoaded() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.loaded {
		return ErrNotLoaded
	}
	return nil
}

func (g *Gate) persist(ctx context.Context, pin string, firstLaunch, usePIN bool) error {
	err := g.store.InTx(ctx, func(ctx context.Context, r kv.Repository) error {
		if err := r.Set(ctx, KeyPINCode, []byte(pin)); err != nil {
			return err
		}
		if err := kv.SetBool(ctx, r, KeyFirstLaunch, firstLaunch); err != nil {
			return err
		}
		return kv.SetBool(ctx, r, KeyUsePIN, usePIN)
	})
	if err != nil {
		g.logger.Error(ctx, "failed to save PIN settings", "error", err)
		return fmt.Errorf("save PIN settings: %w", err)
	}
	return nil
}
