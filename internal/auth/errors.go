package auth

import "errors"

var (
	ErrInvalidPIN            = errors.New("PIN must be 4 digits")
	ErrPINConfirmation       = errors.New("PINs do not match")
	ErrPINMismatch           = errors.New("incorrect PIN")
	ErrPINNotSet             = errors.New("no PIN has been created")
	ErrPINRequired           = errors.New("PIN entry required")
	ErrTooManyAttempts       = errors.New("too many incorrect PIN attempts")
	ErrBiometricsUnavailable = errors.New("biometric authentication unavailable")
	ErrBiometricsFailed      = errors.New("biometric authentication failed")
	ErrNotLoaded             = errors.New("authentication settings not loaded")
)
