package auth

const PINLength = 4

// ValidatePIN checks a PIN entered on the create-PIN form: exactly four
// ASCII digits, typed identically twice.
func ValidatePIN(pin, confirm string) error {
	if len(pin) != PINLength {
		return ErrInvalidPIN
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return ErrInvalidPIN
		}
	}
	if pin != confirm {
		return ErrPINConfirmation
	}
	return nil
}
