package services

import "errors"

var (
	ErrTitleRequired        = errors.New("title is required")
	ErrSignatureRequired    = errors.New("signature is required")
	ErrSignatureUnavailable = errors.New("signature could not be rendered")
	ErrNoSignature          = errors.New("contract has no signature")
)
