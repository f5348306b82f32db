package contracts

import "errors"

var ErrNotFound = errors.New("contract not found")
