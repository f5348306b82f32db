package models

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

var ErrUnknownStatus = errors.New("unknown contract status")

// ContractStatus is the lifecycle state of a contract. The zero value is
// StatusActive, matching the default of a freshly created contract.
type ContractStatus uint8

const (
	StatusActive ContractStatus = iota
	StatusPending
	StatusCompleted
	StatusCancelled
)

// Statuses lists every status in display order.
var Statuses = []ContractStatus{StatusActive, StatusPending, StatusCompleted, StatusCancelled}

type statusInfo struct {
	label string
	color color.RGBA
}

var statusTable = [...]statusInfo{
	StatusActive:    {label: "Active", color: color.RGBA{R: 0x34, G: 0xc7, B: 0x59, A: 0xff}},
	StatusPending:   {label: "Pending", color: color.RGBA{R: 0xff, G: 0x95, B: 0x00, A: 0xff}},
	StatusCompleted: {label: "Completed", color: color.RGBA{R: 0x00, G: 0x7a, B: 0xff, A: 0xff}},
	StatusCancelled: {label: "Cancelled", color: color.RGBA{R: 0xff, G: 0x3b, B: 0x30, A: 0xff}},
}

func (s ContractStatus) Valid() bool {
	return int(s) < len(statusTable)
}

func (s ContractStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("ContractStatus(%d)", uint8(s))
	}
	return statusTable[s].label
}

// Color is the badge colour shown next to the status.
func (s ContractStatus) Color() color.RGBA {
	if !s.Valid() {
		return color.RGBA{A: 0xff}
	}
	return statusTable[s].color
}

// ParseStatus accepts a status label, ignoring case and surrounding space.
func ParseStatus(label string) (ContractStatus, error) {
	label = strings.TrimSpace(label)
	for i, info := range statusTable {
		if strings.EqualFold(info.label, label) {
			return ContractStatus(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, label)
}

func (s ContractStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, uint8(s))
	}
	return []byte(statusTable[s].label), nil
}

func (s *ContractStatus) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
