// Package models defines the records kept in the contract vault.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Contract is one agreement tracked by the vault. JSON field names are the
// persisted format and must not change.
type Contract struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	ContractType   ContractType   `json:"contractType"`
	StartDate      time.Time      `json:"startDate"`
	EndDate        time.Time      `json:"endDate"`
	Participants   string         `json:"participants"`
	Notes          string         `json:"notes"`
	Status         ContractStatus `json:"status"`
	SignatureData  []byte         `json:"signatureData,omitempty"`
	AttachmentData []byte         `json:"attachmentData,omitempty"`
	AttachmentName *string        `json:"attachmentName,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// NewContract returns an Active contract with a fresh id and creation time.
func NewContract(title string, kind ContractType, start, end time.Time, participants, notes string) Contract {
	return Contract{
		ID:           uuid.NewString(),
		Title:        title,
		ContractType: kind,
		StartDate:    start,
		EndDate:      end,
		Participants: participants,
		Notes:        notes,
		Status:       StatusActive,
		CreatedAt:    time.Now().UTC(),
	}
}

func (c Contract) HasSignature() bool { return len(c.SignatureData) > 0 }

func (c Contract) HasAttachment() bool { return len(c.AttachmentData) > 0 }

// Clone returns a deep copy so callers cannot alias stored byte slices.
// Empty signature or attachment data becomes nil, which is how such a
// contract reads back after it is saved.
func (c Contract) Clone() Contract {
	out := c
	out.SignatureData = cloneBytes(c.SignatureData)
	out.AttachmentData = cloneBytes(c.AttachmentData)
	if c.AttachmentName != nil {
		name := *c.AttachmentName
		out.AttachmentName = &name
	}
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}
