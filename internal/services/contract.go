// Package services holds the application workflows that sit between the
// terminal front end and the core packages.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RomaniOSDev/17PaperRoost/internal/filex"
	"github.com/RomaniOSDev/17PaperRoost/internal/logging"
	"github.com/RomaniOSDev/17PaperRoost/internal/models"
	"github.com/RomaniOSDev/17PaperRoost/internal/signature"
)

// ContractStore is the part of contracts.Store the workflows need.
type ContractStore interface {
	Add(ctx context.Context, c models.Contract) error
	Update(ctx context.Context, c models.Contract) error
	Get(id string) (models.Contract, error)
}

// Renderer turns strokes into the stored raster and back into images of
// other sizes.
type Renderer interface {
	HighQuality(lines []signature.Line) ([]byte, error)
	Rerender(src []byte, size signature.Size) ([]byte, error)
}

// Strokes is a source of committed signature lines, normally a *signature.Pad.
type Strokes interface {
	Lines() []signature.Line
}

// Draft holds the fields of the new-contract form.
type Draft struct {
	Title        string
	Type         models.ContractType
	StartDate    time.Time
	EndDate      time.Time
	Participants string
	Notes        string
}

// ContractService defines the contract workflows.
//
//   - Save: validate a draft, sign it and add it to the store.
//   - Resign: replace the signature of an existing contract.
//   - SetStatus: move a contract to another status.
//   - AttachFile: store an image file with a contract.
//   - SignatureImage: render a stored signature at another size.
type ContractService interface {
	Save(ctx context.Context, draft Draft, strokes Strokes) (models.Contract, error)
	Resign(ctx context.Context, id string, strokes Strokes) error
	SetStatus(ctx context.Context, id string, status models.ContractStatus) error
	AttachFile(ctx context.Context, id, path string) error
	SignatureImage(ctx context.Context, id string, size signature.Size) ([]byte, error)
}

type contractService struct {
	store         ContractStore
	renderer      Renderer
	logger        logging.Logger
	maxAttachment int64
}

// NewContractService builds the service; maxAttachment <= 0 uses
// filex.DefaultMaxAttachment.
func NewContractService(store ContractStore, renderer Renderer, logger logging.Logger, maxAttachment int64) ContractService {
	return &contractService{
		store:         store,
		renderer:      renderer,
		logger:        logger.With("component", "contract-service"),
		maxAttachment: maxAttachment,
	}
}

// Save is the only way a new contract enters the store: it needs a title
// and at least one stroke, and the signature is rendered before anything
// is stored.
func (s *contractService) Save(ctx context.Context, draft Draft, strokes Strokes) (models.Contract, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return models.Contract{}, ErrTitleRequired
	}

	raster, err := s.sign(ctx, strokes)
	if err != nil {
		return models.Contract{}, err
	}

	kind := draft.Type
	if kind == "" {
		kind = models.TypeOther
	}

	c := models.NewContract(title, kind, draft.StartDate, draft.EndDate,
		strings.TrimSpace(draft.Participants), strings.TrimSpace(draft.Notes))
	c.SignatureData = raster

	if err := s.store.Add(ctx, c); err != nil {
		return c, fmt.Errorf("save contract: %w", err)
	}
	return c, nil
}

func (s *contractService) Resign(ctx context.Context, id string, strokes Strokes) error {
	c, err := s.store.Get(id)
	if err != nil {
		return err
	}

	raster, err := s.sign(ctx, strokes)
	if err != nil {
		return err
	}
	c.SignatureData = raster

	if err := s.store.Update(ctx, c); err != nil {
		return fmt.Errorf("re-sign contract: %w", err)
	}
	return nil
}

func (s *contractService) sign(ctx context.Context, strokes Strokes) ([]byte, error) {
	var lines []signature.Line
	if strokes != nil {
		lines = strokes.Lines()
	}
	if len(lines) == 0 {
		return nil, ErrSignatureRequired
	}

	raster, err := s.renderer.HighQuality(lines)
	if err != nil {
		s.logger.Error(ctx, "failed to render signature", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrSignatureUnavailable, err)
	}
	s.logger.Debug(ctx, "signature rendered", "lines", len(lines), "bytes", len(raster))
	return raster, nil
}

func (s *contractService) SetStatus(ctx context.Context, id string, status models.ContractStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %d", models.ErrUnknownStatus, uint8(status))
	}

	c, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if c.Status == status {
		return nil
	}
	c.Status = status

	if err := s.store.Update(ctx, c); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return nil
}

func (s *contractService) AttachFile(ctx context.Context, id, path string) error {
	c, err := s.store.Get(id)
	if err != nil {
		return err
	}

	name, data, err := filex.ReadAttachment(path, s.maxAttachment)
	if err != nil {
		return fmt.Errorf("attach file: %w", err)
	}
	c.AttachmentData = data
	c.AttachmentName = &name

	if err := s.store.Update(ctx, c); err != nil {
		return fmt.Errorf("attach file: %w", err)
	}
	s.logger.Info(ctx, "attachment stored", "id", id, "name", name, "bytes", len(data))
	return nil
}

func (s *contractService) SignatureImage(ctx context.Context, id string, size signature.Size) ([]byte, error) {
	c, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if !c.HasSignature() {
		return nil, ErrNoSignature
	}

	if signature.AspectMismatch(size) {
		s.logger.Debug(ctx, "signature will be letterboxed", "size", size.String())
	}

	img, err := s.renderer.Rerender(c.SignatureData, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignatureUnavailable, err)
	}
	return img, nil
}
