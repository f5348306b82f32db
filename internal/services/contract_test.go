package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RomaniOSDev/17PaperRoost/internal/contracts"
	"github.com/RomaniOSDev/17PaperRoost/internal/filex"
	"github.com/RomaniOSDev/17PaperRoost/internal/logging"
	"github.com/RomaniOSDev/17PaperRoost/internal/models"
	"github.com/RomaniOSDev/17PaperRoost/internal/repositories/kv"
	"github.com/RomaniOSDev/17PaperRoost/internal/signature"
	"github.com/RomaniOSDev/17PaperRoost/internal/storage"
)

func setupRepo(t *testing.T) *kv.SQLiteRepository {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return kv.NewSQLiteRepository(db)
}

func setupService(t *testing.T, renderer Renderer) (ContractService, *contracts.Store) {
	t.Helper()
	store := contracts.New(setupRepo(t), logging.Nop(), contracts.WithSeeding(false))
	require.NoError(t, store.Load(context.Background()))
	if renderer == nil {
		renderer = signature.NewRasterizer(logging.Nop())
	}
	return NewContractService(store, renderer, logging.Nop(), 0), store
}

func signedPad() *signature.Pad {
	p := signature.NewPad()
	p.BeginStroke(signature.Point{X: 100, Y: 300})
	p.ExtendStroke(signature.Point{X: 500, Y: 200})
	p.ExtendStroke(signature.Point{X: 900, Y: 400})
	p.EndStroke()
	return p
}

func draft(title string) Draft {
	return Draft{
		Title:        title,
		Type:         models.TypeService,
		StartDate:    time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		Participants: " Ann & Co ",
		Notes:        "weekly",
	}
}

type brokenRenderer struct{}

var errRender = errors.New("codec exploded")

func (brokenRenderer) HighQuality([]signature.Line) ([]byte, error) { return nil, errRender }

func (brokenRenderer) Rerender([]byte, signature.Size) ([]byte, error) { return nil, errRender }

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestSave_StoresSignedContract(t *testing.T) {
	svc, store := setupService(t, nil)
	ctx := context.Background()

	c, err := svc.Save(ctx, draft("  Cleaning  "), signedPad())
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Cleaning", c.Title)
	assert.Equal(t, "Ann & Co", c.Participants)
	assert.Equal(t, models.StatusActive, c.Status)
	require.True(t, c.HasSignature())

	img := decodePNG(t, c.SignatureData)
	assert.Equal(t, image.Rect(0, 0, 1000, 600), img.Bounds())

	stored, err := store.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.SignatureData, stored.SignatureData)
}

func TestSave_Eligibility(t *testing.T) {
	ctx := context.Background()

	t.Run("title required", func(t *testing.T) {
		svc, store := setupService(t, nil)
		_, err := svc.Save(ctx, draft("   "), signedPad())
		require.ErrorIs(t, err, ErrTitleRequired)
		assert.Zero(t, store.Len())
	})

	t.Run("signature required", func(t *testing.T) {
		svc, store := setupService(t, nil)
		_, err := svc.Save(ctx, draft("No ink"), signature.NewPad())
		require.ErrorIs(t, err, ErrSignatureRequired)

		_, err = svc.Save(ctx, draft("No pad"), nil)
		require.ErrorIs(t, err, ErrSignatureRequired)
		assert.Zero(t, store.Len())
	})

	t.Run("open stroke does not count", func(t *testing.T) {
		svc, store := setupService(t, nil)
		p := signature.NewPad()
		p.BeginStroke(signature.Point{X: 1, Y: 1})
		_, err := svc.Save(ctx, draft("Half"), p)
		require.ErrorIs(t, err, ErrSignatureRequired)
		assert.Zero(t, store.Len())
	})

	t.Run("render failure leaves store untouched", func(t *testing.T) {
		svc, store := setupService(t, brokenRenderer{})
		_, err := svc.Save(ctx, draft("Broken"), signedPad())
		require.ErrorIs(t, err, ErrSignatureUnavailable)
		assert.Zero(t, store.Len())
	})
}

func TestSave_DefaultsTypeToOther(t *testing.T) {
	svc, _ := setupService(t, nil)
	d := draft("Untyped")
	d.Type = ""

	c, err := svc.Save(context.Background(), d, signedPad())
	require.NoError(t, err)
	assert.Equal(t, models.TypeOther, c.ContractType)
}

func TestResign(t *testing.T) {
	svc, store := setupService(t, nil)
	ctx := context.Background()

	c, err := svc.Save(ctx, draft("Lease"), signedPad())
	require.NoError(t, err)

	p := signature.NewPad()
	p.BeginStroke(signature.Point{X: 500, Y: 300})
	p.EndStroke()
	require.NoError(t, svc.Resign(ctx, c.ID, p))

	got, err := store.Get(c.ID)
	require.NoError(t, err)
	assert.NotEqual(t, c.SignatureData, got.SignatureData)
	assert.Equal(t, c.CreatedAt, got.CreatedAt, "id and creation time never change")

	require.ErrorIs(t, svc.Resign(ctx, "missing", p), contracts.ErrNotFound)
	require.ErrorIs(t, svc.Resign(ctx, c.ID, signature.NewPad()), ErrSignatureRequired)
}

func TestSetStatus(t *testing.T) {
	svc, store := setupService(t, nil)
	ctx := context.Background()

	c, err := svc.Save(ctx, draft("Loan"), signedPad())
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(ctx, c.ID, models.StatusCompleted))
	got, err := store.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)

	require.ErrorIs(t, svc.SetStatus(ctx, c.ID, models.ContractStatus(42)), models.ErrUnknownStatus)
	require.ErrorIs(t, svc.SetStatus(ctx, "missing", models.StatusPending), contracts.ErrNotFound)
}

func TestAttachFile(t *testing.T) {
	svc, store := setupService(t, nil)
	ctx := context.Background()

	c, err := svc.Save(ctx, draft("Insurance"), signedPad())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 3))))
	path := filepath.Join(t.TempDir(), "policy.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	require.NoError(t, svc.AttachFile(ctx, c.ID, path))

	got, err := store.Get(c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AttachmentName)
	assert.Equal(t, "policy.png", *got.AttachmentName)
	assert.Equal(t, buf.Bytes(), got.AttachmentData)

	text := filepath.Join(t.TempDir(), "policy.txt")
	require.NoError(t, os.WriteFile(text, []byte("plain"), 0o600))
	require.ErrorIs(t, svc.AttachFile(ctx, c.ID, text), filex.ErrNotImage)
}

func TestSignatureImage(t *testing.T) {
	svc, store := setupService(t, nil)
	ctx := context.Background()

	c, err := svc.Save(ctx, draft("Support"), signedPad())
	require.NoError(t, err)

	for _, size := range []signature.Size{signature.SizeFull, signature.SizePreview, signature.SizeThumbnail} {
		data, err := svc.SignatureImage(ctx, c.ID, size)
		require.NoError(t, err, size.String())
		img := decodePNG(t, data)
		assert.Equal(t, image.Rect(0, 0, size.Width, size.Height), img.Bounds())
	}

	_, err = svc.SignatureImage(ctx, c.ID, signature.Size{})
	require.ErrorIs(t, err, ErrSignatureUnavailable)
	require.ErrorIs(t, err, signature.ErrInvalidSize)

	unsigned := models.NewContract("Unsigned", models.TypeOther, time.Now(), time.Now(), "", "")
	require.NoError(t, store.Add(ctx, unsigned))
	_, err = svc.SignatureImage(ctx, unsigned.ID, signature.SizeFull)
	require.ErrorIs(t, err, ErrNoSignature)
}
