package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/RomaniOSDev/17PaperRoost/internal/auth"
	"github.com/RomaniOSDev/17PaperRoost/internal/config"
	"github.com/RomaniOSDev/17PaperRoost/internal/contracts"
	"github.com/RomaniOSDev/17PaperRoost/internal/filex"
	"github.com/RomaniOSDev/17PaperRoost/internal/logging"
	"github.com/RomaniOSDev/17PaperRoost/internal/repositories/kv"
	"github.com/RomaniOSDev/17PaperRoost/internal/services"
	"github.com/RomaniOSDev/17PaperRoost/internal/signature"
	"github.com/RomaniOSDev/17PaperRoost/internal/storage"
)

type App struct {
	config    *config.Config
	db        *sql.DB
	gate      *auth.Gate
	store     *contracts.Store
	contracts services.ContractService
	prefs     *services.Preferences
	logger    logging.Logger
	reader    *bufio.Reader
	out       io.Writer
}

// NewApp opens the vault database and loads the gate and the contract
// store. The caller must Close the App.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	biometry, err := auth.ParseBiometry(c.Biometry)
	if err != nil {
		return nil, err
	}

	if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}
	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	a := &App{
		config: c,
		db:     db,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	if err := a.wire(ctx, kv.NewSQLiteStore(db), biometry); err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

// wire builds the components on top of an open kv store.
func (a *App) wire(ctx context.Context, kvs kv.Store, biometry auth.BiometryType) error {
	a.gate = auth.New(kvs, a.promptVerifier(biometry), a.logger,
		auth.WithMaxAttempts(a.config.MaxPINAttempts, a.config.PINLockout))
	if err := a.gate.Load(ctx); err != nil {
		return err
	}

	a.store = contracts.New(kvs, a.logger, contracts.WithSeeding(a.config.SeedSamples))
	if err := a.store.Load(ctx); err != nil {
		a.logger.Warn(ctx, "sample contracts were not saved", "error", err)
	}

	a.contracts = services.NewContractService(a.store, signature.NewRasterizer(a.logger), a.logger, filex.DefaultMaxAttachment)
	a.prefs = services.NewPreferences(kvs)
	return nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run greets the user, asks for a PIN or biometrics and then serves
// commands until exit or EOF.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to PaperRoost (type 'help' for commands)")
	a.onboarding(ctx)
	a.startup(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) onboarding(ctx context.Context) {
	done, err := a.prefs.OnboardingComplete(ctx)
	if err != nil {
		a.logger.Warn(ctx, "failed to read onboarding flag", "error", err)
		return
	}
	if done {
		return
	}

	fmt.Fprintln(a.out, "PaperRoost keeps your contracts and their signatures on this device only.")
	fmt.Fprintln(a.out, "Protect the vault with a 4-digit PIN; nothing is ever sent over the network.")

	if err := a.prefs.SetOnboardingComplete(ctx, true); err != nil {
		a.logger.Warn(ctx, "failed to save onboarding flag", "error", err)
	}
}

// startup mirrors the app launch: create a PIN on first launch, otherwise
// try biometrics and fall back to PIN entry.
func (a *App) startup(ctx context.Context) {
	switch a.gate.State() {
	case auth.StateFirstLaunch:
		a.report(a.Setup(ctx))
	case auth.StateLocked:
		err := a.gate.Authenticate(ctx)
		if err == nil {
			fmt.Fprintln(a.out, "Vault unlocked.")
			return
		}
		a.logger.Debug(ctx, "automatic unlock failed", "error", err)
		a.report(a.Unlock(ctx))
	}
}

func (a *App) isUnlocked() bool {
	return a.gate.IsAuthenticated()
}

func (a *App) getStatus() string {
	if !a.isUnlocked() {
		return "(locked)"
	}
	return fmt.Sprintf("(%d contracts)", a.store.Len())
}

func (a *App) report(err error) {
	if err != nil {
		printlnFn("Error:", err)
	}
}
