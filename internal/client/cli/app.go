package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/bookreview/internal/client/client"
	"github.com/dmitrijs2005/bookreview/internal/client/config"
	"github.com/dmitrijs2005/bookreview/internal/client/draft"
	"github.com/dmitrijs2005/bookreview/internal/client/notify"
	"github.com/dmitrijs2005/bookreview/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bookreview/internal/client/services"
	"github.com/dmitrijs2005/bookreview/internal/client/session"
	"github.com/dmitrijs2005/bookreview/internal/logging"
	"github.com/dmitrijs2005/bookreview/internal/validation"
)

type App struct {
	config *config.Config
	db     *sql.DB
	api    client.Client
	logger logging.Logger

	session       *session.Store
	notes         *notify.Channel
	dialog        *draft.Dialog
	reviewEditor  *draft.ReviewEditor
	accountEditor *draft.AccountEditor

	reviews services.ReviewService
	search  services.SearchService
	account services.AccountService

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp opens local storage, restores the session and wires the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.StoragePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := session.NewStore(
		session.NewMetadataCredentials(metadata.NewSQLiteRepository(db)),
		session.WithLogger(logger),
	)

	apiClient, err := client.NewHTTPClient(c.ServerEndpointAddr, store,
		client.WithTimeout(c.RequestTimeout),
		client.WithSearchRate(c.SearchRatePerSecond, 1),
		client.WithLogger(logger),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, apiClient, store, logger, bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db

	if err := a.session.Restore(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}
	return a, nil
}

// newApp wires the in-memory components around api and store.
func newApp(c *config.Config, api client.Client, store *session.Store, logger logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	v := validation.New()
	notes := notify.NewChannel()
	dialog := draft.NewDialog()
	reviewEditor := draft.NewReviewEditor(dialog, draft.WithMinRating(c.MinRating), draft.WithValidator(v))
	accountEditor := draft.NewAccountEditor(dialog, v)

	store.OnChange(dialog.IdentityChanged)

	a := &App{
		config:        c,
		api:           api,
		logger:        logger,
		session:       store,
		notes:         notes,
		dialog:        dialog,
		reviewEditor:  reviewEditor,
		accountEditor: accountEditor,
		reviews:       services.NewReviewService(api, store, notes, dialog, logger),
		search:        services.NewSearchService(api, store, notes, reviewEditor, logger),
		account:       services.NewAccountService(api, store, notes, accountEditor, v, logger),
		reader:        reader,
		out:           out,
		now:           time.Now,
	}
	store.OnChange(a.reviews.Reset)
	notes.Subscribe(a.printNotification)
	return a
}

func (a *App) printNotification(n notify.Notification) {
	fmt.Fprintf(a.out, "[%s] %s\n", n.Severity, n.Message)
}

// Close releases the API client and the local database.
func (a *App) Close() error {
	var firstErr error
	if a.api != nil {
		if err := a.api.Close(); err != nil {
			firstErr = err
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run greets the user, loads the first page when signed in and blocks in the
// REPL until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Book review CLI (type 'help' for commands)")
	if a.isLoggedIn() {
		fmt.Fprintf(a.out, "Signed in as %s\n", a.session.Identity().Name)
		_ = a.List(ctx)
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	s := "guest"
	if id := a.session.Identity(); id != nil {
		s = id.Name
	}
	if a.isLoggedIn() {
		p := a.reviews.Pagination()
		s = fmt.Sprintf("%s p%d/%d", s, p.CurrentPage, p.TotalPages)
	}
	if a.dialog.IsOpen() {
		s += " *draft*"
	}
	return s
}

// fail prints errors the services did not already report.
func (a *App) fail(err error) error {
	fmt.Fprintf(a.out, "error: %v\n", err)
	return err
}
