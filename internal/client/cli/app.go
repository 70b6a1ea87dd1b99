package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pt428/recipes/internal/client/browse"
	"github.com/pt428/recipes/internal/client/client"
	"github.com/pt428/recipes/internal/client/config"
	"github.com/pt428/recipes/internal/client/detail"
	"github.com/pt428/recipes/internal/client/models"
	"github.com/pt428/recipes/internal/client/navigation"
	"github.com/pt428/recipes/internal/client/router"
	"github.com/pt428/recipes/internal/client/services"
	"github.com/pt428/recipes/internal/client/session"
	"github.com/pt428/recipes/internal/logging"
)

type App struct {
	config  *config.Config
	client  client.Client
	auth    services.AuthService
	recipes services.RecipeService
	browse  *browse.Controller
	detail  *detail.Controller
	nav     *router.Navigator
	logger  logging.Logger

	reader *bufio.Reader
	out    io.Writer

	user      *models.User
	redirects int
	listStale bool
	closers   []func() error
}

// deps are the collaborators of an App. NewApp builds the real ones; tests
// pass fakes.
type deps struct {
	config  *config.Config
	client  client.Client
	tokens  session.TokenStore
	history *navigation.History
	nav     *router.Navigator
	logger  logging.Logger
	in      io.Reader
	out     io.Writer
}

func newApp(d deps) *App {
	if d.logger == nil {
		d.logger = logging.Discard()
	}
	if d.config == nil {
		d.config = &config.Config{}
		d.config.LoadDefaults()
	}

	a := &App{
		config:  d.config,
		client:  d.client,
		auth:    services.NewAuthService(d.client, d.tokens, d.logger),
		recipes: services.NewRecipeService(d.client, d.logger),
		browse:  browse.New(d.client, d.tokens, d.history, d.nav, d.logger, d.config.PageSize),
		detail:  detail.NewController(d.client, d.config.AppBaseURL, d.logger),
		nav:     d.nav,
		logger:  d.logger,
		reader:  bufio.NewReader(d.in),
		out:     d.out,

		listStale: true,
	}
	a.detail.OnChange(a.refreshList)
	return a
}

// NewApp opens the local database and wires the API client and controllers.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}
	repos := client.NewRepositories(db)

	logger := logging.New(os.Stderr, c.LogLevel)
	tokens := session.NewTokenStore(repos.Metadata)
	nav := router.NewNavigator(router.New())

	api := client.NewHTTPClient(c.APIBaseURL, tokens,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger),
		client.WithStorageURL(c.StorageURL),
		client.WithUnauthorizedPolicy(client.ClearTokenAndRedirect(tokens, nav, logger)),
	)

	a := newApp(deps{
		config:  c,
		client:  api,
		tokens:  tokens,
		history: navigation.NewHistory(repos.ReturnState, logger),
		nav:     nav,
		logger:  logger,
		in:      os.Stdin,
		out:     os.Stdout,
	})
	a.closers = append(a.closers, db.Close)
	return a, nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) setUser(u *models.User) {
	a.user = u
	a.detail.SetUser(u)
}

// restoreSession resolves the stored token into the current user, if any.
func (a *App) restoreSession(ctx context.Context) {
	u, err := a.auth.CurrentUser(ctx)
	if err != nil {
		log.Printf("Stored session is no longer valid: %s", err.Error())
		a.setUser(nil)
		return
	}
	a.setUser(u)
}

// checkRedirect notices a 401 handled by the API client since the last
// command and signs the user out locally.
func (a *App) checkRedirect() {
	n := a.nav.Redirects()
	if n == a.redirects {
		return
	}
	a.redirects = n
	if a.user != nil {
		a.println("Your session has expired. Please log in again.")
	}
	a.setUser(nil)
}

func (a *App) refreshList() {
	a.logger.Debug(context.Background(), "recipe changed, listing is stale")
	a.listStale = true
}

// Run restores the session and enters the REPL until EOF or exit.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to the recipes CLI (type 'help' for commands)")
	a.restoreSession(ctx)
	if a.user != nil {
		a.printf("Logged in as %s <%s>\n", a.user.Name, a.user.Email)
	}
	if err := a.browse.LoadReferenceData(ctx); err != nil {
		a.logger.Warn(ctx, "cannot load tags and categories", "error", err)
	}

	runREPL(ctx, a, a.reader)
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
