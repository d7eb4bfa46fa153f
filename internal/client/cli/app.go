package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/mechanicassist/internal/buildinfo"
	"github.com/dmitrijs2005/mechanicassist/internal/client/api"
	"github.com/dmitrijs2005/mechanicassist/internal/client/config"
	"github.com/dmitrijs2005/mechanicassist/internal/client/flow"
	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
	"github.com/dmitrijs2005/mechanicassist/internal/client/services"
	"github.com/dmitrijs2005/mechanicassist/internal/client/session"
	"github.com/dmitrijs2005/mechanicassist/internal/client/storage"
	"github.com/dmitrijs2005/mechanicassist/internal/logging"
	"github.com/dmitrijs2005/mechanicassist/internal/observability"
)

type errorReporter interface {
	Capture(err error, tags map[string]string)
}

type deps struct {
	session   *session.Session
	auth      services.AuthService
	mechanics services.MechanicService
	requests  services.RequestService
	ratings   services.RatingService
	reporter  errorReporter
}

type App struct {
	config *config.Config
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
	closer io.Closer

	session   *session.Session
	auth      services.AuthService
	mechanics services.MechanicService
	requests  services.RequestService
	ratings   services.RatingService
	reporter  errorReporter

	locator *flow.FixedLocator
	flow    *flow.RequestFlow
	board   *flow.JobBoard

	user *models.User
}

// NewApp opens the local database at cfg.DBPath and builds the API client
// for cfg.APIBaseURL.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	repos, err := storage.InitDatabase(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	store, err := repos.SessionStore(ctx, cfg.StoreKey)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("open session store: %w", err)
	}
	sess := session.New(store)
	opts := []api.Option{
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		api.WithLogger(logger),
		api.WithUserAgent("mechanicassist-cli/" + buildinfo.Version()),
	}
	if cfg.SharedRefresh {
		opts = append(opts, api.WithSharedRefresh())
	}
	client, err := api.New(cfg.APIBaseURL, sess, opts...)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	a := newApp(cfg, logger, deps{
		session:   sess,
		auth:      services.NewAuthService(client, sess),
		mechanics: services.NewMechanicService(client),
		requests:  services.NewRequestService(client),
		ratings:   services.NewRatingService(client),
		reporter:  observability.NewReporter(nil),
	}, os.Stdin, os.Stdout)
	a.closer = repos
	return a, nil
}

func newApp(cfg *config.Config, logger logging.Logger, d deps, in io.Reader, out io.Writer) *App {
	locator := &flow.FixedLocator{}
	if cfg.HasLocation() {
		locator.Location = &models.Location{Latitude: *cfg.Latitude, Longitude: *cfg.Longitude}
	}
	tariff := flow.Tariff{BaseFare: cfg.BaseFare, PerKmRate: cfg.PerKmRate}

	return &App{
		config:    cfg,
		logger:    logger,
		reader:    bufio.NewReader(in),
		out:       out,
		session:   d.session,
		auth:      d.auth,
		mechanics: d.mechanics,
		requests:  d.requests,
		ratings:   d.ratings,
		reporter:  d.reporter,
		locator:   locator,
		flow:      flow.NewRequestFlow(tariff, locator, d.mechanics, d.requests),
		board:     flow.NewJobBoard(d.requests, d.ratings),
	}
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Run resumes a stored session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to MechanicAssist (type 'help' for commands)")
	a.resume(ctx)
	runREPL(ctx, a, a.status, a.reader)
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

func (a *App) role() models.Role {
	if a.user == nil {
		return ""
	}
	return a.user.Role
}

func (a *App) status() string {
	if a.user == nil {
		return "(guest)"
	}
	return fmt.Sprintf("(%s %s)", a.user.Email, a.user.Role)
}

// signedIn installs u as the current user and drops per-user screen state.
func (a *App) signedIn(u *models.User) {
	a.user = u
	a.flow = flow.NewRequestFlow(flow.Tariff{BaseFare: a.config.BaseFare, PerKmRate: a.config.PerKmRate}, a.locator, a.mechanics, a.requests)
	a.board = flow.NewJobBoard(a.requests, a.ratings)
}

func (a *App) signedOut() {
	a.signedIn(nil)
}

// resume validates a stored session with the backend. The request goes
// through the normal pipeline, so an expired access token is refreshed.
func (a *App) resume(ctx context.Context) {
	if !a.session.IsAuthenticated(ctx) {
		return
	}

	u, err := a.auth.CurrentUser(ctx)
	switch {
	case err == nil:
		if serr := a.session.SetUser(ctx, u); serr != nil {
			a.logger.Warn(ctx, "cache user", "error", serr)
		}
		a.signedIn(u)
		a.printf("Welcome back, %s\n", u.Name)
	case errors.Is(err, api.ErrSessionExpired), errors.Is(err, api.ErrUnauthorized):
		if cerr := a.auth.Logout(ctx); cerr != nil {
			a.logger.Warn(ctx, "clear session", "error", cerr)
		}
		a.println(api.ErrSessionExpired.Error())
	case errors.Is(err, api.ErrUnavailable):
		stored, serr := a.auth.StoredUser(ctx)
		if serr != nil || stored == nil {
			a.println("Server unavailable, please log in when back online")
			return
		}
		a.signedIn(stored)
		a.printf("Server unavailable, signed in as %s from cache\n", stored.Email)
	default:
		a.logger.Error(ctx, "resume session", "error", err)
		a.report("resume", err)
	}
}

func (a *App) report(cmd string, err error) {
	if a.reporter == nil || !shouldReport(err) {
		return
	}
	a.reporter.Capture(err, map[string]string{"command": cmd, "role": string(a.role())})
}

// shouldReport filters out failures that are the user's or the backend's
// expected answer rather than a client fault.
func shouldReport(err error) bool {
	var apiErr *api.APIError
	var usage usageError
	switch {
	case err == nil,
		flow.IsValidation(err),
		errors.As(err, &usage),
		errors.Is(err, errNotAvailable),
		errors.Is(err, api.ErrSessionExpired),
		errors.Is(err, context.Canceled):
		return false
	case errors.As(err, &apiErr):
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

// describe turns err into the text shown to the user.
func describe(err error) string {
	var usage usageError
	switch {
	case flow.IsValidation(err):
		return err.Error()
	case errors.As(err, &usage):
		return "usage: " + string(usage)
	case errors.Is(err, api.ErrUnavailable):
		return "Server unavailable, check your connection"
	}
	return api.Message(err)
}
