package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mechanicassist/internal/client/api"
	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
)

type access int

const (
	anyone access = iota
	guestOnly
	anyUser
	customerOnly
	mechanicOnly
)

var errNotAvailable = errors.New("command not available, type 'help'")

// usageError carries the usage line of a command invoked with bad arguments.
type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }

type command struct {
	name   string
	usage  string
	help   string
	access access
	run    func(a *App, ctx context.Context, args []string) error
}

// commands is ordered as shown by help.
var commands = []command{
	{"register", "register", "create an account", guestOnly, (*App).Register},
	{"login", "login [email]", "sign in", guestOnly, (*App).Login},
	{"me", "me", "reload your account from the server", anyUser, (*App).Me},
	{"profile", "profile", "change your name or phone", anyUser, (*App).Profile},
	{"location", "location [lat lng]", "show or set your position", anyUser, (*App).Location},
	{"nearby", "nearby", "list nearby mechanics with estimated cost", customerOnly, (*App).Nearby},
	{"select", "select <n>", "select mechanic n from the nearby list", customerOnly, (*App).Select},
	{"request", "request", "create a service request with the selected mechanic", customerOnly, (*App).Request},
	{"requests", "requests", "list your service requests", customerOnly, (*App).Requests},
	{"rate", "rate <requestID>", "rate the mechanic of a completed request", customerOnly, (*App).Rate},
	{"ratings", "ratings <mechanicUserID>", "show a mechanic's reviews", anyUser, (*App).Ratings},
	{"jobs", "jobs", "list requests assigned to you", mechanicOnly, (*App).Jobs},
	{"accept", "accept <id>", "accept a requested job", mechanicOnly, (*App).Accept},
	{"complete", "complete <id>", "mark an accepted job completed", mechanicOnly, (*App).Complete},
	{"mprofile", "mprofile", "show your mechanic profile", mechanicOnly, (*App).MechanicProfile},
	{"available", "available on|off", "toggle availability", mechanicOnly, (*App).Available},
	{"skill", "skill <type>", "set your skill type", mechanicOnly, (*App).Skill},
	{"session", "session", "show stored session details", anyone, (*App).Session},
	{"logout", "logout", "sign out on this device", anyUser, (*App).Logout},
}

func (a *App) allowed(c command) bool {
	switch c.access {
	case guestOnly:
		return !a.isLoggedIn()
	case anyUser:
		return a.isLoggedIn()
	case customerOnly:
		return a.role() == models.RoleCustomer
	case mechanicOnly:
		return a.role() == models.RoleMechanic
	}
	return true
}

func (a *App) helpText() string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, c := range commands {
		if a.allowed(c) {
			fmt.Fprintf(&b, "  %-26s %s\n", c.usage, c.help)
		}
	}
	fmt.Fprintf(&b, "  %-26s %s", "help | exit", "this list | leave")
	return b.String()
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// execute runs one command. An expired session signs the user out.
func (a *App) execute(ctx context.Context, name string, args []string) error {
	c, ok := lookup(name)
	if !ok {
		return fmt.Errorf("unknown command %q, type 'help'", name)
	}
	if !a.allowed(c) {
		return errNotAvailable
	}

	err := c.run(a, ctx, args)
	if errors.Is(err, api.ErrSessionExpired) {
		a.signedOut()
	}
	if err != nil {
		a.logger.Debug(ctx, "command failed", "command", name, "error", err)
		a.report(name, err)
	}
	return err
}

func oneArg(args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", usageError(usage)
	}
	return args[0], nil
}

func idArg(args []string, usage string) (int64, error) {
	s, err := oneArg(args, usage)
	if err != nil {
		return 0, err
	}
	id, err := parseID(s)
	if err != nil {
		return 0, usageError(usage)
	}
	return id, nil
}
