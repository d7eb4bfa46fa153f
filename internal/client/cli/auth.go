package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/mechanicassist/internal/client/flow"
	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
)

func (a *App) prompt(label string) (string, error) {
	return getSimpleText(a.reader, label, a.out)
}

// Register asks for the registration form, checks it locally and creates the
// account. The new user is signed in when the backend returns tokens.
func (a *App) Register(ctx context.Context, _ []string) error {
	var in models.RegisterInput
	var err error

	fields := []struct {
		label string
		dst   *string
	}{
		{"Name", &in.Name},
		{"Email", &in.Email},
		{"Phone", &in.Phone},
	}
	for _, f := range fields {
		if *f.dst, err = a.prompt(f.label); err != nil {
			return err
		}
	}

	role, err := a.prompt("Role (customer/mechanic, default customer)")
	if err != nil {
		return err
	}
	in.Role = models.Role(strings.ToUpper(role))

	if in.Password, err = getPassword(a.out, "Password"); err != nil {
		return err
	}
	if in.Password2, err = getPassword(a.out, "Confirm password"); err != nil {
		return err
	}

	if err := flow.ValidateRegistration(&in); err != nil {
		return err
	}

	resp, err := a.auth.Register(ctx, in)
	if err != nil {
		return err
	}
	if resp.Tokens == nil || resp.User == nil {
		a.println("Registration successful, please log in")
		return nil
	}
	a.signedIn(resp.User)
	a.printf("Registration successful. Welcome, %s!\n", resp.User.Name)
	return nil
}

func (a *App) Login(ctx context.Context, args []string) error {
	var email string
	var err error
	if len(args) > 0 {
		email = args[0]
	} else if email, err = a.prompt("Email"); err != nil {
		return err
	}

	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return flow.ErrMissingFields
	}

	resp, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if resp.User == nil {
		u, err := a.auth.CurrentUser(ctx)
		if err != nil {
			return err
		}
		resp.User = u
	}
	a.signedIn(resp.User)
	a.printf("Login successful. Welcome, %s!\n", resp.User.Name)
	return nil
}

// Logout forgets the credentials on this device only.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.signedOut()
	a.println("Logged out")
	return nil
}

func (a *App) Me(ctx context.Context, _ []string) error {
	u, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if err := a.session.SetUser(ctx, u); err != nil {
		a.logger.Warn(ctx, "cache user", "error", err)
	}
	a.user = u
	a.println(formatUser(u))
	return nil
}

// Profile updates name and phone. Empty answers keep the current value.
func (a *App) Profile(ctx context.Context, _ []string) error {
	name, err := a.prompt("Name (" + a.user.Name + ")")
	if err != nil {
		return err
	}
	phone, err := a.prompt("Phone (" + a.user.Phone + ")")
	if err != nil {
		return err
	}

	var upd models.ProfileUpdate
	if name != "" {
		upd.Name = &name
	}
	if phone != "" {
		upd.Phone = &phone
	}
	if upd.Name == nil && upd.Phone == nil {
		a.println("Nothing to update")
		return nil
	}

	u, err := a.auth.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}
	a.user = u
	a.println("Profile updated successfully")
	a.println(formatUser(u))
	return nil
}

// Session shows what is stored locally without calling the backend.
func (a *App) Session(ctx context.Context, _ []string) error {
	u, err := a.auth.StoredUser(ctx)
	if err != nil {
		return err
	}
	if u == nil || !a.session.IsAuthenticated(ctx) {
		a.println("No stored session")
		return nil
	}

	a.println(formatUser(u))
	token, err := a.session.AccessToken(ctx)
	if err != nil {
		return err
	}
	a.println("Access token expires:", describeExpiry(token))
	return nil
}
