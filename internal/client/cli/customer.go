package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/mechanicassist/internal/client/flow"
	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
)

// Location prints the current position or replaces it. A mechanic's new
// position is also pushed to their profile.
func (a *App) Location(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		if a.locator.Location == nil {
			a.println("Location not set, use: location <lat> <lng>")
			return nil
		}
		a.println("Location:", a.locator.Location.String())
		return nil
	case 2:
	default:
		return usageError("location [lat lng]")
	}

	loc, err := parseLocation(args[0], args[1])
	if err != nil {
		return usageError("location [lat lng]")
	}
	if err := flow.ValidateCoordinates(loc); err != nil {
		return err
	}
	a.locator.Location = &loc
	a.println("Location set to", loc.String())

	if a.role() != models.RoleMechanic {
		return nil
	}
	return a.updateMechanicProfile(ctx, func(p *models.MechanicProfile) {
		lat, lng := models.Decimal(loc.Latitude), models.Decimal(loc.Longitude)
		p.Latitude, p.Longitude = &lat, &lng
	})
}

func (a *App) Nearby(ctx context.Context, _ []string) error {
	quotes, err := a.flow.LoadNearby(ctx)
	if err != nil {
		return err
	}
	if len(quotes) == 0 {
		a.println("No nearby mechanics available")
		return nil
	}
	for i, q := range quotes {
		a.println(formatQuote(i+1, q))
	}
	return nil
}

// Select takes a 1-based position in the last nearby list.
func (a *App) Select(_ context.Context, args []string) error {
	s, err := oneArg(args, "select <n>")
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return usageError("select <n>")
	}
	q, err := a.flow.Select(n - 1)
	if err != nil {
		return err
	}
	a.printf("Selected %s, estimated cost %s\n", q.Candidate.User.Name, formatMoney(q.EstimatedCost))
	return nil
}

func (a *App) Request(ctx context.Context, _ []string) error {
	if a.flow.Selected() == nil {
		return flow.ErrNoMechanic
	}
	issue, err := a.prompt("Describe the issue")
	if err != nil {
		return err
	}
	r, err := a.flow.Submit(ctx, issue)
	if err != nil {
		return err
	}
	a.println("Request created successfully")
	a.println(formatRequest(*r))
	return nil
}

func (a *App) Requests(ctx context.Context, _ []string) error {
	list, err := a.board.LoadCustomer(ctx)
	if err != nil {
		return err
	}
	a.printRequests(list, "No service requests yet")
	return nil
}

// Rate asks for stars and an optional review. The request list is loaded
// first when the id has not been seen yet.
func (a *App) Rate(ctx context.Context, args []string) error {
	id, err := idArg(args, "rate <requestID>")
	if err != nil {
		return err
	}
	if _, ok := a.board.Get(id); !ok {
		if _, err := a.board.LoadCustomer(ctx); err != nil {
			return err
		}
	}
	r, ok := a.board.Get(id)
	if !ok {
		return flow.ErrActionNotAllowed
	}
	if err := flow.Require(r.Status, flow.ActionRate); err != nil {
		return err
	}

	s, err := a.prompt("Stars (1-5)")
	if err != nil {
		return err
	}
	stars, err := strconv.Atoi(s)
	if err != nil && s != "" {
		return flow.ErrStarsOutOfRange
	}
	review, err := a.prompt("Review (optional)")
	if err != nil {
		return err
	}

	if _, err := a.board.Rate(ctx, id, stars, review); err != nil {
		return err
	}
	a.println("Thank you for your rating!")
	return nil
}

func (a *App) Ratings(ctx context.Context, args []string) error {
	id, err := idArg(args, "ratings <mechanicUserID>")
	if err != nil {
		return err
	}
	list, err := a.ratings.ListForMechanic(ctx, id)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No ratings yet")
		return nil
	}
	for _, r := range list {
		a.println(formatRating(r))
	}
	return nil
}

func (a *App) printRequests(list []models.ServiceRequest, empty string) {
	if len(list) == 0 {
		a.println(empty)
		return
	}
	for _, r := range list {
		a.println(formatRequest(r))
	}
}
