package cli

import (
	"context"

	"github.com/dmitrijs2005/mechanicassist/internal/client/flow"
	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
)

func (a *App) Jobs(ctx context.Context, _ []string) error {
	list, err := a.board.LoadMechanic(ctx)
	if err != nil {
		return err
	}
	a.printRequests(list, "No jobs assigned")
	return nil
}

func (a *App) Accept(ctx context.Context, args []string) error {
	id, err := idArg(args, "accept <id>")
	if err != nil {
		return err
	}
	r, err := a.board.Accept(ctx, id)
	if err != nil {
		return err
	}
	a.println("Request accepted successfully")
	a.println(formatRequest(*r))
	return nil
}

func (a *App) Complete(ctx context.Context, args []string) error {
	id, err := idArg(args, "complete <id>")
	if err != nil {
		return err
	}
	r, err := a.board.Complete(ctx, id)
	if err != nil {
		return err
	}
	a.println("Request marked as completed")
	a.println(formatRequest(*r))
	return nil
}

func (a *App) MechanicProfile(ctx context.Context, _ []string) error {
	p, err := a.mechanics.Profile(ctx)
	if err != nil {
		return err
	}
	a.println(formatProfile(p))
	return nil
}

func (a *App) Available(ctx context.Context, args []string) error {
	s, err := oneArg(args, "available on|off")
	if err != nil {
		return err
	}
	on, ok := parseOnOff(s)
	if !ok {
		return usageError("available on|off")
	}
	return a.updateMechanicProfile(ctx, func(p *models.MechanicProfile) {
		p.Availability = on
	})
}

func (a *App) Skill(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("skill <type>")
	}
	skill, ok := parseSkill(joinArgs(args))
	if !ok {
		return flow.ErrUnknownSkill
	}
	return a.updateMechanicProfile(ctx, func(p *models.MechanicProfile) {
		p.SkillType = skill
	})
}

// updateMechanicProfile loads the profile, applies mutate and sends the whole
// record back, since the backend expects every field on update.
func (a *App) updateMechanicProfile(ctx context.Context, mutate func(*models.MechanicProfile)) error {
	p, err := a.mechanics.Profile(ctx)
	if err != nil {
		return err
	}
	mutate(p)
	if err := flow.ValidateProfile(p); err != nil {
		return err
	}

	p, err = a.mechanics.UpdateProfile(ctx, models.MechanicProfileUpdate{
		SkillType:    p.SkillType,
		Availability: p.Availability,
		Latitude:     p.Latitude.Float64(),
		Longitude:    p.Longitude.Float64(),
	})
	if err != nil {
		return err
	}
	a.println("Profile updated successfully")
	a.println(formatProfile(p))
	return nil
}
