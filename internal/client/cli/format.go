package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mechanicassist/internal/client/flow"
	"github.com/dmitrijs2005/mechanicassist/internal/client/models"
	"github.com/dmitrijs2005/mechanicassist/internal/client/session"
)

const timeLayout = "2006-01-02 15:04"

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

func formatMoney(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}

func formatQuote(n int, q flow.Quote) string {
	mark := " "
	if q.Selected {
		mark = "*"
	}
	c := q.Candidate
	return fmt.Sprintf("%s %d. %-20s %-15s %.1f km  ★ %.1f (%d)  est. %s",
		mark, n, c.User.Name, c.SkillType.Label(), q.DistanceKm,
		c.RatingAvg.Float64(), c.RatingCount, formatMoney(q.EstimatedCost))
}

func formatRequest(r models.ServiceRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d [%s] %s", r.ID, r.Status, r.IssueText)
	if r.Mechanic != nil {
		fmt.Fprintf(&b, "\n    mechanic: %s", r.Mechanic.Name)
	}
	if r.Customer != nil {
		fmt.Fprintf(&b, "\n    customer: %s %s", r.Customer.Name, r.Customer.Phone)
	}
	if r.DistanceKm != nil {
		fmt.Fprintf(&b, "\n    distance: %.2f km", r.DistanceKm.Float64())
	}
	if r.EstimatedCost != nil {
		fmt.Fprintf(&b, "\n    estimated cost: %s", formatMoney(r.EstimatedCost.Float64()))
	}
	if !r.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "\n    created: %s", r.CreatedAt.Local().Format(timeLayout))
	}
	if actions := flow.ActionsFor(r.Status); len(actions) > 0 {
		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = string(a)
		}
		fmt.Fprintf(&b, "\n    actions: %s", strings.Join(names, ", "))
	}
	return b.String()
}

func formatUser(u *models.User) string {
	return fmt.Sprintf("%s <%s> phone %s, %s (id %d)", u.Name, u.Email, u.Phone, u.Role, u.ID)
}

func formatProfile(p *models.MechanicProfile) string {
	avail := "unavailable"
	if p.Availability {
		avail = "available"
	}
	loc := "location not set"
	if p.HasLocation() {
		loc = models.Location{Latitude: p.Latitude.Float64(), Longitude: p.Longitude.Float64()}.String()
	}
	return fmt.Sprintf("Skill: %s, %s, %s, rating %.1f (%d)",
		p.SkillType.Label(), avail, loc, p.RatingAvg.Float64(), p.RatingCount)
}

func formatRating(r models.Rating) string {
	stars := strings.Repeat("★", r.Stars) + strings.Repeat("☆", max(0, 5-r.Stars))
	s := stars
	if r.Customer != nil {
		s += " by " + r.Customer.Name
	}
	if r.ReviewText != "" {
		s += ": " + r.ReviewText
	}
	return s
}

func describeExpiry(token string) string {
	exp, err := session.ExpiresAt(token)
	switch {
	case err != nil:
		return "unknown"
	case exp.IsZero():
		return "never"
	case time.Until(exp) <= 0:
		return exp.Local().Format(timeLayout) + " (expired, refreshed on next call)"
	}
	return exp.Local().Format(timeLayout)
}
