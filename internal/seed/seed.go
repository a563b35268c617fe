package seed

import (
	"context"
	"errors"

	"handson/internal/model"
	"handson/internal/service"
)

// Result reports how many rows each fixture set produced.
type Result struct {
	Users  int `json:"users"`
	Events int `json:"events"`
	Teams  int `json:"teams"`
}

func intPtr(v int) *int { return &v }

var userFixtures = []service.RegisterInput{
	{Name: "Amina Rahman", Email: "amina@example.com", Password: "demo-pass-1", Gender: "female", DOB: "1996-04-12", About: "Weekend volunteer", Skills: model.StringList{"first aid", "cooking"}, Causes: model.StringList{"disaster relief"}},
	{Name: "Tanvir Hasan", Email: "tanvir@example.com", Password: "demo-pass-2", Gender: "male", DOB: "1992-11-03", About: "Logistics and driving", Skills: model.StringList{"driving"}, Causes: model.StringList{"food security", "education"}},
	{Name: "Nadia Islam", Email: "nadia@example.com", Password: "demo-pass-3", Gender: "female", DOB: "1999-07-21", Skills: model.StringList{"teaching"}, Causes: model.StringList{"education"}},
}

// Run seeds demo users, events, and teams through the real domain
// operations, so the usual invariants apply: creators self-join events,
// team creators become admins, and counters stay consistent. Running twice
// is a no-op for users and skips the dependent fixtures.
func Run(ctx context.Context, authService service.AuthService, eventService service.EventService, teamService service.TeamService) (Result, error) {
	var out Result

	var userIDs []uint
	for _, fixture := range userFixtures {
		user, err := authService.Register(ctx, fixture)
		if err != nil {
			if errors.Is(err, service.ErrUserAlreadyExists) {
				continue
			}
			return out, err
		}
		userIDs = append(userIDs, user.ID)
		out.Users++
	}

	if len(userIDs) == 0 {
		return out, nil
	}

	eventFixtures := []*model.Event{
		{Title: "River Cleanup Drive", Details: "Collecting plastic waste along the river bank.", Date: "2026-09-20", Location: "Buriganga riverside", StartTime: "08:00", EndTime: "12:00", Category: "environment", MemberLimit: intPtr(20), CreatedBy: userIDs[0]},
		{Title: "Community Tutoring", Details: "Math and reading help for primary students.", Date: "2026-09-27", Location: "Ward 14 community hall", StartTime: "15:00", EndTime: "17:00", Category: "education", MemberLimit: intPtr(8), CreatedBy: userIDs[len(userIDs)-1]},
	}
	for _, event := range eventFixtures {
		if _, _, err := eventService.CreateEvent(ctx, event); err != nil {
			return out, err
		}
		out.Events++
	}

	teamFixtures := []*model.Team{
		{Name: "Flood Response Unit", Description: "Rapid-response supplies and rescue support.", Category: "disaster relief", IsPrivate: false, CreatedBy: userIDs[0]},
		{Name: "Core Coordinators", Description: "Internal planning group.", Category: "operations", IsPrivate: true, CreatedBy: userIDs[0]},
	}
	for _, team := range teamFixtures {
		if _, err := teamService.CreateTeam(ctx, team); err != nil {
			return out, err
		}
		out.Teams++
	}

	return out, nil
}
