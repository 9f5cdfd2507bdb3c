package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ariel-quanyu/spacegreen/internal/storage"
)

// MilestoneRule fires once per user when its counter crosses the threshold
// from below. All rules use the same crossing check: new >= threshold and
// old < threshold. The XP milestones read the total before achievement
// rewards, so a crossing caused by a reward in the same pass does not
// cascade.
type MilestoneRule struct {
	Code        string
	Type        string
	Name        string
	Description string
	XPReward    int
	Threshold   int
	Counter     func(p *storage.Profile) int
}

func totalActivities(p *storage.Profile) int {
	return p.EventsAttended + p.SpacesExplored + p.EventsCreated
}

func milestoneRules() []MilestoneRule {
	return []MilestoneRule{
		{
			Code: "first_activity", Type: "first_activity",
			Name:        "Green Beginner",
			Description: "Completed your first green activity!",
			XPReward:    25, Threshold: 1,
			Counter: totalActivities,
		},
		{
			Code: "events_attended_5", Type: "events",
			Name:        "Event Explorer",
			Description: "Attended 5 green events!",
			XPReward:    50, Threshold: 5,
			Counter: func(p *storage.Profile) int { return p.EventsAttended },
		},
		{
			Code: "events_attended_10", Type: "events",
			Name:        "Event Enthusiast",
			Description: "Attended 10 green events!",
			XPReward:    100, Threshold: 10,
			Counter: func(p *storage.Profile) int { return p.EventsAttended },
		},
		{
			Code: "spaces_explored_5", Type: "exploration",
			Name:        "Space Explorer",
			Description: "Explored 5 green spaces!",
			XPReward:    50, Threshold: 5,
			Counter: func(p *storage.Profile) int { return p.SpacesExplored },
		},
		{
			Code: "spaces_explored_10", Type: "exploration",
			Name:        "Nature Navigator",
			Description: "Explored 10 green spaces!",
			XPReward:    100, Threshold: 10,
			Counter: func(p *storage.Profile) int { return p.SpacesExplored },
		},
		{
			Code: "events_created_1", Type: "creation",
			Name:        "Community Builder",
			Description: "Created your first event!",
			XPReward:    75, Threshold: 1,
			Counter: func(p *storage.Profile) int { return p.EventsCreated },
		},
		{
			Code: "events_created_5", Type: "creation",
			Name:        "Event Organizer",
			Description: "Created 5 events!",
			XPReward:    150, Threshold: 5,
			Counter: func(p *storage.Profile) int { return p.EventsCreated },
		},
		{
			Code: "total_xp_500", Type: "xp",
			Name:        "Green Warrior",
			Description: "Reached 500 XP!",
			XPReward:    100, Threshold: 500,
			Counter: func(p *storage.Profile) int { return p.TotalXP },
		},
		{
			Code: "total_xp_1000", Type: "xp",
			Name:        "Eco Champion",
			Description: "Reached 1000 XP!",
			XPReward:    200, Threshold: 1000,
			Counter: func(p *storage.Profile) int { return p.TotalXP },
		},
	}
}

// applyMilestones persists every milestone the update crossed and returns
// the records with their summed XP rewards. Idempotency is anchored in
// storage: a milestone whose row already exists is skipped, and a racing
// duplicate insert surfaces as a ConflictError rather than double-applying.
func (s *Service) applyMilestones(ctx context.Context, before, after *storage.Profile) ([]storage.AchievementRecord, int, error) {
	var unlocked []storage.AchievementRecord
	rewardXP := 0

	for _, rule := range milestoneRules() {
		oldVal := rule.Counter(before)
		newVal := rule.Counter(after)
		if newVal < rule.Threshold || oldVal >= rule.Threshold {
			continue
		}

		exists, err := s.achievements.Exists(ctx, after.Email, rule.Code)
		if err != nil {
			return nil, 0, err
		}
		if exists {
			continue
		}

		rec := storage.AchievementRecord{
			Email:       after.Email,
			Code:        rule.Code,
			Type:        rule.Type,
			Name:        rule.Name,
			Description: rule.Description,
			XPReward:    rule.XPReward,
			EarnedAt:    s.now(),
		}
		id, err := s.achievements.Insert(ctx, rec)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return nil, 0, ConflictError{Resource: "achievement", Key: rule.Code}
			}
			return nil, 0, err
		}
		rec.ID = id
		unlocked = append(unlocked, rec)
		rewardXP += rule.XPReward
	}

	return unlocked, rewardXP, nil
}

// Achievements returns the signed-in user's earned achievements, newest
// first.
func (s *Service) Achievements(ctx context.Context) ([]storage.AchievementRecord, error) {
	u, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.achievements.ListByUser(ctx, u.Email)
}

// MilestoneByCode returns the rule definition, mainly for display.
func MilestoneByCode(code string) (MilestoneRule, error) {
	for _, rule := range milestoneRules() {
		if rule.Code == code {
			return rule, nil
		}
	}
	return MilestoneRule{}, fmt.Errorf("milestone %q: %w", code, ErrNotFound)
}
