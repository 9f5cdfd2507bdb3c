package engine

import (
	"context"
	"strings"

	"github.com/Ariel-quanyu/spacegreen/internal/storage"
)

// XPPerLevel is the flat per-level XP requirement. Level is always derived
// from total XP; no stored level is authoritative.
const XPPerLevel = 100

// Level returns the level for a cumulative XP total: level 1 at 0 XP, one
// level per XPPerLevel.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// XPForNextLevel returns the total XP at which the next level is reached.
func XPForNextLevel(xp int) int {
	return Level(xp) * XPPerLevel
}

// ProgressPercent returns progress through the current level in [0, 100).
func ProgressPercent(xp int) float64 {
	if xp < 0 {
		xp = 0
	}
	inLevel := xp - (Level(xp)-1)*XPPerLevel
	return float64(inLevel) / float64(XPPerLevel) * 100
}

// LevelTitle maps a level to its rank title, highest threshold first.
func LevelTitle(level int) string {
	switch {
	case level >= 20:
		return "Forest Guardian"
	case level >= 15:
		return "Eco Champion"
	case level >= 10:
		return "Green Warrior"
	case level >= 5:
		return "Nature Friend"
	default:
		return "Green Sprout"
	}
}

// CommunityActivityType is a profile-counter-backed activity kind. Each kind
// increments exactly one profile counter and awards a fixed XP amount.
type CommunityActivityType string

const (
	ActivityEventAttended CommunityActivityType = "event_attended"
	ActivitySpaceExplored CommunityActivityType = "space_explored"
	ActivityEventCreated  CommunityActivityType = "event_created"
)

func (t CommunityActivityType) IsValid() bool {
	switch t {
	case ActivityEventAttended, ActivitySpaceExplored, ActivityEventCreated:
		return true
	default:
		return false
	}
}

// XP returns the award for completing one activity of this kind.
func (t CommunityActivityType) XP() int {
	switch t {
	case ActivityEventAttended:
		return 50
	case ActivitySpaceExplored:
		return 30
	case ActivityEventCreated:
		return 100
	default:
		return 0
	}
}

// ParseCommunityActivityType parses user input to an activity kind.
func ParseCommunityActivityType(input string) (CommunityActivityType, bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "event_attended", "event", "attended":
		return ActivityEventAttended, true
	case "space_explored", "space", "explored":
		return ActivitySpaceExplored, true
	case "event_created", "created", "create":
		return ActivityEventCreated, true
	default:
		return "", false
	}
}

type TrackCommunityActivityInput struct {
	Type     CommunityActivityType
	Name     string
	Location string
}

// TrackResult reports an XP-earning update, with all achievement rewards
// applied before the final level/title.
type TrackResult struct {
	ActivityXP    int
	AchievementXP int
	Unlocked      []storage.AchievementRecord
	TotalXP       int
	LevelBefore   int
	LevelAfter    int
	Title         string
}

// Profile returns (creating on first use) the signed-in user's profile.
func (s *Service) Profile(ctx context.Context) (*storage.Profile, error) {
	u, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.profiles.GetOrCreate(ctx, u.Email, u.Name, u.Name)
}

// TrackCommunityActivity records a community activity for the signed-in
// user, bumps the matching counter and XP, and runs the milestone check.
func (s *Service) TrackCommunityActivity(ctx context.Context, in TrackCommunityActivityInput) (*TrackResult, error) {
	if !in.Type.IsValid() {
		return nil, ValidationError{Fields: map[string]string{"type": "unknown activity type"}}
	}
	name, err := normalizeTitle(in.Name)
	if err != nil {
		return nil, err
	}

	p, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}
	before := *p

	xp := in.Type.XP()
	if _, err := s.community.Insert(ctx, p.Email, string(in.Type), name, in.Location, xp, s.now()); err != nil {
		return nil, err
	}

	p.TotalXP += xp
	switch in.Type {
	case ActivityEventAttended:
		p.EventsAttended++
	case ActivitySpaceExplored:
		p.SpacesExplored++
	case ActivityEventCreated:
		p.EventsCreated++
	}

	res, err := s.applyXPUpdate(ctx, &before, p)
	if err != nil {
		return nil, err
	}
	res.ActivityXP = xp
	s.notify()
	return res, nil
}

// AwardXP grants XP outside the three counter-backed kinds (activity
// completions, bonuses) and runs the same milestone check.
func (s *Service) AwardXP(ctx context.Context, points int, reason string) (*TrackResult, error) {
	if points < 0 {
		return nil, ValidationError{Fields: map[string]string{"points": "must be non-negative"}}
	}
	p, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}
	before := *p
	p.TotalXP += points

	res, err := s.applyXPUpdate(ctx, &before, p)
	if err != nil {
		return nil, err
	}
	res.ActivityXP = points
	s.notify()
	return res, nil
}

// applyXPUpdate persists the updated profile, evaluates milestone crossings
// against the pre-update snapshot, and folds achievement rewards into the
// total before deriving the reported level.
func (s *Service) applyXPUpdate(ctx context.Context, before, p *storage.Profile) (*TrackResult, error) {
	unlocked, rewardXP, err := s.applyMilestones(ctx, before, p)
	if err != nil {
		return nil, err
	}
	p.TotalXP += rewardXP

	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}

	return &TrackResult{
		AchievementXP: rewardXP,
		Unlocked:      unlocked,
		TotalXP:       p.TotalXP,
		LevelBefore:   Level(before.TotalXP),
		LevelAfter:    Level(p.TotalXP),
		Title:         LevelTitle(Level(p.TotalXP)),
	}, nil
}
