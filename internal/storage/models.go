package storage

import "time"

type Profile struct {
	Email          string
	Username       string
	FullName       string
	TotalXP        int
	EventsAttended int
	SpacesExplored int
	EventsCreated  int
	CreatedAt      time.Time
}

type AchievementRecord struct {
	ID          int64
	Email       string
	Code        string
	Type        string
	Name        string
	Description string
	XPReward    int
	EarnedAt    time.Time
}

type CommunityActivity struct {
	ID        int64
	Email     string
	Type      string
	Name      string
	Location  string
	XPEarned  int
	CreatedAt time.Time
}
