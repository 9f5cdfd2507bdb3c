package engine

import (
	"context"
	"fmt"

	"github.com/Ariel-quanyu/spacegreen/internal/storage"
)

// seedTips is the initial catalog written on first run. The catalog is
// read-only afterwards: there is no update or delete path.
func seedTips() []Tip {
	return []Tip{
		{
			ID:            "tip_energy_led",
			Title:         "Switch to LED bulbs",
			Category:      CategoryEnergy,
			Difficulty:    DifficultyEasy,
			EffortMinutes: 5,
			Impact:        Impact{CO2Kg: 6, MoneyAUD: 3, WaterL: 0},
			Summary:       "Replace halogens with LEDs at home entry and kitchen.",
			Steps: []string{
				"Identify highest-use bulbs",
				"Replace with LED equivalents",
				"Recycle old bulbs properly",
			},
			Tags: []string{"home", "lighting"},
		},
		{
			ID:            "tip_water_shower",
			Title:         "Take shorter showers",
			Category:      CategoryWater,
			Difficulty:    DifficultyEasy,
			EffortMinutes: 2,
			Impact:        Impact{CO2Kg: 4, MoneyAUD: 8, WaterL: 150},
			Summary:       "Reduce shower time by 2-3 minutes to save water and energy.",
			Steps: []string{
				"Set a 5-minute timer",
				"Turn off water while soaping",
				"Install a low-flow showerhead",
			},
			Tags: []string{"home", "bathroom", "daily"},
		},
		{
			ID:            "tip_transport_bike",
			Title:         "Bike to work once a week",
			Category:      CategoryTransport,
			Difficulty:    DifficultyMedium,
			EffortMinutes: 30,
			Impact:        Impact{CO2Kg: 12, MoneyAUD: 15, WaterL: 0},
			Summary:       "Replace one car trip per week with cycling for health and environment.",
			Steps: []string{
				"Plan a safe cycling route",
				"Check bike condition and safety gear",
				"Start with short distances",
				"Track your progress",
			},
			Tags: []string{"transport", "health", "exercise"},
		},
		{
			ID:            "tip_waste_compost",
			Title:         "Start home composting",
			Category:      CategoryWaste,
			Difficulty:    DifficultyMedium,
			EffortMinutes: 15,
			Impact:        Impact{CO2Kg: 8, MoneyAUD: 5, WaterL: 0},
			Summary:       "Turn kitchen scraps into nutrient-rich soil for your garden.",
			Steps: []string{
				"Choose a compost bin or area",
				"Collect fruit and vegetable scraps",
				"Add brown materials (leaves, paper)",
				"Turn regularly and monitor moisture",
			},
			Tags: []string{"home", "garden", "waste"},
		},
		{
			ID:            "tip_energy_unplug",
			Title:         "Unplug devices when not in use",
			Category:      CategoryEnergy,
			Difficulty:    DifficultyEasy,
			EffortMinutes: 3,
			Impact:        Impact{CO2Kg: 3, MoneyAUD: 4, WaterL: 0},
			Summary:       "Eliminate phantom power draw from electronics and chargers.",
			Steps: []string{
				"Identify devices that draw standby power",
				"Use power strips for easy switching",
				"Unplug chargers when not charging",
				"Set reminders until it becomes habit",
			},
			Tags: []string{"home", "electronics", "daily"},
		},
		{
			ID:            "tip_food_local",
			Title:         "Buy local seasonal produce",
			Category:      CategoryFood,
			Difficulty:    DifficultyEasy,
			EffortMinutes: 10,
			Impact:        Impact{CO2Kg: 15, MoneyAUD: 2, WaterL: 20},
			Summary:       "Support local farmers and reduce transport emissions.",
			Steps: []string{
				"Find local farmers markets",
				"Learn what's in season",
				"Plan meals around seasonal produce",
				"Store properly to reduce waste",
			},
			Tags: []string{"food", "local", "shopping"},
		},
	}
}

// Tips returns the catalog, seeding it into storage on first run.
func (s *Service) Tips(ctx context.Context) ([]Tip, error) {
	var tips []Tip
	ok, err := s.kv.Get(ctx, storage.KeyTips, &tips)
	if err != nil {
		return nil, err
	}
	if ok {
		return tips, nil
	}

	tips = seedTips()
	if err := s.kv.Set(ctx, storage.KeyTips, tips); err != nil {
		return nil, err
	}
	return tips, nil
}

// TipByID returns the catalog entry, or ErrNotFound.
func (s *Service) TipByID(ctx context.Context, id string) (*Tip, error) {
	tips, err := s.Tips(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tips {
		if tips[i].ID == id {
			return &tips[i], nil
		}
	}
	return nil, fmt.Errorf("tip %q: %w", id, ErrNotFound)
}

// SavedTipIDs returns the current user's saved-tip set.
func (s *Service) SavedTipIDs(ctx context.Context) ([]string, error) {
	scope, err := s.Scope(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	if _, err := s.kv.Get(ctx, storage.ScopedKey(storage.KeyTipsSaved, scope), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Service) IsTipSaved(ctx context.Context, tipID string) (bool, error) {
	ids, err := s.SavedTipIDs(ctx)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == tipID {
			return true, nil
		}
	}
	return false, nil
}

// ToggleTipSaved flips membership in the saved set and reports the new state.
func (s *Service) ToggleTipSaved(ctx context.Context, tipID string) (bool, error) {
	if _, err := s.TipByID(ctx, tipID); err != nil {
		return false, err
	}
	scope, err := s.Scope(ctx)
	if err != nil {
		return false, err
	}
	key := storage.ScopedKey(storage.KeyTipsSaved, scope)

	var ids []string
	if _, err := s.kv.Get(ctx, key, &ids); err != nil {
		return false, err
	}

	saved := true
	next := ids[:0]
	for _, id := range ids {
		if id == tipID {
			saved = false
			continue
		}
		next = append(next, id)
	}
	if saved {
		next = append(next, tipID)
	}
	if err := s.kv.Set(ctx, key, next); err != nil {
		return false, err
	}
	s.notify()
	return saved, nil
}
