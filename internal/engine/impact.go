package engine

import (
	"context"
	"time"
)

// monthWindow returns the UTC bounds of month's calendar month as
// [start, next): start is the first day at midnight, next the first day of
// the following month. The last calendar day is therefore fully included.
func monthWindow(month time.Time) (start, next time.Time) {
	start = time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	next = start.AddDate(0, 1, 0)
	return start, next
}

// bucketTime returns the timestamp used for month-bucketing: DoneAt when
// set, otherwise the activity's date.
func bucketTime(a Activity) (time.Time, bool) {
	if a.DoneAt != nil {
		return a.DoneAt.UTC(), true
	}
	t, err := time.ParseInLocation(dateLayout, a.DateISO, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ComputeMonthlyImpact sums the environmental contributions of done
// activities bucketed into month.
//
// Tip-linked activities contribute the tip's impact triple scaled by the
// activity's own frequencyPerMonth, and are deduplicated per tip within the
// month: only the first record encountered counts, modelling a recurring
// tip that saves once per month regardless of how many records reference
// it. Calculator-sourced activities contribute their measured CO₂ only.
// Event-sourced activities contribute their expected impact verbatim.
// Custom activities with none of these carry no modelled impact. Negative
// inputs are summed as-is, never clamped.
func ComputeMonthlyImpact(activities []Activity, tips []Tip, month time.Time) Impact {
	start, next := monthWindow(month)

	tipByID := make(map[string]Tip, len(tips))
	for _, t := range tips {
		tipByID[t.ID] = t
	}

	var total Impact
	seenTips := map[string]bool{}

	for _, a := range activities {
		if a.Status != StatusDone {
			continue
		}
		when, ok := bucketTime(a)
		if !ok || when.Before(start) || !when.Before(next) {
			continue
		}

		if a.TipID != "" {
			if seenTips[a.TipID] {
				continue
			}
			seenTips[a.TipID] = true

			freq := a.FrequencyPerMonth
			if freq <= 0 {
				freq = 1
			}
			if tip, ok := tipByID[a.TipID]; ok {
				total.Add(tip.Impact.Scale(float64(freq)))
			}
			continue
		}

		if a.SourceType == SourceCalculator && a.Metrics != nil {
			total.CO2Kg += a.Metrics.CO2Kg
			continue
		}

		if a.SourceType == SourceEvent && a.ExpectedImpact != nil {
			total.Add(*a.ExpectedImpact)
		}
	}

	return total
}

// DoneActivitiesInMonth filters with the same bucketing rule as
// ComputeMonthlyImpact, without aggregating.
func DoneActivitiesInMonth(activities []Activity, month time.Time) []Activity {
	start, next := monthWindow(month)

	var out []Activity
	for _, a := range activities {
		if a.Status != StatusDone {
			continue
		}
		when, ok := bucketTime(a)
		if !ok || when.Before(start) || !when.Before(next) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// MonthlyImpact loads the user's ledger and the catalog and aggregates the
// given month.
func (s *Service) MonthlyImpact(ctx context.Context, month time.Time) (Impact, error) {
	activities, err := s.Activities(ctx)
	if err != nil {
		return Impact{}, err
	}
	tips, err := s.Tips(ctx)
	if err != nil {
		return Impact{}, err
	}
	return ComputeMonthlyImpact(activities, tips, month), nil
}

// DoneThisMonth returns the done activities bucketed into the current month.
func (s *Service) DoneThisMonth(ctx context.Context) ([]Activity, error) {
	activities, err := s.Activities(ctx)
	if err != nil {
		return nil, err
	}
	return DoneActivitiesInMonth(activities, s.now()), nil
}
