package engine

import (
	"context"
	"testing"
	"time"
)

func donePtr(t time.Time) *time.Time { return &t }

func TestComputeMonthlyImpactEmpty(t *testing.T) {
	got := ComputeMonthlyImpact(nil, seedTips(), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if got != (Impact{}) {
		t.Fatalf("empty ledger impact=%+v, want zero", got)
	}
}

func TestComputeMonthlyImpactTipFrequency(t *testing.T) {
	month := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	acts := []Activity{
		{
			ID: "a1", Title: "Bike to work", Status: StatusDone, SourceType: SourceTip,
			TipID: "tip_transport_bike", FrequencyPerMonth: 3,
			DoneAt: donePtr(time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)),
		},
	}

	got := ComputeMonthlyImpact(acts, seedTips(), month)
	want := Impact{CO2Kg: 36, MoneyAUD: 45, WaterL: 0}
	if got != want {
		t.Fatalf("impact=%+v, want %+v", got, want)
	}
}

func TestComputeMonthlyImpactDedupsTips(t *testing.T) {
	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	when := donePtr(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))
	acts := []Activity{
		{ID: "a1", Title: "Bike", Status: StatusDone, TipID: "tip_transport_bike", FrequencyPerMonth: 3, DoneAt: when},
		{ID: "a2", Title: "Bike again", Status: StatusDone, TipID: "tip_transport_bike", FrequencyPerMonth: 5, DoneAt: when},
	}

	got := ComputeMonthlyImpact(acts, seedTips(), month)
	if got.CO2Kg != 36 {
		t.Fatalf("co2=%v, want first record only (36)", got.CO2Kg)
	}
}

func TestComputeMonthlyImpactMonthEdges(t *testing.T) {
	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	lastDay := Activity{
		ID: "a1", Title: "Bike", Status: StatusDone, TipID: "tip_transport_bike", FrequencyPerMonth: 1,
		DoneAt: donePtr(time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC)),
	}
	nextMonth := Activity{
		ID: "a2", Title: "Shower", Status: StatusDone, TipID: "tip_water_shower", FrequencyPerMonth: 1,
		DoneAt: donePtr(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)),
	}

	got := ComputeMonthlyImpact([]Activity{lastDay, nextMonth}, seedTips(), month)
	want := Impact{CO2Kg: 12, MoneyAUD: 15}
	if got != want {
		t.Fatalf("impact=%+v, want last day included and next month excluded (%+v)", got, want)
	}
}

func TestComputeMonthlyImpactBucketsByDateWhenNotStamped(t *testing.T) {
	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	acts := []Activity{
		{ID: "a1", Title: "Bike", Status: StatusDone, TipID: "tip_transport_bike", FrequencyPerMonth: 1, DateISO: "2026-03-20"},
		{ID: "a2", Title: "Shower", Status: StatusDone, TipID: "tip_water_shower", FrequencyPerMonth: 1, DateISO: "2026-02-20"},
		{ID: "a3", Title: "Broken", Status: StatusDone, TipID: "tip_waste_compost", FrequencyPerMonth: 1, DateISO: "not-a-date"},
	}

	got := ComputeMonthlyImpact(acts, seedTips(), month)
	want := Impact{CO2Kg: 12, MoneyAUD: 15}
	if got != want {
		t.Fatalf("impact=%+v, want %+v", got, want)
	}
}

func TestComputeMonthlyImpactSources(t *testing.T) {
	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	when := donePtr(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	acts := []Activity{
		{ID: "a1", Title: "Commute switch", Status: StatusDone, SourceType: SourceCalculator, Metrics: &Metrics{CO2Kg: 26.2}, DoneAt: when},
		{ID: "a2", Title: "River cleanup", Status: StatusDone, SourceType: SourceEvent, ExpectedImpact: &Impact{CO2Kg: 5, MoneyAUD: 0, WaterL: 100}, DoneAt: when},
		{ID: "a3", Title: "Custom thing", Status: StatusDone, SourceType: SourceCustom, DoneAt: when},
		{ID: "a4", Title: "Planned", Status: StatusPlanned, SourceType: SourceEvent, ExpectedImpact: &Impact{CO2Kg: 99}, DateISO: "2026-03-10"},
	}

	got := ComputeMonthlyImpact(acts, nil, month)
	want := Impact{CO2Kg: 31.2, MoneyAUD: 0, WaterL: 100}
	if got != want {
		t.Fatalf("impact=%+v, want %+v", got, want)
	}
}

func TestDoneThisMonthUsesServiceClock(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }

	if _, err := svc.CreateActivity(ctx, CreateActivityInput{Title: "Bike", Status: StatusDone}); err != nil {
		t.Fatalf("CreateActivity: %v", err)
	}
	if _, err := svc.CreateActivity(ctx, CreateActivityInput{Title: "Later", DateISO: "2026-04-02"}); err != nil {
		t.Fatalf("CreateActivity: %v", err)
	}

	done, err := svc.DoneThisMonth(ctx)
	if err != nil {
		t.Fatalf("DoneThisMonth: %v", err)
	}
	if len(done) != 1 || done[0].Title != "Bike" {
		t.Fatalf("done=%+v, want only the March record", done)
	}
}

func TestDoneActivitiesInMonth(t *testing.T) {
	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	acts := []Activity{
		{ID: "a1", Status: StatusDone, DoneAt: donePtr(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))},
		{ID: "a2", Status: StatusDone, DoneAt: donePtr(time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC))},
		{ID: "a3", Status: StatusPlanned, DateISO: "2026-03-02"},
	}

	got := DoneActivitiesInMonth(acts, month)
	if len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("got %+v, want only a1", got)
	}
}
