package engine

import (
	"context"
	"errors"
	"math"
	"testing"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s=%v, want %v", name, got, want)
	}
}

func TestCalculateEmissionsCarCommute(t *testing.T) {
	res, err := CalculateEmissions(CalcInputs{
		TransportMethod: "car",
		DistanceKm:      10,
		DaysPerWeek:     5,
	})
	if err != nil {
		t.Fatalf("CalculateEmissions: %v", err)
	}

	transport := 0.21 * 10 * 5 * 4.33
	approx(t, "transport", res.TransportKg, transport)
	approx(t, "total monthly", res.TotalMonthlyKg, transport)
	approx(t, "total yearly", res.TotalYearlyKg, transport*12)
	approx(t, "trees", res.TreesEquivalent, transport*12/22)

	bus := 0.089 * 10 * 5 * 4.33
	approx(t, "savings", res.PotentialSavingsKg, transport-bus)
}

func TestCalculateEmissionsEnergyAndWaste(t *testing.T) {
	res, err := CalculateEmissions(CalcInputs{
		TransportMethod:  "bike",
		DistanceKm:       5,
		DaysPerWeek:      3,
		HomeEnergyKwh:    300,
		RenewablePercent: 25,
		WasteKg:          40,
		RecyclingPercent: 50,
	})
	if err != nil {
		t.Fatalf("CalculateEmissions: %v", err)
	}

	approx(t, "transport", res.TransportKg, 0)
	approx(t, "energy", res.EnergyKg, 300*0.82*0.75)
	approx(t, "waste", res.WasteKg, 40*0.5*0.5)
	approx(t, "savings", res.PotentialSavingsKg, 0)
}

func TestCalculateEmissionsValidation(t *testing.T) {
	_, err := CalculateEmissions(CalcInputs{
		TransportMethod: "rocket",
		DistanceKm:      -1,
		DaysPerWeek:     9,
	})
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"transportMethod", "distanceKm", "daysPerWeek"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Fatalf("missing field %q in %v", field, verr.Fields)
		}
	}
}

func TestCalculatorInputsRoundTrip(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	in := CalcInputs{TransportMethod: "car", DistanceKm: 12, DaysPerWeek: 4}
	if err := svc.SaveCalculatorInputs(ctx, in); err != nil {
		t.Fatalf("SaveCalculatorInputs: %v", err)
	}
	got, err := svc.CalculatorInputs(ctx)
	if err != nil {
		t.Fatalf("CalculatorInputs: %v", err)
	}
	if got != in {
		t.Fatalf("round trip %+v, want %+v", got, in)
	}
}

func TestGenerateCalculatorReportFeedsImpact(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	res, err := CalculateEmissions(CalcInputs{TransportMethod: "car", DistanceKm: 10, DaysPerWeek: 5})
	if err != nil {
		t.Fatalf("CalculateEmissions: %v", err)
	}
	a, err := svc.GenerateCalculatorReport(ctx, res)
	if err != nil {
		t.Fatalf("GenerateCalculatorReport: %v", err)
	}
	if a.SourceType != SourceCalculator || a.Status != StatusDone {
		t.Fatalf("report activity=%+v", a)
	}
	if a.Metrics == nil || a.Metrics.CO2Kg != res.PotentialSavingsKg {
		t.Fatalf("metrics=%+v, want savings %v", a.Metrics, res.PotentialSavingsKg)
	}

	impact, err := svc.MonthlyImpact(ctx, svc.now())
	if err != nil {
		t.Fatalf("MonthlyImpact: %v", err)
	}
	approx(t, "monthly co2", impact.CO2Kg, res.PotentialSavingsKg)
	approx(t, "monthly money", impact.MoneyAUD, 0)

	if _, err := svc.GenerateCalculatorReport(ctx, nil); err == nil {
		t.Fatalf("expected error for nil results")
	}
}
