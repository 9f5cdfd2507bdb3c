package engine

import (
	"context"
	"fmt"

	"github.com/Ariel-quanyu/spacegreen/internal/storage"
)

// Emission factors (kg CO₂) used by the footprint calculator.
const (
	GridEmissionFactor  = 0.82 // per kWh, Australian grid average
	WasteEmissionFactor = 0.5  // per kg of landfill waste
	WeeksPerMonth       = 4.33
	TreeAbsorptionKg    = 22 // per tree per year
)

// TransportEmissionFactors maps commute methods to kg CO₂ per km.
var TransportEmissionFactors = map[string]float64{
	"car":   0.21,
	"bus":   0.089,
	"train": 0.041,
	"bike":  0,
	"walk":  0,
}

// CalcInputs are the calculator's form fields. Energy and waste sections are
// optional (zero means not provided).
type CalcInputs struct {
	TransportMethod  string  `json:"transportMethod"`
	DistanceKm       float64 `json:"distanceKm"`
	DaysPerWeek      int     `json:"daysPerWeek"`
	HomeEnergyKwh    float64 `json:"homeEnergyKwh,omitempty"`
	RenewablePercent float64 `json:"renewablePercent,omitempty"`
	WasteKg          float64 `json:"wasteKg,omitempty"`
	RecyclingPercent float64 `json:"recyclingPercent,omitempty"`
}

// CalcResults are monthly figures unless noted.
type CalcResults struct {
	TransportKg        float64
	EnergyKg           float64
	WasteKg            float64
	TotalMonthlyKg     float64
	TotalYearlyKg      float64
	TreesEquivalent    float64
	PotentialSavingsKg float64
}

func validateCalcInputs(in CalcInputs) error {
	fields := map[string]string{}

	if _, ok := TransportEmissionFactors[in.TransportMethod]; !ok {
		fields["transportMethod"] = "select a transport method"
	}
	if in.DistanceKm <= 0 {
		fields["distanceKm"] = "enter a valid distance"
	}
	if in.DaysPerWeek < 1 || in.DaysPerWeek > 7 {
		fields["daysPerWeek"] = "enter days per week (1-7)"
	}
	if in.HomeEnergyKwh < 0 {
		fields["homeEnergyKwh"] = "energy usage cannot be negative"
	}
	if in.RenewablePercent < 0 || in.RenewablePercent > 100 {
		fields["renewablePercent"] = "renewable percentage must be 0-100"
	}
	if in.WasteKg < 0 {
		fields["wasteKg"] = "waste amount cannot be negative"
	}
	if in.RecyclingPercent < 0 || in.RecyclingPercent > 100 {
		fields["recyclingPercent"] = "recycling percentage must be 0-100"
	}

	if len(fields) > 0 {
		return ValidationError{Fields: fields}
	}
	return nil
}

// CalculateEmissions computes the monthly footprint and the savings
// available by switching a car commute to the bus.
func CalculateEmissions(in CalcInputs) (*CalcResults, error) {
	if err := validateCalcInputs(in); err != nil {
		return nil, err
	}

	transportKg := TransportEmissionFactors[in.TransportMethod] * in.DistanceKm * float64(in.DaysPerWeek) * WeeksPerMonth

	var energyKg float64
	if in.HomeEnergyKwh > 0 {
		energyKg = in.HomeEnergyKwh * GridEmissionFactor * (1 - in.RenewablePercent/100)
	}

	var wasteKg float64
	if in.WasteKg > 0 {
		wasteKg = in.WasteKg * WasteEmissionFactor * (1 - in.RecyclingPercent/100)
	}

	totalMonthly := transportKg + energyKg + wasteKg
	totalYearly := totalMonthly * 12

	var savings float64
	if in.TransportMethod == "car" {
		busKg := TransportEmissionFactors["bus"] * in.DistanceKm * float64(in.DaysPerWeek) * WeeksPerMonth
		savings = transportKg - busKg
	}

	return &CalcResults{
		TransportKg:        transportKg,
		EnergyKg:           energyKg,
		WasteKg:            wasteKg,
		TotalMonthlyKg:     totalMonthly,
		TotalYearlyKg:      totalYearly,
		TreesEquivalent:    totalYearly / TreeAbsorptionKg,
		PotentialSavingsKg: savings,
	}, nil
}

// SaveCalculatorInputs persists the form for the next session.
func (s *Service) SaveCalculatorInputs(ctx context.Context, in CalcInputs) error {
	scope, err := s.Scope(ctx)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, storage.ScopedKey(storage.KeyCalcInputs, scope), in); err != nil {
		return err
	}
	s.notify()
	return nil
}

// CalculatorInputs returns the persisted form, or the zero value when none
// was saved.
func (s *Service) CalculatorInputs(ctx context.Context) (CalcInputs, error) {
	scope, err := s.Scope(ctx)
	if err != nil {
		return CalcInputs{}, err
	}
	var in CalcInputs
	if _, err := s.kv.Get(ctx, storage.ScopedKey(storage.KeyCalcInputs, scope), &in); err != nil {
		return CalcInputs{}, err
	}
	return in, nil
}

// GenerateCalculatorReport records the calculator's potential savings as a
// done activity so it feeds the monthly impact.
func (s *Service) GenerateCalculatorReport(ctx context.Context, results *CalcResults) (*Activity, error) {
	if results == nil {
		return nil, fmt.Errorf("calculator report: no results")
	}
	return s.CreateActivity(ctx, CreateActivityInput{
		Title:      "Low-carbon commute",
		Category:   CategoryTransport,
		Note:       "Auto from calculator",
		Status:     StatusDone,
		SourceType: SourceCalculator,
		Metrics:    &Metrics{CO2Kg: results.PotentialSavingsKg},
	})
}
