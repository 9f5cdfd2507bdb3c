package engine

import "time"

type Category string

const (
	CategoryEnergy    Category = "Energy"
	CategoryWater     Category = "Water"
	CategoryTransport Category = "Transport"
	CategoryWaste     Category = "Waste"
	CategoryFood      Category = "Food"
	// CategorySocial tags activities added from community events.
	CategorySocial Category = "Social"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryEnergy, CategoryWater, CategoryTransport, CategoryWaste, CategoryFood, CategorySocial:
		return true
	default:
		return false
	}
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// SourceType is the provenance tag of an activity. The extra fields an
// activity carries depend on it: tip-sourced activities carry TipID and
// FrequencyPerMonth, calculator-sourced ones carry Metrics, event-sourced
// ones carry EventID and ExpectedImpact. Custom activities carry none.
type SourceType string

const (
	SourceCustom     SourceType = "custom"
	SourceTip        SourceType = "tip"
	SourceEvent      SourceType = "event"
	SourceCalculator SourceType = "calculator"
)

func (s SourceType) IsValid() bool {
	switch s {
	case SourceCustom, SourceTip, SourceEvent, SourceCalculator:
		return true
	default:
		return false
	}
}

// Impact is a monthly savings triple.
type Impact struct {
	CO2Kg    float64 `json:"co2_kg"`
	MoneyAUD float64 `json:"money_aud"`
	WaterL   float64 `json:"water_l"`
}

// Add accumulates other into i.
func (i *Impact) Add(other Impact) {
	i.CO2Kg += other.CO2Kg
	i.MoneyAUD += other.MoneyAUD
	i.WaterL += other.WaterL
}

// Scale returns the triple multiplied by f.
func (i Impact) Scale(f float64) Impact {
	return Impact{CO2Kg: i.CO2Kg * f, MoneyAUD: i.MoneyAUD * f, WaterL: i.WaterL * f}
}

// Metrics holds measured values on calculator-sourced activities. Only the
// CO₂ figure feeds the monthly aggregation.
type Metrics struct {
	CO2Kg float64 `json:"co2_kg"`
}

// Tip is an immutable catalog entry. Impact is the per-month savings at the
// tip's nominal once-per-month frequency.
type Tip struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Category      Category   `json:"category"`
	Difficulty    Difficulty `json:"difficulty"`
	EffortMinutes int        `json:"effort_minutes"`
	Impact        Impact     `json:"impact"`
	Summary       string     `json:"summary"`
	Steps         []string   `json:"steps"`
	Tags          []string   `json:"tags"`
}

// Activity is a user-owned ledger record. The JSON field names are the
// on-disk storage format.
type Activity struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Category          Category   `json:"category"`
	Note              string     `json:"note,omitempty"`
	DateISO           string     `json:"dateISO"`
	Status            Status     `json:"status"`
	SourceType        SourceType `json:"sourceType"`
	TipID             string     `json:"tipId,omitempty"`
	FrequencyPerMonth int        `json:"frequencyPerMonth"`
	DoneAt            *time.Time `json:"doneAt,omitempty"`
	EventID           string     `json:"eventId,omitempty"`
	Metrics           *Metrics   `json:"metrics,omitempty"`
	ExpectedImpact    *Impact    `json:"expectedImpact,omitempty"`
}

// AuthUser is the session record stored under auth_user.
type AuthUser struct {
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const dateLayout = "2006-01-02"
