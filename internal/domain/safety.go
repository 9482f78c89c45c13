package domain

// SafetyLevel classifies ward risk, ordered green < yellow < red.
type SafetyLevel string

const (
	LevelGreen  SafetyLevel = "green"
	LevelYellow SafetyLevel = "yellow"
	LevelRed    SafetyLevel = "red"
)

// WardPrediction is the per-ward output of a prediction for one hour.
type WardPrediction struct {
	WardID           string      `json:"ward_id"`
	Name             string      `json:"name"`
	SafetyLevel      SafetyLevel `json:"safety_level"`
	CrimeProbability float64     `json:"crime_probability"`
	RiskFactors      []string    `json:"risk_factors"`
}

// PredictionSet holds predictions for every ward at a given hour,
// in the ward store's stable order.
type PredictionSet struct {
	Hour      int              `json:"hour"`
	Timestamp string           `json:"timestamp"` // "HH:00"
	Wards     []WardPrediction `json:"wards"`
}

// HourlyRecord is one hour of synthetic history.
type HourlyRecord struct {
	Hour             int         `json:"hour"`
	SafetyLevel      SafetyLevel `json:"safety_level"`
	CrimeProbability float64     `json:"crime_probability"`
}

// DailyRecord is one calendar day of synthetic history, 24 ordered hours.
type DailyRecord struct {
	Date       string         `json:"date"`    // YYYY-MM-DD
	Weekday    string         `json:"weekday"` // e.g. "Monday"
	HourlyData []HourlyRecord `json:"hourly_data"`
}

// PeriodStats aggregates safety levels over one time-of-day period.
type PeriodStats struct {
	DominantSafety     SafetyLevel `json:"dominant_safety"`
	DominantPercentage float64     `json:"dominant_percentage"`
	GreenCount         int         `json:"green_count"`
	YellowCount        int         `json:"yellow_count"`
	RedCount           int         `json:"red_count"`
	GreenPct           float64     `json:"green_pct"`
	YellowPct          float64     `json:"yellow_pct"`
	RedPct             float64     `json:"red_pct"`
}

// HistoricalData is the response for a ward's history query.
type HistoricalData struct {
	WardID       string                 `json:"ward_id"`
	DaysAnalyzed int                    `json:"days_analyzed"`
	DailyData    []DailyRecord          `json:"daily_data"`
	PeriodStats  map[string]PeriodStats `json:"period_stats"`
}

// Features is the input vector for a safety classifier.
type Features struct {
	Hour    int
	Weekday int // 0=Sunday .. 6=Saturday
	Month   int
	Lat     float64
	Lng     float64
}

// FuturePrediction is one hour of projected risk.
type FuturePrediction struct {
	Timestamp        string      `json:"timestamp"` // "YYYY-MM-DD HH:00"
	Hour             int         `json:"hour"`
	SafetyLevel      SafetyLevel `json:"safety_level"`
	CrimeProbability float64     `json:"crime_probability"`
	RiskFactors      []string    `json:"risk_factors"`
}

// FutureRisk is the response for a ward's future-risk query.
type FutureRisk struct {
	WardID      string             `json:"ward_id"`
	WardName    string             `json:"ward_name"`
	Predictions []FuturePrediction `json:"predictions"`
}

// SafetyTips is the composed tips response for a ward and hour.
type SafetyTips struct {
	WardID       string      `json:"ward_id"`
	WardName     string      `json:"ward_name"`
	SafetyLevel  SafetyLevel `json:"safety_level"`
	GeneralTips  []string    `json:"general_tips"`
	SpecificTips []string    `json:"specific_tips"`
	TimeTips     []string    `json:"time_tips"`
}
