package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
)

// ModelRepository handles database operations for the single
// personalization model document.
type ModelRepository struct{}

// NewModelRepository creates a new repository instance
func NewModelRepository() *ModelRepository {
	return &ModelRepository{}
}

// modelRow mirrors the personalization_model table; bounded sequences
// are stored as JSON in text columns.
type modelRow struct {
	ID                   int     `db:"id"`
	ForgettingCurveA     float64 `db:"forgetting_curve_a"`
	ForgettingCurveB     float64 `db:"forgetting_curve_b"`
	FatigueThreshold     float64 `db:"fatigue_threshold"`
	ResponseTimeBaseline float64 `db:"response_time_baseline"`
	AccuracyTrends       string  `db:"accuracy_trends"`
	ForgetRates          string  `db:"forget_rates"`
	ConfidenceLevel      float64 `db:"confidence_level"`
}

// Load returns the persisted model state, or the defaults when no
// document exists yet. Corrupt embedded sequences fall back to empty.
func (r *ModelRepository) Load() (*models.PersonalizationState, error) {
	var row modelRow
	err := DB.Get(&row, "SELECT * FROM personalization_model WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultPersonalizationState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load personalization model: %v", err)
	}

	state := &models.PersonalizationState{
		ForgettingCurveA:     row.ForgettingCurveA,
		ForgettingCurveB:     row.ForgettingCurveB,
		FatigueThreshold:     row.FatigueThreshold,
		ResponseTimeBaseline: row.ResponseTimeBaseline,
		ConfidenceLevel:      row.ConfidenceLevel,
	}
	if err := json.Unmarshal([]byte(row.AccuracyTrends), &state.AccuracyTrends); err != nil {
		log.Printf("Warning: corrupt accuracy trends, resetting: %v", err)
		state.AccuracyTrends = []float64{}
	}
	if err := json.Unmarshal([]byte(row.ForgetRates), &state.ForgetRates); err != nil {
		log.Printf("Warning: corrupt forget rates, resetting: %v", err)
		state.ForgetRates = make(map[string][]models.ForgetRecord)
	}
	if state.ForgetRates == nil {
		state.ForgetRates = make(map[string][]models.ForgetRecord)
	}
	return state, nil
}

// Save upserts the model document.
func (r *ModelRepository) Save(state *models.PersonalizationState) error {
	trends, err := json.Marshal(orEmptyFloats(state.AccuracyTrends))
	if err != nil {
		return fmt.Errorf("failed to encode accuracy trends: %v", err)
	}
	rates := state.ForgetRates
	if rates == nil {
		rates = make(map[string][]models.ForgetRecord)
	}
	ratesJSON, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("failed to encode forget rates: %v", err)
	}

	var query string
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO personalization_model (
				id, forgetting_curve_a, forgetting_curve_b, fatigue_threshold,
				response_time_baseline, accuracy_trends, forget_rates, confidence_level
			) VALUES (1, $1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				forgetting_curve_a = EXCLUDED.forgetting_curve_a,
				forgetting_curve_b = EXCLUDED.forgetting_curve_b,
				fatigue_threshold = EXCLUDED.fatigue_threshold,
				response_time_baseline = EXCLUDED.response_time_baseline,
				accuracy_trends = EXCLUDED.accuracy_trends,
				forget_rates = EXCLUDED.forget_rates,
				confidence_level = EXCLUDED.confidence_level
		`
	} else {
		query = `
			INSERT OR REPLACE INTO personalization_model (
				id, forgetting_curve_a, forgetting_curve_b, fatigue_threshold,
				response_time_baseline, accuracy_trends, forget_rates, confidence_level
			) VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		`
	}

	_, err = DB.Exec(query,
		state.ForgettingCurveA,
		state.ForgettingCurveB,
		state.FatigueThreshold,
		state.ResponseTimeBaseline,
		string(trends),
		string(ratesJSON),
		state.ConfidenceLevel,
	)
	if err != nil {
		return fmt.Errorf("failed to save personalization model: %v", err)
	}
	return nil
}
