package heysdk

import "github.com/heymumma/heymumma/pkg/jwtx"

// ============================================================================
// Session Types
// ============================================================================

// SessionResponse is returned by signup and login.
type SessionResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`

	// ProfileCompleted tells the client whether to route to profile setup.
	ProfileCompleted bool `json:"profile_completed"`
}

// ============================================================================
// Account Types
// ============================================================================

// AccountResponse is an account as returned by the API. The password hash is
// never included.
type AccountResponse struct {
	Email            string   `json:"email"`
	Name             string   `json:"name"`
	Age              *int     `json:"age"`
	Height           *float64 `json:"height"`
	Weight           *float64 `json:"weight"`
	Pregnancies      *int     `json:"pregnancies"`
	DueDate          *string  `json:"due_date"`
	RegistrationDate string   `json:"registration_date"`
	ProfileCompleted bool     `json:"profile_completed"`
}

// ProfileRequest is a partial profile update; omitted fields are unchanged.
type ProfileRequest struct {
	Age         *int     `json:"age,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	Pregnancies *int     `json:"pregnancies,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
}

type ProfileStatusResponse struct {
	ProfileCompleted bool `json:"profile_completed"`
}

// ============================================================================
// Guide Types
// ============================================================================

type Nutrition struct {
	FocusNutrients   []string `json:"focus_nutrients"`
	RecommendedFoods []string `json:"recommended_foods"`
	FoodsToAvoid     []string `json:"foods_to_avoid"`
	Tips             []string `json:"tips"`
}

// GuideWeek is the development guide for one gestational week.
type GuideWeek struct {
	Week           int       `json:"week"`
	Trimester      int       `json:"trimester"`
	Title          string    `json:"title"`
	Size           string    `json:"size"`
	SizeComparison string    `json:"size_comparison"`
	Weight         string    `json:"weight"`
	Highlights     []string  `json:"highlights"`
	Details        string    `json:"details"`
	WhatToExpect   []string  `json:"what_to_expect"`
	Tips           []string  `json:"tips"`
	Exercises      []string  `json:"exercises"`
	Nutrition      Nutrition `json:"nutrition"`
	WeightGain     string    `json:"recommended_weight_gain"`
}

type Milestone struct {
	Trimester int      `json:"trimester"`
	Name      string   `json:"name"`
	Events    []string `json:"events"`
}

type MilestonesResponse struct {
	Milestones []Milestone `json:"milestones"`
}

// PregnancyResponse is the gestational progress for the signed-in account.
type PregnancyResponse struct {
	DueDate       string    `json:"due_date"`
	DaysPregnant  int       `json:"days_pregnant"`
	WeeksPregnant int       `json:"weeks_pregnant"`
	DaysRemaining int       `json:"days_remaining"`
	Trimester     int       `json:"current_trimester"`
	PercentDone   int       `json:"percent_complete"`
	Guide         GuideWeek `json:"guide"`
}

// ============================================================================
// Prediction Types
// ============================================================================

type MaternalRiskRequest struct {
	Age         float64 `json:"age"`
	DiastolicBP float64 `json:"diastolic_bp"`
	BloodSugar  float64 `json:"blood_sugar"`
	BodyTemp    float64 `json:"body_temp"`
	HeartRate   float64 `json:"heart_rate"`
}

// Vector is the feature order the maternal model was fitted on.
func (r MaternalRiskRequest) Vector() []float64 {
	return []float64{r.Age, r.DiastolicBP, r.BloodSugar, r.BodyTemp, r.HeartRate}
}

// FetalHealthRequest carries the 21 cardiotocography readings.
type FetalHealthRequest struct {
	BaselineValue                                   float64 `json:"baseline_value"`
	Accelerations                                   float64 `json:"accelerations"`
	FetalMovement                                   float64 `json:"fetal_movement"`
	UterineContractions                             float64 `json:"uterine_contractions"`
	LightDecelerations                              float64 `json:"light_decelerations"`
	SevereDecelerations                             float64 `json:"severe_decelerations"`
	ProlonguedDecelerations                         float64 `json:"prolongued_decelerations"`
	AbnormalShortTermVariability                    float64 `json:"abnormal_short_term_variability"`
	MeanValueOfShortTermVariability                 float64 `json:"mean_value_of_short_term_variability"`
	PercentageOfTimeWithAbnormalLongTermVariability float64 `json:"percentage_of_time_with_abnormal_long_term_variability"`
	MeanValueOfLongTermVariability                  float64 `json:"mean_value_of_long_term_variability"`
	HistogramWidth                                  float64 `json:"histogram_width"`
	HistogramMin                                    float64 `json:"histogram_min"`
	HistogramMax                                    float64 `json:"histogram_max"`
	HistogramNumberOfPeaks                          float64 `json:"histogram_number_of_peaks"`
	HistogramNumberOfZeroes                         float64 `json:"histogram_number_of_zeroes"`
	HistogramMode                                   float64 `json:"histogram_mode"`
	HistogramMean                                   float64 `json:"histogram_mean"`
	HistogramMedian                                 float64 `json:"histogram_median"`
	HistogramVariance                               float64 `json:"histogram_variance"`
	HistogramTendency                               float64 `json:"histogram_tendency"`
}

// Vector is the feature order the fetal model was fitted on.
func (r FetalHealthRequest) Vector() []float64 {
	return []float64{
		r.BaselineValue,
		r.Accelerations,
		r.FetalMovement,
		r.UterineContractions,
		r.LightDecelerations,
		r.SevereDecelerations,
		r.ProlonguedDecelerations,
		r.AbnormalShortTermVariability,
		r.MeanValueOfShortTermVariability,
		r.PercentageOfTimeWithAbnormalLongTermVariability,
		r.MeanValueOfLongTermVariability,
		r.HistogramWidth,
		r.HistogramMin,
		r.HistogramMax,
		r.HistogramNumberOfPeaks,
		r.HistogramNumberOfZeroes,
		r.HistogramMode,
		r.HistogramMean,
		r.HistogramMedian,
		r.HistogramVariance,
		r.HistogramTendency,
	}
}

type PredictionResponse struct {
	Model string `json:"model"`
	Label int    `json:"label"`
	Level string `json:"level"`
}

// ============================================================================
// Health Types
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database   string `json:"database"`
	SchemaMode string `json:"schema_mode"`
	Signer     string `json:"signer"`
}

// JWKSResponse is the public key set session tokens are signed with.
type JWKSResponse jwtx.JWKS
