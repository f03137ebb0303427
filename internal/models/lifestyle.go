package models

import "time"

const (
	LifestyleGood             = "Good"
	LifestyleNeedsImprovement = "Needs Improvement"
	LifestyleHighRisk         = "High Risk"
)

type LifestyleRating struct {
	Score          string `json:"score"`
	Value          string `json:"value"`
	Recommendation string `json:"recommendation"`
}

type LifestyleReport struct {
	Sleep       LifestyleRating `json:"sleep"`
	Diet        LifestyleRating `json:"diet"`
	Smoking     LifestyleRating `json:"smoking"`
	Stress      LifestyleRating `json:"stress"`
	LastUpdated time.Time       `json:"last_updated"`
}
