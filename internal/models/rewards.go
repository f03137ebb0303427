package models

import "time"

type Quest struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Points      int        `json:"points"`
	Difficulty  string     `json:"difficulty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type Reward struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	PointsCost int        `json:"points_cost"`
	Level      string     `json:"level"`
	Redeemed   bool       `json:"redeemed"`
	RedeemedAt *time.Time `json:"redeemed_at,omitempty"`
}

type Activity struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// RewardsState is the full gamification snapshot returned to the dashboard.
type RewardsState struct {
	Points          int      `json:"points"`
	Level           string   `json:"level"`
	Progress        int      `json:"progress"`
	NextLevel       *string  `json:"next_level"`
	NextLevelPoints *int     `json:"next_level_points"`
	Streak          Streak   `json:"streak"`
	Quests          []Quest  `json:"quests"`
	Rewards         []Reward `json:"rewards"`
}

type LeaderboardEntry struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Level  string `json:"level"`
}
