package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/villosa/bookingmail/constants"
)

// TrainingExample is one labeled message in the append-only training log.
// Created by a curation step (human or CSV reconciliation), consumed at
// training time, never mutated afterward.
type TrainingExample struct {
	ID       uuid.UUID               `json:"id"`
	Text     string                  `json:"text"`
	Subject  string                  `json:"subject"`
	Sender   string                  `json:"sender"`
	Category constants.EmailCategory `json:"category"`

	// Labels maps field name to ground-truth amount. Candidates whose
	// normalized value matches within epsilon are labeled with the field.
	Labels map[constants.Field]float64 `json:"labels"`

	CreatedAt time.Time `json:"created_at"`
}
