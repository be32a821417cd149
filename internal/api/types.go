package api

import (
	"feedback-analysis/internal/models"
)

// ClassifyRequest is one piece of feedback to label.
type ClassifyRequest struct {
	Content  string `json:"content"`
	Strategy string `json:"strategy,omitempty"`
}

// ClassifyResponse carries the final label and how it was produced.
type ClassifyResponse struct {
	Label   string         `json:"label"`
	Outcome models.Outcome `json:"outcome"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
