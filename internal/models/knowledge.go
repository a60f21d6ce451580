package models

import "time"

// Article is a knowledge-base entry. RelevanceScore and SuccessRate are
// maintained by the editorial workflow and stay in [0,1].
type Article struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Category       string    `json:"category"`
	RelevanceScore float64   `json:"relevance_score"`
	SuccessRate    float64   `json:"success_rate"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateArticleRequest represents a request to add a knowledge-base entry
type CreateArticleRequest struct {
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	Category       string  `json:"category"`
	RelevanceScore float64 `json:"relevance_score"`
	SuccessRate    float64 `json:"success_rate"`
}
