package dto

import "time"

type ContributionRequest struct {
	Type      string  `json:"type"`
	NameFa    string  `json:"name_fa"`
	NameEn    string  `json:"name_en"`
	City      string  `json:"city"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ContributionResponse struct {
	ContributionID string    `json:"contribution_id"`
	Type           string    `json:"type"`
	NameFa         string    `json:"name_fa"`
	NameEn         string    `json:"name_en"`
	City           string    `json:"city"`
	Address        string    `json:"address"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

type ListContributionsResponse struct {
	Contributions []ContributionResponse `json:"contributions"`
}

type ApproveResponse struct {
	PlaceID string `json:"place_id"`
}
