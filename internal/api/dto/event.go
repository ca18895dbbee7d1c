package dto

import "time"

type EventSummaryResponse struct {
	EventID   string    `json:"event_id"`
	City      string    `json:"city"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	TitleFa   string    `json:"title_fa"`
	TitleEn   string    `json:"title_en"`
}

type ListEventsResponse struct {
	Events []EventSummaryResponse `json:"events"`
}

type EventDetailResponse struct {
	EventID       string            `json:"event_id"`
	City          string            `json:"city"`
	Address       string            `json:"address"`
	Latitude      float64           `json:"latitude"`
	Longitude     float64           `json:"longitude"`
	StartAt       time.Time         `json:"start_at"`
	EndAt         time.Time         `json:"end_at"`
	TitleFa       string            `json:"title_fa"`
	TitleEn       string            `json:"title_en"`
	DescriptionFa string            `json:"description_fa"`
	DescriptionEn string            `json:"description_en"`
	Comments      []CommentResponse `json:"comments"`
	Images        []string          `json:"images"`
}
