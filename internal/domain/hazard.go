package domain

import "time"

// Hazard is a reported road condition. Category and Label travel as "type"
// and "tag" on the wire, matching the map clients.
type Hazard struct {
	ID          int64     `json:"id" yaml:"id"`
	Lat         float64   `json:"lat" yaml:"lat"`
	Lng         float64   `json:"lng" yaml:"lng"`
	Category    string    `json:"type" yaml:"type"`
	Label       string    `json:"tag" yaml:"tag"`
	Description string    `json:"description" yaml:"description"`
	Verified    bool      `json:"verified" yaml:"verified"`
	CreatedAt   time.Time `json:"timestamp" yaml:"timestamp"`
}

type CreateHazardRequest struct {
	Lat         *float64 `json:"lat" validate:"required,lat"`
	Lng         *float64 `json:"lng" validate:"required,lng"`
	Category    string   `json:"type" validate:"notblank,max=64"`
	Label       string   `json:"tag" validate:"notblank,max=64"`
	Description string   `json:"description" validate:"max=2000"`
	// Accepted for compatibility with older clients; new hazards always start unverified.
	Verified bool `json:"verified"`
}

type DeleteHazardResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}
