package domain

type SpeedZone struct {
	ID     int64   `json:"id" yaml:"id"`
	Lat    float64 `json:"lat" yaml:"lat"`
	Lng    float64 `json:"lng" yaml:"lng"`
	Radius float64 `json:"radius" yaml:"radius"` // meters
	Limit  int     `json:"limit" yaml:"limit"`   // km/h
}
