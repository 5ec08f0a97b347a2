package domain

import "encoding/json"

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type SearchRequest struct {
	Query string
	// Bias narrows results to a box around the caller when set.
	Bias *Coordinates
}

// Place is a single search match. Coordinates stay strings as the
// geocoder returns them.
type Place struct {
	PlaceID     int64             `json:"place_id"`
	DisplayName string            `json:"display_name"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Class       string            `json:"class,omitempty"`
	Type        string            `json:"type,omitempty"`
	Importance  float64           `json:"importance,omitempty"`
	BoundingBox []string          `json:"boundingbox,omitempty"`
	Address     map[string]string `json:"address,omitempty"`
}

type TravelProfile string

const (
	ProfileCar  TravelProfile = "car"
	ProfileBike TravelProfile = "bike"
	ProfileFoot TravelProfile = "foot"
)

// RoutingMode maps a client profile to the router's mode name. Unknown
// profiles fall back to driving.
func (p TravelProfile) RoutingMode() string {
	switch p {
	case ProfileBike:
		return "cycling"
	case ProfileFoot:
		return "walking"
	default:
		return "driving"
	}
}

type RouteRequest struct {
	Start        Coordinates
	End          Coordinates
	Profile      TravelProfile
	Alternatives bool
	Steps        bool
}

// RouteResponse keeps the router payload mostly opaque; clients render the
// geometry and steps directly.
type RouteResponse struct {
	Code      string          `json:"code"`
	Message   string          `json:"message,omitempty"`
	Routes    []Route         `json:"routes"`
	Waypoints json.RawMessage `json:"waypoints,omitempty"`
}

type Route struct {
	Distance   float64         `json:"distance"`
	Duration   float64         `json:"duration"`
	Weight     float64         `json:"weight,omitempty"`
	WeightName string          `json:"weight_name,omitempty"`
	Geometry   json.RawMessage `json:"geometry,omitempty"`
	Legs       json.RawMessage `json:"legs,omitempty"`
}
