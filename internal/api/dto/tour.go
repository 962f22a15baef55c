package dto

type TourRequest struct {
	MatrixSource string   `json:"matrix_source"`
	Alpha        *float64 `json:"alpha"`
	Solver       string   `json:"solver"`
}

type TourStopResponse struct {
	Index     int     `json:"index"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	LegMeters int     `json:"leg_meters"`
}

type TourResponse struct {
	Stops               []TourStopResponse `json:"stops"`
	TotalDistanceMeters int                `json:"total_distance_meters"`
}
