package dto

type HealthResponse struct {
	Status        string   `json:"status"`
	MatrixSources []string `json:"matrix_sources"`
	MatrixKey     string   `json:"matrix_key"`
}
