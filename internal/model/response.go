package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type RootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}
