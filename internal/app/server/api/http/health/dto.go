package health

type statusInput struct{}

type statusOutput struct {
	Body StatusResponse
}

// StatusResponse is served with 200 only; a failed storage probe turns the
// call into a 503 error body instead.
type StatusResponse struct {
	Status  string `json:"status" example:"OK"`
	Storage string `json:"storage" example:"up" doc:"Result of the storage probe, \"skipped\" when none is configured"`
}
