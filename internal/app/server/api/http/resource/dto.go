package resource

type listOutput[T any] struct {
	Body []T
}

type findInput struct {
	ID string `path:"id" example:"1" doc:"Record id, a decimal integer"`
}

type findOutput[T any] struct {
	Body T
}

type createInput struct {
	RawBody []byte `contentType:"application/json"`
}

type createOutput struct {
	Body CreatedResponse
}

type CreatedResponse struct {
	ID int `json:"id" example:"65" doc:"Id of the created record"`
}

type updateInput struct {
	ID      string `path:"id" example:"1" doc:"Record id, a decimal integer"`
	RawBody []byte `contentType:"application/json"`
}

type noContentOutput struct{}
