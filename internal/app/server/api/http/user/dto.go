package user

type rawInput struct {
	RawBody []byte `contentType:"application/json"`
}

type accountInput struct {
	Email   string `path:"email" example:"ron@hogwarts.edu" doc:"Account email"`
	RawBody []byte `contentType:"application/json"`
}

type profileOutput struct {
	Body ProfileResponse
}

type ProfileResponse struct {
	Email string `json:"email" example:"ron@hogwarts.edu"`
}

type messageOutput struct {
	Body MessageResponse
}

type MessageResponse struct {
	Message string `json:"message" example:"Authentication successful"`
}
