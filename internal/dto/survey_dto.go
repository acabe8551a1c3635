package dto

import "github.com/google/uuid"

// SubmitResponsesRequest carries answers keyed by question id.
type SubmitResponsesRequest struct {
	Answers map[uuid.UUID]string `json:"answers"`
}

type RespondedResponse struct {
	Responded bool `json:"responded"`
}

type ProgressResponse struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}
