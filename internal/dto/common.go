package dto

// CommonMessageResponse is the body of message-only replies.
type CommonMessageResponse struct {
	Message string `json:"message" doc:"Result message"`
}

// EmptyRequest is used by routes that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// AvailabilityResponse answers the login/email availability checks.
type AvailabilityResponse struct {
	Available bool `json:"available" doc:"Whether the value is free to use"`
}
