package response

// Envelope is the uniform success shape of the API:
// {success, message, data, errors}. All four keys are always present;
// data is null when there is nothing to return.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data"`
	Errors  []string `json:"errors"`
}

func OK(message string, data any) Envelope {
	return Envelope{
		Success: true,
		Message: message,
		Data:    data,
		Errors:  []string{},
	}
}
