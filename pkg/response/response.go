package response

// Envelope is the generic JSON error/success body used by middleware and a
// few handlers that do not go through fres.
type Envelope struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Error(code, message string, data interface{}) Envelope {
	return Envelope{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func Success(message string, data interface{}) Envelope {
	return Envelope{
		Code:    "OK",
		Message: message,
		Data:    data,
	}
}
