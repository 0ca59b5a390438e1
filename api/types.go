package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogHandler   blogHandler
	postHandler   postHandler
	healthHandler healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"validation failed"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"blogTitle"`
	Details string `json:"details,omitempty" example:"Not valid fields: field BlogTitle is null; "`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}
