package types

type ApiResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Token   string      `json:"token,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// PaginatedData is the envelope for list endpoints.
type PaginatedData struct {
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	Limit    int         `json:"limit"`
	LastPage int64       `json:"last_page"`
}
