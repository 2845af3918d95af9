package models

import "time"

// GenerateResponse is returned by the secret generation endpoint.
type GenerateResponse struct {
	Secret      string  `json:"secret"`
	Length      int     `json:"length"`
	EntropyBits float64 `json:"entropy_bits"`
}

// RevealResponse carries a decrypted secret for a single record. It is only
// produced on an explicit reveal request.
type RevealResponse struct {
	Secret string `json:"secret"`
}

// ExportResponse describes a finished backup export.
type ExportResponse struct {
	Object    string    `json:"object"`
	Records   int       `json:"records"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse is the JSON body written for failed API calls.
type ErrorResponse struct {
	Error string `json:"error"`
}
