// Package api defines the request and response types shared by the HTTP
// handlers. Every success response uses the {message, data} envelope and
// every failure uses the {error} envelope.
package api

// MessageResponse is the success envelope.
type MessageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the failure envelope. The error string is always one of
// the safe, non-leaking messages mapped at the handler boundary.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterRequest registers (or re-registers, idempotently) the caller.
// The subject identity is taken from the verified bearer assertion; the
// external_subject_id field exists for compatibility with older clients and
// is ignored when it disagrees with the token.
type RegisterRequest struct {
	ExternalSubjectID string `json:"external_subject_id"`
	Email             string `json:"email" binding:"required,email"`
}

// CreateCredentialRequest creates a new credential record.
type CreateCredentialRequest struct {
	ServiceName string  `json:"service_name" binding:"required,min=1,max=255"`
	ServiceURL  *string `json:"service_url,omitempty" binding:"omitempty,max=500"`
	Username    *string `json:"username,omitempty" binding:"omitempty,max=255"`
	Password    string  `json:"password" binding:"required,min=1"`
	Notes       *string `json:"notes,omitempty"`
}

// UpdateCredentialRequest carries a partial update. Only non-nil fields are
// applied; the server accepts any explicit partial payload and never assumes
// the client diffed against current state.
type UpdateCredentialRequest struct {
	ServiceName *string `json:"service_name,omitempty" binding:"omitempty,min=1,max=255"`
	ServiceURL  *string `json:"service_url,omitempty" binding:"omitempty,max=500"`
	Username    *string `json:"username,omitempty" binding:"omitempty,max=255"`
	Password    *string `json:"password,omitempty" binding:"omitempty,min=1"`
	Notes       *string `json:"notes,omitempty"`
}

// GeneratePasswordRequest selects the character-class policy for a generated
// password.
type GeneratePasswordRequest struct {
	Length         int  `json:"length"`
	IncludeUpper   bool `json:"include_upper"`
	IncludeLower   bool `json:"include_lower"`
	IncludeNumbers bool `json:"include_numbers"`
	IncludeSymbols bool `json:"include_symbols"`
	ExcludeSimilar bool `json:"exclude_similar"`
}

// GeneratePasswordResponse carries a freshly generated password.
type GeneratePasswordResponse struct {
	Password string `json:"password"`
}
