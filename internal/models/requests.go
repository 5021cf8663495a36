package models

// StepAction selects what an UpdateStep call does to a step.
type StepAction string

const (
	ActionComplete    StepAction = "COMPLETE"
	ActionCommentOnly StepAction = "COMMENT_ONLY"
	ActionUpdateLabel StepAction = "UPDATE_LABEL"
)

// LoginRequest carries name + PIN credentials.
type LoginRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	User         *User  `json:"user"`
}

// RefreshTokenRequest exchanges a refresh token for a fresh token pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterRequest is the self-service signup payload.
type RegisterRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

// CreateUserRequest is the staff-side user creation payload.
type CreateUserRequest struct {
	Name     string `json:"name"`
	PIN      string `json:"pin"`
	Role     Role   `json:"role"`
	Email    string `json:"email,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

// UpdateUserRequest updates user fields; nil fields are left untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	PIN      *string `json:"pin,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	Email    *string `json:"email,omitempty"`
	WhatsApp *string `json:"whatsapp,omitempty"`
	Archived *bool   `json:"archived,omitempty"`
}

// CreateTemplateRequest creates an empty, non-system template.
type CreateTemplateRequest struct {
	Label  string       `json:"label"`
	Family DomainFamily `json:"family,omitempty"`
	Venue  Venue        `json:"venue,omitempty"`
}

// AddTemplateStepRequest appends a step, or inserts it at Position when set.
type AddTemplateStepRequest struct {
	Label            string `json:"label"`
	ExpectedDuration int    `json:"expected_duration"`
	Position         *int   `json:"position,omitempty"`
}

// CreateCaseRequest instantiates a case from a template.
type CreateCaseRequest struct {
	ClientID          string       `json:"client_id"`
	TemplateID        string       `json:"template_id"`
	Title             string       `json:"title"`
	BenefitType       *BenefitType `json:"benefit_type,omitempty"`
	ResponsibleLawyer string       `json:"responsible_lawyer,omitempty"`
}

// UpdateStepRequest mutates a single step. Comment, label and duration
// updates may ride along with a COMPLETE action in one call.
type UpdateStepRequest struct {
	Action         StepAction `json:"action"`
	Comment        *string    `json:"comment,omitempty"`
	NewLabel       *string    `json:"new_label,omitempty"`
	CompletionDate *string    `json:"completion_date,omitempty"` // YYYY-MM-DD; defaults to today
	NewDuration    *int       `json:"new_duration,omitempty"`
}

// AddStepRequest inserts a new LOCKED step into a live case.
type AddStepRequest struct {
	Label            string `json:"label"`
	Position         int    `json:"position"`
	ExpectedDuration int    `json:"expected_duration"`
}

// UpdateCaseTitleRequest renames a case.
type UpdateCaseTitleRequest struct {
	Title string `json:"title"`
}

// UpdateCaseStatusRequest moves a case to a new lifecycle status.
type UpdateCaseStatusRequest struct {
	Status CaseStatus `json:"status"`
}

// CreateDocumentRequest registers uploaded-file metadata against a case.
type CreateDocumentRequest struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	URL       string `json:"url"`
}
