package dto

// SelectOption is one entry of a patient or doctor drop-down.
type SelectOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// DeleteConfirmation is the view shown before a delete is committed.
type DeleteConfirmation struct {
	Record                   interface{} `json:"record"`
	RequestVerificationToken string      `json:"request_verification_token"`
}
