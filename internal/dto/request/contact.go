package request

// ContactRequest is a quote request. No payment is involved.
type ContactRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Date    string `json:"date,omitempty"`
	Time    string `json:"time,omitempty" validate:"max=50"`
	Message string `json:"message,omitempty"`
}
