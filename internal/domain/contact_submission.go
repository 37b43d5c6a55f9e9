package domain

import "time"

// ContactSubmission is a single inquiry sent through the website contact form.
type ContactSubmission struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Company   string
	Message   string
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// CompanyOrNA returns the company name or "N/A" when it was left blank.
func (s *ContactSubmission) CompanyOrNA() string {
	if s.Company == "" {
		return "N/A"
	}
	return s.Company
}
