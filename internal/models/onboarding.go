package models

// OnboardingData is the business-setup draft staged before an account
// exists. It is superseded by fields on User once signup succeeds and is
// cleared from memory and storage at that point.
//
// Field names keep the camelCase JSON shape the dashboard has always
// persisted, so drafts written by earlier releases remain readable.
type OnboardingData struct {
	BusinessName     string   `json:"businessName"`
	BusinessEmail    string   `json:"businessEmail"`
	Industry         string   `json:"industry"`
	TeamSize         string   `json:"teamSize"`
	Services         []string `json:"services"`
	PrivacyConsent   bool     `json:"privacyConsent"`
	TermsAccepted    bool     `json:"termsAccepted"`
	MarketingConsent bool     `json:"marketingConsent"`
}

// IsZero reports whether no draft field has been filled in yet.
func (d OnboardingData) IsZero() bool {
	return d.BusinessName == "" && d.BusinessEmail == "" && d.Industry == "" &&
		d.TeamSize == "" && len(d.Services) == 0 &&
		!d.PrivacyConsent && !d.TermsAccepted && !d.MarketingConsent
}
