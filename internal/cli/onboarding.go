package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/inboxpilot/dashboard-client/internal/models"
)

// onboarding stages (or clears) the pre-signup business-setup draft.
func (a *App) onboarding(ctx context.Context, args []string) {
	if len(args) > 0 && args[0] == "clear" {
		if err := a.manager.ClearOnboardingData(ctx); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
		fmt.Fprintln(a.out, "Onboarding draft cleared")
		a.printRedirect()
		return
	}

	draft := models.OnboardingData{}

	var err error
	if draft.BusinessName, err = GetSimpleText(a.reader, "Business name", a.out); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if draft.BusinessEmail, err = GetSimpleText(a.reader, "Business email (empty to reuse signup email)", a.out); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if draft.Industry, err = GetSimpleText(a.reader, "Industry", a.out); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if draft.TeamSize, err = GetSimpleText(a.reader, "Team size (e.g. 1-10)", a.out); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	services, err := GetSimpleText(a.reader, "Services (comma-separated: email-assistant, crm, service-config)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	for _, s := range strings.Split(services, ",") {
		if s = strings.TrimSpace(s); s != "" {
			draft.Services = append(draft.Services, s)
		}
	}

	if draft.PrivacyConsent, err = GetYesNo(a.reader, "Accept privacy policy?", a.out); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if draft.TermsAccepted, err = GetYesNo(a.reader, "Accept terms of service?", a.out); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if draft.MarketingConsent, err = GetYesNo(a.reader, "Receive product updates?", a.out); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if err := a.manager.SetOnboardingData(ctx, draft); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "Onboarding draft saved")
	a.printRedirect()
}
