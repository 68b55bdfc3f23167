package notify

import (
	"fmt"

	"sportify-backend/internal/models"
)

const (
	TemplateRegistrationConfirmation = "registration_confirmation"
	TemplatePaymentConfirmation      = "payment_confirmation"
	TemplateVerificationUpdate       = "verification_update"
)

type Message struct {
	To       []string
	Subject  string
	Template string
	Data     any
}

const dateLayout = "02 Jan 2006"

func RegistrationConfirmation(player *models.User, t *models.Tournament, reg *models.Registration, link string) Message {
	return Message{
		To:       []string{player.Email},
		Subject:  fmt.Sprintf("Registration received: %s", t.Name),
		Template: TemplateRegistrationConfirmation,
		Data: map[string]any{
			"PlayerName":       player.Name,
			"TournamentName":   t.Name,
			"Sport":            t.Sport,
			"Venue":            t.Venue,
			"City":             t.City,
			"StartDate":        t.StartDate.Format(dateLayout),
			"RegistrationType": reg.RegistrationType,
			"PaymentRequired":  reg.PaymentStatus != models.PaymentPaid,
			"EntryFee":         fmt.Sprintf("%.2f", t.EntryFee),
			"Link":             link,
		},
	}
}

func PaymentConfirmation(player *models.User, t *models.Tournament, reg *models.Registration, link string) Message {
	return Message{
		To:       []string{player.Email},
		Subject:  fmt.Sprintf("Payment confirmed: %s", t.Name),
		Template: TemplatePaymentConfirmation,
		Data: map[string]any{
			"PlayerName":     player.Name,
			"TournamentName": t.Name,
			"Amount":         fmt.Sprintf("%.2f", reg.AmountPaid),
			"PaymentID":      reg.RazorpayPaymentID,
			"Link":           link,
		},
	}
}

func VerificationUpdate(player *models.User, organizerName string, t *models.Tournament, reg *models.Registration, link string) Message {
	outcome := "verified"
	if !reg.Verified {
		outcome = "rejected"
	}
	return Message{
		To:       []string{player.Email},
		Subject:  fmt.Sprintf("Your %s registration was %s", t.Sport, outcome),
		Template: TemplateVerificationUpdate,
		Data: map[string]any{
			"PlayerName":     player.Name,
			"OrganizerName":  organizerName,
			"TournamentName": t.Name,
			"Sport":          t.Sport,
			"Verified":       reg.Verified,
			"Notes":          reg.VerificationNotes,
			"Link":           link,
		},
	}
}
