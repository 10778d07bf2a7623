package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// InvitationMail is everything needed to render an invitation
type InvitationMail struct {
	Email       string
	ProfileName string
	SenderName  string
	InviteLink  string
	// Questions previewed in the email body. Empty uses a generic list.
	Questions []string
}

const maxPreviewQuestions = 5

var defaultPreviewQuestions = []string{
	"What was your childhood like?",
	"What is your proudest achievement?",
	"What is a challenge you overcame?",
	"What are some traditions you value?",
	"What wisdom would you like to pass on?",
}

var invitationTemplate = template.Must(template.New("invitation").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #E75A68; text-align: center;">Your Story Matters</h1>
  <p>Hello {{.ProfileName}},</p>
  <p>{{.Sender}} has invited you to share your life story through our Life Story platform.</p>
  <p>We've prepared some thoughtful questions to help capture your memories and experiences. Your responses will be transformed into a beautiful digital storybook that can be treasured by your family for generations.</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="{{.InviteLink}}" style="background-color: #E75A68; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Share Your Story</a>
  </div>
  <p>The questions include:</p>
  <ul>
  {{- range .Questions}}
    <li>{{.}}</li>
  {{- end}}
  </ul>
  <p>This should take about 15-20 minutes to complete, and you can save your progress and return anytime.</p>
  <p>Thank you for sharing your precious memories with us.</p>
  <p>Warm regards,<br>The Life Story Team</p>
  <hr style="margin: 30px 0; border: none; border-top: 1px solid #eee;">
  <p style="font-size: 12px; color: #666;">If you have any questions, please contact us at support@lifestory.app</p>
</div>
`))

func renderInvitation(inv *InvitationMail) (string, error) {
	questions := inv.Questions
	if len(questions) == 0 {
		questions = defaultPreviewQuestions
	}
	if len(questions) > maxPreviewQuestions {
		questions = questions[:maxPreviewQuestions]
	}

	sender := strings.TrimSpace(inv.SenderName)
	if sender == "" {
		sender = "Someone special"
	}

	data := struct {
		ProfileName string
		Sender      string
		InviteLink  template.URL
		Questions   []string
	}{
		ProfileName: inv.ProfileName,
		Sender:      sender,
		InviteLink:  template.URL(inv.InviteLink),
		Questions:   questions,
	}

	var buf bytes.Buffer
	if err := invitationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render invitation email: %w", err)
	}
	return buf.String(), nil
}

func invitationSubject(senderName string) string {
	sender := strings.TrimSpace(senderName)
	if sender == "" {
		sender = "Someone"
	}
	return sender + " wants to preserve your life story"
}
