package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var notificationTpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>{{.Heading}}</h2>
  <p>Hari Om {{.Name}},</p>
  <p>{{.Body}}</p>
  {{if .EventDate}}<p><strong>Event date:</strong> {{.EventDate}}</p>{{end}}
  <p>— The Janata team</p>
</body>
</html>`))

type notificationData struct {
	Heading   string
	Name      string
	Body      string
	EventDate string
}

// Subject returns the email subject for a notification template.
func Subject(tpl string) string {
	switch tpl {
	case EventRegistered:
		return "You are registered"
	case EventUnregistered:
		return "Registration cancelled"
	case EventEndorsed:
		return "Your endorsement was recorded"
	case UserVerified:
		return "Your account was verified"
	default:
		return "Janata notification"
	}
}

// RenderHTML renders the notification body for a job.
func RenderHTML(job EmailJob) (string, error) {
	d := notificationData{
		Name:      str(job.Data, "Name"),
		EventDate: str(job.Data, "EventDate"),
	}
	switch job.Template {
	case EventRegistered:
		d.Heading = "Registration confirmed"
		d.Body = fmt.Sprintf("You are registered for the event at %s.", str(job.Data, "EventLocation"))
	case EventUnregistered:
		d.Heading = "Registration cancelled"
		d.Body = "Your event registration was cancelled."
	case EventEndorsed:
		d.Heading = "Endorsement recorded"
		d.Body = "Your endorsement was recorded and the event tier updated."
	case UserVerified:
		d.Heading = "Account verified"
		d.Body = fmt.Sprintf("Your account was verified at the %s level.", str(job.Data, "Level"))
	default:
		d.Heading = "Notification"
		d.Body = str(job.Data, "Body")
	}

	var buf bytes.Buffer
	if err := notificationTpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func str(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	v, ok := data[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
