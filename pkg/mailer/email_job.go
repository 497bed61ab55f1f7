package mailer

// Notification job types published to the queue.
const (
	EventRegistered   = "event_registered"
	EventUnregistered = "event_unregistered"
	EventEndorsed     = "event_endorsed"
	UserVerified      = "user_verified"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for the email
// worker. Template selects one of the notification types above; Data feeds
// the template.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
