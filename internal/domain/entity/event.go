package entity

import (
	"encoding/json"
	"time"

	"github.com/janata-app/janata-api/pkg/geo"
)

// tierDescale normalizes tier magnitudes into a small range.
const tierDescale = 1081008

// Endorser is a snapshot of the endorsing user at the time of endorsement.
// The tier formula reads points and level from the snapshot.
type Endorser struct {
	Username          string            `json:"username"`
	Points            int               `json:"points"`
	VerificationLevel VerificationLevel `json:"verificationLevel"`
}

// Event is a community event owned by a center. Tier is a derived score and
// is refreshed on every read and after every mutation; the stored value is a
// cache, not the source of truth.
type Event struct {
	ID              string     `json:"id"`
	Location        geo.Point  `json:"location"`
	Date            time.Time  `json:"date"`
	Center          string     `json:"center"`
	Endorsers       []Endorser `json:"endorsers"`
	Tier            float64    `json:"tier"`
	PeopleAttending int        `json:"peopleAttending"`
	Description     string     `json:"description"`
	BannerURL       string     `json:"bannerURL,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func NewEvent(centerID string, date time.Time, location geo.Point, description string) *Event {
	now := time.Now().UTC()
	return &Event{
		Location:    location,
		Date:        date,
		Center:      centerID,
		Endorsers:   []Endorser{},
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddEndorser appends the user as an endorser. Users below the sevak rank are
// rejected with a typed error.
func (e *Event) AddEndorser(u *User) error {
	if u.VerificationLevel < MinEndorserLevel {
		return ErrInsufficientRank
	}
	e.Endorsers = append(e.Endorsers, Endorser{
		Username:          u.Username,
		Points:            u.Points,
		VerificationLevel: u.VerificationLevel,
	})
	e.Tier = e.ComputeTier()
	return nil
}

// Register marks the user as attending. The user's events set is the
// idempotence guard: a second registration for the same pair is rejected and
// the attendance counter is untouched.
func (e *Event) Register(u *User) error {
	if u.Attending(e.ID) {
		return ErrAlreadyAttending
	}
	u.addEvent(e.ID)
	e.PeopleAttending++
	e.Tier = e.ComputeTier()
	return nil
}

// Unregister reverses Register, decrementing the counter symmetrically.
func (e *Event) Unregister(u *User) error {
	if !u.Attending(e.ID) {
		return ErrNotAttending
	}
	u.removeEvent(e.ID)
	if e.PeopleAttending > 0 {
		e.PeopleAttending--
	}
	e.Tier = e.ComputeTier()
	return nil
}

// ComputeTier scores the event from endorsement quality and attendance:
// endorser points weighted by rank, a flat per-head weight for attendance,
// a multiplier for each brahmachari-or-above endorser, then descaled.
func (e *Event) ComputeTier() float64 {
	tier := 0.0
	senior := 0
	for _, en := range e.Endorsers {
		tier += float64(en.Points) * float64(en.VerificationLevel)
		if en.VerificationLevel >= LevelBrahmachari {
			senior++
		}
	}
	tier += float64(e.PeopleAttending) * float64(LevelNormal)
	tier *= float64(1 + senior)
	return tier / tierDescale
}

// RefreshTier recomputes and stores the derived score.
func (e *Event) RefreshTier() float64 {
	e.Tier = e.ComputeTier()
	return e.Tier
}

// ToJSON serializes the event document. Date marshals as RFC 3339.
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON rebuilds an event from its stored document.
func EventFromJSON(data []byte) (*Event, error) {
	e := &Event{}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, err
	}
	if e.Endorsers == nil {
		e.Endorsers = []Endorser{}
	}
	return e, nil
}
