package entity

import (
	"encoding/json"
	"time"
)

// NoCenter is the centerAffiliation value for users not attached to a center.
const NoCenter = "none"

// User is the aggregate root for member accounts. The username is the unique
// key; passwords are stored as bcrypt hashes in PasswordHash.
type User struct {
	Username          string            `json:"username"`
	Email             string            `json:"email,omitempty"`
	PasswordHash      string            `json:"passwordHash,omitempty"`
	CenterAffiliation string            `json:"centerAffiliation"`
	Points            int               `json:"points"`
	VerificationLevel VerificationLevel `json:"verificationLevel"`
	Role              Role              `json:"role"`
	IsVerified        bool              `json:"isVerified"`
	IsActive          bool              `json:"isActive"`
	Events            []string          `json:"events"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// NewUser returns an unverified member at the normal rank.
func NewUser(username, email, passwordHash, centerAffiliation string) *User {
	if centerAffiliation == "" {
		centerAffiliation = NoCenter
	}
	now := time.Now().UTC()
	return &User{
		Username:          username,
		Email:             email,
		PasswordHash:      passwordHash,
		CenterAffiliation: centerAffiliation,
		VerificationLevel: LevelNormal,
		Role:              RoleMember,
		IsActive:          true,
		Events:            []string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// AddPoints adds a non-negative amount and returns the new total.
func (u *User) AddPoints(amount int) (int, error) {
	if amount < 0 {
		return u.Points, ErrNegativePoints
	}
	u.Points += amount
	return u.Points, nil
}

// Verify sets the verification level. The actor must hold CapVerifyUsers and
// the level may only move upward.
func (u *User) Verify(level VerificationLevel, actor *User) error {
	if actor == nil || !actor.Role.Has(CapVerifyUsers) {
		return ErrNotAuthorized
	}
	if !level.Valid() {
		return ErrInvalidLevel
	}
	if level < u.VerificationLevel {
		return ErrLevelDowngrade
	}
	u.VerificationLevel = level
	u.IsVerified = true
	return nil
}

// Attending reports whether the user is registered for the event.
func (u *User) Attending(eventID string) bool {
	for _, id := range u.Events {
		if id == eventID {
			return true
		}
	}
	return false
}

func (u *User) addEvent(eventID string) {
	u.Events = append(u.Events, eventID)
}

func (u *User) removeEvent(eventID string) {
	out := u.Events[:0]
	for _, id := range u.Events {
		if id != eventID {
			out = append(out, id)
		}
	}
	u.Events = out
}

// ToJSON serializes the user document.
func (u *User) ToJSON() ([]byte, error) {
	return json.Marshal(u)
}

// UserFromJSON rebuilds a user from its stored document.
func UserFromJSON(data []byte) (*User, error) {
	u := &User{}
	if err := json.Unmarshal(data, u); err != nil {
		return nil, err
	}
	if u.Events == nil {
		u.Events = []string{}
	}
	if u.CenterAffiliation == "" {
		u.CenterAffiliation = NoCenter
	}
	return u, nil
}
