package entity

import (
	"encoding/json"
	"time"

	"github.com/janata-app/janata-api/pkg/geo"
)

// Center is a mission center. The CenterID is assigned by the identity
// generator and unique among stored centers.
type Center struct {
	CenterID    string    `json:"centerID"`
	Name        string    `json:"name"`
	Location    geo.Point `json:"location"`
	MemberCount int       `json:"memberCount"`
	IsVerified  bool      `json:"isVerified"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewCenter(name string, location geo.Point) *Center {
	now := time.Now().UTC()
	return &Center{
		Name:      name,
		Location:  location,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Verify flips the verified flag. Requires CapVerifyCenters.
func (c *Center) Verify(actor *User) error {
	if actor == nil || !actor.Role.Has(CapVerifyCenters) {
		return ErrNotAuthorized
	}
	c.IsVerified = true
	return nil
}

// AddMember increments the member count.
func (c *Center) AddMember() { c.MemberCount++ }

// RemoveMember decrements the member count, never below zero.
func (c *Center) RemoveMember() {
	if c.MemberCount > 0 {
		c.MemberCount--
	}
}

// ToJSON serializes the center document.
func (c *Center) ToJSON() ([]byte, error) {
	return json.Marshal(c)
}

// CenterFromJSON rebuilds a center from its stored document.
func CenterFromJSON(data []byte) (*Center, error) {
	c := &Center{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return c, nil
}
