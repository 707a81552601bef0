package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
)

type Vehicle struct {
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	Color        string `json:"color,omitempty"`
	PlateNumber  string `json:"plateNumber,omitempty"`
	Type         string `json:"type,omitempty"`
	Year         int    `json:"year,omitempty"`
	Verified     bool   `json:"verified,omitempty"`
	LicenseImage string `json:"licenseImage,omitempty"`
}

// Profile is the signed-in user as reported by /auth/profile.
type Profile struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone,omitempty"`
	Role          Role     `json:"role"`
	Rating        float64  `json:"rating,omitempty"`
	WalletBalance float64  `json:"walletBalance,omitempty"`
	Avatar        string   `json:"avatar,omitempty"`
	Status        string   `json:"status,omitempty"`
	Vehicle       *Vehicle `json:"vehicle,omitempty"`
}

// Validate checks the structural invariants of a profile: it has an id and
// exactly one known role.
func (p *Profile) Validate() error {
	if p == nil {
		return common.ErrNoProfile
	}
	if p.ID == "" {
		return fmt.Errorf("%w: missing id", common.ErrInvalidProfile)
	}
	if !p.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", common.ErrInvalidProfile, p.Role)
	}
	return nil
}

// Clone returns a deep copy of p. Nil stays nil.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	if p.Vehicle != nil {
		v := *p.Vehicle
		c.Vehicle = &v
	}
	return &c
}

// DisplayName returns the name, falling back to the email.
func (p *Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}

// ProfileRecord is the persisted form of the profile under the userProfile
// slot. Data is kept as a raw object so fields this version does not know
// about survive a read-merge-write cycle.
type ProfileRecord struct {
	Data    map[string]any `json:"data"`
	SavedAt time.Time      `json:"savedAt"`
}

// NewProfileRecord wraps p for persistence.
func NewProfileRecord(p *Profile, now time.Time) (*ProfileRecord, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &ProfileRecord{Data: data, SavedAt: now.UTC()}, nil
}

// Clone copies the record. Merge only replaces top-level keys, so the data
// map is copied one level deep.
func (r *ProfileRecord) Clone() *ProfileRecord {
	c := &ProfileRecord{Data: make(map[string]any, len(r.Data)), SavedAt: r.SavedAt}
	for k, v := range r.Data {
		c.Data[k] = v
	}
	return c
}

// Merge shallow-merges partial into the record's data.
func (r *ProfileRecord) Merge(partial map[string]any, now time.Time) {
	if r.Data == nil {
		r.Data = make(map[string]any, len(partial))
	}
	for k, v := range partial {
		r.Data[k] = v
	}
	r.SavedAt = now.UTC()
}

// Profile decodes the record's data.
func (r *ProfileRecord) Profile() (*Profile, error) {
	raw, err := json.Marshal(r.Data)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeProfileRecord parses a stored userProfile value. Older consoles
// stored the bare profile object; that shape is accepted too.
func DecodeProfileRecord(raw []byte) (*ProfileRecord, error) {
	var rec ProfileRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	if rec.Data != nil {
		return &rec, nil
	}

	var bare map[string]any
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, err
	}
	if len(bare) == 0 {
		return nil, common.ErrNoProfile
	}
	return &ProfileRecord{Data: bare}, nil
}

// LegacyUser is the minimal user object older consoles kept under "user".
type LegacyUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u LegacyUser) Profile() *Profile {
	return &Profile{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
