package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"meetsync/core/entity"

	"github.com/google/uuid"
)

// ShareLevel controls how much of a schedule other users can see
type ShareLevel string

const (
	// ShareLevelBusyOnly discloses only occupied intervals
	ShareLevelBusyOnly ShareLevel = "busy_only"
	// ShareLevelBasicInfo adds event titles
	ShareLevelBasicInfo ShareLevel = "basic_info"
	// ShareLevelFullDetails discloses the complete event
	ShareLevelFullDetails ShareLevel = "full_details"
)

// IsValid reports whether the level is one of the known tiers
func (l ShareLevel) IsValid() bool {
	switch l {
	case ShareLevelBusyOnly, ShareLevelBasicInfo, ShareLevelFullDetails:
		return true
	}
	return false
}

// UUIDList is a JSONB-backed list of user IDs
type UUIDList []uuid.UUID

func (u UUIDList) Value() (driver.Value, error) {
	if u == nil {
		return json.Marshal([]uuid.UUID{})
	}
	return json.Marshal(u)
}

func (u *UUIDList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, u)
}

// Contains reports whether id is in the list
func (u UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range u {
		if v == id {
			return true
		}
	}
	return false
}

// SharingSettings is a user's privacy configuration. A user without a row
// gets the busy_only default; nothing is ever disclosed beyond what the
// owner configured.
type SharingSettings struct {
	entity.BaseEntity
	UserID       uuid.UUID  `db:"user_id" json:"user_id"`
	ShareLevel   ShareLevel `db:"share_level" json:"share_level"`
	AllowedUsers UUIDList   `db:"allowed_users" json:"allowed_users"`
}

// DefaultSharingSettings returns the settings applied to users who never
// configured sharing
func DefaultSharingSettings(userID uuid.UUID) *SharingSettings {
	return &SharingSettings{
		UserID:       userID,
		ShareLevel:   ShareLevelBusyOnly,
		AllowedUsers: UUIDList{},
	}
}
