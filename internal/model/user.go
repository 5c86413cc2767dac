package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Profile      Profile   `db:"profile" json:"profile"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type Profile struct {
	Name        string      `db:"name" json:"name"`
	AvatarURL   *string     `db:"avatar_url" json:"avatar_url"`
	Timezone    string      `db:"timezone" json:"timezone"`
	Preferences Preferences `db:"preferences" json:"preferences"`
}

// Preferences is a free-form settings bag stored as a JSON column.
type Preferences map[string]any

func (p Preferences) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *Preferences) Scan(src any) error {
	raw, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("preferences: %w", err)
	}
	out := Preferences{}
	if len(raw) > 0 {
		err = json.Unmarshal(raw, &out)
		if err != nil {
			return fmt.Errorf("preferences: %w", err)
		}
	}
	*p = out
	return nil
}

// jsonBytes normalizes what the sqlite and pgx drivers hand back for a TEXT column.
func jsonBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", src)
	}
}

// ProfileUpdate is a partial profile edit; nil fields are left unchanged.
type ProfileUpdate struct {
	Name        *string      `json:"name"`
	AvatarURL   *string      `json:"avatar_url"`
	Timezone    *string      `json:"timezone"`
	Preferences *Preferences `json:"preferences"`
}
