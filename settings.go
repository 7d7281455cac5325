package grantview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Default settings reported by the backend when none have been saved.
const (
	DefaultMaxBudget = 50000
	DefaultChunkSize = 1000
)

// Settings is the backend's singleton configuration record.
type Settings struct {
	ID        string    `json:"id,omitempty"`
	MaxBudget int64     `json:"max_budget"`
	ChunkSize int64     `json:"chunk_size"`
	CreatedAt Timestamp `json:"created_at,omitzero"`
	UpdatedAt Timestamp `json:"updated_at,omitzero"`
}

// DefaultSettings returns the settings in effect before any have been saved.
func DefaultSettings() Settings {
	return Settings{
		MaxBudget: DefaultMaxBudget,
		ChunkSize: DefaultChunkSize,
	}
}

// SettingsPatch is a partial update. Nil fields are left unchanged.
type SettingsPatch struct {
	MaxBudget *int64 `json:"max_budget,omitempty" validate:"omitempty,gt=0"`
	ChunkSize *int64 `json:"chunk_size,omitempty" validate:"omitempty,gt=0"`
}

// Empty reports whether the patch changes nothing.
func (p SettingsPatch) Empty() bool {
	return p.MaxBudget == nil && p.ChunkSize == nil
}

// Apply returns s with the patch applied.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.MaxBudget != nil {
		s.MaxBudget = *p.MaxBudget
	}
	if p.ChunkSize != nil {
		s.ChunkSize = *p.ChunkSize
	}
	return s
}

var validate = validator.New()

// Validate checks that every field present in the patch is positive.
func (p SettingsPatch) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s must be greater than zero", settingsFieldName(fe.Field())))
	}
	return &ValidationError{Message: strings.Join(msgs, "; ")}
}

func settingsFieldName(field string) string {
	switch field {
	case "MaxBudget":
		return "max_budget"
	case "ChunkSize":
		return "chunk_size"
	}
	return field
}

// Int64 returns a pointer to v, for building patches.
func Int64(v int64) *int64 {
	return &v
}
