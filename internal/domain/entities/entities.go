package entities

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Enums and types
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority maps a string onto a Priority. Matching ignores case and
// surrounding whitespace; anything unrecognized resolves to PriorityMedium.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// String returns the stored form of the priority.
func (p Priority) String() string {
	return string(ParsePriority(string(p)))
}

// Rank orders priorities for sorting, higher is more urgent.
func (p Priority) Rank() int {
	switch ParsePriority(string(p)) {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// UnmarshalJSON accepts any string and normalizes it through ParsePriority.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("priority must be a string: %w", err)
	}
	*p = ParsePriority(s)
	return nil
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemePink  Theme = "pink"
)

// ParseTheme maps a string onto a Theme, defaulting to ThemeLight.
func ParseTheme(s string) Theme {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemePink:
		return ThemePink
	default:
		return ThemeLight
	}
}

func (t Theme) String() string {
	return string(ParseTheme(string(t)))
}

// UnmarshalJSON accepts any string and normalizes it through ParseTheme.
func (t *Theme) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("theme must be a string: %w", err)
	}
	*t = ParseTheme(s)
	return nil
}

// Attachment is a file stored inline (base64) on the task that owns it.
type Attachment struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name" validate:"required,max=255"`
	Size      uint64    `json:"size"`
	FileType  string    `json:"type"`
	Data      string    `json:"data" validate:"omitempty,base64"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAttachment encodes raw file content into a new attachment.
func NewAttachment(name, fileType string, content []byte) Attachment {
	return Attachment{
		ID:        uuid.NewString(),
		Name:      name,
		Size:      uint64(len(content)),
		FileType:  fileType,
		Data:      base64.StdEncoding.EncodeToString(content),
		CreatedAt: time.Now().UTC(),
	}
}

// Decode returns the raw attachment content.
func (a *Attachment) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(a.Data)
}

// Task represents a single to-do item
type Task struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	Completed   bool          `json:"completed"`
	Priority    Priority      `json:"priority"`
	DueDate     *string       `json:"due_date"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	// nil means no attachment list at all; a list, even an empty one, is stored.
	Attachments *[]Attachment `json:"attachments,omitempty"`
}

// NewTask builds a task with a fresh id and matching timestamps. An empty
// priority becomes PriorityMedium. A nil attachments slice leaves the task
// without an attachment list.
func NewTask(title string, description *string, priority Priority, dueDate *string, attachments []Attachment) *Task {
	now := time.Now().UTC()
	if priority == "" {
		priority = PriorityMedium
	}
	task := &Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Completed:   false,
		Priority:    ParsePriority(string(priority)),
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task.SetAttachments(attachments)
	return task
}

// SetAttachments replaces the attachment list. nil removes the list.
func (t *Task) SetAttachments(attachments []Attachment) {
	if attachments == nil {
		t.Attachments = nil
		return
	}
	list := make([]Attachment, len(attachments))
	copy(list, attachments)
	t.Attachments = &list
}

// AttachmentList returns the attachments, or nil when the task has no list.
func (t *Task) AttachmentList() []Attachment {
	if t.Attachments == nil {
		return nil
	}
	return *t.Attachments
}

// Touch refreshes UpdatedAt. Every mutation of a task must call it.
func (t *Task) Touch() {
	now := time.Now().UTC()
	// updated_at never moves backwards or stands still across a mutation
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Nanosecond)
	}
	t.UpdatedAt = now
}

// Clone returns a deep copy so callers can't alias stored slices.
func (t *Task) Clone() *Task {
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	c.SetAttachments(t.AttachmentList())
	return &c
}

// Settings is the per-installation preferences document
type Settings struct {
	Theme         Theme   `json:"theme"`
	Notifications bool    `json:"notifications"`
	AutoSave      bool    `json:"autoSave"`
	IsPinned      bool    `json:"isPinned"`
	IsCollapsed   bool    `json:"isCollapsed"`
	Username      *string `json:"username,omitempty" validate:"omitempty,max=64"`
	Avatar        *string `json:"avatar,omitempty"`
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() Settings {
	return Settings{
		Theme:         ThemeLight,
		Notifications: true,
		AutoSave:      true,
		IsPinned:      false,
		IsCollapsed:   false,
	}
}

// TaskStats is derived from a task collection and never persisted.
type TaskStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	Overdue        int `json:"overdue"`
	Today          int `json:"today"`
	HighPriority   int `json:"high_priority"`
	MediumPriority int `json:"medium_priority"`
	LowPriority    int `json:"low_priority"`
}
