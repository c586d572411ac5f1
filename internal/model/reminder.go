package model

import (
	"fmt"
	"time"
)

// SourceType identifies which source produced a reminder.
type SourceType string

const (
	SourceActivityPrep SourceType = "activity_prep"
	SourceRecurring    SourceType = "recurring"
	SourceBedtime      SourceType = "bedtime"
	SourceCustom       SourceType = "custom"
)

// keyMessagePrefix is the number of message runes that take part in the
// idempotency key.
const keyMessagePrefix = 20

// Reminder is a single candidate notification for today.
type Reminder struct {
	DueAt   time.Time  `json:"due_at"`
	Message string     `json:"message"`
	Source  SourceType `json:"source"`
}

// Key returns the idempotency key of the reminder.
func (r Reminder) Key() string {
	return IdempotencyKey(r.DueAt, r.Message)
}

// IdempotencyKey derives the dedup key from the due minute and a fixed-length
// prefix of the message. Two reminders with the same key are the same logical
// reminder.
func IdempotencyKey(dueAt time.Time, message string) string {
	minute := time.Date(dueAt.Year(), dueAt.Month(), dueAt.Day(), dueAt.Hour(), dueAt.Minute(), 0, 0, dueAt.Location())
	runes := []rune(message)
	if len(runes) > keyMessagePrefix {
		runes = runes[:keyMessagePrefix]
	}
	return fmt.Sprintf("%s|%s", minute.Format("2006-01-02T15:04"), string(runes))
}

// CustomReminderRecord is a user-created one-off reminder as persisted in the
// custom reminder store.
type CustomReminderRecord struct {
	Message string    `json:"message"`
	Time    Timestamp `json:"time"`
	Created Timestamp `json:"created"`
}
