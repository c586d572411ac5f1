package command

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tim-element/element-nutrients-automation/internal/briefing"
	"github.com/Tim-element/element-nutrients-automation/internal/household"
	"github.com/Tim-element/element-nutrients-automation/internal/metrics"
)

const (
	unknownHint     = "I'm not sure what you're asking. Try: 'briefing', 'remind me to...', 'dinner ideas', or 'help'"
	retryHint       = "❓ I didn't understand. Try: 'Remind me to take out trash at 7pm'"
	defaultedSuffix = " (set for 7pm - you can specify a different time next time)"

	// briefingSummaryLines is how much of the briefing a short answer shows.
	briefingSummaryLines = 15
	briefingMoreHint     = "\n\n(Reply \"full briefing\" for complete version)"
)

const helpText = `🏠 HOUSEHOLD COMMANDS:

📅 SCHEDULE:
  • "Briefing" - Today's full schedule
  • "Tomorrow" - See tomorrow's plan
  • "Activities" - Today's activities only

⏰ REMINDERS:
  • "Remind me to... at [time]"
  • "Remind us about... tomorrow at 7pm"
  • "Remind me in an hour to..."

🍽️ MEALS:
  • "Dinner ideas" - Get suggestions
  • "What should we eat?" - Meal planning
`

// ReminderWriter persists a custom reminder and returns a confirmation.
type ReminderWriter interface {
	Add(message string, when time.Time) (string, error)
}

// Responder answers free-text commands against the household calendar.
type Responder struct {
	Household *household.Household
	Store     ReminderWriter
	Resolver  Resolver
	Rand      briefing.Rand
	Now       func() time.Time
	Logger    zerolog.Logger
}

// NewResponder returns a responder with the default resolver and clock.
func NewResponder(h *household.Household, store ReminderWriter, logger zerolog.Logger) *Responder {
	return &Responder{
		Household: h,
		Store:     store,
		Resolver:  DefaultResolver(),
		Now:       time.Now,
		Logger:    logger,
	}
}

// Respond interprets text and returns the answer. It never fails: problems
// are reported in the answer itself.
func (r *Responder) Respond(text string) string {
	now := r.now()
	cmd := Interpret(text, now, r.Resolver)
	r.Logger.Debug().Str("intent", cmd.Intent.String()).Msg("command interpreted")

	switch cmd.Intent {
	case Briefing:
		full := briefing.Generate(r.Household, now, r.Rand)
		if strings.Contains(normalize(text), "full briefing") {
			return full
		}
		lines := strings.Split(full, "\n")
		if len(lines) > briefingSummaryLines {
			lines = lines[:briefingSummaryLines]
		}
		return strings.Join(lines, "\n") + briefingMoreHint
	case TomorrowPreview:
		return briefing.TomorrowPreview(r.Household, now)
	case CreateReminder:
		return r.createReminder(cmd)
	case DinnerSuggestion:
		return briefing.SuggestDinner(r.Household, now, r.Rand)
	case ActivitiesQuery:
		return briefing.TodaysActivities(r.Household, now)
	case Help:
		return helpText
	default:
		return unknownHint
	}
}

func (r *Responder) createReminder(cmd ParsedCommand) string {
	if !cmd.Valid() {
		return retryHint
	}
	if r.Store == nil {
		return "⚠️ Reminders are not available right now."
	}

	confirmation, err := r.Store.Add(cmd.Message, cmd.When)
	if err != nil {
		r.Logger.Error().Err(err).Str("message", cmd.Message).Msg("failed to save reminder")
		return "⚠️ Couldn't save that reminder: " + err.Error()
	}
	metrics.RecordCustomCreated("command")
	r.Logger.Info().Str("message", cmd.Message).Time("when", cmd.When).Msg("reminder created")

	if cmd.TimeDefaulted {
		return confirmation + defaultedSuffix
	}
	return confirmation
}

func (r *Responder) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
