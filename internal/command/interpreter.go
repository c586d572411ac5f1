// Package command interprets free-text household commands and answers them.
package command

import (
	"regexp"
	"strings"
	"time"
)

// Intent is what a command asks for.
type Intent int

const (
	Unknown Intent = iota
	Briefing
	TomorrowPreview
	CreateReminder
	DinnerSuggestion
	ActivitiesQuery
	Help
)

func (i Intent) String() string {
	switch i {
	case Briefing:
		return "briefing"
	case TomorrowPreview:
		return "tomorrow_preview"
	case CreateReminder:
		return "create_reminder"
	case DinnerSuggestion:
		return "dinner_suggestion"
	case ActivitiesQuery:
		return "activities_query"
	case Help:
		return "help"
	default:
		return "unknown"
	}
}

type rule struct {
	intent  Intent
	phrases []string
}

// rules are evaluated in order; the first rule with a matching phrase wins.
// Reminder phrases come first so that "remind me to check on dinner" or
// "remind us ... tomorrow" create reminders.
var rules = []rule{
	{CreateReminder, []string{"remind me", "remind us", "set reminder"}},
	{Briefing, []string{"briefing", "schedule today", "what's today"}},
	{TomorrowPreview, []string{"tomorrow", "next day"}},
	{DinnerSuggestion, []string{"dinner", "meal", "what to cook", "eat tonight"}},
	{ActivitiesQuery, []string{"activities", "busy tonight", "schedule"}},
	{Help, []string{"help", "what can you do", "commands"}},
}

var (
	bodyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)remind (?:me|us) (?:(?:to|about) )?(.+?)(?:\s+(?:at|on|every|tomorrow|today|tonight)\b|$)`),
		regexp.MustCompile(`(?i)set reminder (?:to )?(.+?)(?:\s+(?:at|on|every|tomorrow|today|tonight)\b|$)`),
	}
	// "in an hour to ...", "at 7pm to ...", "tomorrow to ..."
	leadingTime      = regexp.MustCompile(`(?i)^(?:in (?:an|1|one|half an) hour|in 30 minutes|at \d{1,2}(?::\d{2})?\s*(?:am|pm)?|tomorrow|today|tonight)\b(?:\s+(?:to|about)\b)?\s*`)
	trailingRelative = regexp.MustCompile(`(?i)\s+in (?:an|1|one|half an) hour$|\s+in 30 minutes$`)
)

// defaultHour is the time of day a reminder without a time gets.
const defaultHour = 19

// ParsedCommand is the structured form of a free-text command.
type ParsedCommand struct {
	Intent Intent
	// Message and When are set for CreateReminder.
	Message string
	When    time.Time
	// TimeDefaulted reports that no time was given and When is the default.
	TimeDefaulted bool
}

// Valid reports whether the command carries everything its intent needs.
func (p ParsedCommand) Valid() bool {
	return p.Intent != CreateReminder || p.Message != ""
}

// Classify returns the intent of text.
func Classify(text string) Intent {
	lower := normalize(text)
	for _, r := range rules {
		for _, phrase := range r.phrases {
			if strings.Contains(lower, phrase) {
				return r.intent
			}
		}
	}
	return Unknown
}

// Interpret classifies text and, for reminders, extracts the message and
// resolves its time. A reminder without a recognizable time is set for
// 7pm today, or tomorrow when 7pm has passed.
func Interpret(text string, now time.Time, resolver Resolver) ParsedCommand {
	cmd := ParsedCommand{Intent: Classify(text)}
	if cmd.Intent != CreateReminder {
		return cmd
	}

	cmd.Message = extractBody(strings.TrimSpace(text))
	if cmd.Message == "" {
		return cmd
	}

	if when, ok := resolver.Resolve(text, now); ok {
		cmd.When = when
		return cmd
	}

	when := time.Date(now.Year(), now.Month(), now.Day(), defaultHour, 0, 0, 0, now.Location())
	if !when.After(now) {
		when = when.AddDate(0, 0, 1)
	}
	cmd.When = when
	cmd.TimeDefaulted = true
	return cmd
}

func extractBody(text string) string {
	for _, p := range bodyPatterns {
		sub := p.FindStringSubmatch(text)
		if sub == nil {
			continue
		}
		body := strings.TrimSpace(sub[1])
		body = leadingTime.ReplaceAllString(body, "")
		body = trailingRelative.ReplaceAllString(body, "")
		body = strings.TrimRight(strings.TrimSpace(body), ".!?,;")
		switch strings.ToLower(body) {
		case "to", "about":
			return ""
		}
		return body
	}
	return ""
}
