// Package notify defines user-facing notices (toasts) and the fire-and-forget
// contract used to deliver them.
package notify

import (
	"context"
	"time"
)

// Level of a notice.
type Level string

// Levels.
const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a short title plus description shown to the user.
type Notice struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Level       Level     `json:"level"`
	At          time.Time `json:"at"`
}

// Notifier delivers notices. Notify must not block and returns nothing;
// delivery failures are the implementation's concern.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, n Notice) { f(ctx, n) }

// Nop discards every notice.
var Nop Notifier = NotifierFunc(func(context.Context, Notice) {})

func newNotice(level Level, title, description string) Notice {
	return Notice{Title: title, Description: description, Level: level, At: time.Now().UTC()}
}

// MissingDetails reports a rejected requirement post.
func MissingDetails() Notice {
	return newNotice(LevelError, "Missing details", "Please fill all required fields.")
}

// InvalidBudget reports a budget rejected under the strict policy.
func InvalidBudget() Notice {
	return newNotice(LevelError, "Invalid budget", "Please enter the budget as a number.")
}

// RequirementPosted confirms a new requirement.
func RequirementPosted() Notice {
	return newNotice(LevelSuccess, "Requirement posted", "Your request is now visible to matching artists.")
}

// LinkCopied confirms the clipboard fallback of a share.
func LinkCopied(name string) Notice {
	return newNotice(LevelSuccess, "Link copied", name+"'s profile link is in your clipboard.")
}

// ShareUnavailable reports that neither sharing nor copying worked.
func ShareUnavailable() Notice {
	return newNotice(LevelError, "Share unavailable", "Could not share automatically. Please copy the link manually.")
}

// ProfileSaved confirms an artist profile update.
func ProfileSaved() Notice {
	return newNotice(LevelSuccess, "Profile saved", "Your artist profile has been updated.")
}
