package model

import "fmt"

// Identifiers carried by the activation form's interactive elements. They are the
// only contract between the renderer and the interaction handler.
const (
	ActionWindowSelect   = "window_select"
	ActionDurationSelect = "duration_select"
	ActionActivate       = "activate"
	ActionCancel         = "cancel"
)

// FormStage is the lifecycle state of a rendered activation form. The state lives
// in the chat message itself; nothing is tracked server-side.
type FormStage string

const (
	FormRendered  FormStage = "rendered"
	FormActivated FormStage = "activated"
	FormCancelled FormStage = "cancelled"
)

// IsTerminal returns true once the form message has been consumed.
func (s FormStage) IsTerminal() bool {
	return s == FormActivated || s == FormCancelled
}

// NextFormStage returns the stage reached by applying actionID to stage.
// Selection changes are self-transitions on a rendered form.
func NextFormStage(stage FormStage, actionID string) (FormStage, error) {
	if stage != FormRendered {
		return stage, fmt.Errorf("form already %s", stage)
	}
	switch actionID {
	case ActionWindowSelect, ActionDurationSelect:
		return FormRendered, nil
	case ActionActivate:
		return FormActivated, nil
	case ActionCancel:
		return FormCancelled, nil
	default:
		return stage, fmt.Errorf("unknown form action %q", actionID)
	}
}

// Selection is the currently chosen option of one selector, as carried by the
// interaction payload.
type Selection struct {
	Value string
	Label string
}

// IsEmpty reports whether no option was chosen.
func (s Selection) IsEmpty() bool {
	return s.Value == ""
}
