package template

import (
	"strconv"

	slackapi "github.com/slack-go/slack"

	"github.com/jonny/zabbix-bot/internal/domain/model"
)

// Block ids of the activation form. Interaction payloads key their state values by these.
const (
	BlockIDWindow   = "window_block"
	BlockIDDuration = "duration_block"
	BlockIDControls = "form_controls"
)

// Slack rejects option texts over 75 characters and static selects with more than 100 options.
const (
	maxOptionTextLen = 75
	maxSelectOptions = 100
)

// ActivationFormFallbackText is the notification text sent alongside the form blocks.
const ActivationFormFallbackText = "Maintenance activation"

// BuildActivationFormBlocks constructs the maintenance activation form.
func BuildActivationFormBlocks(windows []model.SuppressionWindow) []slackapi.Block {
	if len(windows) > maxSelectOptions {
		windows = windows[:maxSelectOptions]
	}

	windowOptions := make([]*slackapi.OptionBlockObject, 0, len(windows))
	for _, w := range windows {
		windowOptions = append(windowOptions, option(w.ID, w.Name))
	}
	windowSelect := slackapi.NewOptionsSelectBlockElement(
		slackapi.OptTypeStatic,
		plainText("Maintenance"),
		model.ActionWindowSelect,
		windowOptions...,
	)
	windowBlock := slackapi.NewSectionBlock(
		markdown("Select maintenance period:"),
		nil,
		slackapi.NewAccessory(windowSelect),
		slackapi.SectionBlockOptionBlockID(BlockIDWindow),
	)

	durations := model.DurationOptions()
	durationOptions := make([]*slackapi.OptionBlockObject, 0, len(durations))
	for _, d := range durations {
		durationOptions = append(durationOptions, option(strconv.Itoa(d.Seconds), d.Label))
	}
	durationSelect := slackapi.NewOptionsSelectBlockElement(
		slackapi.OptTypeStatic,
		plainText("Duration"),
		model.ActionDurationSelect,
		durationOptions...,
	)
	durationBlock := slackapi.NewSectionBlock(
		markdown("Select duration:"),
		nil,
		slackapi.NewAccessory(durationSelect),
		slackapi.SectionBlockOptionBlockID(BlockIDDuration),
	)

	activateBtn := slackapi.NewButtonBlockElement(model.ActionActivate, "activate", plainText("Start maintenance"))
	activateBtn.Style = slackapi.StylePrimary
	cancelBtn := slackapi.NewButtonBlockElement(model.ActionCancel, "cancel", plainText("Cancel"))

	return []slackapi.Block{
		windowBlock,
		durationBlock,
		slackapi.NewDividerBlock(),
		slackapi.NewActionBlock(BlockIDControls, activateBtn, cancelBtn),
	}
}

func option(value, label string) *slackapi.OptionBlockObject {
	return slackapi.NewOptionBlockObject(value, plainText(truncate(label, maxOptionTextLen)), nil)
}

func plainText(text string) *slackapi.TextBlockObject {
	return slackapi.NewTextBlockObject(slackapi.PlainTextType, text, false, false)
}

func markdown(text string) *slackapi.TextBlockObject {
	return slackapi.NewTextBlockObject(slackapi.MarkdownType, text, false, false)
}

// truncate shortens s to at most limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
