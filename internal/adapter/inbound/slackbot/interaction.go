package slackbot

import (
	"context"
	"fmt"
	"log/slog"

	slackapi "github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/jonny/zabbix-bot/internal/domain/model"
	"github.com/jonny/zabbix-bot/internal/domain/port/inbound"
)

// handleEventsAPI processes Slack Events API payloads (app mentions).
func (b *Bot) handleEventsAPI(ctx context.Context, logger *slog.Logger, evt socketmode.Event) {
	eventsPayload, ok := evt.Data.(slackevents.EventsAPIEvent)
	if !ok {
		logger.Warn("unexpected events api payload", "data_type", fmt.Sprintf("%T", evt.Data))
		return
	}

	switch ev := eventsPayload.InnerEvent.Data.(type) {
	case *slackevents.AppMentionEvent:
		// Ignore bot messages to prevent loops.
		if ev.BotID != "" {
			return
		}
		req := mentionRequest(ev)
		logger.Info("mention received", "channel", ev.Channel, "user", ev.User)
		if err := b.commands.HandleMention(ctx, req); err != nil {
			logger.Error("handling mention", "error", err)
		}
	default:
		logger.Debug("ignoring inner event", "inner_type", eventsPayload.InnerEvent.Type)
	}
}

// handleInteraction processes block_actions payloads from the activation form.
func (b *Bot) handleInteraction(ctx context.Context, logger *slog.Logger, evt socketmode.Event) {
	callback, ok := evt.Data.(slackapi.InteractionCallback)
	if !ok {
		logger.Warn("unexpected interaction payload", "data_type", fmt.Sprintf("%T", evt.Data))
		return
	}
	if callback.Type != slackapi.InteractionTypeBlockActions {
		logger.Debug("ignoring interaction", "interaction_type", callback.Type)
		return
	}

	for _, req := range interactionRequests(callback) {
		stage, err := b.interaction.HandleInteraction(ctx, req)
		if err != nil {
			logger.Error("handling interaction", "action", req.ActionID, "error", err)
			continue
		}
		logger.Info("interaction handled", "action", req.ActionID, "stage", stage, "user", req.UserID)
	}
}

func mentionRequest(ev *slackevents.AppMentionEvent) inbound.MentionRequest {
	return inbound.MentionRequest{
		Origin: inbound.Origin{Event: &inbound.EventOrigin{
			ChannelID: ev.Channel,
			ThreadTS:  ev.ThreadTimeStamp,
			TS:        ev.TimeStamp,
		}},
		UserID: ev.User,
		Text:   ev.Text,
	}
}

// interactionRequests converts a block_actions callback into one request per
// action. Every request carries the full selection state of the message.
func interactionRequests(callback slackapi.InteractionCallback) []inbound.InteractionRequest {
	values := formValues(callback.BlockActionState)

	var origin inbound.Origin
	if callback.Container.ChannelID != "" || callback.Container.MessageTs != "" {
		origin.Container = &inbound.ContainerOrigin{
			ChannelID: callback.Container.ChannelID,
			ThreadTS:  callback.Message.ThreadTimestamp,
			MessageTS: callback.Container.MessageTs,
		}
	}

	reqs := make([]inbound.InteractionRequest, 0, len(callback.ActionCallback.BlockActions))
	for _, action := range callback.ActionCallback.BlockActions {
		if action == nil {
			continue
		}
		reqs = append(reqs, inbound.InteractionRequest{
			Origin:    origin,
			ActionID:  action.ActionID,
			UserID:    callback.User.ID,
			UserName:  callback.User.Name,
			ChannelID: callback.Channel.ID,
			MessageTS: callback.Message.Timestamp,
			Values:    values,
		})
	}
	return reqs
}

func formValues(state *slackapi.BlockActionStates) inbound.FormValues {
	if state == nil {
		return nil
	}
	values := make(inbound.FormValues, len(state.Values))
	for blockID, actions := range state.Values {
		selections := make(map[string]model.Selection, len(actions))
		for actionID, action := range actions {
			sel := model.Selection{Value: action.SelectedOption.Value}
			if action.SelectedOption.Text != nil {
				sel.Label = action.SelectedOption.Text.Text
			}
			selections[actionID] = sel
		}
		values[blockID] = selections
	}
	return values
}
