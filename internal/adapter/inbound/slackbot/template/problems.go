package template

import (
	"fmt"
	"strings"
	"unicode/utf8"

	slackapi "github.com/slack-go/slack"

	"github.com/jonny/zabbix-bot/internal/domain/model"
)

// AlertListFallbackText is the notification text sent alongside the alert list.
const AlertListFallbackText = "Active problems"

const maxSectionTextLen = 3000

var severityIcons = map[model.Severity]string{
	model.SeverityUnclassified: ":grey_question:",
	model.SeverityInfo:         ":information_source:",
	model.SeverityWarning:      ":warning:",
	model.SeverityAverage:      ":small_orange_diamond:",
	model.SeverityHigh:         ":small_red_triangle:",
	model.SeverityDisaster:     ":bangbang:",
}

// SeverityIcon returns the emoji shown in front of an alert line.
func SeverityIcon(s model.Severity) string {
	if icon, ok := severityIcons[s]; ok {
		return icon
	}
	return ":black_circle:"
}

// AlertLine formats one alert as "<icon> *<host>*: <description>".
func AlertLine(a model.Alert) string {
	return fmt.Sprintf("%s *%s*: %s", SeverityIcon(a.Severity), a.HostName, a.Description)
}

// BuildAlertListBlocks constructs Block Kit blocks listing active alerts in the
// given order. It returns nil for an empty list.
func BuildAlertListBlocks(alerts []model.Alert) []slackapi.Block {
	if len(alerts) == 0 {
		return nil
	}

	blocks := []slackapi.Block{
		slackapi.NewSectionBlock(markdown("*"+AlertListFallbackText+"*"), nil, nil),
		slackapi.NewDividerBlock(),
	}

	var chunk []string
	size := 0
	flush := func() {
		if len(chunk) == 0 {
			return
		}
		blocks = append(blocks, slackapi.NewSectionBlock(markdown(strings.Join(chunk, "\n")), nil, nil))
		chunk = nil
		size = 0
	}

	for _, a := range alerts {
		line := truncate(AlertLine(a), maxSectionTextLen)
		n := utf8.RuneCountInString(line)
		// +1 for the joining newline
		if size > 0 && size+1+n > maxSectionTextLen {
			flush()
		}
		if size > 0 {
			size++
		}
		size += n
		chunk = append(chunk, line)
	}
	flush()

	return blocks
}
