package model

import "time"

// Severity is the Zabbix trigger priority of an active problem.
type Severity int

const (
	SeverityUnclassified Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityAverage
	SeverityHigh
	SeverityDisaster
	SeverityUnknown
)

var severityLabels = map[Severity]string{
	SeverityUnclassified: "Not classified",
	SeverityInfo:         "Information",
	SeverityWarning:      "Warning",
	SeverityAverage:      "Average",
	SeverityHigh:         "High",
	SeverityDisaster:     "Disaster",
	SeverityUnknown:      "Unknown",
}

var severityCodes = map[string]Severity{
	"0": SeverityUnclassified,
	"1": SeverityInfo,
	"2": SeverityWarning,
	"3": SeverityAverage,
	"4": SeverityHigh,
	"5": SeverityDisaster,
}

// SeverityFromCode maps a Zabbix priority code ("0".."5") to a Severity.
// Unrecognized codes yield SeverityUnknown and false; they are never an error.
func SeverityFromCode(code string) (Severity, bool) {
	s, ok := severityCodes[code]
	if !ok {
		return SeverityUnknown, false
	}
	return s, true
}

func (s Severity) String() string {
	if label, ok := severityLabels[s]; ok {
		return label
	}
	return severityLabels[SeverityUnknown]
}

// StartedLayout is the display format for Alert.Started.
const StartedLayout = "2006-01-02 15:04:05"

// Alert is a read-only projection of a Zabbix trigger in problem state at fetch time.
type Alert struct {
	StartedAt   time.Time
	Severity    Severity
	RawSeverity string
	HostName    string
	Description string
}

// Started renders StartedAt in local time.
func (a Alert) Started() string {
	return a.StartedAt.Local().Format(StartedLayout)
}
