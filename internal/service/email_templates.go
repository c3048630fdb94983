package service

import (
	"fmt"
	"strings"
)

func checkinSummaryEmailTemplate(appName, dateKey string, summary *CoachSummary) (subject, body string) {
	subject = fmt.Sprintf("%s check-in for %s", appName, dateKey)

	var b strings.Builder
	fmt.Fprintf(&b, "Your check-in for %s\n\n", dateKey)

	if summary.Raw != "" {
		b.WriteString(summary.Raw)
		b.WriteString("\n")
		return subject, b.String()
	}

	if summary.Summary != "" {
		b.WriteString(summary.Summary)
		b.WriteString("\n\n")
	}

	for _, advice := range summary.PerGoal {
		fmt.Fprintf(&b, "%s\n", advice.GoalTitle)
		if advice.CheckinQuestion != "" {
			fmt.Fprintf(&b, "  Question: %s\n", advice.CheckinQuestion)
		}
		if advice.MicroStep != "" {
			fmt.Fprintf(&b, "  Micro-step: %s\n", advice.MicroStep)
		}
		b.WriteString("\n")
	}

	if summary.Closing != "" {
		b.WriteString(summary.Closing)
		b.WriteString("\n")
	}

	return subject, b.String()
}
