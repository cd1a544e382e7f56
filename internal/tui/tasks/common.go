// Package tasks holds the dashboard task panels (tasks, trending and work
// items) and the new-task page.
package tasks

import (
	"strings"

	"projector/internal/team"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

const progressStep = 10

func currentMember(ws *workspace.Workspace) *team.Member {
	if u, ok := ws.Session.Current(); ok {
		m := u.Member()
		return &m
	}
	return nil
}

func avatars(ms []team.Member) string {
	initials := make([]string, 0, len(ms))
	for _, m := range ms {
		initials = append(initials, m.Initials())
	}
	if len(initials) == 0 {
		return ""
	}
	return theme.Muted.Render("(" + strings.Join(initials, " ") + ")")
}

func platformFilters(platforms []string) []string {
	return append([]string{"all"}, platforms...)
}
