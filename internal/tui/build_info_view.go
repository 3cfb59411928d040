// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-bookmarks/internal/session"
	"github.com/MKhiriev/go-bookmarks/models"
)

const appTitle = "GoBookmarks"

type infoLine struct {
	label string
	value string
}

// renderBuildInfoWindow shows build metadata and who the client is signed in as.
func renderBuildInfoWindow(info models.AppBuildInfo, snap session.Snapshot) string {
	account := "не выполнен вход"
	if snap.State == session.StateAuthenticated && snap.Identity != nil {
		account = fmt.Sprintf("%s (id %d)", snap.Identity.Login, snap.Identity.UserID)
	}

	lines := []infoLine{
		{"Приложение", appTitle},
		{"Версия", info.BuildVersion()},
		{"Собрано", info.BuildDate()},
		{"Коммит", info.BuildCommit()},
		{"Аккаунт", account},
	}

	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l.label)))
	}

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		pad := strings.Repeat(" ", width-len([]rune(l.label)))
		fmt.Fprintf(&b, "%s:%s %s", l.label, pad, orDash(l.value))
	}

	return renderPage("О ПРОГРАММЕ", b.String(), "esc: назад")
}

func orDash(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "неизвестно"
	}
	return v
}
