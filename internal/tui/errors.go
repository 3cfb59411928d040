// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-bookmarks/internal/adapter"
	"github.com/MKhiriev/go-bookmarks/internal/validators"
	"github.com/MKhiriev/go-bookmarks/models"
)

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return err.Error()
}

// humanizeError turns the errors users can act on into short messages.
func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, adapter.ErrUnauthorized):
		return "Неверный логин или пароль"
	case errors.Is(err, adapter.ErrConflict):
		return "Такой логин уже занят"
	case errors.Is(err, validators.ErrEmptyTitle):
		return "Название обязательно"
	case errors.Is(err, validators.ErrTitleTooLong):
		return "Название слишком длинное"
	case errors.Is(err, validators.ErrEmptyURL):
		return "URL обязателен"
	case errors.Is(err, validators.ErrURLTooLong):
		return "URL слишком длинный"
	case errors.Is(err, validators.ErrInvalidURL):
		return "URL должен содержать схему и хост, например https://go.dev"
	}
	return humanizeServerUnavailableError(err)
}

var notificationTitles = map[models.ErrorKind]string{
	models.KindAuthQueryFailed:     "Не удалось проверить сессию",
	models.KindAuthOperationFailed: "Операция входа не выполнена",
	models.KindFetchFailed:         "Не удалось загрузить закладки",
	models.KindCreateFailed:        "Не удалось добавить закладку",
	models.KindDeleteFailed:        "Не удалось удалить закладку",
}

func notificationText(n models.Notification) string {
	title, ok := notificationTitles[n.Kind]
	if !ok {
		title = string(n.Kind)
	}
	if n.Err == nil {
		return title
	}
	return title + ": " + humanizeError(n.Err)
}

// shownInline reports whether the screen that started the operation already
// shows the failure, so no overlay is needed.
func shownInline(kind models.ErrorKind) bool {
	return kind == models.KindAuthOperationFailed || kind == models.KindCreateFailed
}
