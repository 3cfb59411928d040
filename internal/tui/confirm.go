package tui

import "github.com/MKhiriev/go-bookmarks/models"

// confirmModel asks before a bookmark is deleted.
type confirmModel struct {
	bookmark models.Bookmark
}

func (m confirmModel) View() string {
	content := "Удалить закладку \"" + fitText(m.bookmark.Title, 40) + "\"?\n"
	content += helpStyle.Render(fitText(m.bookmark.URL, 60)) + "\n\n"
	content += "y да    n нет"
	return overlayBoxStyle.Render(content)
}
