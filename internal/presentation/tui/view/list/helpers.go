package listview

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/tesso57/storyterm/internal/presentation/tui/metrics"
	"github.com/tesso57/storyterm/internal/presentation/tui/textutil"
)

const tagGap = "  "

// storyStyles returns the default item styles padded on the right and tinted
// with accent when selected.
func storyStyles(accent lipgloss.Color) list.DefaultItemStyles {
	styles := list.NewDefaultItemStyles()
	for _, st := range []*lipgloss.Style{
		&styles.NormalTitle, &styles.SelectedTitle, &styles.DimmedTitle,
		&styles.NormalDesc, &styles.SelectedDesc, &styles.DimmedDesc,
	} {
		*st = st.PaddingRight(metrics.ItemRightPadding)
	}
	styles.SelectedTitle = styles.SelectedTitle.Foreground(accent).BorderForeground(accent)
	styles.SelectedDesc = styles.SelectedDesc.Foreground(accent).BorderForeground(accent)
	return styles
}

func pick(m list.Model, index int, normal, selected lipgloss.Style) lipgloss.Style {
	if index == m.Index() {
		return selected
	}
	return normal
}

// textWidth is the room left for text on one row of m once style's frame is drawn.
func textWidth(m list.Model, style lipgloss.Style) int {
	return m.Width() - style.GetHorizontalFrameSize() - metrics.ItemSafetyPadding
}

// previewLine puts the tag line ahead of the story body. Tags keep their full
// width and the body gets what remains; tags wider than the row are cut.
func previewLine(tags, body string, width int, tagStyle lipgloss.Style) string {
	if tags == "" {
		return textutil.Truncate(body, width)
	}
	tagWidth := ansi.StringWidth(tags)
	if tagWidth >= width {
		return tagStyle.Render(textutil.Truncate(tags, width))
	}
	line := tagStyle.Render(tags)
	if room := width - tagWidth - len(tagGap); room > 0 && body != "" {
		line += tagGap + textutil.Truncate(body, room)
	}
	return line
}

func writeLine(w io.Writer, style lipgloss.Style, text string) {
	_, _ = io.WriteString(w, style.Render(text))
}
