package update

import (
	"strings"

	"github.com/tesso57/storyterm/internal/presentation/tui/presenter"
	"github.com/tesso57/storyterm/internal/presentation/tui/textutil"
)

const detailSectionDivider = "----------------------------------------"

func buildDetailContent(i *presenter.Item, width int) string {
	if i == nil {
		return ""
	}

	body := strings.TrimSpace(i.Desc)
	if body == "" {
		body = "(This story has no text.)"
	}

	var b strings.Builder
	b.WriteString(textutil.Wrap(i.TitleText, width))
	b.WriteString("\n")
	b.WriteString(detailSectionDivider[:min(len(detailSectionDivider), max(width, 1))])
	if tags := i.TagLine(); tags != "" {
		b.WriteString("\n")
		b.WriteString(textutil.Wrap(tags, width))
	}
	b.WriteString("\n\n")
	b.WriteString(textutil.Wrap(body, width))
	return b.String()
}
