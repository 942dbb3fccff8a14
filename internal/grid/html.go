package grid

import (
	"fmt"
	"strings"

	"github.com/shrimpsizemoose/poangtavla/internal/models"
)

// HTML rendering of cells for the legacy report pages. The grid itself stays
// markup-free; these adapters turn a cell's identifiers into the historical
// anchor shapes.

// CellHTML wraps a cell into its navigable anchor. Status cells put the date
// or time on its own line, the way the old report did.
func CellHTML(c Cell, contestCode string) string {
	switch {
	case c.ProblemCode != "" && c.Username != "":
		display := strings.Replace(c.Text, " ", "<br/>", 1)
		return fmt.Sprintf(
			`<a href="/%s/status/%s,%s/">%s</a>`,
			contestCode, c.ProblemCode, c.Username, display,
		)
	case c.ProblemCode != "":
		return fmt.Sprintf(
			`<a href="/%s/problems/%s/"><font title="%s">%s</font></a>`,
			contestCode, c.ProblemCode, c.Title, c.Text,
		)
	case c.Username != "":
		return fmt.Sprintf(
			`<a href="/%s/users/%s/">%s</a>`,
			contestCode, c.Username, c.Text,
		)
	default:
		return c.Text
	}
}

// BannerScript renders the freshness banner with the client-local clock,
// matching the legacy page.
func BannerScript(contest models.Contest) string {
	return fmt.Sprintf(
		`Ranking last updated <script>document.write(new Date(%d*1000).toLocaleString());</script>`,
		contest.Now.Unix(),
	)
}

// TableHTML renders a grid as a plain table for the server's html endpoint.
func TableHTML(g Grid, contestCode string) string {
	var b strings.Builder
	b.WriteString("<table>\n<tr>")
	for _, c := range g.Header {
		b.WriteString("<th>")
		b.WriteString(CellHTML(c, contestCode))
		b.WriteString("</th>")
	}
	b.WriteString("</tr>\n")
	for _, row := range g.Rows {
		b.WriteString("<tr>")
		for _, c := range row {
			b.WriteString("<td>")
			b.WriteString(CellHTML(c, contestCode))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>")
	return b.String()
}
