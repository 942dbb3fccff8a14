package grid

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shrimpsizemoose/poangtavla/internal/models"
	"github.com/shrimpsizemoose/poangtavla/internal/scoring"
)

// Cell is one scoreboard cell: the display text plus the addressable
// identifiers the downstream renderer turns into links. ProblemCode alone
// marks a problem-column header, Username alone the user's name cell, both
// together a submission-status cell.
type Cell struct {
	Text        string
	Title       string
	ProblemCode string
	Username    string
}

// Grid is an ordered header row plus zero or more data rows, all the same
// width.
type Grid struct {
	Header []Cell
	Rows   [][]Cell
}

// Banner builds the single-cell report-freshness grid.
func Banner(contest models.Contest, timestampFormat string) Grid {
	return Grid{
		Header: []Cell{{
			Text: "Ranking last updated " + contest.Now.Format(timestampFormat),
		}},
	}
}

// Scoreboard builds the ranked grid: Rank, Name, one column per problem in id
// order, Score, plus whatever trailing columns the ruleset defines.
func Scoreboard(st *scoring.Standings, rs scoring.Ruleset) Grid {
	header := []Cell{{Text: "Rank"}, {Text: "Name"}}
	for _, p := range st.Problems {
		header = append(header, Cell{
			Text:        p.Code,
			Title:       p.Name,
			ProblemCode: p.Code,
		})
	}
	header = append(header, Cell{Text: "Score"})
	for _, extra := range rs.ExtraHeaders() {
		header = append(header, Cell{Text: extra})
	}

	rows := make([][]Cell, 0, len(st.Ranked))
	for _, ru := range st.Ranked {
		row := []Cell{
			{Text: strconv.Itoa(ru.Rank)},
			{Text: ru.User.Name, Username: ru.User.Username},
		}
		for _, p := range st.Problems {
			sum := st.Summaries[scoring.PairKey{UserID: ru.User.ID, ProblemID: p.ID}]
			text := rs.CellText(sum, st.ProblemTypes[p.ProblemTypeID])
			cell := Cell{Text: text}
			if text != "" {
				cell.ProblemCode = p.Code
				cell.Username = ru.User.Username
			}
			row = append(row, cell)
		}
		row = append(row, Cell{Text: strconv.Itoa(ru.Score)})
		for _, extra := range rs.ExtraCells(ru) {
			row = append(row, Cell{Text: extra})
		}
		rows = append(rows, row)
	}

	return Grid{Header: header, Rows: rows}
}

// Write serializes the grid in the renderer's line protocol: column-count
// line, the header cells one per line, row-count line, then rows×columns
// cells in row-major order.
func (g Grid) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d\n", len(g.Header)); err != nil {
		return err
	}
	for _, c := range g.Header {
		if _, err := fmt.Fprintf(w, "%s\n", c.Text); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%d\n", len(g.Rows)); err != nil {
		return err
	}
	for _, row := range g.Rows {
		for _, c := range row {
			if _, err := fmt.Fprintf(w, "%s\n", c.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteReport emits the full report: a grid-count line followed by each grid.
func WriteReport(w io.Writer, grids ...Grid) error {
	if _, err := fmt.Fprintf(w, "%d\n", len(grids)); err != nil {
		return err
	}
	for _, g := range grids {
		if err := g.Write(w); err != nil {
			return err
		}
	}
	return nil
}
