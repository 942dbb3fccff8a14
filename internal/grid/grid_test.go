package grid

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/poangtavla/internal/models"
	"github.com/shrimpsizemoose/poangtavla/internal/scoring"
)

func penaltyStandings() *scoring.Standings {
	solvedAt := int64(125)
	return &scoring.Standings{
		Contest: models.Contest{
			Code: "nwerc07",
			Now:  time.Date(2007, 11, 25, 19, 0, 0, 0, time.UTC),
		},
		Problems: []models.Problem{
			{ID: 1, Code: "A", Name: "Alpha", ProblemTypeID: 0},
			{ID: 2, Code: "B", Name: "Beta", ProblemTypeID: 0},
		},
		ProblemTypes: map[int64]string{0: models.ProblemTypeClassical, 1: models.ProblemTypeChallenge},
		Summaries: map[scoring.PairKey]scoring.Summary{
			{UserID: 7, ProblemID: 1}: {UserID: 7, ProblemID: 1, SolvedAt: &solvedAt},
			{UserID: 7, ProblemID: 2}: {UserID: 7, ProblemID: 2, Incorrect: 2},
		},
		Ranked: []scoring.RankedUser{
			{
				User:        models.User{ID: 7, Username: "jdoe", Name: "John Doe"},
				Score:       1,
				TimePenalty: 125,
				Rank:        1,
			},
		},
	}
}

func TestBanner(t *testing.T) {
	contest := models.Contest{Now: time.Date(2007, 11, 25, 19, 0, 0, 0, time.UTC)}
	g := Banner(contest, "2006-01-02 15:04:05")

	require.Len(t, g.Header, 1)
	assert.Equal(t, "Ranking last updated 2007-11-25 19:00:00", g.Header[0].Text)
	assert.Empty(t, g.Rows)
}

func TestScoreboardPenalty(t *testing.T) {
	st := penaltyStandings()
	g := Scoreboard(st, &scoring.PenaltyRuleset{PenaltySeconds: 1200})

	t.Run("header carries problem columns and the Time column", func(t *testing.T) {
		texts := make([]string, 0, len(g.Header))
		for _, c := range g.Header {
			texts = append(texts, c.Text)
		}
		assert.Equal(t, []string{"Rank", "Name", "A", "B", "Score", "Time"}, texts)
		assert.Equal(t, "A", g.Header[2].ProblemCode)
		assert.Equal(t, "Alpha", g.Header[2].Title)
		assert.Empty(t, g.Header[2].Username)
	})

	t.Run("user row", func(t *testing.T) {
		require.Len(t, g.Rows, 1)
		row := g.Rows[0]
		require.Len(t, row, 6)

		assert.Equal(t, "1", row[0].Text)
		assert.Equal(t, "John Doe", row[1].Text)
		assert.Equal(t, "jdoe", row[1].Username)
		assert.Empty(t, row[1].ProblemCode)

		assert.Equal(t, "0:02:05", row[2].Text)
		assert.Equal(t, "A", row[2].ProblemCode)
		assert.Equal(t, "jdoe", row[2].Username)

		assert.Equal(t, "", row[3].Text, "unsolved cell stays empty despite attempts")
		assert.Empty(t, row[3].ProblemCode, "empty cells carry no reference")

		assert.Equal(t, "1", row[4].Text)
		assert.Equal(t, "0:02:05", row[5].Text)
	})
}

func TestWriteReport(t *testing.T) {
	st := penaltyStandings()
	banner := Banner(st.Contest, "2006-01-02 15:04:05")
	scoreboard := Scoreboard(st, &scoring.PenaltyRuleset{PenaltySeconds: 1200})

	var b strings.Builder
	require.NoError(t, WriteReport(&b, banner, scoreboard))

	expected := strings.Join([]string{
		"2",
		"1",
		"Ranking last updated 2007-11-25 19:00:00",
		"0",
		"6",
		"Rank",
		"Name",
		"A",
		"B",
		"Score",
		"Time",
		"1",
		"1",
		"John Doe",
		"0:02:05",
		"",
		"1",
		"0:02:05",
		"",
	}, "\n")
	assert.Equal(t, expected, b.String())
}

func TestWriteDegenerateGrid(t *testing.T) {
	g := Grid{Header: []Cell{{Text: "Rank"}, {Text: "Name"}, {Text: "Score"}}}

	var b strings.Builder
	require.NoError(t, g.Write(&b))
	assert.Equal(t, "3\nRank\nName\nScore\n0\n", b.String(),
		"a contest with no ranked users still emits the header grid")
}

func TestCellHTML(t *testing.T) {
	testCases := []struct {
		name     string
		cell     Cell
		expected string
	}{
		{
			"problem header",
			Cell{Text: "A", Title: "Alpha", ProblemCode: "A"},
			`<a href="/nwerc07/problems/A/"><font title="Alpha">A</font></a>`,
		},
		{
			"user name",
			Cell{Text: "John Doe", Username: "jdoe"},
			`<a href="/nwerc07/users/jdoe/">John Doe</a>`,
		},
		{
			"status cell splits time and penalty",
			Cell{Text: "0:03:20 (+1200)", ProblemCode: "A", Username: "jdoe"},
			`<a href="/nwerc07/status/A,jdoe/">0:03:20<br/>(+1200)</a>`,
		},
		{
			"status cell splits date and value",
			Cell{Text: "11/25/7 70", ProblemCode: "C", Username: "jdoe"},
			`<a href="/nwerc07/status/C,jdoe/">11/25/7<br/>70</a>`,
		},
		{
			"plain cell",
			Cell{Text: "42"},
			"42",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CellHTML(tc.cell, "nwerc07"))
		})
	}
}

func TestBannerScript(t *testing.T) {
	contest := models.Contest{Now: time.Unix(1196017200, 0)}
	assert.Equal(t,
		`Ranking last updated <script>document.write(new Date(1196017200*1000).toLocaleString());</script>`,
		BannerScript(contest),
	)
}
