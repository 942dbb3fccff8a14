package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/poangtavla/internal/models"
	"github.com/shrimpsizemoose/poangtavla/internal/store"
	"github.com/shrimpsizemoose/poangtavla/internal/store/sqlite"
)

const contestStart = int64(1195999200) // 2007-11-25 14:00:00 UTC

func newFactStore(t *testing.T, problems []models.Problem, users []models.User, subs []models.Submission) store.FactStore {
	t.Helper()

	s, err := sqlite.NewSQLiteStore(":memory:")
	require.NoError(t, err, "Failed to create store")
	t.Cleanup(func() {
		require.NoError(t, s.Close(), "Failed to close store")
	})

	contest := models.Contest{
		StartGz: contestStart,
		EndGz:   contestStart + 5*3600,
		Code:    "nwerc07",
		Name:    "Test Contest",
		Now:     time.Date(2007, 11, 25, 19, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.InsertContest(contest))
	require.NoError(t, s.InsertProblems(problems))
	require.NoError(t, s.InsertProblemTypes(models.InjectedProblemTypes()))
	require.NoError(t, s.InsertUsers(users))
	require.NoError(t, s.InsertSubmissions(subs))
	require.NoError(t, s.InsertStatuses(models.InjectedStatuses(models.CorrectStatusID)))

	return s
}

func classical(id int64, code string) models.Problem {
	return models.Problem{ID: id, Code: code, Name: "Problem " + code, ProblemTypeID: 0}
}

func challenge(id int64, code string) models.Problem {
	return models.Problem{ID: id, Code: code, Name: "Problem " + code, ProblemTypeID: 1}
}

func user(id int64, username string) models.User {
	return models.User{ID: id, Username: username, Name: "User " + username}
}

func TestComputePenaltySingleSolve(t *testing.T) {
	fs := newFactStore(t,
		[]models.Problem{classical(1, "A")},
		[]models.User{user(1, "jdoe")},
		[]models.Submission{sub(1, 1, contestStart+125, 15)},
	)

	st, err := Compute(fs, &PenaltyRuleset{PenaltySeconds: 1200})
	require.NoError(t, err)

	require.Len(t, st.Ranked, 1)
	ru := st.Ranked[0]
	assert.Equal(t, 1, ru.Score)
	assert.Equal(t, int64(125), ru.TimePenalty)
	assert.Equal(t, 1, ru.Rank)

	sum := st.Summaries[PairKey{UserID: 1, ProblemID: 1}]
	require.NotNil(t, sum.SolvedAt)
	assert.Equal(t, int64(125), *sum.SolvedAt)
}

func TestComputePenaltyWrongThenCorrect(t *testing.T) {
	fs := newFactStore(t,
		[]models.Problem{classical(1, "A")},
		[]models.User{user(1, "jdoe")},
		[]models.Submission{
			sub(1, 1, contestStart+60, 3),
			sub(1, 1, contestStart+200, 15),
		},
	)

	st, err := Compute(fs, &PenaltyRuleset{PenaltySeconds: 1200})
	require.NoError(t, err)

	require.Len(t, st.Ranked, 1)
	assert.Equal(t, int64(1400), st.Ranked[0].TimePenalty)

	sum := st.Summaries[PairKey{UserID: 1, ProblemID: 1}]
	require.NotNil(t, sum.SolvedAt)
	assert.Equal(t, int64(200), *sum.SolvedAt)
	assert.Equal(t, 1, sum.Incorrect)
}

func TestComputePenaltyDenseRanks(t *testing.T) {
	// alice and bob tie exactly, carol trails: ranks must go 1, 1, 3.
	fs := newFactStore(t,
		[]models.Problem{classical(1, "A"), classical(2, "B")},
		[]models.User{user(1, "alice"), user(2, "bob"), user(3, "carol")},
		[]models.Submission{
			sub(1, 1, contestStart+100, 15),
			sub(2, 1, contestStart+100, 15),
			sub(3, 1, contestStart+500, 15),
		},
	)

	st, err := Compute(fs, &PenaltyRuleset{PenaltySeconds: 1200})
	require.NoError(t, err)

	require.Len(t, st.Ranked, 3)
	assert.Equal(t, []int{1, 1, 3}, []int{st.Ranked[0].Rank, st.Ranked[1].Rank, st.Ranked[2].Rank})
	// tied users display in username order
	assert.Equal(t, "alice", st.Ranked[0].User.Username)
	assert.Equal(t, "bob", st.Ranked[1].User.Username)
	assert.Equal(t, "carol", st.Ranked[2].User.Username)
}

func TestComputePenaltyKeepsUnscoredUsers(t *testing.T) {
	fs := newFactStore(t,
		[]models.Problem{classical(1, "A")},
		[]models.User{user(1, "alice"), user(2, "bob")},
		[]models.Submission{
			sub(1, 1, contestStart+100, 15),
			sub(2, 1, contestStart+100, 3), // never accepted
		},
	)

	st, err := Compute(fs, &PenaltyRuleset{PenaltySeconds: 1200})
	require.NoError(t, err)

	require.Len(t, st.Ranked, 2, "zero-score users still rank in the penalty model")
	assert.Equal(t, "alice", st.Ranked[0].User.Username)
	assert.Equal(t, 1, st.Ranked[0].Rank)
	assert.Equal(t, "bob", st.Ranked[1].User.Username)
	assert.Equal(t, 0, st.Ranked[1].Score)
	assert.Equal(t, 2, st.Ranked[1].Rank)
}

func TestComputeBestScoreExcludesUnscored(t *testing.T) {
	fs := newFactStore(t,
		[]models.Problem{challenge(1, "C")},
		[]models.User{user(1, "alice"), user(2, "bob")},
		[]models.Submission{
			sub(1, 1, contestStart+100, 15),
			sub(2, 1, contestStart+100, 3),
		},
	)

	st, err := Compute(fs, &BestScoreRuleset{})
	require.NoError(t, err)

	require.Len(t, st.Ranked, 1, "zero-score users are absent from the best-score output")
	assert.Equal(t, "alice", st.Ranked[0].User.Username)
}

func TestComputeBestScoreTiesShareRank(t *testing.T) {
	fs := newFactStore(t,
		[]models.Problem{challenge(1, "C"), challenge(2, "D"), challenge(3, "E")},
		[]models.User{user(1, "late"), user(2, "early")},
		[]models.Submission{
			sub(1, 1, contestStart+100, 15),
			sub(1, 2, contestStart+200, 15),
			sub(1, 3, contestStart+900, 15),
			sub(2, 1, contestStart+100, 15),
			sub(2, 2, contestStart+200, 15),
			sub(2, 3, contestStart+300, 15),
		},
	)

	st, err := Compute(fs, &BestScoreRuleset{})
	require.NoError(t, err)

	require.Len(t, st.Ranked, 2)
	assert.Equal(t, 1, st.Ranked[0].Rank)
	assert.Equal(t, 1, st.Ranked[1].Rank)
	assert.Equal(t, "early", st.Ranked[0].User.Username,
		"earlier last acceptance displays first among score ties")
	assert.Equal(t, "late", st.Ranked[1].User.Username)
}

func TestComputeSkipsUnknownReferences(t *testing.T) {
	fs := newFactStore(t,
		[]models.Problem{classical(1, "A")},
		[]models.User{user(1, "alice")},
		[]models.Submission{
			sub(99, 1, contestStart+50, 15), // unknown user
			sub(1, 99, contestStart+50, 15), // unknown problem
			sub(1, 1, contestStart+100, 15),
		},
	)

	st, err := Compute(fs, &PenaltyRuleset{PenaltySeconds: 1200})
	require.NoError(t, err)

	require.Len(t, st.Ranked, 1)
	assert.Equal(t, int64(100), st.Ranked[0].TimePenalty)
	assert.Equal(t, 1, st.Ranked[0].Score)
}

func TestComputeSummaryExistsForEveryPair(t *testing.T) {
	fs := newFactStore(t,
		[]models.Problem{classical(1, "A"), classical(2, "B")},
		[]models.User{user(1, "alice"), user(2, "bob")},
		nil,
	)

	st, err := Compute(fs, &PenaltyRuleset{PenaltySeconds: 1200})
	require.NoError(t, err)

	assert.Len(t, st.Summaries, 4, "one summary per user×problem pair even with no submissions")
	for key, sum := range st.Summaries {
		assert.False(t, sum.Solved(), "pair %v", key)
		assert.Equal(t, 0, sum.Incorrect)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	problems := []models.Problem{classical(1, "A"), classical(2, "B")}
	users := []models.User{user(1, "alice"), user(2, "bob"), user(3, "carol")}
	subs := []models.Submission{
		sub(1, 1, contestStart+100, 15),
		sub(2, 1, contestStart+100, 15),
		sub(3, 2, contestStart+300, 3),
		sub(3, 2, contestStart+400, 15),
	}

	first, err := Compute(newFactStore(t, problems, users, subs), &PenaltyRuleset{PenaltySeconds: 1200})
	require.NoError(t, err)
	second, err := Compute(newFactStore(t, problems, users, subs), &PenaltyRuleset{PenaltySeconds: 1200})
	require.NoError(t, err)

	assert.Equal(t, first.Ranked, second.Ranked)
	assert.Equal(t, first.Summaries, second.Summaries)
}
