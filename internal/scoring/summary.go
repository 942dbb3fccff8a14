package scoring

import "github.com/shrimpsizemoose/poangtavla/internal/models"

// PairKey identifies one user×problem cell of the standings.
type PairKey struct {
	UserID    int64
	ProblemID int64
}

// Summary is the derived row for one user×problem pair. Exactly one Summary
// exists per pair, even when the pair has no submissions; absent aggregates
// stay nil so downstream stages never special-case "never attempted".
//
// The penalty ruleset fills SolvedAt (elapsed seconds of the earliest correct
// submission); the best-score ruleset fills Soonest/Best/Fastest (instant of
// the earliest correct, max score and min runtime over correct ones). The
// Incorrect count follows each ruleset's own qualification rule.
type Summary struct {
	UserID    int64
	ProblemID int64

	SolvedAt *int64
	Soonest  *int64
	Best     *float64
	Fastest  *float64

	Incorrect int
}

// Solved reports whether the pair has at least one correct submission.
func (s Summary) Solved() bool {
	return s.SolvedAt != nil || s.Soonest != nil
}

// RankedUser is the per-user output of the ranking stage. It references the
// original User record and never mutates it.
type RankedUser struct {
	User  models.User
	Score int

	// TimePenalty is the penalty ruleset's secondary ordering metric, in
	// seconds. LastSoonest is the best-score ruleset's: the instant of the
	// most recent acceptance, nil when nothing was accepted.
	TimePenalty int64
	LastSoonest *int64

	// Rank is dense and 1-based; equal ordering keys share a rank.
	Rank int
}
