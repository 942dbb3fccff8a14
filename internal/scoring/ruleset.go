package scoring

import (
	"fmt"

	"github.com/shrimpsizemoose/poangtavla/internal/models"
)

// Ruleset is the strategy the pipeline is parameterized with. Both rulesets
// share the skeleton in Compute; they differ in how a pair's submissions fold
// into a Summary, how summaries aggregate per user, what outranks what, and
// how cells render.
type Ruleset interface {
	Name() string

	// Summarize folds one pair's submissions into its summary row. correct
	// reports whether a submission was accepted.
	Summarize(contest models.Contest, key PairKey, subs []models.Submission, correct func(models.Submission) bool) Summary

	// Aggregate derives a user's score and secondary metric from their
	// summary rows. Rank is assigned later by Compute.
	Aggregate(user models.User, rows []Summary) RankedUser

	// Beats reports whether a strictly outranks b.
	Beats(a, b RankedUser) bool

	// DisplayLess orders ranked users for the output grid.
	DisplayLess(a, b RankedUser) bool

	// SkipUnscored excludes users with score 0 from the output entirely.
	SkipUnscored() bool

	// CellText renders one problem cell; empty string means an empty cell.
	CellText(sum Summary, problemType string) string

	// ExtraHeaders and ExtraCells supply trailing columns after Score.
	ExtraHeaders() []string
	ExtraCells(ru RankedUser) []string
}

// NewRuleset builds the ruleset selected in config.
func NewRuleset(name string, penaltyMinutes int64) (Ruleset, error) {
	switch name {
	case "penalty":
		return &PenaltyRuleset{PenaltySeconds: penaltyMinutes * 60}, nil
	case "best_score":
		return &BestScoreRuleset{}, nil
	default:
		return nil, fmt.Errorf("unknown ruleset %q", name)
	}
}

// PenaltyRuleset ranks ICPC-style: problems solved first, then total elapsed
// time plus a fixed penalty per wrong attempt made before the acceptance.
type PenaltyRuleset struct {
	PenaltySeconds int64
}

func (r *PenaltyRuleset) Name() string { return "penalty" }

func (r *PenaltyRuleset) Summarize(contest models.Contest, key PairKey, subs []models.Submission, correct func(models.Submission) bool) Summary {
	sum := Summary{UserID: key.UserID, ProblemID: key.ProblemID}

	for _, s := range subs {
		if !correct(s) {
			continue
		}
		elapsed := s.SubmitGz - contest.StartGz
		if sum.SolvedAt == nil || elapsed < *sum.SolvedAt {
			sum.SolvedAt = &elapsed
		}
	}

	// Wrong attempts after the accepted one are never penalized; on an
	// unsolved pair every wrong attempt counts.
	for _, s := range subs {
		if correct(s) {
			continue
		}
		elapsed := s.SubmitGz - contest.StartGz
		if sum.SolvedAt == nil || elapsed < *sum.SolvedAt {
			sum.Incorrect++
		}
	}

	return sum
}

func (r *PenaltyRuleset) Aggregate(user models.User, rows []Summary) RankedUser {
	ru := RankedUser{User: user}
	for _, row := range rows {
		if row.SolvedAt == nil {
			continue
		}
		ru.Score++
		ru.TimePenalty += *row.SolvedAt + r.PenaltySeconds*int64(row.Incorrect)
	}
	return ru
}

func (r *PenaltyRuleset) Beats(a, b RankedUser) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.TimePenalty < b.TimePenalty
}

func (r *PenaltyRuleset) DisplayLess(a, b RankedUser) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.User.Username < b.User.Username
}

func (r *PenaltyRuleset) SkipUnscored() bool { return false }

func (r *PenaltyRuleset) CellText(sum Summary, problemType string) string {
	if sum.SolvedAt == nil {
		return ""
	}
	text := FormatElapsed(*sum.SolvedAt)
	if sum.Incorrect > 0 {
		text += fmt.Sprintf(" (+%d)", r.PenaltySeconds*int64(sum.Incorrect))
	}
	return text
}

func (r *PenaltyRuleset) ExtraHeaders() []string { return []string{"Time"} }

func (r *PenaltyRuleset) ExtraCells(ru RankedUser) []string {
	return []string{FormatElapsed(ru.TimePenalty)}
}

// BestScoreRuleset ranks by count of problems with any accepted submission;
// cells carry the best recorded score or runtime instead of solve times.
type BestScoreRuleset struct{}

func (r *BestScoreRuleset) Name() string { return "best_score" }

func (r *BestScoreRuleset) Summarize(contest models.Contest, key PairKey, subs []models.Submission, correct func(models.Submission) bool) Summary {
	sum := Summary{UserID: key.UserID, ProblemID: key.ProblemID}

	for _, s := range subs {
		if !correct(s) {
			continue
		}
		submitGz, score, runtime := s.SubmitGz, s.Score, s.Time
		if sum.Soonest == nil || submitGz < *sum.Soonest {
			sum.Soonest = &submitGz
		}
		if sum.Best == nil || score > *sum.Best {
			sum.Best = &score
		}
		if sum.Fastest == nil || runtime < *sum.Fastest {
			sum.Fastest = &runtime
		}
	}

	// Attempt counts only mean anything for pairs never solved; a solved
	// pair displays its result, not its failures.
	if sum.Soonest == nil {
		for _, s := range subs {
			if !correct(s) {
				sum.Incorrect++
			}
		}
	}

	return sum
}

func (r *BestScoreRuleset) Aggregate(user models.User, rows []Summary) RankedUser {
	ru := RankedUser{User: user}
	for _, row := range rows {
		if row.Soonest == nil {
			continue
		}
		ru.Score++
		if ru.LastSoonest == nil || *row.Soonest > *ru.LastSoonest {
			soonest := *row.Soonest
			ru.LastSoonest = &soonest
		}
	}
	return ru
}

// Beats considers score alone; LastSoonest orders the display but never
// changes the rank value.
func (r *BestScoreRuleset) Beats(a, b RankedUser) bool {
	return a.Score > b.Score
}

func (r *BestScoreRuleset) DisplayLess(a, b RankedUser) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return lastSoonestOrZero(a) < lastSoonestOrZero(b)
}

func lastSoonestOrZero(ru RankedUser) int64 {
	if ru.LastSoonest == nil {
		return 0
	}
	return *ru.LastSoonest
}

func (r *BestScoreRuleset) SkipUnscored() bool { return true }

func (r *BestScoreRuleset) CellText(sum Summary, problemType string) string {
	if sum.Soonest != nil {
		var value string
		if problemType == models.ProblemTypeClassical {
			value = fmt.Sprintf("%.2fs", deref(sum.Fastest))
		} else {
			value = fmt.Sprintf("%.0f", deref(sum.Best))
		}
		return fmt.Sprintf("%s %s", FormatAcceptDate(*sum.Soonest), value)
	}
	if sum.Incorrect > 0 {
		return fmt.Sprintf("(%d)", sum.Incorrect)
	}
	return ""
}

func (r *BestScoreRuleset) ExtraHeaders() []string { return nil }

func (r *BestScoreRuleset) ExtraCells(ru RankedUser) []string { return nil }

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
