package scoring

import (
	"fmt"
	"sort"

	"github.com/shrimpsizemoose/poangtavla/internal/models"
	"github.com/shrimpsizemoose/poangtavla/internal/store"
)

// Standings is the fully derived output of one pipeline run: every summary
// row plus the ranked users in display order. Upstream facts are untouched.
type Standings struct {
	Contest      models.Contest
	Problems     []models.Problem
	ProblemTypes map[int64]string
	Summaries    map[PairKey]Summary
	Ranked       []RankedUser
}

// Compute runs the batch pipeline: fact store -> summaries -> ranks. The
// stages are strictly sequential, each over the fully materialized output of
// the previous one, and nothing is ever recomputed.
func Compute(fs store.FactStore, rs Ruleset) (*Standings, error) {
	contest, err := fs.Contest()
	if err != nil {
		return nil, fmt.Errorf("compute standings: %w", err)
	}
	problems, err := fs.Problems()
	if err != nil {
		return nil, fmt.Errorf("compute standings: %w", err)
	}
	users, err := fs.Users()
	if err != nil {
		return nil, fmt.Errorf("compute standings: %w", err)
	}
	subs, err := fs.Submissions()
	if err != nil {
		return nil, fmt.Errorf("compute standings: %w", err)
	}
	statuses, err := fs.Statuses()
	if err != nil {
		return nil, fmt.Errorf("compute standings: %w", err)
	}
	problemTypes, err := fs.ProblemTypes()
	if err != nil {
		return nil, fmt.Errorf("compute standings: %w", err)
	}

	correct := func(s models.Submission) bool {
		return statuses[s.StatusID] == models.StatusCorrect
	}

	knownUsers := make(map[int64]bool, len(users))
	for _, u := range users {
		knownUsers[u.ID] = true
	}
	knownProblems := make(map[int64]bool, len(problems))
	for _, p := range problems {
		knownProblems[p.ID] = true
	}

	// Joins are outer joins: a submission referencing an unknown user or
	// problem is dropped here instead of faulting later stages.
	byPair := make(map[PairKey][]models.Submission)
	for _, s := range subs {
		if !knownUsers[s.UserID] || !knownProblems[s.ProblemID] {
			continue
		}
		key := PairKey{UserID: s.UserID, ProblemID: s.ProblemID}
		byPair[key] = append(byPair[key], s)
	}

	summaries := make(map[PairKey]Summary, len(users)*len(problems))
	ranked := make([]RankedUser, 0, len(users))
	for _, u := range users {
		rows := make([]Summary, 0, len(problems))
		for _, p := range problems {
			key := PairKey{UserID: u.ID, ProblemID: p.ID}
			sum := rs.Summarize(contest, key, byPair[key], correct)
			summaries[key] = sum
			rows = append(rows, sum)
		}
		ranked = append(ranked, rs.Aggregate(u, rows))
	}

	// Dense rank: one more than the number of users strictly ahead. Tied
	// users share the better rank and the next distinct one is offset by
	// the tie-group size.
	for i := range ranked {
		rank := 1
		for j := range ranked {
			if rs.Beats(ranked[j], ranked[i]) {
				rank++
			}
		}
		ranked[i].Rank = rank
	}

	if rs.SkipUnscored() {
		scored := ranked[:0]
		for _, ru := range ranked {
			if ru.Score > 0 {
				scored = append(scored, ru)
			}
		}
		ranked = scored
	}

	// Users() is username-ordered, so the stable sort keeps tied rows in a
	// deterministic order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return rs.DisplayLess(ranked[i], ranked[j])
	})

	return &Standings{
		Contest:      contest,
		Problems:     problems,
		ProblemTypes: problemTypes,
		Summaries:    summaries,
		Ranked:       ranked,
	}, nil
}
