package chaindb

import "context"

// ChainStats holds aggregated statistics for a single stored chain.
type ChainStats struct {
	Tokens       int // The number of unique tokens in the chain's vocabulary.
	Transitions  int // The number of unique from->to links.
	Observations int // The sum of link counts; the total number of trained transitions.
	Starters     int // The number of unique tokens that can start a sequence.
}

// Stats returns aggregate statistics for the chain stored under the given
// name, or ErrChainNotFound if there is none.
func (s *Store) Stats(ctx context.Context, name string) (ChainStats, error) {
	var stats ChainStats

	chainID, err := s.chainID(ctx, name)
	if err != nil {
		return stats, err
	}

	if err = s.stmtCountTokens.QueryRowContext(ctx, chainID).Scan(&stats.Tokens); err != nil {
		return stats, err
	}
	if err = s.stmtCountTransitions.QueryRowContext(ctx, chainID).Scan(&stats.Transitions); err != nil {
		return stats, err
	}
	if err = s.stmtSumObservations.QueryRowContext(ctx, chainID).Scan(&stats.Observations); err != nil {
		return stats, err
	}
	if err = s.stmtCountStarters.QueryRowContext(ctx, chainID).Scan(&stats.Starters); err != nil {
		return stats, err
	}

	return stats, nil
}
