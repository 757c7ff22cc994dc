package chaindb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/CTAG07/Drosera/pkg/markov"
)

// ErrChainNotFound is returned when a named chain does not exist in the
// database.
var ErrChainNotFound = errors.New("chaindb: chain not found")

// SetupSchema initializes the necessary tables in the provided database.
// This function should be called once on a new database before any other
// operations are performed. It is idempotent and safe to call on an
// already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaChains = `
CREATE TABLE IF NOT EXISTS chains (
    chain_id INTEGER PRIMARY KEY,
    chain_name TEXT NOT NULL UNIQUE
);
`
		schemaTokens = `
CREATE TABLE IF NOT EXISTS chain_tokens (
    chain_id INTEGER NOT NULL,
    token_id INTEGER NOT NULL,
    token_text TEXT NOT NULL,
    PRIMARY KEY (chain_id, token_id)
);
`
		schemaTransitions = `
CREATE TABLE IF NOT EXISTS chain_transitions (
    chain_id INTEGER NOT NULL,
    from_id INTEGER NOT NULL,
    to_id INTEGER NOT NULL,
    transition_count INTEGER NOT NULL DEFAULT 1,
    PRIMARY KEY (chain_id, from_id, to_id)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	// If the transaction succeeds, tx.Commit() will be called first, and the rollback will do nothing. If it fails, this will clean up.
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaChains); err != nil {
		return fmt.Errorf("could not create chains schema: %w", err)
	}

	if _, err = tx.Exec(schemaTokens); err != nil {
		return fmt.Errorf("could not create tokens schema: %w", err)
	}

	if _, err = tx.Exec(schemaTransitions); err != nil {
		return fmt.Errorf("could not create transitions schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// ChainInfo identifies one stored chain.
type ChainInfo struct {
	Id   int
	Name string
}

// Store reads and writes chain snapshots in a SQLite database. It holds
// the database connection and prepared SQL statements for efficient
// repeated access.
//
// Token ids inside the stored rows are snapshot ids: 0 is the sequence
// boundary and is never stored as a token row.
type Store struct {
	db                    *sql.DB
	stmtGetChainID        *sql.Stmt
	stmtListChains        *sql.Stmt
	stmtUpsertChain       *sql.Stmt
	stmtGetTokens         *sql.Stmt
	stmtGetTransitions    *sql.Stmt
	stmtInsertToken       *sql.Stmt
	stmtInsertTransition  *sql.Stmt
	stmtDeleteTokens      *sql.Stmt
	stmtDeleteTransitions *sql.Stmt
	stmtDeleteChain       *sql.Stmt
	stmtCountTokens       *sql.Stmt
	stmtCountTransitions  *sql.Stmt
	stmtSumObservations   *sql.Stmt
	stmtCountStarters     *sql.Stmt
	logger                *slog.Logger
}

// New creates and returns a new Store over the given database connection.
// It pre-compiles all necessary SQL statements, returning an error if any
// preparation fails.
func New(db *sql.DB) (*Store, error) {
	stmtGetChainID, err := db.Prepare(`SELECT chain_id FROM chains WHERE chain_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtListChains, err := db.Prepare(`SELECT chain_id, chain_name FROM chains ORDER BY chain_name;`)
	if err != nil {
		return nil, err
	}

	stmtUpsertChain, err := db.Prepare(`INSERT INTO chains (chain_name) VALUES (?) ON CONFLICT(chain_name) DO UPDATE SET chain_name=excluded.chain_name RETURNING chain_id;`)
	if err != nil {
		return nil, err
	}

	stmtGetTokens, err := db.Prepare(`SELECT token_id, token_text FROM chain_tokens WHERE chain_id = ? ORDER BY token_id;`)
	if err != nil {
		return nil, err
	}

	stmtGetTransitions, err := db.Prepare(`SELECT from_id, to_id, transition_count FROM chain_transitions WHERE chain_id = ? ORDER BY from_id, to_id;`)
	if err != nil {
		return nil, err
	}

	stmtInsertToken, err := db.Prepare(`INSERT INTO chain_tokens (chain_id, token_id, token_text) VALUES (?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtInsertTransition, err := db.Prepare(`INSERT INTO chain_transitions (chain_id, from_id, to_id, transition_count) VALUES (?, ?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtDeleteTokens, err := db.Prepare(`DELETE FROM chain_tokens WHERE chain_id = ?;`)
	if err != nil {
		return nil, err
	}

	stmtDeleteTransitions, err := db.Prepare(`DELETE FROM chain_transitions WHERE chain_id = ?;`)
	if err != nil {
		return nil, err
	}

	stmtDeleteChain, err := db.Prepare(`DELETE FROM chains WHERE chain_id = ?;`)
	if err != nil {
		return nil, err
	}

	stmtCountTokens, err := db.Prepare(`SELECT COUNT(*) FROM chain_tokens WHERE chain_id = ?;`)
	if err != nil {
		return nil, err
	}

	stmtCountTransitions, err := db.Prepare(`SELECT COUNT(*) FROM chain_transitions WHERE chain_id = ?;`)
	if err != nil {
		return nil, err
	}

	stmtSumObservations, err := db.Prepare(`SELECT coalesce(SUM(transition_count), 0) FROM chain_transitions WHERE chain_id = ?;`)
	if err != nil {
		return nil, err
	}

	stmtCountStarters, err := db.Prepare(`SELECT COUNT(*) FROM chain_transitions WHERE chain_id = ? AND from_id = 0;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:                    db,
		stmtGetChainID:        stmtGetChainID,
		stmtListChains:        stmtListChains,
		stmtUpsertChain:       stmtUpsertChain,
		stmtGetTokens:         stmtGetTokens,
		stmtGetTransitions:    stmtGetTransitions,
		stmtInsertToken:       stmtInsertToken,
		stmtInsertTransition:  stmtInsertTransition,
		stmtDeleteTokens:      stmtDeleteTokens,
		stmtDeleteTransitions: stmtDeleteTransitions,
		stmtDeleteChain:       stmtDeleteChain,
		stmtCountTokens:       stmtCountTokens,
		stmtCountTransitions:  stmtCountTransitions,
		stmtSumObservations:   stmtSumObservations,
		stmtCountStarters:     stmtCountStarters,
		logger:                slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the Store. It should
// be called when the Store is no longer needed to free up database
// resources. It does not close the underlying database connection.
func (s *Store) Close() {
	_ = s.stmtGetChainID.Close()
	_ = s.stmtListChains.Close()
	_ = s.stmtUpsertChain.Close()
	_ = s.stmtGetTokens.Close()
	_ = s.stmtGetTransitions.Close()
	_ = s.stmtInsertToken.Close()
	_ = s.stmtInsertTransition.Close()
	_ = s.stmtDeleteTokens.Close()
	_ = s.stmtDeleteTransitions.Close()
	_ = s.stmtDeleteChain.Close()
	_ = s.stmtCountTokens.Close()
	_ = s.stmtCountTransitions.Close()
	_ = s.stmtSumObservations.Close()
	_ = s.stmtCountStarters.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are
// discarded. Providing a `log/slog.Logger` will enable logging for save,
// load, and delete operations.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// chainID resolves a chain name to its database id, mapping a missing row
// to ErrChainNotFound.
func (s *Store) chainID(ctx context.Context, name string) (int, error) {
	var id int
	err := s.stmtGetChainID.QueryRowContext(ctx, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("chain %q: %w", name, ErrChainNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("could not look up chain %q: %w", name, err)
	}
	return id, nil
}

// Save stores a snapshot under the given name, replacing any previously
// stored data for that name. The entire operation is transactional: a
// failed save leaves the previous contents intact.
func (s *Store) Save(ctx context.Context, name string, snap markov.Snapshot[string]) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	var chainID int
	if err = tx.StmtContext(ctx, s.stmtUpsertChain).QueryRowContext(ctx, name).Scan(&chainID); err != nil {
		return fmt.Errorf("could not upsert chain %q: %w", name, err)
	}

	if _, err = tx.StmtContext(ctx, s.stmtDeleteTokens).ExecContext(ctx, chainID); err != nil {
		return fmt.Errorf("could not clear tokens for chain %q: %w", name, err)
	}
	if _, err = tx.StmtContext(ctx, s.stmtDeleteTransitions).ExecContext(ctx, chainID); err != nil {
		return fmt.Errorf("could not clear transitions for chain %q: %w", name, err)
	}

	insertToken := tx.StmtContext(ctx, s.stmtInsertToken)
	for i, tok := range snap.Tokens {
		if _, err = insertToken.ExecContext(ctx, chainID, i+1, tok); err != nil {
			return fmt.Errorf("could not insert token %d: %w", i+1, err)
		}
	}

	insertTransition := tx.StmtContext(ctx, s.stmtInsertTransition)
	for _, tr := range snap.Transitions {
		if _, err = insertTransition.ExecContext(ctx, chainID, tr.From, tr.To, tr.Count); err != nil {
			return fmt.Errorf("could not insert transition %d -> %d: %w", tr.From, tr.To, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit save: %w", err)
	}

	s.logger.InfoContext(ctx, "Chain saved",
		slog.String("chain_name", name),
		slog.Int("chain_id", chainID),
		slog.Int("tokens", len(snap.Tokens)),
		slog.Int("transitions", len(snap.Transitions)),
	)

	return nil
}

// Load reads the snapshot stored under the given name. Transitions come
// back ordered by state id rather than first-observation order; the
// rebuilt chain carries the same states and counts either way. A name with
// no stored chain yields ErrChainNotFound.
func (s *Store) Load(ctx context.Context, name string) (markov.Snapshot[string], error) {
	var snap markov.Snapshot[string]

	chainID, err := s.chainID(ctx, name)
	if err != nil {
		return snap, err
	}

	rows, err := s.stmtGetTokens.QueryContext(ctx, chainID)
	if err != nil {
		return snap, fmt.Errorf("could not query tokens for chain %q: %w", name, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	snap.Tokens = []string{}
	for rows.Next() {
		var id int
		var text string
		if err = rows.Scan(&id, &text); err != nil {
			return snap, err
		}
		snap.Tokens = append(snap.Tokens, text)
	}
	if err = rows.Err(); err != nil {
		return snap, err
	}

	tRows, err := s.stmtGetTransitions.QueryContext(ctx, chainID)
	if err != nil {
		return snap, fmt.Errorf("could not query transitions for chain %q: %w", name, err)
	}
	defer func(tRows *sql.Rows) {
		_ = tRows.Close()
	}(tRows)

	for tRows.Next() {
		var tr markov.Transition
		if err = tRows.Scan(&tr.From, &tr.To, &tr.Count); err != nil {
			return snap, err
		}
		snap.Transitions = append(snap.Transitions, tr)
	}
	if err = tRows.Err(); err != nil {
		return snap, err
	}

	s.logger.DebugContext(ctx, "Chain loaded",
		slog.String("chain_name", name),
		slog.Int("chain_id", chainID),
		slog.Int("tokens", len(snap.Tokens)),
		slog.Int("transitions", len(snap.Transitions)),
	)

	return snap, nil
}

// List returns every stored chain, ordered by name.
func (s *Store) List(ctx context.Context) ([]ChainInfo, error) {
	rows, err := s.stmtListChains.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list chains: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var chains []ChainInfo
	for rows.Next() {
		var info ChainInfo
		if err = rows.Scan(&info.Id, &info.Name); err != nil {
			return nil, err
		}
		chains = append(chains, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return chains, nil
}

// Delete removes a chain and all of its stored data. The operation is
// performed within a transaction. Deleting a name with no stored chain
// yields ErrChainNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	chainID, err := s.chainID(ctx, name)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.StmtContext(ctx, s.stmtDeleteTransitions).ExecContext(ctx, chainID); err != nil {
		return fmt.Errorf("could not delete transitions for chain %q: %w", name, err)
	}
	if _, err = tx.StmtContext(ctx, s.stmtDeleteTokens).ExecContext(ctx, chainID); err != nil {
		return fmt.Errorf("could not delete tokens for chain %q: %w", name, err)
	}
	if _, err = tx.StmtContext(ctx, s.stmtDeleteChain).ExecContext(ctx, chainID); err != nil {
		return fmt.Errorf("could not delete chain %q: %w", name, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit delete: %w", err)
	}

	s.logger.InfoContext(ctx, "Chain removed",
		slog.String("chain_name", name),
		slog.Int("chain_id", chainID),
	)

	return nil
}
