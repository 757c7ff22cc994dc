// Shared helpers for the drosera CLI.
package main

import (
	"context"
	"errors"

	"github.com/CTAG07/Drosera/pkg/chaindb"
	"github.com/CTAG07/Drosera/pkg/markov"
)

// loadChain rebuilds the stored chain with the given name. When allowNew
// is true, a name with no stored chain yields a fresh empty chain instead
// of an error.
func loadChain(ctx context.Context, name string, allowNew bool, opts ...markov.Option) (*markov.Chain[string], error) {
	snap, err := store.Load(ctx, name)
	if errors.Is(err, chaindb.ErrChainNotFound) {
		if allowNew {
			return markov.New[string](opts...), nil
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return markov.FromSnapshot(snap, opts...)
}

// tokenizerFromConfig builds the word tokenizer with the configured join
// separator.
func tokenizerFromConfig() markov.Tokenizer {
	return markov.NewWordTokenizer(markov.WithSeparator(cfg.GetString(cfgKeySeparator)))
}
