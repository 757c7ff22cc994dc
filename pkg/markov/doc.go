/*
Package markov provides a generic first-order Markov chain for training on
token sequences and generating new sequences with the same local
transition statistics.

A Chain works over any comparable token type. Distinct token values are
interned once and shared across the whole model, and a single reserved
boundary state marks both the start and the end of every sequence. The
text layer adds word-level tokenization for the common string case, lazy
iterators produce any number of generations on demand, and trained chains
can be snapshotted to JSON for storage or transfer. Randomness is
injectable, so generation is reproducible under test.

For a complete usage example, see the README.md file.
*/
package markov
