package markov

import (
	"go/build"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// stubSource is a scripted Source for driving walks down a known path.
// Values are consumed in order (wrapping around when exhausted) and
// reduced modulo n to stay within the IntN contract.
type stubSource struct {
	vals []int
	i    int
}

func (s *stubSource) IntN(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

// seededSource returns a reproducible Source for statistical tests.
func seededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// newNumberChain builds the small reference chain used across generation
// tests: two sequences sharing the token 5, so walks branch after it.
func newNumberChain(t *testing.T, opts ...Option) *Chain[int] {
	t.Helper()
	c := New[int](opts...)
	c.Feed([]int{3, 5, 10}).Feed([]int{5, 12})
	return c
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
