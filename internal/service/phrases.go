package service

import (
	"math/rand"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// defaultPhrases is used when no phrase file is configured.
var defaultPhrases = []string{
	"reticulating splines",
	"consulting the wizard",
	"counting commits",
	"warming up the abacus",
	"polishing the open source",
}

// Phrases is the process-wide immutable set of loading phrases shown
// while deferred work runs. It is loaded once at startup.
type Phrases struct {
	list []string
}

// LoadPhrases reads one phrase per line from path. Empty lines are
// dropped. An empty path falls back to the built-in set.
func LoadPhrases(path string) (*Phrases, error) {
	if path == "" {
		return &Phrases{list: defaultPhrases}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read loading phrases")
	}

	var list []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			list = append(list, line)
		}
	}

	if len(list) == 0 {
		return nil, errors.Errorf("no loading phrases in %s", path)
	}

	return &Phrases{list: list}, nil
}

// Random picks one phrase.
func (p *Phrases) Random() string {
	return p.list[rand.Intn(len(p.list))]
}
