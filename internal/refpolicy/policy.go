// Package refpolicy decides whether a pushed ref may be built.
//
// Whitelist entries are glob patterns compiled without separators: '*'
// matches any run of characters including '/', '?' matches one character,
// '[...]' is a character class ('[!...]' negates), '{a,b}' is an alternation
// and '\' escapes the next character. An entry with no metacharacters must
// equal the ref exactly.
package refpolicy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	cacheSize = 512
	metaChars = `*?[]{}\`
)

// ErrInvalidPattern is returned by Validate for an entry that does not compile.
var ErrInvalidPattern = errors.New("invalid ref pattern")

// Policy matches refs against whitelists. Safe for concurrent use.
type Policy struct {
	cache *lru.Cache[string, glob.Glob]
}

// New creates a Policy with a bounded cache of compiled patterns.
func New() *Policy {
	cache, err := lru.New[string, glob.Glob](cacheSize)
	if err != nil {
		panic("refpolicy: " + err.Error())
	}
	return &Policy{cache: cache}
}

// Validate reports the first whitelist entry that is not a valid pattern.
func Validate(whitelist []string) error {
	for _, pattern := range whitelist {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" || !strings.ContainsAny(pattern, metaChars) {
			continue
		}
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
		}
	}
	return nil
}

// Accepts reports whether ref is allowed by whitelist. An empty whitelist
// allows every ref; blank entries are ignored. An entry that does not compile
// matches nothing.
func (p *Policy) Accepts(whitelist []string, ref string) bool {
	empty := true
	for _, pattern := range whitelist {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		empty = false
		if p.match(pattern, ref) {
			return true
		}
	}
	return empty
}

func (p *Policy) match(pattern, ref string) bool {
	if !strings.ContainsAny(pattern, metaChars) {
		return pattern == ref
	}
	g, ok := p.cache.Get(pattern)
	if !ok {
		var err error
		if g, err = glob.Compile(pattern); err != nil {
			return false
		}
		p.cache.Add(pattern, g)
	}
	return g.Match(ref)
}
