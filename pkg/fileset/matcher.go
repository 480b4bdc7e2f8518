// pkg/fileset/matcher.go
package fileset

import "regexp"

// Matcher selects files by name during a tree walk. Matchers are stateless
// and reusable across walks.
type Matcher interface {
	Match(name string) bool
}

// Suffix matches filenames ending in the literal s. License files like
// COPYING are matched this way too, so LICENSE also catches
// LICENSE_THIRD_PARTY-style names by construction.
func Suffix(s string) Matcher {
	return suffixMatcher(s)
}

type suffixMatcher string

func (m suffixMatcher) Match(name string) bool {
	s := string(m)
	return len(name) >= len(s) && name[len(name)-len(s):] == s
}

// Pattern matches filenames against a compiled regular expression
func Pattern(re *regexp.Regexp) Matcher {
	return patternMatcher{re}
}

type patternMatcher struct {
	re *regexp.Regexp
}

func (m patternMatcher) Match(name string) bool {
	return m.re.MatchString(name)
}
