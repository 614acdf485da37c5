// Package pattern holds the recognizer bank shared by every vendor
// strategy: for each field category an ordered list of regular
// expressions tried in priority order, first success wins. All chains
// are package-level values compiled once at startup and never mutated,
// so concurrent extractions share them without synchronization.
package pattern

import "regexp"

// Normalizer converts a raw submatch into canonical form. Returning ""
// rejects the candidate and the chain moves on to the next expression.
type Normalizer func(string) string

// Chain is an ordered sequence of matcher+normalizer steps for one field.
type Chain struct {
	name  string
	steps []step
}

type step struct {
	re   *regexp.Regexp
	norm Normalizer
}

// New builds a chain in which every expression shares one normalizer.
// Expressions are tried in the order given.
func New(name string, norm Normalizer, exprs ...string) Chain {
	c := Chain{name: name}
	for _, e := range exprs {
		c.steps = append(c.steps, step{re: regexp.MustCompile(e), norm: norm})
	}
	return c
}

// Then appends further expressions with their own normalizer, so a chain
// can mix strict vendor shapes with looser generic fallbacks.
func (c Chain) Then(norm Normalizer, exprs ...string) Chain {
	for _, e := range exprs {
		c.steps = append(c.steps, step{re: regexp.MustCompile(e), norm: norm})
	}
	return c
}

// Name identifies the chain in logs and tests.
func (c Chain) Name() string { return c.name }

// Find runs the chain against text and returns the first normalized
// match, or "". When an expression has capture groups the first
// non-empty group is the candidate; otherwise the whole match is.
func (c Chain) Find(text string) string {
	for _, s := range c.steps {
		m := s.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v := pick(m)
		if s.norm != nil {
			v = s.norm(v)
		}
		if v != "" {
			return v
		}
	}
	return ""
}

// FindAt is Find plus the byte offset of the winning match, so callers
// can inspect the surrounding text (for example to reject values that
// sit inside a bill-to block). Offset is -1 when nothing matched.
func (c Chain) FindAt(text string) (string, int) {
	for _, s := range c.steps {
		loc := s.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		v := pickIndexed(text, loc)
		if s.norm != nil {
			v = s.norm(v)
		}
		if v != "" {
			return v, loc[0]
		}
	}
	return "", -1
}

// FindAll returns up to limit normalized matches from the first
// expression that matches anything, in document order.
func (c Chain) FindAll(text string, limit int) []string {
	for _, s := range c.steps {
		ms := s.re.FindAllStringSubmatch(text, limit)
		if ms == nil {
			continue
		}
		out := make([]string, 0, len(ms))
		for _, m := range ms {
			v := pick(m)
			if s.norm != nil {
				v = s.norm(v)
			}
			if v != "" {
				out = append(out, v)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func pick(m []string) string {
	for i := 1; i < len(m); i++ {
		if m[i] != "" {
			return m[i]
		}
	}
	return m[0]
}

func pickIndexed(text string, loc []int) string {
	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] >= 0 && loc[i+1] > loc[i] {
			return text[loc[i]:loc[i+1]]
		}
	}
	return text[loc[0]:loc[1]]
}
