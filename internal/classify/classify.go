// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify maps styled text blocks to program record fields.
//
// The classifier is a two-state machine. In Idle no record is open and only
// name and session blocks have an effect. A name block moves it to
// Accumulating with a fresh record; inside a record, blocks advance through
// the phases name → affiliation → title → abstract and never move back. A
// further name block closes the open record, unless the record is still in
// the name phase: then the names form a co-author group that shares the
// talk fields gathered afterwards and yields one record per name. Page
// boundaries do not close records; Flush does, at end of input.
package classify

import (
	"github.com/pdiddy/program-extract/pkg/types"
)

// State is the classifier's record state.
type State int

const (
	// Idle means no record is open.
	Idle State = iota
	// Accumulating means a record is open and collecting fields.
	Accumulating
)

func (s State) String() string {
	if s == Accumulating {
		return "accumulating"
	}
	return "idle"
}

// phase tracks which field of the open record the last block filled.
type phase int

const (
	phaseName phase = iota
	phaseAffiliation
	phaseTitle
	phaseAbstract
)

// Classifier turns a page-ordered stream of text blocks into records.
// It is not safe for concurrent use.
type Classifier struct {
	cfg   types.ClassifierConfig
	open  *types.Record
	phase phase

	// coauthors are earlier names of the open talk. Only Name and Page are
	// set; the talk fields are copied from open when the group closes.
	coauthors []types.Record

	// sessionPrefixes keeps session-like text out of abstracts.
	sessionPrefixes []string

	// pending is a session heading waiting for the next record.
	pending string

	stats map[types.Role]int

	// Observe, when set, is called for every block with the role it was
	// given. types.RoleNone marks a block that was ignored.
	Observe func(types.TextBlock, types.Role)
}

// New returns an idle classifier using cfg.
func New(cfg types.ClassifierConfig) *Classifier {
	if cfg.SessionPolicy == "" {
		cfg.SessionPolicy = types.SessionCurrent
	}
	var prefixes []string
	for _, r := range cfg.Session {
		prefixes = append(prefixes, r.Prefixes...)
	}
	return &Classifier{
		cfg:             cfg,
		sessionPrefixes: prefixes,
		stats:           make(map[types.Role]int),
	}
}

// State reports whether a record is open.
func (c *Classifier) State() State {
	if c.open != nil {
		return Accumulating
	}
	return Idle
}

// Current returns a copy of the open record, if any. For a co-author group
// it is the record of the latest name.
func (c *Classifier) Current() (types.Record, bool) {
	if c.open == nil {
		return types.Record{}, false
	}
	return *c.open, true
}

// Stats returns the number of blocks assigned to each role so far.
func (c *Classifier) Stats() map[types.Role]int {
	out := make(map[types.Role]int, len(c.stats))
	for k, v := range c.stats {
		out[k] = v
	}
	return out
}

// Classify consumes the blocks of one page in order and returns the records
// completed while doing so. The open record, if any, carries over to the
// next call.
func (c *Classifier) Classify(page types.Page) []types.Record {
	var done []types.Record
	for _, b := range page.Blocks {
		role, closed := c.step(b)
		done = append(done, closed...)
		c.stats[role]++
		if c.Observe != nil {
			c.Observe(b, role)
		}
	}
	return done
}

// Flush closes the open record at end of input. It returns nil when the
// classifier is idle.
func (c *Classifier) Flush() []types.Record {
	return c.close()
}

func (c *Classifier) step(b types.TextBlock) (types.Role, []types.Record) {
	text := b.Text

	if matchAny(c.cfg.Session, b) {
		c.session(text)
		return types.RoleSession, nil
	}

	if kw := c.cfg.AbstractKeyword; kw != "" && hasPrefix(text, []string{kw}) {
		if c.open == nil {
			return types.RoleNone, nil
		}
		c.open.Abstract = join(c.open.Abstract, stripKeyword(text, kw), " ")
		c.phase = phaseAbstract
		return types.RoleAbstract, nil
	}

	keyword := hasPrefix(text, c.cfg.Keywords)

	if !keyword && match(c.cfg.Name, b) {
		name := normalizeName(text)
		if name == "" {
			return types.RoleNone, nil
		}
		if c.coauthor() {
			c.coauthors = append(c.coauthors, types.Record{Name: c.open.Name, Page: c.open.Page})
			c.open.Name, c.open.Page = name, b.Page
			return types.RoleName, nil
		}
		closed := c.close()
		c.start(name, b.Page)
		return types.RoleName, closed
	}

	if c.open == nil {
		return types.RoleNone, nil
	}

	switch {
	case c.phase <= phaseAffiliation && match(c.cfg.Affiliation, b):
		c.open.Affiliations = join(c.open.Affiliations, text, c.cfg.AffiliationSeparator)
		c.phase = phaseAffiliation
		return types.RoleAffiliation, nil

	case c.phase <= phaseTitle && !keyword && match(c.cfg.Title, b):
		c.open.Title = join(c.open.Title, text, " ")
		c.phase = phaseTitle
		return types.RoleTitle, nil

	case c.phase >= phaseTitle && !hasPrefix(text, c.sessionPrefixes) && match(c.cfg.Abstract, b):
		c.open.Abstract = join(c.open.Abstract, text, " ")
		c.phase = phaseAbstract
		return types.RoleAbstract, nil
	}

	return types.RoleNone, nil
}

// session applies a session heading according to the session policy.
func (c *Classifier) session(text string) {
	if c.cfg.SessionPolicy == types.SessionCurrent && c.open != nil && c.open.Session == "" {
		c.open.Session = text
		return
	}
	c.pending = text
}

func (c *Classifier) start(name string, page int) {
	c.open = &types.Record{
		Name:    name,
		Session: c.pending,
		Page:    page,
	}
	c.phase = phaseName
	if c.cfg.SessionPolicy == types.SessionCurrent {
		c.pending = ""
	}
}

// coauthor reports whether a new name joins the open record's group: the
// record has nothing past its names yet and no new session heading is
// waiting.
func (c *Classifier) coauthor() bool {
	if c.open == nil || c.phase != phaseName {
		return false
	}
	return c.pending == "" || c.pending == c.open.Session
}

// close ends the open record and returns one record per name in its group.
func (c *Classifier) close() []types.Record {
	if c.open == nil {
		return nil
	}
	out := make([]types.Record, 0, len(c.coauthors)+1)
	for _, m := range c.coauthors {
		rec := *c.open
		rec.Name, rec.Page = m.Name, m.Page
		out = append(out, rec)
	}
	out = append(out, *c.open)

	c.open = nil
	c.coauthors = nil
	c.phase = phaseName
	return out
}
