package backtrack

import "strconv"

// Mode selects how capture groups are numbered for backreferences.
type Mode uint8

const (
	// BySlot numbers groups by the position of their opening parenthesis.
	// A completing group overwrites only its own slot, so \N always refers
	// to the N-th group as written in the pattern.
	BySlot Mode = iota

	// ByCompletion appends each successfully completed group to a list and
	// \N refers to the N-th entry of that list. A group inside a repetition
	// or one that completes out of textual order shifts the numbering.
	ByCompletion
)

// String returns the mode name as accepted by ParseMode.
func (m Mode) String() string {
	switch m {
	case BySlot:
		return "slot"
	case ByCompletion:
		return "completion"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// ParseMode converts "slot" or "completion" into a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "slot", "":
		return BySlot, true
	case "completion":
		return ByCompletion, true
	}
	return BySlot, false
}

// undo restores one capture slot to an earlier value.
type undo struct {
	index   int
	prev    string
	prevSet bool
}

// Captures is the capture buffer of a single match attempt.
//
// Every write is journaled so that Rollback can return the buffer to any
// earlier Mark. In ByCompletion mode the journal length is the buffer length.
type Captures struct {
	mode Mode

	slots []string
	set   []bool

	journal []undo
	list    []string
}

// NewCaptures returns an empty buffer for a pattern with groups capturing groups.
func NewCaptures(mode Mode, groups int) *Captures {
	c := &Captures{mode: mode}
	if mode == BySlot {
		c.slots = make([]string, groups)
		c.set = make([]bool, groups)
	}
	return c
}

// Mode returns the numbering mode of the buffer.
func (c *Captures) Mode() Mode { return c.mode }

// Reset empties the buffer so it can serve a new attempt.
func (c *Captures) Reset() {
	for i := range c.slots {
		c.slots[i] = ""
		c.set[i] = false
	}
	c.journal = c.journal[:0]
	c.list = c.list[:0]
}

// Mark returns a token describing the current contents.
func (c *Captures) Mark() int {
	if c.mode == ByCompletion {
		return len(c.list)
	}
	return len(c.journal)
}

// Rollback discards every write made since mark was taken.
func (c *Captures) Rollback(mark int) {
	if c.mode == ByCompletion {
		if mark < len(c.list) {
			c.list = c.list[:mark]
		}
		return
	}
	for i := len(c.journal) - 1; i >= mark; i-- {
		u := c.journal[i]
		c.slots[u.index] = u.prev
		c.set[u.index] = u.prevSet
	}
	if mark < len(c.journal) {
		c.journal = c.journal[:mark]
	}
}

// Record stores text as the capture of the group with the given 1-based index.
// In slot mode an index below 1 names no slot and is ignored.
func (c *Captures) Record(group int, text string) {
	if c.mode == ByCompletion {
		c.list = append(c.list, text)
		return
	}

	// Trees not produced by syntax.Parse may carry unexpected indexes.
	if group < 1 {
		return
	}
	i := group - 1
	if i >= len(c.slots) {
		c.grow(group)
	}
	c.journal = append(c.journal, undo{index: i, prev: c.slots[i], prevSet: c.set[i]})
	c.slots[i] = text
	c.set[i] = true
}

func (c *Captures) grow(groups int) {
	slots := make([]string, groups)
	set := make([]bool, groups)
	copy(slots, c.slots)
	copy(set, c.set)
	c.slots, c.set = slots, set
}

// Get returns the capture that a backreference \n refers to.
func (c *Captures) Get(n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	if c.mode == ByCompletion {
		if n > len(c.list) {
			return "", false
		}
		return c.list[n-1], true
	}
	if n > len(c.slots) || !c.set[n-1] {
		return "", false
	}
	return c.slots[n-1], true
}

// Len returns the number of captures currently available.
func (c *Captures) Len() int {
	if c.mode == ByCompletion {
		return len(c.list)
	}
	n := 0
	for _, ok := range c.set {
		if ok {
			n++
		}
	}
	return n
}

// Values returns a copy of the captures. In BySlot mode the result has one
// entry per group, empty for groups that did not participate.
func (c *Captures) Values() []string {
	if c.mode == ByCompletion {
		return append([]string(nil), c.list...)
	}
	return append([]string(nil), c.slots...)
}
