package audit

import (
	"fmt"
	"strings"
	"time"
)

// nouns maps a collection to the singular and plural names of its records.
var nouns = map[string][2]string{
	CollectionTasks:   {"task", "tasks"},
	CollectionBudgets: {"expense", "expenses"},
}

// ParseCollection maps user input such as "task", "Budgets" or "expenses" to
// a collection name.
func ParseCollection(name string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tasks", "task":
		return CollectionTasks, true
	case "budgets", "budget", "expenses", "expense":
		return CollectionBudgets, true
	}
	return "", false
}

// Verb returns the action part of the operation: "add" for task.add and
// "init" for init.
func (e Entry) Verb() string {
	if i := strings.LastIndexByte(e.Operation, '.'); i >= 0 {
		return e.Operation[i+1:]
	}
	return e.Operation
}

// Time parses Timestamp. ok is false for damaged or hand-edited entries.
func (e Entry) Time() (t time.Time, ok bool) {
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, e.Timestamp); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Subject names what the entry touched, for example "task #3" or
// "2 expenses".
func (e Entry) Subject() string {
	noun, ok := nouns[e.Collection]
	switch {
	case e.Operation == OpInit:
		return "install"
	case !ok:
		return e.Collection
	case e.RecordID > 0:
		return fmt.Sprintf("%s #%d", noun[0], e.RecordID)
	case e.Count == 1:
		return "1 " + noun[0]
	default:
		return fmt.Sprintf("%d %s", e.Count, noun[1])
	}
}
