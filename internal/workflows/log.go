package workflows

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PolarWolf314/triflow/internal/audit"
	kerrors "github.com/PolarWolf314/triflow/internal/errors"
	"github.com/PolarWolf314/triflow/internal/records"
)

// LogOptions selects audit entries. Zero values match everything.
type LogOptions struct {
	// Collection is "tasks" or "budgets"; aliases such as "expenses" work.
	Collection string

	// Operations lists full operation names ("task.add") or bare verbs
	// ("delete", "export"). An entry matches if it matches any of them.
	Operations []string

	// RecordID keeps entries about one record. Exports and init have no
	// record, so they never match a non-zero RecordID.
	RecordID int

	// Since and Until bound the UTC day range, inclusive, as YYYY-MM-DD.
	Since string
	Until string

	// Limit keeps only the most recent N matches.
	Limit int

	// NewestFirst orders the result from most recent to oldest.
	NewestFirst bool
}

// LogResult is the outcome of the log workflow.
type LogResult struct {
	// Entries are the matching entries in the requested order.
	Entries []audit.Entry

	// Scanned is the number of entries in the log before filtering.
	Scanned int
}

// OperationCounts tallies Entries by operation, sorted by name.
func (r *LogResult) OperationCounts() []OperationCount {
	counts := make(map[string]int)
	for _, e := range r.Entries {
		counts[e.Operation]++
	}

	out := make([]OperationCount, 0, len(counts))
	for op, n := range counts {
		out = append(out, OperationCount{Operation: op, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Operation < out[j].Operation })
	return out
}

// OperationCount is one row of LogResult.OperationCounts.
type OperationCount struct {
	Operation string
	Count     int
}

// entryMatcher reports whether an entry should be kept.
type entryMatcher func(audit.Entry) bool

// Log reads the audit log and returns the entries selected by opts.
//
// Returns ErrNoFilesFound if no audit log exists yet.
// Returns ErrInvalidDateFormat if Since or Until is not YYYY-MM-DD.
// Returns ErrInvalidFilter for an unknown collection or a negative record id.
func Log(ctx context.Context, env *Env, opts LogOptions) (*LogResult, error) {
	matchers, err := opts.matchers()
	if err != nil {
		return nil, err
	}

	path := env.Config.AuditLogPath()
	entries, err := audit.ReadEntries(path)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	if entries == nil {
		return nil, fmt.Errorf("%w: no audit log at %s", kerrors.ErrNoFilesFound, path)
	}
	env.Logger.Debugf("Read %d audit entries from %s", len(entries), path)

	kept := make([]audit.Entry, 0, len(entries))
	for _, e := range entries {
		if matchAll(matchers, e) {
			kept = append(kept, e)
		}
	}

	if opts.Limit > 0 && len(kept) > opts.Limit {
		kept = kept[len(kept)-opts.Limit:]
	}
	if opts.NewestFirst {
		for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
			kept[i], kept[j] = kept[j], kept[i]
		}
	}

	return &LogResult{Entries: kept, Scanned: len(entries)}, nil
}

func matchAll(matchers []entryMatcher, e audit.Entry) bool {
	for _, m := range matchers {
		if !m(e) {
			return false
		}
	}
	return true
}

// matchers turns the options into predicates, validating them first so a
// typo fails even when the log is empty.
func (o LogOptions) matchers() ([]entryMatcher, error) {
	var ms []entryMatcher

	if o.Collection != "" {
		collection, ok := audit.ParseCollection(o.Collection)
		if !ok {
			return nil, fmt.Errorf("%w: unknown collection %q, use tasks or budgets", kerrors.ErrInvalidFilter, o.Collection)
		}
		ms = append(ms, func(e audit.Entry) bool { return e.Collection == collection })
	}

	if ops := normalizeOperations(o.Operations); len(ops) > 0 {
		ms = append(ms, func(e audit.Entry) bool {
			return ops[strings.ToLower(e.Operation)] || ops[e.Verb()]
		})
	}

	switch {
	case o.RecordID < 0:
		return nil, fmt.Errorf("%w: record id must be positive, got %d", kerrors.ErrInvalidFilter, o.RecordID)
	case o.RecordID > 0:
		ms = append(ms, func(e audit.Entry) bool { return e.RecordID == o.RecordID })
	}

	if o.Since != "" || o.Until != "" {
		from, to, err := dayRange(o.Since, o.Until)
		if err != nil {
			return nil, err
		}
		ms = append(ms, func(e audit.Entry) bool {
			t, ok := e.Time()
			return ok && !t.Before(from) && t.Before(to)
		})
	}

	return ms, nil
}

// normalizeOperations lowercases and trims names, splitting any that still
// contain commas.
func normalizeOperations(names []string) map[string]bool {
	ops := make(map[string]bool)
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
				ops[part] = true
			}
		}
	}
	return ops
}

// dayRange converts inclusive YYYY-MM-DD bounds into a half-open UTC range.
func dayRange(since, until string) (from, to time.Time, err error) {
	to = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

	if since != "" {
		if from, err = time.Parse(records.DateLayout, since); err != nil {
			return from, to, fmt.Errorf("%w: --since %q, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat, since)
		}
	}
	if until != "" {
		day, err := time.Parse(records.DateLayout, until)
		if err != nil {
			return from, to, fmt.Errorf("%w: --until %q, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat, until)
		}
		to = day.AddDate(0, 0, 1)
	}
	return from, to, nil
}
