package screen

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kislikjeka/expensetrack/internal/module/category"
	"github.com/kislikjeka/expensetrack/internal/module/entry"
	"github.com/kislikjeka/expensetrack/internal/platform/store"
	"github.com/kislikjeka/expensetrack/pkg/logger"
	"github.com/kislikjeka/expensetrack/pkg/money"
)

// Uncategorized groups entries whose category is empty or unknown
const Uncategorized = "(uncategorized)"

// EntryFetcher loads the entry list
type EntryFetcher interface {
	FetchEntries(ctx context.Context) ([]entry.Entry, error)
}

// CategoryFetcher loads the category list
type CategoryFetcher interface {
	FetchCategories(ctx context.Context) ([]category.Category, error)
}

// CategorySummary is the per-category part of the dashboard
type CategorySummary struct {
	Category string                `json:"category"`
	Entries  int                   `json:"entries"`
	Totals   []money.CurrencyTotal `json:"totals"`
}

// UntotalledEntry is an entry left out of the totals because its amount is
// not a number.
type UntotalledEntry struct {
	EntryID store.ID `json:"entry_id"`
	Name    string   `json:"name"`
	Amount  string   `json:"amount"`
}

// Summary is what the dashboard shows
type Summary struct {
	Entries    int                   `json:"entries"`
	Categories int                   `json:"categories"`
	Totals     []money.CurrencyTotal `json:"totals"`
	ByCategory []CategorySummary     `json:"by_category"`
	Untotalled []UntotalledEntry     `json:"untotalled"`
}

// Dashboard loads entries and categories side by side and totals them
type Dashboard struct {
	entries     EntryFetcher
	categories  CategoryFetcher
	decimalsFor func(code string) int
	logger      *logger.Logger
}

// NewDashboard creates the dashboard. decimalsFor gives each currency's precision.
func NewDashboard(entries EntryFetcher, categories CategoryFetcher, decimalsFor func(code string) int, log *logger.Logger) *Dashboard {
	return &Dashboard{
		entries:     entries,
		categories:  categories,
		decimalsFor: decimalsFor,
		logger:      log.WithField("screen", string(RouteDashboard)),
	}
}

// Load fetches both lists concurrently. Either failure fails the load.
func (d *Dashboard) Load(ctx context.Context) (Summary, error) {
	ctx = logger.WithScreen(ctx, string(RouteDashboard))

	var (
		entries    []entry.Entry
		categories []category.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = d.entries.FetchEntries(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = d.categories.FetchCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		d.logger.WithContext(ctx).Error("failed to load dashboard", "error", err)
		return Summary{}, err
	}

	return d.summarize(entries, categories)
}

func (d *Dashboard) summarize(entries []entry.Entry, categories []category.Category) (Summary, error) {
	known := make(map[string]string, len(categories))
	for _, c := range categories {
		known[strings.ToLower(c.Name)] = c.Name
	}

	overall := money.NewTotals(d.decimalsFor)
	perCategory := make(map[string]*money.Totals)
	counts := make(map[string]int)
	untotalled := []UntotalledEntry{}

	for _, e := range entries {
		if !e.Amount.Valid() {
			d.logger.Warn("entry amount is not a number", "entry_id", e.ID, "amount", e.Amount.String())
			untotalled = append(untotalled, UntotalledEntry{EntryID: e.ID, Name: e.Name, Amount: e.Amount.String()})
			continue
		}
		if err := overall.Add(e.Currency, e.Amount); err != nil {
			return Summary{}, err
		}

		name, ok := known[strings.ToLower(strings.TrimSpace(e.Category))]
		if !ok {
			name = Uncategorized
		}
		totals, ok := perCategory[name]
		if !ok {
			totals = money.NewTotals(d.decimalsFor)
			perCategory[name] = totals
		}
		if err := totals.Add(e.Currency, e.Amount); err != nil {
			return Summary{}, err
		}
		counts[name]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	byCategory := make([]CategorySummary, 0, len(names))
	for _, name := range names {
		byCategory = append(byCategory, CategorySummary{
			Category: name,
			Entries:  counts[name],
			Totals:   perCategory[name].Result(),
		})
	}

	return Summary{
		Entries:    len(entries),
		Categories: len(categories),
		Totals:     overall.Result(),
		ByCategory: byCategory,
		Untotalled: untotalled,
	}, nil
}
