package filtering

import (
	"context"
	"fmt"

	"github.com/ob1-scout/ob1-scout/internal/feed"
)

type seenFilter struct {
	path string
}

// NewSeen creates a filter that removes opportunities listed in the seen file.
func NewSeen(path string) Filter {
	return &seenFilter{
		path: path,
	}
}

func (f *seenFilter) Name() string { return "seen" }

func (f *seenFilter) Disable(string) {}

func (f *seenFilter) IsEnabled() bool { return true }

func (f *seenFilter) Validate() error { return nil }

func (f *seenFilter) Apply(_ context.Context, v *feed.Opportunities) (*feed.Opportunities, Step, error) {
	initial := v.Len()
	if f.path == "" {
		return v, newStep(initial, v), nil
	}

	seen, err := feed.LoadSeen(f.path)
	if err != nil {
		return v, Step{}, fmt.Errorf("getting seen opportunities from file: %w", err)
	}

	v.Exclude(feed.OpportunityIDField, seen.IDs())

	return v, newStep(initial, v), nil
}

func (f *seenFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
