package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/restate/internal/client/fetch"
	"github.com/dmitrijs2005/restate/internal/client/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrUsageShow  = errors.New("usage: show <id>")
	ErrUsageAgent = errors.New("usage: agent <id>")
	ErrNotFound   = errors.New("not found")
)

// normalizeFilter turns user input such as "house" into the stored type
// name "House". Empty input and "all" mean no filter.
func normalizeFilter(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, models.FilterAll) {
		return models.FilterAll
	}
	return cases.Title(language.English).String(s)
}

// List searches listings: list [-f type] [-n limit] [words...]. Every call
// sets all three params, so a previous filter does not leak into the next
// search.
func (a *App) List(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	filter := fs.String("f", models.FilterAll, "property type")
	limit := fs.Int("n", 0, "max results")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("usage: list [-f type] [-n limit] [search words]: %w", err)
	}

	a.listings.Refetch(ctx, fetch.Params{
		"filter": normalizeFilter(*filter),
		"query":  strings.Join(fs.Args(), " "),
		"limit":  *limit,
	})

	st := a.listings.State()
	if st.Error != "" {
		return errors.New(st.Error)
	}
	a.printProperties(st.Data)
	return nil
}

func (a *App) Latest(ctx context.Context) error {
	a.printProperties(a.props.Latest(ctx))
	return nil
}

func (a *App) printProperties(props []*models.Property) {
	if len(props) == 0 {
		fmt.Fprintln(a.out, "No properties found")
		return
	}
	for _, p := range props {
		fmt.Fprintln(a.out, p)
	}
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsageShow
	}
	p := a.props.Get(ctx, args[0])
	if p == nil {
		return ErrNotFound
	}

	fmt.Fprintf(a.out, "%s\n  id:      %s\n  type:    %s\n  address: %s\n", p.Name, p.ID, p.Type, p.Address)
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "  created: %s\n", p.CreatedAt.Format("2006-01-02"))
	}
	for _, name := range p.FieldNames() {
		fmt.Fprintf(a.out, "  %s: %s\n", name, fieldText(p.Fields[name]))
	}
	return nil
}

// fieldText prints strings without quotes and everything else as JSON.
func fieldText(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}

func (a *App) Agent(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsageAgent
	}
	ag := a.props.Agent(ctx, args[0])
	if ag == nil {
		return ErrNotFound
	}
	fmt.Fprintf(a.out, "%s <%s>\n", ag.Name, ag.Email)
	if ag.Avatar != "" {
		fmt.Fprintf(a.out, "avatar: %s\n", ag.Avatar)
	}
	return nil
}
