package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookreview/internal/client/services"
)

var errNotForSale = errors.New("this book is not for sale")

// Search queries the catalog with the remaining words joined as the keyword
// and prints the results.
func (a *App) Search(ctx context.Context, args []string) error {
	err := settle(a.search.Search(ctx, strings.Join(args, " ")))
	if errors.Is(err, services.ErrEmptyKeyword) {
		return a.fail(err)
	}
	if err != nil {
		return err
	}
	return a.Results(ctx)
}

func (a *App) Results(_ context.Context) error {
	books := a.search.Results()
	if len(books) == 0 {
		if kw := a.search.Keyword(); kw != "" {
			fmt.Fprintf(a.out, "Nothing found for %q\n", kw)
		} else {
			fmt.Fprintln(a.out, "No search yet")
		}
		return nil
	}

	for i, b := range books {
		var marks []string
		if b.IsReviewed {
			marks = append(marks, "reviewed")
		}
		if b.IsForSale {
			marks = append(marks, "for sale")
		}
		line := fmt.Sprintf("%2d. %s by %s", i+1, b.Title, b.Author)
		if b.PublishedDate != "" {
			line += " (" + b.PublishedDate + ")"
		}
		if len(marks) > 0 {
			line += " [" + strings.Join(marks, ", ") + "]"
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// Review opens a new review draft for the search result at the given
// position.
func (a *App) Review(ctx context.Context, args []string) error {
	i, err := parseIndex(args)
	if err != nil {
		return a.fail(err)
	}
	if err := a.search.OpenCreateDraft(i); err != nil {
		return a.fail(err)
	}
	return a.Draft(ctx)
}

// Buy prints the purchase link of the search result at the given position.
func (a *App) Buy(_ context.Context, args []string) error {
	i, err := parseIndex(args)
	if err != nil {
		return a.fail(err)
	}
	link, ok := a.search.BuyLink(i)
	if !ok {
		return a.fail(errNotForSale)
	}
	fmt.Fprintln(a.out, link)
	return nil
}
