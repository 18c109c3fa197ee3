package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/dmitrijs2005/bookreview/internal/client/services"
	"github.com/dmitrijs2005/bookreview/internal/client/share"
)

var (
	errNoSuchReview = errors.New("no such review on this page")
	errBadMonth     = errors.New("usage: stats [year month]")
)

// settle drops the error of a fetch that a newer one replaced. Other service
// errors have already been reported through the notification channel.
func settle(err error) error {
	if errors.Is(err, services.ErrSuperseded) {
		return nil
	}
	return err
}

// List reloads the current page and prints it.
func (a *App) List(ctx context.Context) error {
	if err := settle(a.reviews.Refresh(ctx)); err != nil {
		return err
	}
	a.printPage()
	return nil
}

func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.fail(errMissingNumber)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return a.fail(fmt.Errorf("%w: %q", errBadNumber, args[0]))
	}
	if err := settle(a.reviews.SetPage(ctx, n)); err != nil {
		return err
	}
	a.printPage()
	return nil
}

func (a *App) Next(ctx context.Context) error {
	if err := settle(a.reviews.NextPage(ctx)); err != nil {
		return err
	}
	a.printPage()
	return nil
}

func (a *App) Prev(ctx context.Context) error {
	if err := settle(a.reviews.PrevPage(ctx)); err != nil {
		return err
	}
	a.printPage()
	return nil
}

// Show prints the full review at the given position of the current page.
func (a *App) Show(_ context.Context, args []string) error {
	r, err := a.item(args)
	if err != nil {
		return a.fail(err)
	}
	a.printReview(r)
	return nil
}

// Edit opens the review at the given position in the draft editor.
func (a *App) Edit(ctx context.Context, args []string) error {
	r, err := a.item(args)
	if err != nil {
		return a.fail(err)
	}
	a.reviewEditor.OpenEdit(r)
	return a.Draft(ctx)
}

// Delete removes the review being edited, or the one at the given position
// of the current page.
func (a *App) Delete(ctx context.Context, args []string) error {
	var id int64
	if d, ok := a.reviewEditor.Draft(); ok && len(args) == 0 && d.IsPersisted() {
		id = d.ID
	} else {
		r, err := a.item(args)
		if err != nil {
			return a.fail(err)
		}
		id = r.ID
	}

	if err := a.reviews.Delete(ctx, id); err != nil {
		return err
	}
	a.printPage()
	return nil
}

// Stats prints the reading statistics of a month, the current one unless
// year and month are given.
func (a *App) Stats(ctx context.Context, args []string) error {
	year, month, err := a.period(args)
	if err != nil {
		return a.fail(err)
	}

	st, err := a.reviews.Statistics(ctx, year, month)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, share.StatsText(year, month, st))
	return nil
}

// Tweet prints a share link for the review being edited or, with no draft
// open, for this month's statistics.
func (a *App) Tweet(ctx context.Context) error {
	if d, ok := a.reviewEditor.Draft(); ok {
		fmt.Fprintln(a.out, share.TweetURL(share.ReviewText(d)))
		return nil
	}

	now := a.now()
	st, err := a.reviews.Statistics(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, share.TweetURL(share.StatsText(now.Year(), int(now.Month()), st)))
	return nil
}

func (a *App) item(args []string) (models.Review, error) {
	i, err := parseIndex(args)
	if err != nil {
		return models.Review{}, err
	}
	r, ok := a.reviews.Item(i)
	if !ok {
		return models.Review{}, fmt.Errorf("%w: %d", errNoSuchReview, i+1)
	}
	return r, nil
}

func (a *App) period(args []string) (year, month int, err error) {
	now := a.now()
	switch len(args) {
	case 0:
		return now.Year(), int(now.Month()), nil
	case 2:
		y, yerr := strconv.Atoi(args[0])
		m, merr := strconv.Atoi(args[1])
		if yerr != nil || merr != nil || m < 1 || m > 12 {
			return 0, 0, errBadMonth
		}
		return y, m, nil
	default:
		return 0, 0, errBadMonth
	}
}

func (a *App) printPage() {
	items := a.reviews.Items()
	p := a.reviews.Pagination()

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No reviews yet. Use 'search' to find a book.")
		return
	}
	for i, r := range items {
		fmt.Fprintf(a.out, "%2d. %s by %s  %.1f★  %s\n", i+1, r.BookTitle, r.BookAuthor, r.Rating, r.ReadingStatus)
		if c := models.ShortenComment(r.Comment); c != "" {
			fmt.Fprintf(a.out, "    %s\n", c)
		}
	}
	fmt.Fprintf(a.out, "Page %d of %d\n", p.CurrentPage, p.TotalPages)
}

func (a *App) printReview(r models.Review) {
	fmt.Fprintf(a.out, "%s by %s\n", r.BookTitle, r.BookAuthor)
	if r.BookPublishedDate != "" || r.BookNumOfPages > 0 {
		fmt.Fprintf(a.out, "Published: %s, %d pages\n", r.BookPublishedDate, r.BookNumOfPages)
	}
	fmt.Fprintf(a.out, "Rating: %.1f\n", r.Rating)
	fmt.Fprintf(a.out, "Status: %s, %d pages read\n", r.ReadingStatus, r.ReadPages)
	if r.StartReadAt != "" || r.FinishReadAt != "" {
		fmt.Fprintf(a.out, "Read: %s .. %s\n", r.StartReadAt, r.FinishReadAt)
	}
	if tags := models.ParseTags(r.Tags); len(tags) > 0 {
		fmt.Fprintf(a.out, "Tags: %s\n", strings.Join(tags, ", "))
	}
	if r.Comment != "" {
		fmt.Fprintf(a.out, "\n%s\n", r.Comment)
	}
}
