package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"taskoraClient/internal/listview"
	"taskoraClient/internal/models"
	"taskoraClient/internal/wizard"
)

func (app *application) usage() {
	fmt.Fprintln(os.Stderr, `Usage: taskora <command> [flags]

Commands:
  signin         authenticate and store the session
  signout        drop the stored session
  whoami         show the current user
  gigs           search gigs once with the given filters
  browse         interactive gig search (debounced, type and pause)
  post           post an assignment through the wizard
  jobs           search job postings
  apply          apply to a job with a cover letter and resume
  bids           list bids for an assignment
  orders         list my orders
  chat           open a conversation and poll for messages
  notifications  list notifications and unread count
  wallet         show balance and transactions`)
}

func (app *application) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "signin":
		return app.cmdSignIn(ctx, args)
	case "signout":
		return app.authService.SignOut(ctx)
	case "whoami":
		return app.cmdWhoAmI(ctx)
	case "gigs":
		return app.cmdGigs(ctx, args)
	case "browse":
		return app.cmdBrowse(ctx)
	case "post":
		return app.cmdPost(ctx, args)
	case "jobs":
		return app.cmdJobs(ctx, args)
	case "apply":
		return app.cmdApply(ctx, args)
	case "bids":
		return app.cmdBids(ctx, args)
	case "orders":
		return app.cmdOrders(ctx, args)
	case "chat":
		return app.cmdChat(ctx, args)
	case "notifications":
		return app.cmdNotifications(ctx)
	case "wallet":
		return app.cmdWallet(ctx)
	default:
		app.usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (app *application) cmdSignIn(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signin", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	user, err := app.authService.SignIn(ctx, models.SignInRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func (app *application) cmdWhoAmI(ctx context.Context) error {
	user, err := app.authService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> role=%s rating=%.1f member %s\n",
		user.Name, user.Email, user.Role, user.ReviewRating, humanize.Time(user.CreatedAt))
	return nil
}

func (app *application) cmdGigs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("gigs", flag.ExitOnError)
	search := fs.String("search", "", "free-text search")
	category := fs.String("category", "", "category filter")
	priceFrom := fs.Float64("price-from", 0, "minimum price")
	priceTo := fs.Float64("price-to", 0, "maximum price")
	sortKey := fs.String("sort", "", "sort key (price_asc, price_desc, rating)")
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	filter := listview.Filter{
		Search:    *search,
		Category:  *category,
		PriceFrom: *priceFrom,
		PriceTo:   *priceTo,
		Sort:      *sortKey,
		Page:      *page,
	}
	result, err := app.gigService.Search(ctx, filter)
	if err != nil {
		return err
	}
	for _, gig := range result.Results {
		fmt.Printf("#%d  %-30s %10s  by %s (%.1f)\n",
			gig.ID, gig.Title, humanize.Commaf(gig.Price), gig.UserName, gig.UserRating)
	}
	fmt.Printf("%d of %d results, has_more=%v\n", len(result.Results), result.Total, result.HasMore)
	return nil
}

// cmdBrowse drives the debounced list controller from stdin: each line
// is a keystroke buffer; results print once the input settles.
func (app *application) cmdBrowse(ctx context.Context) error {
	updates := make(chan struct{}, 1)
	ctrl := listview.New(
		app.gigService.Search,
		listview.WithContext[models.Gig](ctx),
		listview.WithDebounce[models.Gig](app.cfg.Sync.SearchDebounce),
		listview.WithOnChange[models.Gig](func() {
			select {
			case updates <- struct{}{}:
			default:
			}
		}),
	)
	defer ctrl.Stop()
	ctrl.Start()

	go func() {
		for range updates {
			snap := ctrl.Snapshot()
			if snap.Loading {
				continue
			}
			fmt.Printf("-- %d results for %q --\n", snap.Total, snap.Filter.Search)
			for _, gig := range snap.Items {
				fmt.Printf("#%d  %s  %s\n", gig.ID, gig.Title, humanize.Commaf(gig.Price))
			}
		}
	}()

	fmt.Println("Type to search, empty line to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		ctrl.SetSearchInput(line)
	}
	return scanner.Err()
}

func (app *application) cmdPost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	title := fs.String("title", "", "assignment title")
	description := fs.String("desc", "", "description")
	category := fs.String("category", "", "category")
	skills := fs.String("skills", "", "comma-separated skills")
	budgetFrom := fs.String("budget-from", "", "minimum budget")
	budgetTo := fs.String("budget-to", "", "maximum budget")
	duration := fs.String("duration", "", "duration in days")
	fs.Parse(args)

	w := wizard.New(3, func(ctx context.Context, input models.AssignmentInput) (int, error) {
		assignment, err := app.assignmentService.Create(ctx, input)
		if err != nil {
			return 0, err
		}
		return assignment.ID, nil
	})

	// Step 1: basics.
	w.Update(func(d *wizard.Draft) {
		d.Title = *title
		d.Description = *description
		d.Category = *category
	})
	w.Next()
	// Step 2: skills and budget.
	w.Update(func(d *wizard.Draft) {
		d.SkillsRaw = *skills
		d.BudgetFrom = *budgetFrom
		d.BudgetTo = *budgetTo
	})
	w.Next()
	// Step 3: timing, then submit.
	w.Update(func(d *wizard.Draft) {
		d.Duration = *duration
	})

	id, err := w.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Posted assignment #%d\n", id)
	return nil
}

func (app *application) cmdJobs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("jobs", flag.ExitOnError)
	search := fs.String("search", "", "free-text search")
	category := fs.String("category", "", "category filter")
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	result, err := app.jobService.Search(ctx, listview.Filter{
		Search:   *search,
		Category: *category,
		Page:     *page,
	})
	if err != nil {
		return err
	}
	for _, job := range result.Results {
		location := job.Location
		if job.Remote {
			location = "remote"
		}
		fmt.Printf("#%d  %-30s %s, %s..%s  %s\n",
			job.ID, job.Title, location,
			humanize.Commaf(job.SalaryFrom), humanize.Commaf(job.SalaryTo), job.CompanyName)
	}
	fmt.Printf("%d of %d results, has_more=%v\n", len(result.Results), result.Total, result.HasMore)
	return nil
}

func (app *application) cmdApply(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	jobID := fs.Int("job", 0, "job id")
	coverLetter := fs.String("cover", "", "cover letter text")
	resumePath := fs.String("resume", "", "path to a resume file")
	fs.Parse(args)

	var resume *os.File
	resumeName := ""
	if *resumePath != "" {
		f, err := os.Open(*resumePath)
		if err != nil {
			return err
		}
		defer f.Close()
		resume = f
		resumeName = filepath.Base(*resumePath)
	}

	submitted, err := app.jobService.Apply(ctx, *jobID, *coverLetter, resumeName, readerOrNil(resume))
	if err != nil {
		return err
	}
	fmt.Printf("Applied to job #%d, application #%d\n", submitted.JobID, submitted.ID)
	return nil
}

// readerOrNil avoids a typed-nil *os.File sneaking into an io.Reader.
func readerOrNil(f *os.File) io.Reader {
	if f == nil {
		return nil
	}
	return f
}

func (app *application) cmdBids(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bids", flag.ExitOnError)
	assignmentID := fs.Int("assignment", 0, "assignment id")
	fs.Parse(args)

	bids, err := app.bidService.ListForAssignment(ctx, *assignmentID)
	if err != nil {
		return err
	}
	for _, bid := range bids {
		fmt.Printf("#%d  %s bids %s for %d days: %s\n",
			bid.ID, bid.UserName, humanize.Commaf(bid.Amount), bid.DurationDays, bid.CoverMessage)
	}
	return nil
}

func (app *application) cmdOrders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	result, err := app.orderService.List(ctx, listview.Filter{Page: *page})
	if err != nil {
		return err
	}
	for _, order := range result.Results {
		fmt.Printf("#%d  %-30s %10s  %s  %s\n",
			order.ID, order.Title, humanize.Commaf(order.Price), order.Status, humanize.Time(order.CreatedAt))
	}
	return nil
}

// cmdChat opens a conversation, keeps it fresh on the message poll and
// sends stdin lines as messages.
func (app *application) cmdChat(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	conversationID := fs.Int("conversation", 0, "conversation id")
	fs.Parse(args)

	if *conversationID == 0 {
		conversations, err := app.chatController.Conversations(ctx)
		if err != nil {
			return err
		}
		for _, c := range conversations {
			fmt.Printf("#%d  %s  unread=%d  last: %s (%s)\n",
				c.ID, c.PeerName, c.Unread, c.LastMessage, humanize.Time(c.LastMessageAt))
		}
		return nil
	}

	if err := app.chatController.Open(ctx, *conversationID); err != nil {
		return err
	}
	defer app.chatController.Close()

	for _, m := range app.chatController.Snapshot().Messages {
		fmt.Printf("[%d] %s\n", m.SenderID, m.Text)
	}

	fmt.Println("Type a message, empty line to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		message, err := app.chatController.Send(ctx, line)
		if err != nil {
			app.errorLog.Printf("send failed: %v", err)
			continue
		}
		fmt.Printf("sent #%d\n", message.ID)
	}
	return scanner.Err()
}

func (app *application) cmdNotifications(ctx context.Context) error {
	count, err := app.notificationService.UnreadCount(ctx)
	if err != nil {
		return err
	}
	result, err := app.notificationService.List(ctx, listview.Filter{Page: 1, Limit: 20})
	if err != nil {
		return err
	}
	fmt.Printf("%d unread\n", count)
	for _, n := range result.Results {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("%s #%d [%s] %s (%s)\n", marker, n.ID, n.Type, n.Title, humanize.Time(n.CreatedAt))
	}
	return nil
}

func (app *application) cmdWallet(ctx context.Context) error {
	wallet, err := app.walletService.Get(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Balance: %s %s (escrow: %s)\n",
		humanize.Commaf(wallet.Balance), wallet.Currency, humanize.Commaf(wallet.EscrowBalance))

	result, err := app.walletService.Transactions(ctx, listview.Filter{Page: 1, Limit: 10})
	if err != nil {
		return err
	}
	for _, tx := range result.Results {
		fmt.Printf("#%d  %-12s %12s  %s\n", tx.ID, tx.Type, humanize.Commaf(tx.Amount), humanize.Time(tx.CreatedAt))
	}
	return nil
}
