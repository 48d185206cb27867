// Command charts prints the StageBook Top Charts and can share a performer
// from the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/goccy/go-json"

	sharecap "github.com/okian/stagebook/internal/adapters/share"
	app "github.com/okian/stagebook/internal/app"
	"github.com/okian/stagebook/internal/catalog"
	"github.com/okian/stagebook/internal/domain/share"
	"github.com/okian/stagebook/internal/domain/types"
	"github.com/okian/stagebook/pkg/logger"
)

func main() {
	var (
		locale      = flag.String("locale", "en", "Locale for compact view and like counts")
		catalogPath = flag.String("catalog", "", "Performer catalog YAML (default: built-in)")
		shareID     = flag.String("share", "", "Share the charted performer with this id")
		baseURL     = flag.String("base-url", "http://localhost:9080", "Base URL for share links")
		asJSON      = flag.Bool("json", false, "Print the chart as JSON")
	)
	flag.Parse()

	if err := logger.InitWith(os.Stderr, logger.FormatText); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	_ = logger.SetLevelString("warn")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []app.Option{
		app.WithPublicBaseURL(*baseURL),
		app.WithWorkerCount(1),
		app.WithShareCapabilities(sharecap.NewBrowserSharer(), sharecap.NewClipboardWriter()),
	}
	if *catalogPath != "" {
		c, err := catalog.Load(*catalogPath)
		if err != nil {
			os.Stderr.WriteString("failed to load catalog: " + err.Error() + "\n")
			os.Exit(1)
		}
		opts = append(opts, app.WithCatalog(c))
	}

	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer svc.Stop()

	if *shareID != "" {
		if err := shareChart(ctx, os.Stdout, svc, *shareID); err != nil {
			os.Stderr.WriteString(err.Error() + "\n")
			os.Exit(1)
		}
		return
	}

	entries := svc.Chart(ctx, *locale)
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			os.Stderr.WriteString("failed to encode chart: " + err.Error() + "\n")
			os.Exit(1)
		}
		return
	}
	printChart(os.Stdout, entries)
}

// shareChart runs the share chain for id and prints the notices it raised.
func shareChart(ctx context.Context, w io.Writer, svc *app.Service, id string) error {
	poolCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- svc.Workers().Serve(poolCtx) }()

	outcome, ok := svc.ShareChart(ctx, id)

	// Stopping the pool drains queued notices into the recent list.
	cancel()
	if err := <-done; err != nil {
		return fmt.Errorf("deliver notices: %w", err)
	}
	if !ok {
		return fmt.Errorf("no charted performer with id %q", id)
	}

	fmt.Fprintf(w, "share %s: %s\n", id, outcome)
	for _, n := range svc.RecentNotices(ctx) {
		fmt.Fprintf(w, "[%s] %s: %s\n", n.Level, n.Title, n.Description)
	}
	if outcome == share.OutcomeFailed {
		return fmt.Errorf("sharing %s failed", id)
	}
	return nil
}

func printChart(w io.Writer, entries []types.ChartEntry) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tGENRE\tSCORE\tBOOKINGS\tVIEWS\tLIKES\tRATING")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%d\t%s\t%s\t%.1f\n",
			e.Rank, e.Name, e.Genre, e.Score, e.Bookings, e.ViewsCompact, e.LikesCompact, e.Rating)
	}
	_ = tw.Flush()
}
