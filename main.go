package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"leadgrab/internal/browser"
	"leadgrab/internal/collector"
	"leadgrab/internal/config"
	"leadgrab/internal/enricher"
	"leadgrab/internal/records"
	"leadgrab/internal/report"
	"leadgrab/internal/session"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	query      string
	location   string
	outputFile string
	maxPages   int
	maxResults int
	showUI     bool
	proxyURL   string
	timeout    time.Duration
)

// collectSaveEvery is the collector's auto-save cadence; the enricher's
// tighter cadence lives in the enricher package.
const collectSaveEvery = 100

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:     "leadgrab",
		Short:   "Collect business listings and enrich them with contact emails",
		Version: version,
		Long: `leadgrab drives a browser to collect business listings (name, phone)
from a directory site, then enriches each listing with a contact email by
locating the business's facebook page via a web search and scanning it.`,
		Example: `  # Collect listings into YellowPages_Plumber_LosAngelesCA.xlsx
  leadgrab collect --query "Plumber" --location "Los Angeles CA"

  # Collect at most 3 pages into a CSV
  leadgrab collect -q Dentist -l "New York NY" --max-pages 3 -o dentists.csv

  # Add an Email column to a previously collected table
  leadgrab enrich YellowPages_Plumber_LosAngelesCA.xlsx

  # Both phases back to back
  leadgrab run -q Restaurant -l "Chicago IL"`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&showUI, "showui", false, "Show browser UI (disable headless mode)")
	rootCmd.PersistentFlags().StringVarP(&proxyURL, "proxy", "p", cfg.ProxyURL, "Proxy URL, defaults to LEADGRAB_PROXY env var")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", cfg.Timeout, "Timeout for element and page waits")

	collectCmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect business listings from the directory site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(cmd.Context(), cfg)
		},
	}
	collectCmd.Flags().StringVarP(&query, "query", "q", "", "Business type to search for (prompted when omitted)")
	collectCmd.Flags().StringVarP(&location, "location", "l", "", "Location to search in (prompted when omitted)")
	collectCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Table path (.xlsx or .csv; derived from query+location when omitted)")
	collectCmd.Flags().IntVar(&maxPages, "max-pages", -1, "Max pages to walk (-1 for no limit)")
	collectCmd.Flags().IntVar(&maxResults, "max-results", -1, "Max records to collect (-1 for no limit)")

	enrichCmd := &cobra.Command{
		Use:   "enrich [table]",
		Short: "Add a contact email to each record of an existing table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runEnrich(cmd.Context(), cfg, path)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Collect listings, then enrich them, in one go",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runCollect(cmd.Context(), cfg); err != nil {
				return err
			}
			return runEnrich(cmd.Context(), cfg, outputFile)
		},
	}
	runCmd.Flags().StringVarP(&query, "query", "q", "", "Business type to search for (prompted when omitted)")
	runCmd.Flags().StringVarP(&location, "location", "l", "", "Location to search in (prompted when omitted)")
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Table path (.xlsx or .csv; derived from query+location when omitted)")
	runCmd.Flags().IntVar(&maxPages, "max-pages", -1, "Max pages to walk (-1 for no limit)")
	runCmd.Flags().IntVar(&maxResults, "max-results", -1, "Max records to collect (-1 for no limit)")

	rootCmd.AddCommand(collectCmd, enrichCmd, runCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runCollect(ctx context.Context, cfg config.Config) error {
	var err error
	if query, err = promptIfEmpty(query, "Enter the business type (e.g. Plumber, Restaurant, Dentist): "); err != nil {
		return err
	}
	if location, err = promptIfEmpty(location, "Enter the location (e.g. Los Angeles CA, New York NY): "); err != nil {
		return err
	}
	if outputFile == "" {
		outputFile = records.TableFilename(query, location)
	}

	sess, cleanup, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	rs := &records.ResultSet{}
	saver := records.NewCadenceSaver(collectSaveEvery, func() error {
		_, err := records.Save(outputFile, rs)
		return err
	})

	col := collector.New(sess)
	opts := collector.Options{
		Query:      query,
		Location:   location,
		MaxPages:   maxPages,
		MaxResults: maxResults,
		Timeout:    timeout,
	}
	if err := col.Search(ctx, opts); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	walker := collector.Walker{
		Driver:     col.Driver(),
		MaxPages:   maxPages,
		MaxResults: maxResults,
		OnRecord: func(rec records.Record, total int) {
			if total%50 == 0 {
				fmt.Fprintf(os.Stderr, "[collector] progress: %d records so far\n", total)
			}
			if err := saver.Tick(); err != nil {
				fmt.Fprintf(os.Stderr, "[collector] interim save failed: %v\n", err)
			}
		},
	}
	walkErr := walker.Walk(ctx, rs)

	if rs.Len() == 0 {
		fmt.Println("No results found to save.")
		return walkErr
	}

	savedPath, err := records.Save(outputFile, rs)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	outputFile = savedPath
	fmt.Fprintf(os.Stderr, "[collector] %d records saved to %s\n", rs.Len(), savedPath)

	report.Summary(os.Stdout, rs)

	if walkErr != nil && errors.Is(walkErr, context.Canceled) {
		fmt.Println("Interrupted; partial results were saved.")
		return nil
	}
	return walkErr
}

func runEnrich(ctx context.Context, cfg config.Config, tablePath string) error {
	var err error
	if tablePath, err = promptIfEmpty(tablePath, "Enter the path to the collected table (.xlsx or .csv): "); err != nil {
		return err
	}

	rs, err := records.Load(tablePath)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}
	fmt.Fprintf(os.Stderr, "[enricher] loaded %d records from %s\n", rs.Len(), tablePath)

	sess, cleanup, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	lookup := enricher.NewLookup(sess)
	batch := enricher.Batch{Lookup: lookup.Enrich}
	runErr := batch.Run(ctx, rs, func() error {
		_, err := records.Save(tablePath, rs)
		return err
	})

	report.Summary(os.Stdout, rs)

	if runErr != nil && errors.Is(runErr, context.Canceled) {
		fmt.Println("Interrupted; completed records were saved.")
		return nil
	}
	return runErr
}

// openSession starts a browser and a paced session on it. cleanup closes both.
func openSession(cfg config.Config) (*session.Session, func(), error) {
	b, err := browser.New(browser.Config{
		ProxyURL: proxyURL,
		Headless: !showUI && cfg.Headless,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start browser: %w", err)
	}

	sess, err := session.New(b, session.Options{
		Timeout:  timeout,
		MinDelay: cfg.MinDelay,
		MaxDelay: cfg.MaxDelay,
	})
	if err != nil {
		b.Close()
		return nil, nil, fmt.Errorf("failed to open session: %w", err)
	}

	cleanup := func() {
		sess.Close()
		b.Close()
	}
	return sess, cleanup, nil
}

func promptIfEmpty(value, prompt string) (string, error) {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), nil
	}
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("input is required")
	}
	return line, nil
}
