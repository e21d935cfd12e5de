package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/meetwise/meetwise/core/assist"
	"github.com/meetwise/meetwise/core/conflict"
	"github.com/meetwise/meetwise/core/model"
	"github.com/meetwise/meetwise/core/output"
	"github.com/meetwise/meetwise/infra/calendar"
	"github.com/meetwise/meetwise/infra/logger"
	"github.com/meetwise/meetwise/infra/mailparse"
	"github.com/meetwise/meetwise/internal/eventbus"
)

var (
	requestPath  string
	fixturesPath string
	referenceAt  string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a single meeting request from a JSON file",
	RunE:  resolveOnce,
}

func init() {
	resolveCmd.Flags().StringVarP(&requestPath, "request", "f", "", "request JSON file (required)")
	resolveCmd.Flags().StringVar(&fixturesPath, "fixtures", "", "calendar fixture JSON file")
	resolveCmd.Flags().StringVar(&referenceAt, "at", "", "reference instant (RFC3339, default now)")
	if err := resolveCmd.MarkFlagRequired("request"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(resolveCmd)
}

func resolveOnce(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(requestPath)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	var req output.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}

	source := calendar.NewMemorySource()
	if fixturesPath != "" {
		if source, err = calendar.LoadFixtures(fixturesPath); err != nil {
			return err
		}
	}

	log := logger.New("resolve-command")
	fetcher := calendar.NewFetcher(source, calendar.DefaultFetchTimeout, log)
	engine := conflict.NewEngine(log)
	bus := eventbus.New[assist.ResolutionEvent]()
	defer bus.Close()

	assistant := assist.New(mailparse.Heuristic{Log: log}, fetcher, engine, bus, log)
	if referenceAt != "" {
		ref, err := time.Parse(time.RFC3339, referenceAt)
		if err != nil {
			return fmt.Errorf("parse reference instant: %w", err)
		}
		assistant.SetClock(func() time.Time { return ref.In(model.Zone) })
	}

	resp := assistant.Process(context.Background(), req)
	encoded, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
