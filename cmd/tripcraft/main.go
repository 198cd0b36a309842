package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tripcraft/internal/analyze"
	"tripcraft/internal/browser"
	"tripcraft/internal/config"
	triperrors "tripcraft/internal/errors"
	"tripcraft/internal/extract"
	"tripcraft/internal/llm"
	"tripcraft/internal/observability"
	"tripcraft/internal/plan"
	"tripcraft/internal/server"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("error: ")+err.Error())
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "tripcraft",
		Short: "Turn travel content links into day-by-day itineraries",
		Long: `tripcraft extracts structured travel information from Xiaohongshu,
Bilibili, Douyin and Mafengwo links, analyzes it with an LLM, and generates
an editable day-by-day travel plan.`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCommand(), newPlanCommand(), newExtractCommand())
	return root
}

// pipeline holds every explicitly wired service. Constructed once per
// process; no package-level singletons.
type pipeline struct {
	browser    *browser.Service
	extraction *extract.Service
	generator  *plan.Generator
	booking    *plan.BookingService
}

func buildPipeline(cfg config.Config) (*pipeline, error) {
	p, metrics, err := buildExtractionSide(cfg)
	if err != nil {
		return nil, err
	}

	client, err := buildLLMClient(cfg.LLM, metrics)
	if err != nil {
		return nil, err
	}

	p.booking = plan.NewBookingService()
	p.generator = plan.NewGenerator(client, analyze.NewAnalyzer(client), p.booking, metrics)
	return p, nil
}

// buildExtractionSide wires everything up to content extraction. The extract
// subcommand stops here; it never needs an LLM key.
func buildExtractionSide(cfg config.Config) (*pipeline, *observability.Metrics, error) {
	metrics, err := observability.NewMetrics("tripcraft", nil)
	if err != nil {
		return nil, nil, err
	}

	browserSvc := browser.NewService(cfg.Browser)

	policy := extract.Policy{
		RealExtraction: cfg.Extraction.RealExtraction,
		OnFailure:      cfg.Extraction.OnFailure,
	}
	extraction := extract.NewService(cfg.Extraction, metrics,
		extract.NewXiaohongshuExtractor(browserSvc, policy, metrics),
		extract.NewBilibiliExtractor(browserSvc, policy, metrics),
		extract.NewDouyinExtractor(browserSvc, policy, metrics),
		extract.NewMafengwoExtractor(browserSvc, policy, metrics),
	)

	return &pipeline{browser: browserSvc, extraction: extraction}, metrics, nil
}

func buildLLMClient(cfg config.LLMConfig, metrics *observability.Metrics) (llm.Client, error) {
	client, err := llm.NewGeminiClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w (set TRIPCRAFT_LLM_API_KEY)", err)
	}

	retryCfg := triperrors.DefaultRetryConfig()
	if cfg.MaxRetries > 0 {
		retryCfg.MaxAttempts = cfg.MaxRetries
	}
	return llm.WrapWithRetry(client, retryCfg, triperrors.DefaultCircuitBreakerConfig(), metrics), nil
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			p, err := buildPipeline(cfg)
			if err != nil {
				return err
			}
			defer p.browser.Close()

			srv := server.NewServer(cfg.Server, p.extraction, p.generator, p.booking)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()
			fmt.Printf("%s tripcraft API on http://%s\n", green("listening:"), cfg.Server.Addr())

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				fmt.Printf("\n%s %v, shutting down\n", yellow("signal:"), sig)
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}
}

func newPlanCommand() *cobra.Command {
	var (
		days      int
		travelers int
		budget    float64
		styles    []string
		interests []string
	)

	cmd := &cobra.Command{
		Use:   "plan [urls...]",
		Short: "Generate a travel plan from content URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			p, err := buildPipeline(cfg)
			if err != nil {
				return err
			}
			defer p.browser.Close()

			ctx := cmd.Context()
			results := p.extraction.ExtractMultipleContents(ctx, args)

			var contents []extract.ExtractedContent
			for _, r := range results {
				if r.Success && r.Data != nil {
					fmt.Printf("%s %s (%s)\n", green("extracted:"), r.Data.Title, r.Platform)
					contents = append(contents, *r.Data)
				} else {
					fmt.Printf("%s %s: %s\n", red("failed:"), r.URL, r.Error)
				}
			}

			generated, err := p.generator.GenerateTravelPlan(ctx, contents, plan.UserRequirements{
				DurationDays: days,
				Travelers:    travelers,
				Budget:       budget,
				TravelStyle:  styles,
				Interests:    interests,
			})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(generated, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "trip duration in days (0 = derive from content)")
	cmd.Flags().IntVar(&travelers, "travelers", 1, "number of travelers")
	cmd.Flags().Float64Var(&budget, "budget", 0, "total budget (0 = no constraint)")
	cmd.Flags().StringSliceVar(&styles, "style", nil, "travel styles, e.g. 休闲,美食")
	cmd.Flags().StringSliceVar(&interests, "interest", nil, "interests, e.g. 自然,摄影")
	return cmd
}

func newExtractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [urls...]",
		Short: "Extract structured content from URLs and print it as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			p, _, err := buildExtractionSide(cfg)
			if err != nil {
				return err
			}
			defer p.browser.Close()

			results := p.extraction.ExtractMultipleContents(cmd.Context(), args)
			out, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
