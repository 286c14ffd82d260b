/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"newsdigest/internal/config"
	"newsdigest/internal/digest"
	"newsdigest/internal/fetch"
	"newsdigest/internal/llm"
	"newsdigest/internal/logger"
	"newsdigest/internal/notify"
	"newsdigest/internal/pipeline"
	"newsdigest/internal/planner"
	"newsdigest/internal/search"
	"newsdigest/internal/server"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "newsdigest",
	Short: "newsdigest turns a topic into a digest of recent news.",
	Long: `newsdigest plans search queries for a topic, gathers recent articles
through Google Custom Search, extracts their content and synthesizes a
digest, either via Gemini or a deterministic fallback.

Run "newsdigest serve" to expose the pipeline over HTTP, or
"newsdigest digest <topic>" to generate a digest from the terminal.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.newsdigest.yaml)")
}

// buildPipeline assembles the digest pipeline from configuration. Missing
// credentials degrade individual stages instead of failing.
func buildPipeline(cfg *config.Config) *pipeline.Pipeline {
	var gen llm.TextGenerator
	if cfg.AI.Gemini.APIKey != "" {
		client, err := llm.NewClient(cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model)
		if err != nil {
			logger.Warn("Failed to create Gemini client, using deterministic fallbacks", "error", err.Error())
		} else {
			gen = client
		}
	} else {
		logger.Warn("No Gemini API key configured, using deterministic fallbacks")
	}

	provider := search.NewGoogleProvider(cfg.Search.Google.APIKey, cfg.Search.Google.SearchID)
	fetcher := fetch.New(cfg.Fetch.Timeout, cfg.Fetch.Concurrency, cfg.Fetch.MaxContent)

	return pipeline.New(
		planner.New(gen, cfg.Search.DirectTopics),
		provider,
		fetcher,
		digest.NewSynthesizer(gen),
		search.Config{
			MaxResults: cfg.Search.MaxResults,
			SinceDays:  cfg.Search.RecencyDays,
			Language:   cfg.Search.Language,
		},
	)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start the HTTP server exposing POST /digest, GET /health and GET /fashion-news.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		srv := server.New(buildPipeline(cfg), notify.NewNoopSMS(), cfg.Server)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			logger.Info("Received shutdown signal", "signal", sig.String())
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

var (
	digestNoAI bool

	digestTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	digestMetaStyle  = lipgloss.NewStyle().Faint(true)
)

var digestCmd = &cobra.Command{
	Use:   "digest <topic>",
	Short: "Generate a news digest for a topic",
	Long:  `Run the full pipeline for the given topic and print the digest to stdout.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		topic := args[0]
		p := buildPipeline(cfg)

		result := p.GenerateDigest(cmd.Context(), topic, !digestNoAI)

		fmt.Println(digestTitleStyle.Render(fmt.Sprintf("News digest: %s", result.Topic)))
		fmt.Println(digestMetaStyle.Render(fmt.Sprintf("%d articles", len(result.Articles))))
		fmt.Println()
		fmt.Println(result.Digest)
		return nil
	},
}

func init() {
	digestCmd.Flags().BoolVar(&digestNoAI, "no-ai", false, "skip AI synthesis and print the plain digest")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(digestCmd)
}
