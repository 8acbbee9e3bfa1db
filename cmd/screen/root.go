package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/services"
)

const app = "screen"

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   app + " [flags] RESUME...",
		Short: "Rank resumes against a job description by semantic similarity",
		Args:  cobra.MinimumNArgs(1),
		PersistentPreRun: func(*cobra.Command, []string) {
			// A missing .env is fine, the environment and flags still apply.
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, args)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.String("job", "", "file containing the job description")
	flags.String("job-text", "", "job description text (takes precedence over --job)")
	flags.String("provider", "", "embedding provider: gemini, openai or hashing")
	flags.String("model", "", "embedding model name (provider default when empty)")
	flags.Bool("log-json", false, "json format for logging (results are always printed as json)")
	flags.BoolP("debug", "d", false, "verbose/debug output")

	v.BindPFlag(config.KeyEmbeddingProvider, flags.Lookup("provider"))
	v.BindPFlag(config.KeyEmbeddingModel, flags.Lookup("model"))
	v.BindPFlag(config.KeyLogJSON, flags.Lookup("log-json"))
	v.BindPFlag(config.KeyLogDebug, flags.Lookup("debug"))

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper, resumes []string) error {
	ctx := context.Background()
	cfg := config.FromViper(v)

	log, err := logger.NewStderr(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer log.Sync()

	jobDescription, err := readJobDescription(cmd)
	if err != nil {
		return err
	}

	model := services.LoadModel(ctx, cfg.EmbedderConfig())
	if !model.Loaded() {
		log.Error("embedding model failed to load",
			zap.String("provider", cfg.Embedding.Provider),
			zap.Error(model.Err()),
		)
	}

	uploadDir, err := os.MkdirTemp("", app+"-")
	if err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}
	defer os.RemoveAll(uploadDir)

	ranking := services.NewRankingService(
		model,
		services.NewStorageService(uploadDir),
		services.NewTextExtractor(),
		services.NewFieldExtractor(log),
		logger.WithModel(log, cfg.Embedding.Provider, model.Name()),
	)

	uploads := make([]services.ResumeUpload, 0, len(resumes))
	for _, path := range resumes {
		uploads = append(uploads, services.UploadFromPath(path))
	}

	resp, err := ranking.Screen(ctx, jobDescription, uploads)
	if err != nil {
		return err
	}

	pretty, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
	return nil
}

func readJobDescription(cmd *cobra.Command) (string, error) {
	text, _ := cmd.Flags().GetString("job-text")
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	path, _ := cmd.Flags().GetString("job")
	if path == "" {
		return "", errors.New("one of --job or --job-text is required")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}

	return string(content), nil
}
