package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/edu-lab/mentor/pkg/cli/config"
	"github.com/edu-lab/mentor/pkg/service/lesson"
	"github.com/edu-lab/mentor/pkg/service/llm"
	"github.com/edu-lab/mentor/pkg/usecase"
	"github.com/edu-lab/mentor/pkg/utils/logging"
)

func cmdIngest() *cli.Command {
	var lessonDir string
	var concurrency int
	var geminiCfg config.Gemini
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "lesson-dir",
			Usage:       "Directory containing lesson TOML files",
			Required:    true,
			Sources:     cli.EnvVars("MENTOR_LESSON_DIR"),
			Destination: &lessonDir,
		},
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Number of lessons embedded in parallel",
			Value:       usecase.DefaultIngestConcurrency,
			Sources:     cli.EnvVars("MENTOR_INGEST_CONCURRENCY"),
			Destination: &concurrency,
		},
	}
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "ingest",
		Aliases: []string{"i"},
		Usage:   "Embed lesson content into the shared knowledge base",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			lessons, err := lesson.LoadDir(lessonDir)
			if err != nil {
				return goerr.Wrap(err, "failed to load lessons", goerr.V("dir", lessonDir))
			}
			if len(lessons) == 0 {
				logging.Default().Warn("No lessons found", "dir", lessonDir)
				return nil
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}

			svc, err := llm.New(llmClient)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize LLM service")
			}

			uc := usecase.New(repo, svc, svc)

			logging.Default().Info("Ingesting lessons",
				"dir", lessonDir,
				"lessons", len(lessons),
				"concurrency", concurrency,
			)

			if err := uc.IngestLessons(ctx, lessons, concurrency); err != nil {
				return goerr.Wrap(err, "failed to ingest lessons")
			}

			logging.Default().Info("Ingestion completed", "lessons", len(lessons))
			return nil
		},
	}
}
