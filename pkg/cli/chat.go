package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/edu-lab/mentor/pkg/cli/config"
	"github.com/edu-lab/mentor/pkg/domain/types"
	"github.com/edu-lab/mentor/pkg/service/llm"
	"github.com/edu-lab/mentor/pkg/usecase"
	"github.com/edu-lab/mentor/pkg/utils/logging"
)

func cmdChat() *cli.Command {
	var userID string
	var sessionID string
	var level int
	var question string
	var geminiCfg config.Gemini
	var repoCfg config.Repository
	var tutorCfg config.Tutor

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user",
			Usage:       "User ID for the conversation",
			Required:    true,
			Sources:     cli.EnvVars("MENTOR_USER"),
			Destination: &userID,
		},
		&cli.StringFlag{
			Name:        "session",
			Usage:       "Session ID (a new one is generated when omitted)",
			Sources:     cli.EnvVars("MENTOR_SESSION"),
			Destination: &sessionID,
		},
		&cli.IntFlag{
			Name:        "level",
			Usage:       "Student level 1-10 (0 resolves from the user profile)",
			Destination: &level,
		},
		&cli.StringFlag{
			Name:        "question",
			Usage:       "Ask a single question and exit instead of starting a REPL",
			Destination: &question,
		},
	}
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, tutorCfg.Flags()...)

	return &cli.Command{
		Name:    "chat",
		Aliases: []string{"c"},
		Usage:   "Chat with the tutor from the terminal",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
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

			svc, err := llm.New(llmClient, tutorCfg.LLMOptions()...)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize LLM service")
			}

			uc := usecase.New(repo, svc, svc, tutorCfg.UseCaseOptions()...)

			session := types.SessionID(sessionID)
			if session == "" {
				session = types.NewSessionID()
			}

			if question != "" {
				answer, err := uc.Ask(ctx, types.UserID(userID), session, question, level)
				if err != nil {
					return err
				}
				color.New(color.FgCyan).Println(answer)
				return nil
			}

			return runREPL(ctx, uc, types.UserID(userID), session, level)
		},
	}
}

func runREPL(ctx context.Context, uc *usecase.UseCases, userID types.UserID, session types.SessionID, level int) error {
	promptColor := color.New(color.FgGreen, color.Bold)
	answerColor := color.New(color.FgCyan)
	errColor := color.New(color.FgRed)

	fmt.Printf("Session %s (type 'exit' or Ctrl-D to quit)\n", session)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		promptColor.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		answer, err := uc.Ask(ctx, userID, session, line, level)
		if err != nil {
			errColor.Printf("error: %v\n", err)
			continue
		}

		answerColor.Printf("tutor> %s\n\n", answer)
	}

	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to read input")
	}
	return nil
}
