package main

import (
	"fmt"
	"strings"

	"github.com/garnizeh/jobboard/internal/ai"
	"github.com/garnizeh/jobboard/pkg/ollama"
	"github.com/spf13/cobra"
)

var ollamaCmd = &cobra.Command{
	Use:   "ollama",
	Short: "Inspect the Ollama instance used for interview questions",
}

var ollamaModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models installed on the Ollama instance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := ollamaClient()
		if err != nil {
			return err
		}
		defer client.Close()

		models, err := client.ListModels(cmd.Context())
		if err != nil {
			return err
		}
		for _, m := range models {
			fmt.Fprintln(cmd.OutOrStdout(), m)
		}
		return nil
	},
}

var ollamaQuestionCmd = &cobra.Command{
	Use:   "question [resume text]",
	Short: "Generate one interview question with the configured model",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := ollama.NewDefaultClient(cfg.Ollama)
		if err != nil {
			return err
		}
		defer client.Close()

		iv, err := ai.NewInterviewer(ai.NewOllamaGenerator(client, cfg.Interview.Model), ai.InterviewerConfig{
			Template: cfg.Interview.Template,
			Timeout:  cfg.Interview.Timeout,
		}, nil)
		if err != nil {
			return err
		}

		q := iv.Question(cmd.Context(), strings.Join(args, " "))
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, q.Question)
		for _, o := range q.Options {
			fmt.Fprintf(out, "  - %s\n", o)
		}
		fmt.Fprintf(out, "Answer: %s\n", q.Answer)
		return nil
	},
}

func init() {
	ollamaCmd.AddCommand(ollamaModelsCmd, ollamaQuestionCmd)
}

func ollamaClient() (*ollama.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return ollama.NewDefaultClient(cfg.Ollama)
}
