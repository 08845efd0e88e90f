package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"LinkBrief/internal/app"
	"LinkBrief/internal/domain"
	"LinkBrief/internal/infrastructure/chat"
	"LinkBrief/internal/summarize"
	"LinkBrief/internal/usecase"
)

var messagesFlag = &cli.StringFlag{
	Name:     "messages",
	Aliases:  []string{"m"},
	Usage:    "path to an exported channel history (JSON)",
	Required: true,
}

func newCLI(application *app.Application) *cli.App {
	return &cli.App{
		Name:  "linkbrief",
		Usage: "collect and summarize links shared in chat",
		Commands: []*cli.Command{
			{
				Name:  "ingest",
				Usage: "run the pipeline once over a message export",
				Flags: []cli.Flag{messagesFlag},
				Action: func(c *cli.Context) error {
					report, err := application.Ingest(c.Context, chat.NewFileSource(c.String("messages")))
					if err != nil {
						return err
					}
					printReport(c.App.Writer, report)
					return nil
				},
			},
			{
				Name:  "watch",
				Usage: "re-run ingestion on the configured interval",
				Flags: []cli.Flag{messagesFlag},
				Action: func(c *cli.Context) error {
					return application.Watch(c.Context, chat.NewFileSource(c.String("messages")))
				},
			},
			{
				Name:      "scrape",
				Usage:     "fetch a page and print the extracted content",
				ArgsUsage: "URL",
				Action: func(c *cli.Context) error {
					url, err := requireArg(c, "URL")
					if err != nil {
						return err
					}
					content, err := application.Scrape(c.Context, url)
					if err != nil {
						return err
					}
					return writeJSON(c.App.Writer, content)
				},
			},
			{
				Name:      "classify",
				Usage:     "decide whether a link would be collected",
				ArgsUsage: "URL",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "context", Usage: "message text the link was shared with"},
				},
				Action: func(c *cli.Context) error {
					url, err := requireArg(c, "URL")
					if err != nil {
						return err
					}
					return writeJSON(c.App.Writer, classificationView(application.Classify(c.Context, url, c.String("context"))))
				},
			},
			{
				Name:      "models",
				Usage:     "list models for a provider (anthropic, openai, gemini)",
				ArgsUsage: "PROVIDER",
				Action: func(c *cli.Context) error {
					provider, err := requireArg(c, "PROVIDER")
					if err != nil {
						return err
					}
					return writeJSON(c.App.Writer, application.Models(c.Context, domain.Provider(strings.ToLower(provider))))
				},
			},
			{
				Name:  "list",
				Usage: "show the most recently collected articles",
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "limit", Value: 20},
				},
				Action: func(c *cli.Context) error {
					articles, err := application.Recent(c.Context, c.Uint64("limit"))
					if err != nil {
						return err
					}
					for _, a := range articles {
						headline := a.Title
						if s := summarize.Deserialize(a.Summary); s != nil {
							headline = s.Headline
						}
						fmt.Fprintf(c.App.Writer, "%s  [%s]  %s\n    %s\n", a.CreatedAt.Format("2006-01-02"), a.SourceLabel, headline, a.URL)
					}
					return nil
				},
			},
		},
	}
}

func requireArg(c *cli.Context, name string) (string, error) {
	v := strings.TrimSpace(c.Args().First())
	if v == "" {
		return "", cli.Exit(fmt.Sprintf("missing %s argument", name), 2)
	}
	return v, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func classificationView(c domain.ContentClassification) map[string]any {
	return map[string]any{
		"contentType":    c.ContentType,
		"technicalDepth": c.TechnicalDepth,
		"actionability":  c.Actionability,
		"shouldCollect":  c.ShouldCollect,
		"reasoning":      c.Reasoning,
	}
}

func printReport(w io.Writer, r usecase.Report) {
	fmt.Fprintf(w, "extracted %d, already stored %d, rejected %d, collected %d, failed %d\n",
		r.Extracted, r.Skipped, len(r.Rejected), len(r.Collected), len(r.Failed))
	for _, a := range r.Collected {
		fmt.Fprintf(w, "  + %s\n    %s\n", a.Title, a.URL)
	}
	for _, rej := range r.Rejected {
		fmt.Fprintf(w, "  - %s (%s)\n", rej.URL, rej.Classification.Reasoning)
	}
	for _, f := range r.Failed {
		fmt.Fprintf(w, "  ! %s [%s]: %v\n", f.URL, f.Stage, f.Err)
	}
}
