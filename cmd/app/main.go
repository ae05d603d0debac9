package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/moodlog/internal"
	pkgconfig "github.com/starford/moodlog/pkg/config"
)

const defaultConfigFile = "config/config.yaml"

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadWithDefaults(cmd.String("config"), "", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func analyze(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunAnalyze(ctx, internal.AnalyzeOptions{
		Document:  cmd.String("doc"),
		Type:      cmd.String("type"),
		WriteBack: cmd.Bool("write-to-doc"),
	}, internal.WithConfig(cfg))
}

func parse(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunParse(ctx, internal.ParseOptions{
		Document: cmd.String("doc"),
		Kind:     cmd.String("kind"),
	}, internal.WithConfig(cfg))
}

func mcp(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunMCP(ctx, internal.WithConfig(cfg))
}

func docFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "doc",
		Aliases: []string{"d"},
		Usage:   "Journal document path, relative to journal.path (defaults to journal.default_document)",
	}
}

func main() {
	cmd := &cli.Command{
		Name:    "moodlog",
		Usage:   "Extract mood and productivity records from free-text logs and summarize them",
		Version: internal.Version,
		Action:  serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: defaultConfigFile,
				Value:       defaultConfigFile,
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API, event stream and journal watcher",
				Action: serve,
			},
			{
				Name:   "analyze",
				Usage:  "Summarize the recent entries of a journal document",
				Action: analyze,
				Flags: []cli.Flag{
					docFlag(),
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Usage:   "Analysis type: weekly, monthly or both (defaults to analysis.default_type)",
					},
					&cli.BoolFlag{
						Name:  "write-to-doc",
						Usage: "Append the analysis to the document",
					},
				},
			},
			{
				Name:   "parse",
				Usage:  "Print the records extracted from a journal document as JSON",
				Action: parse,
				Flags: []cli.Flag{
					docFlag(),
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Record kind: daily, weekly or all",
						Value: "all",
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve MCP tools over stdio",
				Action: mcp,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
