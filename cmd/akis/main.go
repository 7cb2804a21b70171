package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jorge-barreto/akis/internal/config"
	"github.com/jorge-barreto/akis/internal/docs"
	"github.com/jorge-barreto/akis/internal/index"
	"github.com/jorge-barreto/akis/internal/knowledge"
	"github.com/jorge-barreto/akis/internal/logrec"
	"github.com/jorge-barreto/akis/internal/retention"
	"github.com/jorge-barreto/akis/internal/scaffold"
	"github.com/jorge-barreto/akis/internal/stats"
	"github.com/jorge-barreto/akis/internal/store"
	"github.com/jorge-barreto/akis/internal/ux"
	cli "github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:        "akis",
		Usage:       "Workflow-log and knowledge-store tooling",
		Description: "Run 'akis docs' for documentation on the log format, knowledge store, and retention policy.",
		Commands: []*cli.Command{
			initCmd(),
			newCmd(),
			lintCmd(),
			mergeCmd(),
			addCmd(),
			indexCmd(),
			searchCmd(),
			statusCmd(),
			retentionCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

// loadProject locates the project root and loads its config.
func loadProject() (string, *config.Config, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return "", nil, err
	}
	configPath := filepath.Join(projectRoot, ".akis", "config.yaml")
	cfg, err := config.Load(configPath, projectRoot)
	if err != nil {
		return "", nil, fmt.Errorf("loading config: %w", err)
	}
	return projectRoot, cfg, nil
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a new .akis/ directory with config and log layout",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir)
		},
	}
}

func newCmd() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Create a workflow log skeleton for a new session",
		ArgsUsage: "<title>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "complexity", Usage: "simple, medium, or complex", Value: "medium"},
			&cli.StringFlag{Name: "domain", Usage: "Domain tag for the session"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			title := cmd.Args().First()
			if title == "" {
				return fmt.Errorf("title argument is required")
			}
			projectRoot, cfg, err := loadProject()
			if err != nil {
				return err
			}
			path, err := scaffold.NewLog(projectRoot, cfg, title, cmd.String("complexity"), cmd.String("domain"), time.Now())
			if err != nil {
				return err
			}
			ux.Success("created %s", path)
			return nil
		},
	}
}

func lintCmd() *cli.Command {
	return &cli.Command{
		Name:  "lint",
		Usage: "Validate every workflow log against the format rules",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "strict", Usage: "Treat warnings as errors"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			projectRoot, cfg, err := loadProject()
			if err != nil {
				return err
			}
			scan, err := logrec.Scan(filepath.Join(projectRoot, cfg.LogDir))
			if err != nil {
				return fmt.Errorf("scanning logs: %w", err)
			}
			findings := logrec.Lint(scan, cfg)
			ux.RenderLint(findings, len(scan.Records))

			errs := logrec.Errors(findings)
			if errs > 0 {
				return fmt.Errorf("%d lint errors", errs)
			}
			if cmd.Bool("strict") && len(findings) > 0 {
				return fmt.Errorf("%d lint warnings (strict mode)", len(findings))
			}
			return nil
		},
	}
}

func mergeCmd() *cli.Command {
	return &cli.Command{
		Name:  "merge",
		Usage: "Deduplicate the knowledge store in place",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "Report what would change without writing"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			projectRoot, cfg, err := loadProject()
			if err != nil {
				return err
			}
			s := store.Open(filepath.Join(projectRoot, cfg.StorePath), cfg.ObservationCap)

			var st *store.CompactStats
			if cmd.Bool("dry-run") {
				st, err = s.Preview()
			} else {
				st, err = s.Compact()
			}
			if err != nil {
				return err
			}
			ux.RenderMerge(st, cmd.Bool("dry-run"))
			return nil
		},
	}
}

func addCmd() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Append a knowledge record, deduplicating on write",
		Commands: []*cli.Command{
			{
				Name:  "entity",
				Usage: "Add or extend an entity",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Dotted hierarchical entity name", Required: true},
					&cli.StringFlag{Name: "entity-type", Usage: "Free-text category"},
					&cli.StringSliceFlag{Name: "obs", Usage: "Observation (repeatable)"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					projectRoot, cfg, err := loadProject()
					if err != nil {
						return err
					}
					s := store.Open(filepath.Join(projectRoot, cfg.StorePath), cfg.ObservationCap)
					changed, err := s.AddEntity(knowledge.Entity{
						Name:         cmd.String("name"),
						EntityType:   cmd.String("entity-type"),
						Observations: cmd.StringSlice("obs"),
					})
					if err != nil {
						return err
					}
					if changed {
						ux.Success("entity %s recorded", cmd.String("name"))
					} else {
						fmt.Println("nothing new to record")
					}
					return nil
				},
			},
			{
				Name:  "relation",
				Usage: "Add a relation between two entities",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Required: true},
					&cli.StringFlag{Name: "to", Required: true},
					&cli.StringFlag{Name: "rel", Usage: "Relation type (e.g. USES, PROPOSES)", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					projectRoot, cfg, err := loadProject()
					if err != nil {
						return err
					}
					s := store.Open(filepath.Join(projectRoot, cfg.StorePath), cfg.ObservationCap)
					changed, err := s.AddRelation(knowledge.Relation{
						From:         cmd.String("from"),
						To:           cmd.String("to"),
						RelationType: cmd.String("rel"),
					})
					if err != nil {
						return err
					}
					if changed {
						ux.Success("relation %s -[%s]-> %s recorded", cmd.String("from"), cmd.String("rel"), cmd.String("to"))
					} else {
						fmt.Println("relation already recorded")
					}
					return nil
				},
			},
		},
	}
}

func indexCmd() *cli.Command {
	return &cli.Command{
		Name:  "index",
		Usage: "Rebuild the full-text search index",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			projectRoot, cfg, err := loadProject()
			if err != nil {
				return err
			}
			scan, err := logrec.Scan(filepath.Join(projectRoot, cfg.LogDir))
			if err != nil {
				return fmt.Errorf("scanning logs: %w", err)
			}
			s := store.Open(filepath.Join(projectRoot, cfg.StorePath), cfg.ObservationCap)
			result, err := s.Load()
			if err != nil {
				return fmt.Errorf("loading store: %w", err)
			}

			ix, err := index.Open(filepath.Join(projectRoot, cfg.IndexPath))
			if err != nil {
				return err
			}
			defer ix.Close()

			if err := ix.Rebuild(scan.Records, &result.Set); err != nil {
				return fmt.Errorf("rebuilding index: %w", err)
			}
			ux.Success("indexed %d logs, %d entities", len(scan.Records), len(result.Set.Entities))
			return nil
		},
	}
}

func searchCmd() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Full-text search across logs and knowledge entities",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Usage: "Maximum hits", Value: 20},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query := cmd.Args().First()
			if query == "" {
				return fmt.Errorf("query argument is required")
			}
			projectRoot, cfg, err := loadProject()
			if err != nil {
				return err
			}
			ix, err := index.Open(filepath.Join(projectRoot, cfg.IndexPath))
			if err != nil {
				return err
			}
			defer ix.Close()

			hits, err := ix.Search(query, int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			ux.RenderSearch(hits)
			return nil
		},
	}
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show a summary of the log corpus and knowledge store",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			projectRoot, cfg, err := loadProject()
			if err != nil {
				return err
			}
			scan, err := logrec.Scan(filepath.Join(projectRoot, cfg.LogDir))
			if err != nil {
				return fmt.Errorf("scanning logs: %w", err)
			}
			s := store.Open(filepath.Join(projectRoot, cfg.StorePath), cfg.ObservationCap)
			result, err := s.Load()
			if err != nil {
				return fmt.Errorf("loading store: %w", err)
			}
			summary := stats.Collect(scan.Records, &result.Set)
			ux.RenderStatus(cfg.Name, summary)
			return nil
		},
	}
}

func retentionCmd() *cli.Command {
	return &cli.Command{
		Name:  "retention",
		Usage: "Classify log files as local or tracked per the retention policy",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			projectRoot, cfg, err := loadProject()
			if err != nil {
				return err
			}
			policy, err := retention.New(cfg.Retention.Exclude, cfg.Retention.Except)
			if err != nil {
				return err
			}
			report, err := policy.Evaluate(projectRoot, filepath.Join(projectRoot, cfg.LogDir))
			if err != nil {
				return err
			}
			ux.RenderRetention(report)
			return nil
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'akis docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

// findProjectRoot walks up from cwd looking for .akis/config.yaml.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		configPath := filepath.Join(dir, ".akis", "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no .akis/config.yaml found (searched from cwd to root)")
		}
		dir = parent
	}
}
