package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Napageneral/cae/internal/classifier"
	"github.com/Napageneral/cae/internal/config"
	"github.com/Napageneral/cae/internal/db"
	"github.com/Napageneral/cae/internal/engine"
	"github.com/Napageneral/cae/internal/model"
	"github.com/Napageneral/cae/internal/sink/sqlite"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "cae",
		Short: "CAE - Chat Analysis Engine for exported chat transcripts",
	}

	rootCmd.PersistentFlags().String("config", "", "path to a YAML config file")
	rootCmd.AddCommand(versionCmd(), pathsCmd(), analyzeMessageCmd(), analyzeConversationCmd(), queryCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(map[string]interface{}{
				"version": version,
				"go":      "1.23",
			})
		},
	}
}

func pathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print CAE application paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			return printJSON(map[string]interface{}{
				"app_dir": cfg.AppDir,
				"db_path": cfg.DBPath,
			})
		},
	}
}

func analyzeMessageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze-message [text]",
		Short: "Score a single message's sentiment in isolation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			e := engine.New(*cfg, nil)
			return printJSON(e.AnalyzeMessage(args[0]))
		},
	}
}

func analyzeConversationCmd() *cobra.Command {
	var formatFlag, selfName, dbPath string
	var noSave bool

	cmd := &cobra.Command{
		Use:   "analyze-conversation [file]",
		Short: "Parse and analyze a chat export, reading from the file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			var raw []byte
			if len(args) == 1 {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			var hint *model.Platform
			if formatFlag != "" {
				p := model.Platform(formatFlag)
				hint = &p
			}

			var clf classifier.Classifier
			if cfg.ClassifierEndpoint != "" {
				clf = classifier.NewHTTPClassifier(cfg.ClassifierEndpoint, cfg.ClassifierAPIKey, cfg.ClassifierRPM)
			}
			e := engine.New(*cfg, clf)

			var sink engine.Sink
			if !noSave {
				path := dbPath
				if path == "" {
					path = cfg.DBPath
				}
				s, err := sqlite.New(path, "", selfName)
				if err != nil {
					return fmt.Errorf("open sink: %w", err)
				}
				defer s.Close()
				sink = s
			}

			analysis, diags, err := e.AnalyzeConversation(context.Background(), string(raw), hint, selfName, sink)
			if err != nil {
				return err
			}
			return printJSON(map[string]interface{}{
				"analysis":    analysis,
				"diagnostics": diags,
			})
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "", "force a format instead of auto-detecting (whatsapp|telegram|discord|imessage|generic)")
	cmd.Flags().StringVar(&selfName, "self", "", "participant name to mark with the self role")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (defaults to the configured app data path)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting results to the database")
	return cmd
}

func queryCmd() *cobra.Command {
	var dbSpec string
	var allowWrite bool

	cmd := &cobra.Command{
		Use:   "query [sql]",
		Short: "Run an ad hoc SQL query against a CAE database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := db.Execute(db.QueryOptions{
				SQL:        args[0],
				DBSpec:     dbSpec,
				AllowWrite: allowWrite,
			})
			if !result.OK {
				return fmt.Errorf("%s", result.Error)
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&dbSpec, "db", "default", `database to query: "default", or "path:/abs/file.db"`)
	cmd.Flags().BoolVar(&allowWrite, "write", false, "allow non-SELECT statements")
	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func printJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
