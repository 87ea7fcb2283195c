// Package cli implements the chemdesc command line tool. Every command
// computes locally: molecules are read from JSON files and run through the
// descriptor engine in-process, no server involved.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/ChemDesc-Engine/internal/application/compute"
	"github.com/turtacn/ChemDesc-Engine/internal/config"
	"github.com/turtacn/ChemDesc-Engine/internal/domain/graph"
	"github.com/turtacn/ChemDesc-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
	moltypes "github.com/turtacn/ChemDesc-Engine/pkg/types/molecule"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output formats accepted by --output.
const (
	OutputJSON  = "json"
	OutputTable = "table"
)

// RootOptions holds the persistent flags of the command tree.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Output     string
}

// CLIContext carries the initialized engine through the command tree.
type CLIContext struct {
	Service *compute.Service
	Logger  logging.Logger
	Output  string
}

type cliContextKey struct{}

// NewRootCommand builds the root command with persistent flags and every
// subcommand mounted.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "chemdesc",
		Short:         "Molecular descriptor engine",
		Long:          "chemdesc computes molecular descriptors (H-bond acceptors/donors, WHIM shape descriptors, fingerprints) from JSON molecule files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cliCtx, err := initContext(opts)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cliCtx))
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "path to a config file (optional)")
	flags.StringVar(&opts.LogLevel, "log-level", "warn", "log level: debug|info|warn|error")
	flags.StringVarP(&opts.Output, "output", "o", OutputTable, "output format: json|table")

	cmd.AddCommand(
		newProfileCommand(),
		newAcceptorsCommand(),
		newWhimCommand(),
		newSimilarityCommand(),
		newVersionCommand(),
	)
	return cmd
}

func initContext(opts *RootOptions) (*CLIContext, error) {
	if opts.Output != OutputJSON && opts.Output != OutputTable {
		return nil, errors.New(errors.ErrCodeValidation, "unknown output format").
			WithDetail("output=" + opts.Output)
	}

	var cfg *config.Config
	var err error
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:       opts.LogLevel,
		Format:      "console",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, err
	}

	svc := compute.NewService(compute.Config{
		MaxBatchSize:      cfg.Compute.MaxBatchSize,
		MaxAtoms:          cfg.Compute.MaxAtoms,
		FingerprintSize:   cfg.Compute.FingerprintSize,
		FingerprintDepth:  cfg.Compute.FingerprintDepth,
		EnvironmentRadius: cfg.Compute.EnvironmentRadius,
	}, logger, nil)

	return &CLIContext{Service: svc, Logger: logger, Output: opts.Output}, nil
}

// getCLIContext extracts the initialized context set by the root command.
func getCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	cliCtx, ok := cmd.Context().Value(cliContextKey{}).(*CLIContext)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "cli context not initialized")
	}
	return cliCtx, nil
}

// readMoleculeFile decodes a molecule JSON file and builds the graph.
func readMoleculeFile(path string) (*graph.Molecule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeValidation, "failed to read molecule file").
			WithDetail("path=" + path)
	}
	var dto moltypes.MoleculeDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMoleculeDecodeFailed, "failed to decode molecule file").
			WithDetail("path=" + path)
	}
	return dto.ToGraph()
}

// Execute runs the root command and maps failures to a non-zero exit.
func Execute() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
