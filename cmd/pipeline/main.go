package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"retailcast/config"
	"retailcast/internal/infra/logs"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - generate: Synthesize the raw dataset
// - clean:    Clean and feature-engineer the raw dataset
// - train:    Fit the revenue forecast model
// - run:      Generate + clean + train in one step
// - validate: Validate dataset integrity

func main() {
	// Subcommand definitions
	generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)
	cleanCmd := flag.NewFlagSet("clean", flag.ExitOnError)
	trainCmd := flag.NewFlagSet("train", flag.ExitOnError)
	runCmd := flag.NewFlagSet("run", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// generate parameters
	generateSeed := generateCmd.Int64("seed", 0, "Override the configured RNG seed (0 = use config)")

	// train parameters
	trainHorizon := trainCmd.Int("horizon", 0, "Override the configured forecast horizon in days (0 = use config)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flags := pipelineFlags{
		Generate: generateFlags{
			cmd:  generateCmd,
			seed: generateSeed,
		},
		Clean: cleanFlags{
			cmd: cleanCmd,
		},
		Train: trainFlags{
			cmd:     trainCmd,
			horizon: trainHorizon,
		},
		Run: runFlags{
			cmd: runCmd,
		},
		Validate: validateFlags{
			cmd: validateCmd,
		},
	}

	if err := runSubcommand(ctx, &flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type pipelineFlags struct {
	Generate generateFlags
	Clean    cleanFlags
	Train    trainFlags
	Run      runFlags
	Validate validateFlags
}

type generateFlags struct {
	cmd  *flag.FlagSet
	seed *int64
}

type cleanFlags struct {
	cmd *flag.FlagSet
}

type trainFlags struct {
	cmd     *flag.FlagSet
	horizon *int
}

type runFlags struct {
	cmd *flag.FlagSet
}

type validateFlags struct {
	cmd *flag.FlagSet
}

func runSubcommand(ctx context.Context, flags *pipelineFlags) error {
	cfg, logger, err := buildDeps()
	if err != nil {
		return err
	}

	switch os.Args[1] {
	case "generate":
		if err := flags.Generate.cmd.Parse(os.Args[2:]); err != nil {
			return errors.Wrap(err, "failed to parse generate flags")
		}
		if *flags.Generate.seed != 0 {
			cfg.Generator.Seed = *flags.Generate.seed
		}

		return runGenerate(ctx, cfg, logger)
	case "clean":
		if err := flags.Clean.cmd.Parse(os.Args[2:]); err != nil {
			return errors.Wrap(err, "failed to parse clean flags")
		}

		return runClean(ctx, cfg, logger)
	case "train":
		if err := flags.Train.cmd.Parse(os.Args[2:]); err != nil {
			return errors.Wrap(err, "failed to parse train flags")
		}
		if *flags.Train.horizon != 0 {
			cfg.Training.HorizonDays = *flags.Train.horizon
		}

		return runTrain(ctx, cfg, logger)
	case "run":
		if err := flags.Run.cmd.Parse(os.Args[2:]); err != nil {
			return errors.Wrap(err, "failed to parse run flags")
		}

		return runAll(ctx, cfg, logger)
	case "validate":
		if err := flags.Validate.cmd.Parse(os.Args[2:]); err != nil {
			return errors.Wrap(err, "failed to parse validate flags")
		}

		return runValidate(cfg)
	default:
		printUsage()

		return errors.New("unknown subcommand")
	}
}

func buildDeps() (*config.Config, *slog.Logger, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load config")
	}

	logger, err := logs.New(cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build logger")
	}

	return cfg, logger, nil
}

func printUsage() {
	fmt.Println("Usage: pipeline <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  generate    Synthesize the raw dataset")
	fmt.Println("  clean       Clean and feature-engineer the raw dataset")
	fmt.Println("  train       Fit the revenue forecast model")
	fmt.Println("  run         Generate, clean and train in one step")
	fmt.Println("  validate    Validate dataset integrity")
	fmt.Println("")
	fmt.Println("Use 'pipeline <command> -h' for more information about a command.")
}

// Command implementations are in their respective files
