package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mikecbrant/local-authorizers/internal/config"
	"github.com/mikecbrant/local-authorizers/internal/localauth"
	"github.com/mikecbrant/local-authorizers/internal/packaging"
	"github.com/mikecbrant/local-authorizers/internal/servicedef"
	"github.com/mikecbrant/local-authorizers/internal/utils/logging"
)

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Rewrite local authorizer bindings and synthesize their functions",
		Long: `Loads the service definition, rewrites every http route carrying a
localAuthorizer to reference $__LOCAL_AUTHORIZER_<name>, adds one function per
distinct authorizer and writes the result.

Example:
  local-authorizers apply -c serverless.yml -s dev -o .serverless/offline.yml`,
		Args: cobra.NoArgs,
		RunE: runApply,
	}
	cmd.Flags().StringP("config", "c", "serverless.yml", "service definition (.yml, .yaml or .json)")
	cmd.Flags().StringP("stage", "s", "", "deployment stage (default provider.stage, then dev)")
	cmd.Flags().StringP("out", "o", "-", "output path, - for stdout")
	cmd.Flags().Bool("check-packaging", false, "warn when a synthesized function's include matches no file")
	return cmd
}

func runApply(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	def, err := servicedef.Load(cfg.Config)
	if err != nil {
		return err
	}
	rw, err := localauth.New(def.DeploymentContext(cfg.Stage), localauth.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("aws-local-authorizers: %w", err)
	}
	functions, err := def.Functions()
	if err != nil {
		return err
	}
	res, err := rw.Apply(functions)
	if err != nil {
		return fmt.Errorf("apply local authorizers: %w", err)
	}

	if cfg.CheckPackaging {
		warnings, err := packaging.Verify(filepath.Dir(cfg.Config), functions, res.Functions, logger)
		if err != nil {
			return fmt.Errorf("check packaging: %w", err)
		}
		for _, w := range warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
		}
	}

	if cfg.Out == "-" {
		if err := def.Encode(cmd.OutOrStdout(), def.Format); err != nil {
			return err
		}
	} else if err := def.Save(cfg.Out); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "rewrote %d route(s), synthesized %d function(s)\n", len(res.Routes), len(res.Functions))
	return nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*logging.ZapLogger, error) {
	level := cfg.Log.Level
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	l, err := logging.NewZap(level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}
