package cmd

import (
	"github.com/spf13/cobra"

	"github.com/slaacns/slaacns/config"
	"github.com/slaacns/slaacns/log"
	"github.com/slaacns/slaacns/registry"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Args:  cobra.NoArgs,
		Short: "parse and validate the configuration file without starting the server",
		RunE:  validateConfiguration,
	}
}

func validateConfiguration(_ *cobra.Command, _ []string) error {
	log.Log().Infof("validating configuration file: %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if _, err := registry.Build(cfg.Networks); err != nil {
		return err
	}

	log.Log().Info("configuration is valid")

	return nil
}
