package main

import (
	"github.com/iwvelando/inflation-forecast/internal/server"
	"github.com/iwvelando/inflation-forecast/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type serveCmd struct {
	root             *rootOptions
	serverConfigPath string
	address          string
}

func newServeCmd(root *rootOptions) *cobra.Command {
	sc := &serveCmd{root: root}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator web page and JSON API",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&sc.address, "address", "", "listen address override (e.g. :8080)")

	return cmd
}

func (sc *serveCmd) run(cmd *cobra.Command, _ []string) error {
	conf, err := sc.root.loadConfiguration()
	if err != nil {
		return err
	}

	srvCfg, err := server.LoadConfig(sc.serverConfigPath)
	if err != nil {
		return err
	}
	if sc.address != "" {
		srvCfg.Address = sc.address
	}

	// The server's own logging section wins when it sets anything.
	logging := conf.Logging
	if srvCfg.Logging.Level != "" || srvCfg.Logging.Format != "" || srvCfg.Logging.OutputFile != "" {
		logging = srvCfg.Logging
	}
	logger, err := sc.root.newLogger(logging, conf)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("loaded server configuration",
		zap.String("op", "main.serve"),
		zap.String("address", srvCfg.Address),
		zap.Int64("maxBodySize", srvCfg.BodySizeBytes()),
		zap.Duration("shutdownTimeout", srvCfg.ShutdownTimeoutDuration()),
	)

	return server.New(logger, srvCfg, conf, version).Run(cmd.Context())
}
