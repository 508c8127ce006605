package commands

import (
	"github.com/spf13/cobra"

	"github.com/caixalabs/caixa2alterdata/internal/web"
	"github.com/caixalabs/caixa2alterdata/pkg/config"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload web interface",
	Long: `Serves a small web form where users upload one or more ledger
spreadsheets and download the generated Alterdata artifacts. Each upload
runs in an isolated session directory; generated outputs are swept after
the session TTL expires.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		mapping, err := loadMapping(logger)
		if err != nil {
			return err
		}

		cfg := config.LoadServer()
		if cmd.Flags().Changed("addr") {
			cfg.Addr = serveAddr
		}

		srv, err := web.NewServer(cfg, mapping, logger)
		if err != nil {
			return err
		}
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
