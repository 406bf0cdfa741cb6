package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cumenu/yemekhane/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only menu API",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = viper.GetString("serve.addr")
		}

		cache := openCache()
		if cache != nil {
			defer cache.Close()
		}

		srv := server.New(newStore(), cache, newScraper())
		return srv.Start(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}
