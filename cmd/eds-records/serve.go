// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/eds-records/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve normalization and the local index over HTTP",
	Long: `Serve starts an HTTP service with:

  POST /api/normalize?format=attrs|solr|csl|raw   normalize a posted raw response
  GET  /api/records/:id                           stored record by identity key
  GET  /api/search?q=&dbid=&year=&rows=           search the local index
  GET  /healthcheck, /version`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gin.SetMode(gin.ReleaseMode)

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		logrus.WithField("version", version).Info("eds-records starting up")
		srv := server.New(serverConfig(), normalizeConfig(), store, version, logrus.StandardLogger())
		return srv.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	bindFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
