// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package csvdedupd

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/wrgl/csvdedup/cmd/csvdedup/utils"
	"github.com/wrgl/csvdedup/pkg/conf"
	conffs "github.com/wrgl/csvdedup/pkg/conf/fs"
)

//go:embed VERSION
var version string

func init() {
	version = strings.TrimSpace(version)
}

func RootCmd() *cobra.Command {
	var v *viper.Viper
	cmd := &cobra.Command{
		Use:   "csvdedupd",
		Short: "Starts an HTTP server that merges uploaded CSV files and drops rows with duplicated keys.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "starts the web form and API at port 80",
				Line:    "csvdedupd",
			},
			{
				Comment: "serve under a path prefix at port 4000, reading settings from a YAML file",
				Line:    "csvdedupd -p 4000 --root-path /tools/dedup --config csvdedupd.yaml",
			},
			{
				Comment: "keep results downloadable for an hour",
				Line:    "CSVDEDUPD_RESULT_TTL=1h csvdedupd",
			},
		}),
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cleanup, err := utils.SetupLogger(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			logger := utils.GetLogger(cmd).WithName("csvdedupd")
			cs := conffs.NewStore(v.GetString("config"), logger.WithName("conf"))
			server, err := NewServer(cs, flagOverrides(v), logger)
			if err != nil {
				return
			}
			defer server.Close()
			return server.Start(fmt.Sprintf(":%d", server.Port()))
		},
	}
	cmd.Flags().IntP("port", "p", conf.DefaultPort, "port number to listen to")
	cmd.Flags().Duration("read-timeout", time.Duration(conf.DefaultReadTimeout), "request read timeout as described at https://pkg.go.dev/net/http#Server.ReadTimeout")
	cmd.Flags().Duration("write-timeout", time.Duration(conf.DefaultWriteTimeout), "response write timeout as described at https://pkg.go.dev/net/http#Server.WriteTimeout")
	cmd.Flags().String("root-path", "", "serve every route under this path prefix")
	cmd.Flags().StringP("config", "c", "", "YAML config file. It is reloaded whenever it changes.")
	cmd.Flags().Int64("max-upload-bytes", conf.DefaultMaxUploadBytes, "maximum size of an upload request in bytes")
	cmd.Flags().Duration("result-ttl", time.Duration(conf.DefaultResultTTL), "how long a result stays available for download")
	utils.AddLoggerFlags(cmd.Flags())
	v = newViper(cmd.Flags())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// newViper binds flags to CSVDEDUPD_* environment variables
func newViper(flags *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	v.BindPFlags(flags)
	v.SetEnvPrefix("csvdedupd")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// flagOverrides returns a function that applies explicitly set flags and
// environment variables over a config read from file
func flagOverrides(v *viper.Viper) func(c *conf.Config) {
	return func(c *conf.Config) {
		if v.IsSet("port") {
			c.Server.Port = v.GetInt("port")
		}
		if v.IsSet("read-timeout") {
			c.Server.ReadTimeout = conf.Duration(v.GetDuration("read-timeout"))
		}
		if v.IsSet("write-timeout") {
			c.Server.WriteTimeout = conf.Duration(v.GetDuration("write-timeout"))
		}
		if v.IsSet("root-path") {
			c.Server.RootPath = v.GetString("root-path")
		}
		if v.IsSet("max-upload-bytes") {
			c.Upload.MaxBytes = v.GetInt64("max-upload-bytes")
		}
		if v.IsSet("result-ttl") {
			c.Results.TTL = conf.Duration(v.GetDuration("result-ttl"))
		}
	}
}
