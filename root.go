package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/gndm/ytTranscript/internal/config"
)

// commandContext loads configuration once and layers the persistent flags
// over it.
type commandContext struct {
	cmd *cobra.Command

	configFlag    string
	langFlag      string
	proxyFlag     string
	proxyUserFlag string
	proxyPassFlag string

	configOnce sync.Once
	config     config.Config
	configErr  error
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}

		flags := c.cmd.PersistentFlags()
		if flags.Changed("lang") {
			cfg.Lang = c.langFlag
		}
		if flags.Changed("proxy") {
			cfg.Proxy.Host = c.proxyFlag
		}
		if flags.Changed("proxy-user") {
			cfg.Proxy.Username = c.proxyUserFlag
		}
		if flags.Changed("proxy-pass") {
			cfg.Proxy.Password = c.proxyPassFlag
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "ytt",
		Short:         "Fetch YouTube closed-caption transcripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	ctx.cmd = rootCmd

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path (TOML)")
	flags.StringVarP(&ctx.langFlag, "lang", "l", "", "Caption language code (default: the video's first track)")
	flags.StringVar(&ctx.proxyFlag, "proxy", "", "Outbound proxy URL, e.g. http://host:8080")
	flags.StringVar(&ctx.proxyUserFlag, "proxy-user", "", "Proxy username")
	flags.StringVar(&ctx.proxyPassFlag, "proxy-pass", "", "Proxy password")

	rootCmd.AddCommand(newFetchCommand(ctx))
	rootCmd.AddCommand(newLangsCommand(ctx))
	rootCmd.AddCommand(newPlaylistCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))

	return rootCmd
}
