/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/internal/iofs"
	"github.com/gnames/retroshelf/internal/iologger"
	app "github.com/gnames/retroshelf/pkg"
	"github.com/gnames/retroshelf/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd returns the base command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "retroshelf",
		Short:   "Catalog of a retro video game collection",
		Long: `retroshelf keeps a catalog of physical retro games, consoles and
accessories in a local SQLite database.

Items are classified by system, category, region and authenticity, keep
purchase price, market value and selling price, up to 5 photos and a
maintenance log. Items that leave the collection are written off with
a reason and stay in the database for history.

Get started:
  retroshelf migrate
  retroshelf seed
  retroshelf item add --name "Chrono Trigger" --system "Super Nintendo"
  retroshelf report`,
		PersistentPreRunE:  bootstrap,
		PersistentPostRunE: shutdown,
		RunE:               runRoot,
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	// Remove the automatic "retroshelf version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for retroshelf")

	rootCmd.PersistentFlags().StringP("db", "d", "",
		"SQLite database file (overrides storage.db_path)")
	rootCmd.PersistentFlags().String("images", "",
		"image directory (overrides storage.image_dir)")

	rootCmd.AddCommand(
		getMigrateCmd(),
		getSeedCmd(),
		getTaxonomyCmd(),
		getItemCmd(),
		getImageCmd(),
		getLogCmd(),
		getReportCmd(),
		getVerifyCmd(),
		getOptimizeCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if logCloser, err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Storage flags have the highest precedence
	cfg.Update(storageFlags(cmd))

	// Reconfigure logging with user's settings
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureStorageDirs(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"db", cfg.DBPath(),
	)

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	closer, err := iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log)
	if err != nil {
		return err
	}
	if logCloser != nil {
		_ = logCloser.Close()
	}
	logCloser = closer
	return nil
}

func shutdown(_ *cobra.Command, _ []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("RETROSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Storage configuration
	v.BindEnv("storage.db_path", "RETROSHELF_STORAGE_DB_PATH")
	v.BindEnv("storage.image_dir", "RETROSHELF_STORAGE_IMAGE_DIR")

	// Report configuration
	v.BindEnv("report.currency", "RETROSHELF_REPORT_CURRENCY")
	v.BindEnv("report.format", "RETROSHELF_REPORT_FORMAT")

	// Log configuration
	v.BindEnv("log.level", "RETROSHELF_LOG_LEVEL")
	v.BindEnv("log.format", "RETROSHELF_LOG_FORMAT")
	v.BindEnv("log.destination", "RETROSHELF_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "RETROSHELF_JOBS_NUMBER")

	v.AutomaticEnv()
}
