// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the program-extract CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/program-extract/internal/config"
	"github.com/pdiddy/program-extract/internal/logging"
	"github.com/pdiddy/program-extract/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// v holds defaults, the config file, environment and flag overrides.
var v = config.New()

// log is configured in PersistentPreRunE from logging.* settings.
var log = logging.Discard()

// configErr records a config file that exists but could not be read.
var configErr error

// rootCmd is the base command for the program-extract CLI.
var rootCmd = &cobra.Command{
	Use:   "program-extract",
	Short: "Extract presenters and talks from a conference program PDF",
	Long: `program-extract reads a fixed-layout conference program PDF and writes one
spreadsheet row per presenter: name, affiliations, session, location, talk
title and abstract.

Fields are recognised from font name, font size and leading keywords. The
defaults match the program book the tool was written for; use a config file
(program-extract.yaml) to adapt them to another layout, and the blocks
command to see which fonts and sizes a document uses.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}
		applyFlags(cmd, map[string]string{
			"log-level":  "logging.level",
			"log-format": "logging.format",
		})

		l, err := logging.New(v.GetString("logging.level"), v.GetString("logging.format"), os.Stderr)
		if err != nil {
			return err
		}
		log = l
		if f := v.ConfigFileUsed(); f != "" {
			log.WithField("file", f).Debug("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./program-extract.yaml or ~/.config/program-extract/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
}

func initConfig() {
	configErr = nil
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("program-extract")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "program-extract"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = fmt.Errorf("reading config file: %w", err)
		}
	}
}

// applyFlags copies explicitly set flags onto their config keys so flags
// take precedence over the config file and environment.
func applyFlags(cmd *cobra.Command, keys map[string]string) {
	for name, key := range keys {
		f := cmd.Flags().Lookup(name)
		if f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}
}

// loadConfig applies the command's flags and optional input argument, then
// decodes and validates the configuration.
func loadConfig(cmd *cobra.Command, args []string) (types.ExtractConfig, error) {
	applyFlags(cmd, map[string]string{
		"output":         "output",
		"start-page":     "start_page",
		"session-policy": "classifier.session_policy",
		"dedupe":         "sheet.dedupe",
		"format":         "sheet.format",
	})
	if len(args) > 0 {
		v.Set("input", args[0])
	}
	cfg, err := config.Load(v)
	if err != nil {
		return cfg, err
	}
	log.WithFields(logrus.Fields{
		"input":      cfg.Input,
		"output":     cfg.Output,
		"start_page": cfg.StartPage,
	}).Debug("configuration loaded")
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
