// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the kardenwort CLI: it turns raw
// text into deduplicated vocabulary lemmas and Anki flashcard files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the kardenwort CLI.
var rootCmd = &cobra.Command{
	Use:   "kardenwort",
	Short: "Vocabulary extraction for language-learning flashcards",
	Long: `kardenwort extracts dictionary-form vocabulary from German or English
text and renders it as Anki-importable flashcard files. It resolves
inflected words to lemmas, fuses separable verbs, splits compound
words, applies user override rules, and deduplicates case variants.

Each workflow is a subcommand: words extracts a vocabulary list from
text, sentences builds parallel-sentence cards, and serve exposes the
pipeline as a JSON API.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./kardenwort.yaml or ~/.config/kardenwort/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kardenwort")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "kardenwort"))
		}
	}

	viper.SetEnvPrefix("KARDENWORT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
