package main

import (
	"fmt"
	"os"

	"github.com/ptit-edu/portal-backend/internal/apiurl"
	"github.com/ptit-edu/portal-backend/internal/logger"
	"github.com/spf13/cobra"
)

var (
	baseURL string
	siteURL string
)

var rootCmd = &cobra.Command{
	Use:   "vrsim",
	Short: "Replay controller traces through the VR overlay core",
	Long: `vrsim drives the VR overlay state machine without a headset.

A trace is a YAML list of controller snapshots. Each snapshot runs through
locomotion, the section navigator and the screen coordinator exactly as a
frame loop would, and vrsim prints every screen change and the final pose.`,
	SilenceUsage: true,
}

var replayCmd = &cobra.Command{
	Use:   "replay <trace.yaml>",
	Short: "Replay a trace and print state changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trace, err := LoadTrace(args[0])
		if err != nil {
			return err
		}
		_, err = Replay(trace, resolveBase(), cmd.OutOrStdout())
		return err
	},
}

var urlCmd = &cobra.Command{
	Use:   "url [path]",
	Short: "Print the API or asset URL a headset on --site would use",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base := resolveBase()
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), base)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), apiurl.URL(base, args[0]))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (default: VITE_API_BASE_URL, REACT_APP_API_BASE_URL, http://localhost:5000)")
	rootCmd.PersistentFlags().StringVar(&siteURL, "site", "", "URL the page was opened from; rewrites a local API host for LAN headsets")
	rootCmd.AddCommand(replayCmd, urlCmd)
}

func resolveBase() string {
	base := baseURL
	if base == "" {
		base = apiurl.FromEnv()
	}
	if siteURL != "" {
		base = apiurl.ForSite(base, siteURL)
	}
	return base
}

func main() {
	log := logger.Setup("warn", "pretty")
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("vrsim failed")
		os.Exit(1)
	}
}
