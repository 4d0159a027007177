package cmd

import (
	"fmt"
	"os"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repositorySlug = "leereilly/Cinematerial"

var checkOnly bool

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update cinematerial to the latest release",
	Long:  `Check GitHub for a newer release of cinematerial and replace the running binary with it.`,
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update is available")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", repositorySlug)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Printf("cinematerial %s is up to date\n", current)
		return nil
	}

	fmt.Printf("cinematerial %s is available (current %s, built %s)\n", latest.Version(), current, buildTime)
	if checkOnly {
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("permission denied replacing %s, try again with elevated privileges: %w", exe, err)
		}
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Printf("Updated to %s\n", latest.Version())
	return nil
}
