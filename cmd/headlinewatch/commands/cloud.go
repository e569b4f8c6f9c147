package commands

import (
	"path/filepath"

	"headlinewatch/lib/browserstack"
	"headlinewatch/lib/pipeline"
	"headlinewatch/lib/runstore"
	"headlinewatch/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	cloudBuild *string
	cloudOut   *string
)

func init() {
	cloudBuild = cloudCmd.Flags().String("build", "", "Build name shown on the BrowserStack dashboard, generated when empty.")
	cloudOut = cloudCmd.Flags().String("out", "", "Output root directory, defaults to <output>/<build>.")
	rootCmd.AddCommand(cloudCmd)
}

var cloudCmd = &cobra.Command{
	Use:   "cloud [--build <name>] [--out <dir>]",
	Short: "Runs the scrape in parallel across the BrowserStack browser matrix.",
	Run: func(cmd *cobra.Command, args []string) {
		config := loadConfig()
		creds := config.credentials()
		if creds.Username == "" || creds.AccessKey == "" {
			serviceutil.Fatal(
				"missing BrowserStack credentials, set browserstack.username and browserstack.access_key or the BROWSERSTACK_USERNAME/BROWSERSTACK_ACCESS_KEY environment variables",
				browserstack.ErrMissingCredentials,
			)
		}

		build := *cloudBuild
		if build == "" {
			build = newBuildName()
		}

		matrix := browserstack.DefaultMatrix(build)
		for i := range matrix {
			matrix[i].Project = config.Cloud.Project
		}

		outputRoot := *cloudOut
		if outputRoot == "" {
			outputRoot = filepath.Join(config.Output, build)
		}
		runner := pipeline.CloudRunner{
			Pipeline:    config.pipeline(),
			Credentials: creds,
			Matrix:      matrix,
			Endpoint:    config.Cloud.Endpoint,
			OutputRoot:  outputRoot,
			Locale:      config.Scraper.Locale,
		}
		results, err := runner.Run(cmd.Context())

		printResults(results)
		archiveResults(cmd.Context(), config, build, runstore.ModeCloud, results)
		mailReport(cmd.Context(), config, build, results)

		if err != nil {
			serviceutil.Fatal("some browser combos failed", err)
		}
	},
}
