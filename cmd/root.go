package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/emetic/internal/config"
)

const spinnerFlag = "spinner"

const longHelp = `emetic uploads and views daily temperature records on zeus.gist.ac.kr.

Every command except config, version and help takes an optional config_path.
When it is omitted ~/.emetic_config is used; "-" reads the config from stdin.

The config is a JSON object. Only "username" and "b64_password" are required;
create the latter with: echo -n '<password>' | base64
"password_ref" may replace "b64_password" with a key looked up through
pass(1) and then ~/.emetic/secrets/<key>.

Optional entries: verbose (true), cache_path ("~/.emetic_cache", "" disables
the cache), temperature (36.5), cough, sore_throat, dyspnea, fever,
no_smell_or_taste, other_symptoms (false), note, base_url, log_path, log_level.
EMETIC_<ENTRY> environment variables override the file, and a .env file in the
working directory is loaded first.

"verbose": false only silences progress; errors are still reported on stderr.
"select", "config", "version" and "help" print to stdout regardless of it.

"check" is "select" compared against the current half day (before or after
noon). "update" is "check" followed by "save" when nothing is recorded yet.

Examples:
  emetic config -                # print the default config
  emetic config ""               # print the default config path
  emetic config path/to/cfg      # write the default config to a file
  emetic select                  # view records with the default config
  emetic check - < path/to/cfg   # check whether an upload is needed
  emetic update path/to/cfg      # record today's temperature once per half day

Use a separate config (and cache_path) per person when several share a machine.

To run emetic regularly, schedule it with cron(8). Run "crontab -e" and add:
  SHELL=/bin/bash
  0 10 * * * sleep ${RANDOM:0:2}m; emetic update
  0 20 * * * sleep ${RANDOM:0:2}m; emetic update
This runs "emetic update" at 10:00 and 20:00 every day with a random delay
of up to 99 minutes.`

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app, err := wireApp()
	return buildRootCmd(app, err)
}

func buildRootCmd(app *app, wireErr error) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "emetic <command> [config_path]",
		Short:         "Upload and view temperature records on zeus.gist.ac.kr",
		Long:          longHelp,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadDotEnv(".env")
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return &ExitError{Code: ExitFailure, Err: errNoCommand}
		},
	}
	rootCmd.PersistentFlags().Bool(spinnerFlag, false, "show a spinner on stderr while talking to the server")

	if wireErr != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return wireErr
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(app),
		newSaveCmd(app),
		newSelectCmd(app),
		newCheckCmd(app),
		newUpdateCmd(app),
	)

	return rootCmd
}
