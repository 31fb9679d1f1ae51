/*
Package cli provides helpers shared by the switchyard commands.

Output formatting renders command results as aligned text, JSON or CSV:

	format, err := cli.ParseOutputFormat(flagValue)
	table := &cli.Table{Headers: []string{"PATH", "TYPE"}, Rows: rows}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, table); err != nil {
		return err
	}

Errors returned from commands map to exit codes with ExitCode; configuration
problems exit with ExitConfigError so scripts can tell them apart from
runtime failures.

Signal handling for graceful shutdown:

	ctx, stop := cli.SetupSignalHandler()
	defer stop()
*/
package cli
