// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and the token database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and token database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the TikTok session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with TikTok using OAuth2",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the authorization URL instead of opening a browser",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "status",
				Usage: "Show session phase and token validity",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
			{
				Name:   "refresh",
				Usage:  "Exchange the refresh token for a new access token",
				Action: r.AuthRefresh,
			},
			{
				Name:   "logout",
				Usage:  "Clear all stored tokens",
				Action: r.AuthLogout,
			},
		},
	}
}

// adCommand handles ad draft operations
func adCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "ad",
		Usage: "Validate and submit ad drafts",
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "Validate a draft JSON file without submitting",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "Output violations as CSV",
					},
				},
				Action: r.AdValidate,
			},
			{
				Name:  "submit",
				Usage: "Submit a draft JSON file for review",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.StringFlag{
						Name:    "export",
						Aliases: []string{"o"},
						Usage:   "Base path for receipt export files",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Export the receipt locally",
					},
				},
				Action: r.AdSubmit,
			},
		},
	}
}

// musicCommand handles music validation operations
func musicCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "music",
		Usage: "Validate music for ad drafts",
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "Validate a catalog music ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MusicCheck,
			},
			{
				Name:  "upload",
				Usage: "Validate a local audio file and mint a custom music ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MusicUpload,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive ad creation.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for ad creation",
		Action:  r.TUI,
	}
}
