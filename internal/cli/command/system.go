package command

import (
	"errors"
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/yggauth-go/internal/cli/output"
	"github.com/yndnr/yggauth-go/internal/infra/buildinfo"
)

// SystemCommand returns the system subcommand group.
func SystemCommand() *cli.Command {
	adminFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "admin-token",
			Usage:   "Operator token configured as server.admin_token",
			EnvVars: []string{"YGGAUTH_ADMIN_TOKEN"},
		}
	}

	return &cli.Command{
		Name:    "system",
		Aliases: []string{"sys"},
		Usage:   "Health, version and operator commands",
		Subcommands: []*cli.Command{
			{
				Name:   "health",
				Usage:  "Check server health",
				Action: action(systemHealth),
			},
			{
				Name:   "version",
				Usage:  "Show client and server versions",
				Action: action(systemVersion),
			},
			{
				Name:   "status",
				Usage:  "Show store sizes and uptime",
				Flags:  []cli.Flag{adminFlag()},
				Action: action(systemStatus),
			},
			{
				Name:   "gc",
				Usage:  "Sweep expired sessions now",
				Flags:  []cli.Flag{adminFlag()},
				Action: action(systemGC),
			},
		},
	}
}

func systemHealth(e *env) error {
	var health Health
	if err := e.call(http.MethodGet, "/health", nil, "", &health); err != nil {
		return err
	}
	if e.format == output.FormatTable && health.Status == "ok" {
		return e.done("Server " + e.client.BaseURL() + " is healthy (version " + health.Version + ").")
	}
	return e.render(&health)
}

// systemVersion reports the server version when it is reachable and the
// client version regardless.
func systemVersion(e *env) error {
	info := buildinfo.Get()
	v := &Version{
		Client:    info.Version,
		Commit:    info.Commit,
		GoVersion: info.GoVersion,
	}

	var health Health
	if err := e.call(http.MethodGet, "/health", nil, "", &health); err == nil {
		v.Server = health.Version
	}
	return e.render(v)
}

func systemStatus(e *env) error {
	token, err := adminToken(e)
	if err != nil {
		return err
	}
	var status Status
	if err := e.call(http.MethodGet, "/admin/status", nil, token, &status); err != nil {
		return err
	}
	return e.render(&status)
}

func systemGC(e *env) error {
	token, err := adminToken(e)
	if err != nil {
		return err
	}
	var result GCResult
	if err := e.call(http.MethodPost, "/admin/gc", nil, token, &result); err != nil {
		return err
	}
	return e.render(&result)
}

func adminToken(e *env) (string, error) {
	token := e.c.String("admin-token")
	if token == "" {
		return "", errors.New("--admin-token is required")
	}
	return token, nil
}
