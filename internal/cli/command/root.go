package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/yggauth-go/internal/cli/config"
	"github.com/yndnr/yggauth-go/internal/cli/connection"
	"github.com/yndnr/yggauth-go/internal/cli/output"
	"github.com/yndnr/yggauth-go/internal/infra/buildinfo"
	"github.com/yndnr/yggauth-go/internal/infra/tlsroots"
)

// DefaultServer is used when neither --server nor the state file name one.
const DefaultServer = "http://127.0.0.1:3000"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:                 "yggauth-cli",
		Usage:                "Client and operator tool for yggauth-server",
		Version:              buildinfo.String(),
		Flags:                globalFlags(),
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			AuthCommand(),
			AccountCommand(),
			ProfileCommand(),
			TextureCommand(),
			SystemCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "yggauth-server base URL (default: saved server or " + DefaultServer + ")",
			EnvVars: []string{"YGGAUTH_SERVER"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			EnvVars: []string{"YGGAUTH_OUTPUT"},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request timeout",
			Value: connection.DefaultTimeout,
		},
		&cli.StringFlag{
			Name:    "state",
			Usage:   "CLI state file holding the saved session",
			EnvVars: []string{config.EnvStatePath},
		},
		&cli.StringFlag{
			Name:    "ca-file",
			Usage:   "PEM bundle of extra CAs trusted for https servers",
			EnvVars: []string{"YGGAUTH_CA_FILE"},
		},
		&cli.StringFlag{
			Name:    "access-token",
			Aliases: []string{"t"},
			Usage:   "Access token for Bearer routes (default: saved session)",
			EnvVars: []string{"YGGAUTH_ACCESS_TOKEN"},
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Server      string
	Output      string
	Timeout     time.Duration
	StatePath   string
	CAFile      string
	AccessToken string
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Server:      c.String("server"),
		Output:      c.String("output"),
		Timeout:     c.Duration("timeout"),
		StatePath:   c.String("state"),
		CAFile:      c.String("ca-file"),
		AccessToken: c.String("access-token"),
	}
}

// env is the per-invocation environment shared by every action.
type env struct {
	c         *cli.Context
	flags     *GlobalFlags
	state     *config.CLIConfig
	statePath string
	client    *connection.HTTPClient
	format    output.Format
}

func newEnv(c *cli.Context) (*env, error) {
	flags := ParseGlobalFlags(c)

	statePath := flags.StatePath
	if statePath == "" {
		statePath = config.DefaultPath()
	}
	state, err := config.Load(statePath)
	if err != nil {
		return nil, err
	}

	server := firstNonEmpty(flags.Server, state.Server, DefaultServer)
	format, err := output.ParseFormat(firstNonEmpty(flags.Output, state.Output))
	if err != nil {
		return nil, err
	}

	var opts []connection.ClientOption
	if flags.CAFile != "" {
		tlsCfg, err := tlsroots.ClientConfig(flags.CAFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, connection.WithTLSConfig(tlsCfg))
	}

	return &env{
		c:         c,
		flags:     flags,
		state:     state,
		statePath: statePath,
		client:    connection.NewHTTPClient(server, flags.Timeout, opts...),
		format:    format,
	}, nil
}

// call sends one request and decodes the response into target.
func (e *env) call(method, path string, body any, bearer string, target any) error {
	ctx, cancel := context.WithTimeout(e.c.Context, e.timeout())
	defer cancel()

	resp, err := e.client.Do(ctx, method, path, body, bearer)
	if err != nil {
		return err
	}
	return connection.ParseResponse(resp, target)
}

func (e *env) timeout() time.Duration {
	if e.flags.Timeout > 0 {
		return e.flags.Timeout
	}
	return connection.DefaultTimeout
}

// render writes data in the selected format.
func (e *env) render(data any) error {
	return output.NewFormatter(e.format).Format(e.c.App.Writer, data)
}

// done reports a bodiless success: a sentence for tables, a Result
// document otherwise.
func (e *env) done(message string) error {
	if e.format == output.FormatTable {
		_, err := fmt.Fprintln(e.c.App.Writer, message)
		return err
	}
	return e.render(&Result{Success: true, Message: message})
}

// accessToken returns --access-token or the saved session's token.
func (e *env) accessToken() (string, error) {
	if e.flags.AccessToken != "" {
		return e.flags.AccessToken, nil
	}
	if s := e.session(); s != nil && s.AccessToken != "" {
		return s.AccessToken, nil
	}
	return "", errNoSession
}

// session returns the saved session if it belongs to the current server.
func (e *env) session() *config.SavedSession {
	s := e.state.Session
	if s == nil || (s.Server != "" && s.Server != e.client.BaseURL()) {
		return nil
	}
	return s
}

func (e *env) saveSession(s *config.SavedSession) error {
	s.Server = e.client.BaseURL()
	s.SavedAt = time.Now().UTC()
	e.state.Session = s
	return config.Save(e.state, e.statePath)
}

func (e *env) clearSession() error {
	if e.state.Session == nil {
		return nil
	}
	e.state.Session = nil
	return config.Save(e.state, e.statePath)
}

var errNoSession = errors.New("no access token: pass --access-token or run 'yggauth-cli auth authenticate' first")

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// action adapts an env-aware function to a cli.ActionFunc.
func action(fn func(*env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := newEnv(c)
		if err != nil {
			return err
		}
		return fn(e)
	}
}
