package command

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

// AccountCommand returns the account subcommand group.
func AccountCommand() *cli.Command {
	return &cli.Command{
		Name:    "account",
		Aliases: []string{"acct"},
		Usage:   "Account registration and management",
		Subcommands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account and its default profile",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Login name", Required: true},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address", Required: true},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Password (at least 6 characters)",
						EnvVars:  []string{"YGGAUTH_PASSWORD"},
						Required: true,
					},
					&cli.StringFlag{Name: "profile-name", Usage: "Player name (default: username)"},
				},
				Action: action(accountRegister),
			},
			{
				Name:   "info",
				Usage:  "Show the signed-in account",
				Action: action(accountInfo),
			},
			{
				Name:   "logout",
				Usage:  "Close the current session",
				Action: action(accountLogout),
			},
			{
				Name:  "passwd",
				Usage: "Change the account password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "current", Usage: "Current password", Required: true},
					&cli.StringFlag{Name: "new", Usage: "New password", Required: true},
				},
				Action: action(accountPasswd),
			},
		},
	}
}

func accountRegister(e *env) error {
	var resp Registration
	err := e.call(http.MethodPost, "/api/register", &registerRequest{
		Username:    e.c.String("username"),
		Email:       e.c.String("email"),
		Password:    e.c.String("password"),
		ProfileName: e.c.String("profile-name"),
	}, "", &resp)
	if err != nil {
		return err
	}
	return e.render(&resp)
}

func accountInfo(e *env) error {
	token, err := e.accessToken()
	if err != nil {
		return err
	}
	var info AccountInfo
	if err := e.call(http.MethodGet, "/api/user/info", nil, token, &info); err != nil {
		return err
	}
	return e.render(&info)
}

func accountLogout(e *env) error {
	token, err := e.accessToken()
	if err != nil {
		return err
	}
	if err := e.call(http.MethodPost, "/api/user/logout", nil, token, nil); err != nil {
		return err
	}
	if s := e.session(); s != nil && s.AccessToken == token {
		if err := e.clearSession(); err != nil {
			return err
		}
	}
	return e.done("Session closed.")
}

func accountPasswd(e *env) error {
	token, err := e.accessToken()
	if err != nil {
		return err
	}
	err = e.call(http.MethodPost, "/api/user/change-password", &changePasswordRequest{
		CurrentPassword: e.c.String("current"),
		NewPassword:     e.c.String("new"),
	}, token, nil)
	if err != nil {
		return err
	}
	return e.done("Password updated.")
}
