package command

import (
	"errors"
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/yggauth-go/internal/cli/config"
)

// AuthCommand returns the auth subcommand group.
func AuthCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authserver protocol operations",
		Subcommands: []*cli.Command{
			{
				Name:  "authenticate",
				Usage: "Sign in and save the issued tokens",
				Flags: append(credentialFlags(),
					&cli.StringFlag{
						Name:  "client-token",
						Usage: "Client token to bind (default: server generated)",
					},
					&cli.BoolFlag{
						Name:  "no-save",
						Usage: "Do not save the session to the state file",
					},
				),
				Action: action(authAuthenticate),
			},
			{
				Name:  "refresh",
				Usage: "Exchange the saved tokens for a new access token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "client-token",
						Usage: "Client token (default: saved session)",
					},
					&cli.StringFlag{
						Name:  "profile",
						Usage: "Profile id to select when none is bound yet",
					},
				},
				Action: action(authRefresh),
			},
			{
				Name:  "validate",
				Usage: "Check that the access token is still valid",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "client-token",
						Usage: "Also check the client token",
					},
				},
				Action: action(authValidate),
			},
			{
				Name:  "invalidate",
				Usage: "Revoke the access token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "client-token",
						Usage: "Client token (default: saved session)",
					},
				},
				Action: action(authInvalidate),
			},
			{
				Name:   "signout",
				Usage:  "Revoke every session of an account",
				Flags:  credentialFlags(),
				Action: action(authSignout),
			},
		},
	}
}

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "username",
			Aliases:  []string{"u"},
			Usage:    "Username or email",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "password",
			Aliases:  []string{"p"},
			Usage:    "Password",
			EnvVars:  []string{"YGGAUTH_PASSWORD"},
			Required: true,
		},
	}
}

func authAuthenticate(e *env) error {
	var resp authenticateResponse
	err := e.call(http.MethodPost, "/authserver/authenticate", &authenticateRequest{
		Agent:       minecraftAgent,
		Username:    e.c.String("username"),
		Password:    e.c.String("password"),
		ClientToken: e.c.String("client-token"),
		RequestUser: true,
	}, "", &resp)
	if err != nil {
		return err
	}

	if !e.c.Bool("no-save") {
		saved := &config.SavedSession{
			Username:    e.c.String("username"),
			AccessToken: resp.AccessToken,
			ClientToken: resp.ClientToken,
		}
		if resp.SelectedProfile != nil {
			saved.ProfileID = resp.SelectedProfile.ID
			saved.ProfileName = resp.SelectedProfile.Name
		}
		if err := e.saveSession(saved); err != nil {
			return err
		}
	}

	return e.render(&Session{
		AccessToken:       resp.AccessToken,
		ClientToken:       resp.ClientToken,
		SelectedProfile:   resp.SelectedProfile,
		AvailableProfiles: resp.AvailableProfiles,
		User:              resp.User,
	})
}

func authRefresh(e *env) error {
	accessToken, err := e.accessToken()
	if err != nil {
		return err
	}
	clientToken := e.clientToken()
	if clientToken == "" {
		return errors.New("no client token: pass --client-token")
	}

	req := &refreshRequest{
		AccessToken: accessToken,
		ClientToken: clientToken,
		RequestUser: true,
	}
	if id := e.c.String("profile"); id != "" {
		req.SelectedProfile = &profileRef{ID: id}
	}

	var resp refreshResponse
	if err := e.call(http.MethodPost, "/authserver/refresh", req, "", &resp); err != nil {
		return err
	}

	if s := e.session(); s != nil && s.AccessToken == accessToken {
		s.AccessToken = resp.AccessToken
		s.ClientToken = resp.ClientToken
		if resp.SelectedProfile != nil {
			s.ProfileID = resp.SelectedProfile.ID
			s.ProfileName = resp.SelectedProfile.Name
		}
		if err := e.saveSession(s); err != nil {
			return err
		}
	}

	return e.render(&Session{
		AccessToken:     resp.AccessToken,
		ClientToken:     resp.ClientToken,
		SelectedProfile: resp.SelectedProfile,
		User:            resp.User,
	})
}

func authValidate(e *env) error {
	accessToken, err := e.accessToken()
	if err != nil {
		return err
	}
	pair := &tokenPair{AccessToken: accessToken, ClientToken: e.c.String("client-token")}
	if err := e.call(http.MethodPost, "/authserver/validate", pair, "", nil); err != nil {
		return err
	}
	return e.done("Token is valid.")
}

func authInvalidate(e *env) error {
	accessToken, err := e.accessToken()
	if err != nil {
		return err
	}
	pair := &tokenPair{AccessToken: accessToken, ClientToken: e.clientToken()}
	if err := e.call(http.MethodPost, "/authserver/invalidate", pair, "", nil); err != nil {
		return err
	}
	if s := e.session(); s != nil && s.AccessToken == accessToken {
		if err := e.clearSession(); err != nil {
			return err
		}
	}
	return e.done("Token invalidated.")
}

func authSignout(e *env) error {
	username := e.c.String("username")
	body := &credentials{Username: username, Password: e.c.String("password")}
	if err := e.call(http.MethodPost, "/authserver/signout", body, "", nil); err != nil {
		return err
	}
	if s := e.session(); s != nil && s.Username == username {
		if err := e.clearSession(); err != nil {
			return err
		}
	}
	return e.done("Signed out of every session.")
}

// clientToken returns --client-token or the saved session's client token.
func (e *env) clientToken() string {
	if ct := e.c.String("client-token"); ct != "" {
		return ct
	}
	if s := e.session(); s != nil {
		return s.ClientToken
	}
	return ""
}
