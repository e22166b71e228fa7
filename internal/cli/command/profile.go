package command

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

var errProfileNotFound = errors.New("profile not found")

// ProfileCommand returns the profile subcommand group.
func ProfileCommand() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Sessionserver and launcher lookups",
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show a profile and its textures as game servers see it",
				ArgsUsage: "PROFILE_ID",
				Action:    action(profileShow),
			},
			{
				Name:      "lookup",
				Usage:     "List the profiles of an account by username or email",
				ArgsUsage: "USERNAME",
				Action:    action(profileLookup),
			},
			{
				Name:      "join",
				Usage:     "Record that the saved profile is joining a server",
				ArgsUsage: "SERVER_ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "profile", Usage: "Profile id (default: saved session profile)"},
				},
				Action: action(profileJoin),
			},
			{
				Name:      "has-joined",
				Usage:     "Check a join the way a game server does",
				ArgsUsage: "PLAYER_NAME SERVER_ID",
				Action:    action(profileHasJoined),
			},
		},
	}
}

func profileShow(e *env) error {
	id := e.c.Args().First()
	if id == "" {
		return errors.New("PROFILE_ID is required")
	}

	var resp profileResponse
	path := "/sessionserver/session/minecraft/profile/" + url.PathEscape(id)
	if err := e.call(http.MethodGet, path, nil, "", &resp); err != nil {
		return err
	}
	if resp.ID == "" {
		return errProfileNotFound
	}

	view, err := gameProfile(&resp)
	if err != nil {
		return err
	}
	return e.render(view)
}

func profileLookup(e *env) error {
	name := e.c.Args().First()
	if name == "" {
		return errors.New("USERNAME is required")
	}

	var resp LauncherProfile
	if err := e.call(http.MethodGet, "/launcher/user/profile/"+url.PathEscape(name), nil, "", &resp); err != nil {
		return err
	}
	return e.render(&resp)
}

func profileJoin(e *env) error {
	serverID := e.c.Args().First()
	if serverID == "" {
		return errors.New("SERVER_ID is required")
	}
	token, err := e.accessToken()
	if err != nil {
		return err
	}

	profileID := e.c.String("profile")
	if profileID == "" {
		if s := e.session(); s != nil {
			profileID = s.ProfileID
		}
	}
	if profileID == "" {
		return errors.New("no profile selected: pass --profile")
	}

	err = e.call(http.MethodPost, "/sessionserver/session/minecraft/join", &joinRequest{
		AccessToken:     token,
		SelectedProfile: profileID,
		ServerID:        serverID,
	}, "", nil)
	if err != nil {
		return err
	}
	return e.done(fmt.Sprintf("Joined %s.", serverID))
}

func profileHasJoined(e *env) error {
	if e.c.NArg() != 2 {
		return errors.New("PLAYER_NAME and SERVER_ID are required")
	}
	q := url.Values{}
	q.Set("username", e.c.Args().Get(0))
	q.Set("serverId", e.c.Args().Get(1))

	var resp profileResponse
	if err := e.call(http.MethodGet, "/sessionserver/session/minecraft/hasJoined?"+q.Encode(), nil, "", &resp); err != nil {
		return err
	}
	if resp.ID == "" {
		return errors.New("no matching join")
	}

	view, err := gameProfile(&resp)
	if err != nil {
		return err
	}
	return e.render(view)
}

// gameProfile decodes the base64 textures property into a flat view.
func gameProfile(resp *profileResponse) (*GameProfile, error) {
	view := &GameProfile{ID: resp.ID, Name: resp.Name}
	for _, p := range resp.Properties {
		if p.Name != "textures" {
			continue
		}
		view.Signed = p.Signature != ""

		raw, err := base64.StdEncoding.DecodeString(p.Value)
		if err != nil {
			return nil, fmt.Errorf("decode textures property: %w", err)
		}
		var payload texturesPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("decode textures property: %w", err)
		}
		if skin, ok := payload.Textures["SKIN"]; ok {
			view.Skin = skin.URL
			if skin.Metadata != nil {
				view.SkinModel = skin.Metadata.Model
			}
		}
		if cape, ok := payload.Textures["CAPE"]; ok {
			view.Cape = cape.URL
		}
	}
	return view, nil
}
