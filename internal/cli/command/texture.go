package command

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/urfave/cli/v2"
)

// TextureCommand returns the texture subcommand group.
func TextureCommand() *cli.Command {
	kindFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "kind",
			Aliases: []string{"k"},
			Usage:   "skin or cape",
			Value:   "skin",
		}
	}

	return &cli.Command{
		Name:    "texture",
		Aliases: []string{"tex"},
		Usage:   "Manage skins and capes of the signed-in account",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List textures of one kind",
				Flags:  []cli.Flag{kindFlag()},
				Action: action(textureList),
			},
			{
				Name:  "add",
				Usage: "Register a texture URL",
				Flags: []cli.Flag{
					kindFlag(),
					&cli.StringFlag{Name: "name", Usage: "Display name", Required: true},
					&cli.StringFlag{Name: "url", Usage: "http(s) URL of the image", Required: true},
					&cli.StringFlag{Name: "model", Usage: "Skin model: classic or slim"},
				},
				Action: action(textureAdd),
			},
			{
				Name:      "activate",
				Usage:     "Make a texture the active one",
				ArgsUsage: "TEXTURE_ID",
				Flags:     []cli.Flag{kindFlag()},
				Action:    action(textureActivate),
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a texture",
				ArgsUsage: "TEXTURE_ID",
				Flags:     []cli.Flag{kindFlag()},
				Action:    action(textureDelete),
			},
		},
	}
}

// texturePath maps --kind to the plural route segment.
func texturePath(e *env) (string, error) {
	switch strings.ToLower(e.c.String("kind")) {
	case "skin", "skins":
		return "/api/user/skins", nil
	case "cape", "capes":
		return "/api/user/capes", nil
	default:
		return "", fmt.Errorf("unknown texture kind %q (want skin or cape)", e.c.String("kind"))
	}
}

func textureList(e *env) error {
	path, err := texturePath(e)
	if err != nil {
		return err
	}
	token, err := e.accessToken()
	if err != nil {
		return err
	}
	var list TextureList
	if err := e.call(http.MethodGet, path, nil, token, &list); err != nil {
		return err
	}
	return e.render(&list)
}

func textureAdd(e *env) error {
	path, err := texturePath(e)
	if err != nil {
		return err
	}
	token, err := e.accessToken()
	if err != nil {
		return err
	}
	var added AddedTexture
	err = e.call(http.MethodPost, path, &addTextureRequest{
		Name:  e.c.String("name"),
		URL:   e.c.String("url"),
		Model: e.c.String("model"),
	}, token, &added)
	if err != nil {
		return err
	}
	return e.render(&added)
}

func textureActivate(e *env) error {
	path, id, token, err := textureTarget(e)
	if err != nil {
		return err
	}
	if err := e.call(http.MethodPost, path+"/"+url.PathEscape(id)+"/activate", nil, token, nil); err != nil {
		return err
	}
	return e.done("Texture " + id + " is active.")
}

func textureDelete(e *env) error {
	path, id, token, err := textureTarget(e)
	if err != nil {
		return err
	}
	if err := e.call(http.MethodDelete, path+"/"+url.PathEscape(id), nil, token, nil); err != nil {
		return err
	}
	return e.done("Texture " + id + " deleted.")
}

func textureTarget(e *env) (path, id, token string, err error) {
	id = e.c.Args().First()
	if id == "" {
		return "", "", "", errors.New("TEXTURE_ID is required")
	}
	if path, err = texturePath(e); err != nil {
		return "", "", "", err
	}
	if token, err = e.accessToken(); err != nil {
		return "", "", "", err
	}
	return path, id, token, nil
}
