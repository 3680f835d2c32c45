package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/harmony/internal/auth"
	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/cloud"
	"github.com/julianstephens/harmony/internal/constants"
	apperrors "github.com/julianstephens/harmony/internal/errors"
)

// LoginCmd signs in with Google through the device flow.
type LoginCmd struct {
	ImportLocal bool `help:"Copy the signed-out (local) data to your account when your account has none yet."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	if ctx.Auth == nil {
		return fmt.Errorf("sign-in is not configured: set auth.client_id in config.yaml or HARMONY_AUTH_CLIENT_ID")
	}
	user, err := ctx.Auth.SignIn(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}
	ctx.Printf("✓ Signed in as %s\n", describeUser(user))

	if c.ImportLocal {
		return importLocal(ctx, user.ID)
	}
	return nil
}

func importLocal(ctx *cli.Context, userID string) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	syncer := cloud.NewSyncer(ctx.Store)
	existing, err := syncer.Pull(ctx.Ctx(), userID)
	if err != nil {
		return err
	}
	if existing != nil {
		ctx.Println("Your account already has data; local data was left as is.")
		return nil
	}
	local, err := syncer.Pull(ctx.Ctx(), constants.LocalUserID)
	if err != nil {
		return err
	}
	if local == nil {
		ctx.Println("No local data to import.")
		return nil
	}
	if err := syncer.Push(ctx.Ctx(), userID, *local); err != nil {
		return err
	}
	ctx.Printf("Imported %d task(s) and %d project(s) into your account.\n", len(local.Tasks), len(local.Projects))
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if ctx.Auth == nil {
		ctx.Println("Not signed in.")
		return nil
	}
	if err := ctx.Auth.SignOut(ctx.Ctx()); err != nil {
		return err
	}
	ctx.Println("✓ Signed out. Commands now use local data.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	if ctx.Auth == nil {
		ctx.Printf("Not signed in (using %q data).\n", constants.LocalUserID)
		return nil
	}
	user, err := ctx.Auth.Current()
	if errors.Is(err, apperrors.ErrNotSignedIn) {
		ctx.Printf("Not signed in (using %q data).\n", constants.LocalUserID)
		return nil
	}
	if err != nil {
		return err
	}
	ctx.Printf("Signed in as %s\n", describeUser(user))
	return nil
}

func describeUser(u auth.User) string {
	switch {
	case u.Name != "" && u.Email != "":
		return fmt.Sprintf("%s <%s>", u.Name, u.Email)
	case u.Email != "":
		return u.Email
	default:
		return u.ID
	}
}
