package cli

import (
	"context"
	"fmt"

	"github.com/momverse/momverse/internal/common"
	"github.com/momverse/momverse/internal/models"
)

// Register prompts for the account details and creates the account. The
// new user is logged in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	babyName, err := getSimpleText(a.reader, "Baby's name (optional)", a.out)
	if err != nil {
		return err
	}
	babyDOB, err := getSimpleText(a.reader, "Baby's date of birth, YYYY-MM-DD (optional)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.manager.Register(ctx, models.User{
		Name:     name,
		Email:    email,
		BabyName: babyName,
		BabyDOB:  babyDOB,
	}, password)
	if err != nil {
		return err
	}

	a.setUser(&u)
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

// Login prompts for email and password and switches the current user.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.manager.Login(ctx, email, password)
	if err != nil {
		a.log.Info(ctx, "login unsuccessful", "err", err)
		return err
	}

	a.setUser(&u)
	fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	return nil
}

// Logout saves a running feeding timer, then clears the session.
func (a *App) Logout(ctx context.Context) error {
	if a.timer.Active() != "" {
		if _, err := a.timer.Stop(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Saved the running feeding timer.")
	}

	if err := a.manager.Logout(ctx); err != nil {
		return err
	}
	a.setUser(nil)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the current user.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.user
	fmt.Fprintf(a.out, "%s <%s>\n", u.Name, u.Email)
	if u.BabyName != "" || u.BabyDOB != "" {
		fmt.Fprintf(a.out, "Baby: %s %s\n", u.BabyName, u.BabyDOB)
	}
	return nil
}

// setUser switches the session user. A chat never carries over to another
// user.
func (a *App) setUser(u *models.User) {
	a.user = u
	a.chat = nil
}
