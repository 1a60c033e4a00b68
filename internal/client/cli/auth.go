package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/storelogin/internal/client/client"
	"github.com/dmitrijs2005/storelogin/internal/client/models"
	"github.com/dmitrijs2005/storelogin/internal/client/verifier"
	"github.com/dmitrijs2005/storelogin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login runs the login screen.
//
// Each call is one screen visit with its own verifier. The user enters an
// email and a password and the pair is submitted. On success the identity
// is in the session slot and the app moves to the inventory screen. On
// rejection the generic message is shown and the user may try again; the
// flow is reset when the screen is left either way.
func (a *App) Login(ctx context.Context) error {
	v := verifier.New(a.client, a.slot, a.logger)
	defer v.Reset()

	for {
		email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
		if err != nil {
			return err
		}
		v.SetIdentifier(email)

		password, err := getPassword(os.Stdout)
		if err != nil {
			return err
		}
		v.SetSecret(password)
		common.WipeByteArray(password)

		outcome := v.Submit(ctx)
		switch outcome.Kind {
		case verifier.Authenticated:
			printlnFn("Welcome, " + outcome.Identity + "!")
			a.navigate(ScreenInventory)
			return nil
		case verifier.Rejected:
			a.logger.Debug(ctx, "login rejected", "reason", v.LastReason().String())
			printlnFn(verifier.RejectionMessage)
		default:
			// Reset from elsewhere while the lookup ran.
			return nil
		}

		if !confirm(a.reader, "Try again?", os.Stdout) {
			return nil
		}
	}
}

// Signup prompts for the new account's details and creates it in the
// record store. The password is wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.client.CreateUser(ctx, &models.User{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	switch {
	case errors.Is(err, client.ErrAlreadyExists):
		printlnFn("An account with this email already exists.")
		return err
	case errors.Is(err, client.ErrInvalidInput):
		printlnFn("Email and password are required.")
		return err
	case err != nil:
		a.logger.Error(ctx, "sign up failed", "error", err)
		printlnFn("Sign up failed, please try again later.")
		return err
	}

	a.logger.Info(ctx, "account created", "id", user.ID)
	printlnFn("Account created. You can log in now.")
	return nil
}

// Logout empties the session slot and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	if err := a.slot.Clear(ctx); err != nil {
		a.logger.Error(ctx, "session slot clear failed", "error", err)
		return err
	}
	a.navigate(ScreenLogin)
	printlnFn("Logged out.")
	return nil
}

// WhoAmI prints the identity held by the session slot.
func (a *App) WhoAmI(ctx context.Context) error {
	id, ok, err := a.slot.Get(ctx)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn("Logged in as " + id)
	return nil
}

// Ping checks that the users service answers and updates the mode.
func (a *App) Ping(ctx context.Context) error {
	err := a.client.Ping(ctx)
	if err != nil {
		a.setMode(ModeOffline)
		printlnFn("Server is unreachable.")
		return err
	}
	a.setMode(ModeOnline)
	printlnFn("Server is online.")
	return nil
}
