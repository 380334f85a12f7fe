package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Log in and persist the session",
	Args:  cobra.ExactArgs(2),
	RunE:  runLogin,
}

var (
	registerName    string
	registerConfirm string
)

var registerCmd = &cobra.Command{
	Use:   "register <email> <password>",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(2),
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the local session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "display name for the new account")
	registerCmd.Flags().StringVar(&registerConfirm, "confirm", "", "repeat the password to confirm")
	registerCmd.MarkFlagRequired("name")
}

func runLogin(cmd *cobra.Command, args []string) error {
	user, err := app.sessions.Login(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
	if app.store.IsAdmin() {
		fmt.Println("Admin privileges active.")
	}
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	// Mismatched confirmation never reaches the backend.
	if registerConfirm != "" && registerConfirm != args[1] {
		return fmt.Errorf("passwords do not match")
	}
	user, err := app.sessions.Register(cmd.Context(), args[0], args[1], registerName)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	fmt.Printf("Account created. Logged in as %s (%s)\n", user.Name, user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	// Logout is local: the token is discarded and the cart mirror emptied,
	// no backend call is made.
	app.sessions.Logout()
	app.cart.Reset()
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	user, ok := app.store.User()
	if !ok {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	if app.store.IsAdmin() {
		fmt.Println("Role: admin")
	} else {
		fmt.Printf("Role: %s\n", user.Role)
	}
	return nil
}
