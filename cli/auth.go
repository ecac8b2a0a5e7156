package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagUsername string
	flagEmail    string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword()
		if err != nil {
			return err
		}

		session, err := api().Login(cmd.Context(), flagUsername, password)
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.SaveSession(session, flagAPIURL); err != nil {
			return err
		}

		fmt.Println("logged in as", flagUsername)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword()
		if err != nil {
			return err
		}

		if err := api().Register(cmd.Context(), flagUsername, flagEmail, password); err != nil {
			return err
		}
		fmt.Println("registered", flagUsername, "- you can log in now")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		return st.ClearSession()
	},
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	loginCmd.Flags().StringVarP(&flagUsername, "user", "u", "", "username")
	loginCmd.MarkFlagRequired("user")

	registerCmd.Flags().StringVarP(&flagUsername, "user", "u", "", "username")
	registerCmd.Flags().StringVarP(&flagEmail, "email", "e", "", "email address")
	registerCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd)
}
