// Package cli wires every client operation into a cobra command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BryanM518/encuestas-cli/client"
	"github.com/BryanM518/encuestas-cli/config"
	"github.com/BryanM518/encuestas-cli/log"
	"github.com/BryanM518/encuestas-cli/store"
)

var (
	flagAPIURL    string
	flagStorePath string
	flagDebug     bool
)

var rootCmd = &cobra.Command{
	Use:           "encuestas",
	Short:         "Author surveys, collect responses and read statistics from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagDebug {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute runs the CLI with cfg providing the flag defaults.
func Execute(cfg config.Config) {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", cfg.APIURL, "survey backend base URL")
	rootCmd.PersistentFlags().StringVar(&flagStorePath, "store", cfg.StorePath, "path to the local SQLite store")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", cfg.Debug, "log at DEBUG level")

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func api() *client.Client {
	return client.New(flagAPIURL, nil)
}

func openStore() (*store.Store, error) {
	return store.Open(flagStorePath)
}

// currentSession loads the persisted session; commands let the backend
// or the client's own precondition check reject anonymous calls.
func currentSession() (client.Session, error) {
	st, err := openStore()
	if err != nil {
		return client.Session{}, err
	}
	defer st.Close()
	return st.LoadSession()
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
