package cli

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/BryanM518/encuestas-cli/log"
	"github.com/BryanM518/encuestas-cli/mockapi"
)

var (
	flagAddr         string
	flagMockUser     string
	flagMockPassword string
	flagMockSecret   string
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Serve an in-memory mock of the survey backend",
	Long: "Runs the full REST surface with in-memory state, for frontend development\n" +
		"and integration testing. State is lost on exit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mockapi.NewServer(flagMockSecret)
		if flagMockUser != "" {
			if err := server.RegisterUser(flagMockUser, flagMockPassword); err != nil {
				return err
			}
			log.Infof("seeded user %q", flagMockUser)
		}

		srv := &http.Server{
			Addr:         flagAddr,
			Handler:      server.Router(),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		}

		log.Info("mock backend listening on " + flagAddr)
		return srv.ListenAndServe()
	},
}

func init() {
	mockCmd.Flags().StringVar(&flagAddr, "addr", "localhost:8000", "listen address")
	mockCmd.Flags().StringVar(&flagMockUser, "user", "", "seed a user account")
	mockCmd.Flags().StringVar(&flagMockPassword, "password", "", "password for the seeded user")
	mockCmd.Flags().StringVar(&flagMockSecret, "token-secret", "mock-secret", "secret key for token signing")

	rootCmd.AddCommand(mockCmd)
}
