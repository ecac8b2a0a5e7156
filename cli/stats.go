package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BryanM518/encuestas-cli/errs"
	"github.com/BryanM518/encuestas-cli/model"
)

var (
	flagFilters []string
	flagFormat  string
	flagOutput  string
)

var statsCmd = &cobra.Command{
	Use:   "stats <survey-id>",
	Short: "Fetch aggregated statistics",
	Long: "Filters narrow the statistics to matching responses. Each --filter takes\n" +
		"qid:type:operator:value, for example --filter q1:number_input:gt:3.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := make([]model.StatsFilter, 0, len(flagFilters))
		for _, raw := range flagFilters {
			parts := strings.SplitN(raw, ":", 4)
			if len(parts) != 4 {
				return errs.Validation("malformed filter %q, want qid:type:operator:value", raw)
			}
			filters = append(filters, model.StatsFilter{
				QuestionID: parts[0],
				Type:       parts[1],
				Operator:   parts[2],
				Value:      parts[3],
			})
		}

		session, err := currentSession()
		if err != nil {
			return err
		}
		stats, err := api().GetStats(cmd.Context(), session, args[0], filters)
		if err != nil {
			return err
		}
		return printJSON(stats)
	},
}

var responsesCmd = &cobra.Command{
	Use:   "responses <survey-id>",
	Short: "List collected responses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := currentSession()
		if err != nil {
			return err
		}
		responses, err := api().ListResponses(cmd.Context(), session, args[0])
		if err != nil {
			return err
		}
		return printJSON(responses)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <survey-id>",
	Short: "Export responses as csv or xlsx",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := currentSession()
		if err != nil {
			return err
		}
		body, err := api().ExportResponses(cmd.Context(), session, args[0], flagFormat)
		if err != nil {
			return err
		}
		defer body.Close()
		return writeOutput(body)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <survey-id>",
	Short: "Download the rendered final report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := currentSession()
		if err != nil {
			return err
		}
		body, err := api().FinalReport(cmd.Context(), session, args[0])
		if err != nil {
			return err
		}
		defer body.Close()
		return writeOutput(body)
	},
}

var logoCmd = &cobra.Command{
	Use:   "logo <file>",
	Short: "Upload a logo asset and print its file reference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		session, err := currentSession()
		if err != nil {
			return err
		}
		fileID, err := api().UploadLogo(cmd.Context(), session, args[0], f)
		if err != nil {
			return err
		}
		fmt.Println(fileID)
		return nil
	},
}

func writeOutput(body io.Reader) error {
	out := os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	_, err := io.Copy(out, body)
	return err
}

func init() {
	statsCmd.Flags().StringArrayVar(&flagFilters, "filter", nil, "response filter qid:type:operator:value")

	exportCmd.Flags().StringVar(&flagFormat, "format", "csv", "export format, csv or xlsx")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write to file instead of stdout")
	reportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(statsCmd, responsesCmd, exportCmd, reportCmd, logoCmd)
}
