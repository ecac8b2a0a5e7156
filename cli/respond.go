package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BryanM518/encuestas-cli/collector"
	"github.com/BryanM518/encuestas-cli/model"
)

var respondCmd = &cobra.Command{
	Use:   "respond <survey-id>",
	Short: "Answer a published survey interactively",
	Long: "Prompts one question at a time. Visibility is re-evaluated after every\n" +
		"answer, so follow-up questions appear as soon as their condition holds.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		survey, err := api().GetPublicSurvey(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if survey.Status != model.StatusPublished {
			return fmt.Errorf("survey is %s, not accepting responses", survey.Status)
		}

		fmt.Printf("%s\n%s\n\n", survey.Title, survey.Description)

		col := collector.New(survey)
		in := bufio.NewReader(os.Stdin)

		asked := map[string]bool{}
		for {
			q, ok := nextQuestion(col, asked)
			if !ok {
				break
			}
			asked[q.ID] = true
			if err := ask(in, col, q); err != nil {
				return err
			}
		}

		fmt.Print("your email: ")
		email, err := in.ReadString('\n')
		if err != nil {
			return err
		}

		if err := col.Submit(cmd.Context(), api(), strings.TrimSpace(email)); err != nil {
			return err
		}
		fmt.Println("responses submitted, thank you")
		return nil
	},
}

// nextQuestion picks the first currently-visible question that has not
// been prompted yet. Recomputing the visible set on every turn lets
// answers reveal (or hide) later questions.
func nextQuestion(col *collector.Collector, asked map[string]bool) (model.Question, bool) {
	for _, q := range col.Visible() {
		if !asked[q.ID] {
			return q, true
		}
	}
	return model.Question{}, false
}

func ask(in *bufio.Reader, col *collector.Collector, q model.Question) error {
	label := q.Text
	if q.Required {
		label += " *"
	}
	fmt.Println(label)

	if q.UsesOptions() {
		for i, opt := range q.Options {
			fmt.Printf("  %d) %s\n", i+1, opt)
		}
	}
	if q.Type == model.TypeCheckboxGroup {
		fmt.Print("select (comma-separated): ")
	} else {
		fmt.Print("> ")
	}

	line, err := in.ReadString('\n')
	if err != nil {
		return err
	}
	input := strings.TrimSpace(line)

	if q.Type == model.TypeCheckboxGroup {
		for _, part := range strings.Split(input, ",") {
			if part = strings.TrimSpace(part); part != "" {
				col.Toggle(q.ID, part)
			}
		}
	} else {
		col.SetAnswer(q.ID, input)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(respondCmd)
}
