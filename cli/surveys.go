package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-chi/render"
	"github.com/spf13/cobra"

	"github.com/BryanM518/encuestas-cli/client"
	"github.com/BryanM518/encuestas-cli/editor"
	"github.com/BryanM518/encuestas-cli/errs"
	"github.com/BryanM518/encuestas-cli/log"
	"github.com/BryanM518/encuestas-cli/model"
)

var (
	flagFile      string
	flagFromDraft string
	flagPublic    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your surveys",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := currentSession()
		if err != nil {
			return err
		}
		surveys, err := api().ListSurveys(cmd.Context(), session)
		if err != nil {
			return err
		}
		for _, s := range surveys {
			fmt.Printf("%s\tv%d\t%s\t%s\n", s.ID, s.Version, s.DeriveStatus(time.Now()), s.Title)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <survey-id>",
	Short: "Print a survey document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			survey model.Survey
			err    error
		)
		if flagPublic {
			survey, err = api().GetPublicSurvey(cmd.Context(), args[0])
		} else {
			var session client.Session
			session, err = currentSession()
			if err != nil {
				return err
			}
			survey, err = api().GetSurvey(cmd.Context(), session, args[0])
		}
		if err != nil {
			return err
		}
		return printJSON(survey)
	},
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or replace a survey from a JSON document",
	Long: "Reads a survey document from --file or --from-draft, validates it, sends it\n" +
		"and reconciles temporary question identifiers with the ones the backend\n" +
		"assigned. On a transport failure the document is kept as a local draft.",
	RunE: func(cmd *cobra.Command, args []string) error {
		survey, err := loadSurveyDocument()
		if err != nil {
			return err
		}

		session, err := currentSession()
		if err != nil {
			return err
		}

		ed := editor.New(api())
		saved, err := ed.Save(cmd.Context(), session, survey)
		if err != nil {
			var te *errs.TransportError
			if errors.As(err, &te) {
				if derr := stashDraft(survey); derr != nil {
					log.Warnf("save.stash_draft: %s", derr)
				} else {
					log.Infof("save failed, document kept as draft %q", draftName(survey))
				}
			}
			return fmt.Errorf("save ended in state %s: %w", ed.State(), err)
		}

		if flagFromDraft != "" {
			st, err := openStore()
			if err == nil {
				defer st.Close()
				if err := st.DeleteDraft(flagFromDraft); err != nil {
					log.Warnf("save.drop_draft: %s", err)
				}
			}
		}
		return printJSON(saved)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <survey-id>",
	Short: "Delete a survey",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := currentSession()
		if err != nil {
			return err
		}
		return api().DeleteSurvey(cmd.Context(), session, args[0])
	},
}

var versionsCmd = &cobra.Command{
	Use:   "versions <survey-id>",
	Short: "List the archived revisions of a survey",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := currentSession()
		if err != nil {
			return err
		}
		versions, err := api().ListVersions(cmd.Context(), session, args[0])
		if err != nil {
			return err
		}
		return printJSON(versions)
	},
}

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "List local survey drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		drafts, err := st.ListDrafts()
		if err != nil {
			return err
		}
		for _, d := range drafts {
			fmt.Printf("%s\t%s\t%s\n", d.Name, d.UpdatedAt.Format("2006-01-02 15:04"), d.Title)
		}
		return nil
	},
}

func loadSurveyDocument() (model.Survey, error) {
	switch {
	case flagFile != "":
		f, err := os.Open(flagFile)
		if err != nil {
			return model.Survey{}, err
		}
		defer f.Close()

		var survey model.Survey
		if err := render.DecodeJSON(f, &survey); err != nil {
			return model.Survey{}, fmt.Errorf("parse %s: %w", flagFile, err)
		}
		return survey, nil

	case flagFromDraft != "":
		st, err := openStore()
		if err != nil {
			return model.Survey{}, err
		}
		defer st.Close()
		return st.LoadDraft(flagFromDraft)

	default:
		return model.Survey{}, errs.Validation("either --file or --from-draft is required")
	}
}

func draftName(s model.Survey) string {
	if s.ID != "" {
		return s.ID
	}
	return s.Title
}

func stashDraft(s model.Survey) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	return st.SaveDraft(draftName(s), s)
}

func init() {
	showCmd.Flags().BoolVar(&flagPublic, "public", false, "fetch the public respondent view")

	saveCmd.Flags().StringVarP(&flagFile, "file", "f", "", "survey JSON document")
	saveCmd.Flags().StringVar(&flagFromDraft, "from-draft", "", "load the document from a local draft")

	rootCmd.AddCommand(listCmd, showCmd, saveCmd, deleteCmd, versionsCmd, draftsCmd)
}
