package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"benchscope/internal/ai"
	"benchscope/internal/model"
)

func newExplainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <dataset-id>",
		Short: "Ask OpenAI for a short overview of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Offline {
				return errors.New("explain is unavailable in offline mode")
			}
			res, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			r, ok := findRecord(res.Store.Records(), args[0])
			if !ok {
				return fmt.Errorf("no dataset with id %q", args[0])
			}
			text, err := a.aiClient().Explain(cmd.Context(), r)
			if errors.Is(err, ai.ErrDisabled) {
				return errors.New("set OPENAI_API_KEY to enable explain")
			}
			if err != nil {
				return fmt.Errorf("explain failed: %w", err)
			}
			cmd.Println(text)
			return nil
		},
	}
}

// findRecord matches ids exactly first, then case-insensitively.
func findRecord(recs []model.Record, id string) (model.Record, bool) {
	for _, r := range recs {
		if r.ID == id {
			return r, true
		}
	}
	for _, r := range recs {
		if strings.EqualFold(r.ID, id) {
			return r, true
		}
	}
	return model.Record{}, false
}
