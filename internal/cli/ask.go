package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	var module string

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the coach a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return errors.New("question is empty")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, err := newCoach(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			reply, err := svc.AskDirect(cmd.Context(), question, module)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply.Message)
			for _, s := range reply.Suggestions {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", s)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&module, "module", "", "Module the question relates to (e.g. journal, workouts)")
	return cmd
}
