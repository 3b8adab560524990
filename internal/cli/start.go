package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/daycoach-ai/daycoach/internal/channel"
	"github.com/daycoach-ai/daycoach/internal/coach"
	"github.com/daycoach-ai/daycoach/internal/llm"
	"github.com/daycoach-ai/daycoach/internal/logging"
)

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run the coaching daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gen, err := llm.New(cfg.LLM)
			if err != nil {
				return err
			}

			var notifier channel.Notifier
			if tg := cfg.TelegramChannel(); tg.Enabled {
				notifier, err = channel.NewTelegram(runCtx, tg.Token, tg.ChatID)
				if err != nil {
					return err
				}
			}

			svc, err := coach.New(coach.Options{
				Store:     newStore(runCtx, cfg),
				Generator: gen,
				Notifier:  notifier,
				Config:    cfg.Coach,
			})
			if err != nil {
				return err
			}

			logging.Logger().Info(
				"starting daemon",
				"provider", cfg.LLM.Provider,
				"model", cfg.LLM.Model,
				"data_file", cfg.DataFile(),
			)
			if err := svc.Start(); err != nil {
				return err
			}

			<-runCtx.Done()
			svc.Stop()
			logging.Logger().Info("daemon stopped")
			return nil
		},
	}
}
