package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"modelrouter/internal/router"
	"modelrouter/pkg/types"
)

const selftestPrompt = "Say hello in one short sentence."

func newSelftestCmd(a *app) *cobra.Command {
	var (
		task     string
		skipChat bool
	)
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Check backends, list their models and run one sample chat",
		Long: "selftest reports backend health, the models each backend serves and the result of one routed chat.\n" +
			"Unreachable backends and failed chats are reported, not treated as errors.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manager()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "== backends ==")
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			anyUp := false
			for _, b := range m.BackendHealth(ctx) {
				state := "down"
				if b.Healthy {
					state, anyUp = "healthy", true
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Kind, b.BaseURL, state)
			}
			tw.Flush()

			fmt.Fprintln(out, "== models ==")
			tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			printDiscovery(tw, m.Discover(ctx))
			tw.Flush()

			if skipChat {
				return nil
			}
			fmt.Fprintln(out, "== sample chat ==")
			if !anyUp {
				fmt.Fprintln(out, "skipped: no backend is healthy")
				return nil
			}
			resp, err := m.Chat(ctx, types.ChatRequest{
				Task:      task,
				Messages:  []types.ChatMessage{types.User(selftestPrompt)},
				MaxTokens: 64,
			})
			if err != nil {
				fmt.Fprintf(out, "failed: %v\n", err)
				return nil
			}
			fmt.Fprintf(out, "model=%s latency=%dms tokens/s=%.1f fallback=%t\n",
				resp.Model, resp.LatencyMS, resp.TokensPerSecond, resp.Fallback)
			fmt.Fprintf(out, "reply: %s\n", resp.Content)
			return nil
		},
	}
	cmd.Flags().StringVar(&task, "task", string(router.TaskRealtime), "Task used to route the sample chat")
	cmd.Flags().BoolVar(&skipChat, "no-chat", false, "Skip the sample chat")
	return cmd
}
