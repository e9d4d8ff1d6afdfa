package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"modelrouter/internal/manager"
	"modelrouter/internal/router"
	"modelrouter/pkg/types"
)

func newModelsCmd(a *app) *cobra.Command {
	var live bool
	cmd := &cobra.Command{
		Use:     "models",
		Short:   "List the catalog, or with --live what each backend reports",
		Example: "  modelrouter models\n  modelrouter models --live",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manager()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer tw.Flush()
			if live {
				printDiscovery(tw, m.Discover(cmd.Context()))
				return nil
			}
			fmt.Fprintln(tw, "ID\tTIER\tBACKEND\tSIZE\tLATENCY_MS")
			for _, d := range m.ListModels() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", d.ID, d.Tier, d.Backend, d.ParamSize, d.LatencyMS)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&live, "live", false, "Ask the backends instead of printing the catalog")
	return cmd
}

func newRouteCmd(a *app) *cobra.Command {
	var task, tier string
	cmd := &cobra.Command{
		Use:     "route",
		Short:   "Show which model a task would be routed to",
		Example: "  modelrouter route --task reasoning\n  modelrouter route --task realtime --tier L2",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manager()
			if err != nil {
				return err
			}
			d, err := m.RouteRequest(cmd.Context(), types.RouteRequest{Task: task, Tier: tier})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), types.RouteResponse{Model: d.Model, Fallback: d.Fallback, Reason: d.Reason})
		},
	}
	cmd.Flags().StringVar(&task, "task", string(router.TaskDefault), "Task: realtime|coding|reasoning|generation|default")
	cmd.Flags().StringVar(&tier, "tier", "", "Restrict to a tier (L1..L5)")
	return cmd
}

func newChatCmd(a *app) *cobra.Command {
	var (
		model, task, tier, system string
		maxTokens                 int
		temperature               float64
	)
	cmd := &cobra.Command{
		Use:     "chat [prompt...]",
		Short:   "Send one prompt and print the reply",
		Example: "  modelrouter chat --task coding \"write fizzbuzz in go\"\n  modelrouter chat --model deepseek-r1:32b \"why is the sky blue\"",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manager()
			if err != nil {
				return err
			}
			req := types.ChatRequest{Model: model, Task: task, Tier: tier, MaxTokens: maxTokens}
			if system != "" {
				req.Messages = append(req.Messages, types.System(system))
			}
			req.Messages = append(req.Messages, types.User(strings.Join(args, " ")))
			if cmd.Flags().Changed("temperature") {
				req.Temperature = &temperature
			}
			resp, err := m.Chat(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.log.Info().Str("model", resp.Model).Int64("latency_ms", resp.LatencyMS).
				Float64("tokens_per_second", resp.TokensPerSecond).Bool("fallback", resp.Fallback).Msg("chat")
			fmt.Fprintln(cmd.OutOrStdout(), resp.Content)
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "Model id; routes by --task/--tier when empty")
	cmd.Flags().StringVar(&task, "task", string(router.TaskDefault), "Task used for routing")
	cmd.Flags().StringVar(&tier, "tier", "", "Tier used for routing (L1..L5)")
	cmd.Flags().StringVar(&system, "system", "", "Optional system prompt")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "Max tokens (default 512)")
	cmd.Flags().Float64Var(&temperature, "temperature", 0.7, "Sampling temperature")
	return cmd
}

func printDiscovery(w io.Writer, ds []manager.Discovery) {
	fmt.Fprintln(w, "BACKEND\tID\tSIZE\tQUANT")
	for _, d := range ds {
		if d.Err != nil {
			fmt.Fprintf(w, "%s\t(unreachable: %v)\t\t\n", d.Kind, d.Err)
			continue
		}
		for _, md := range d.Models {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Kind, md.ID, md.ParamSize, md.Quantization)
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
