package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blackroad/journeymap/internal/render"
	"github.com/blackroad/journeymap/internal/seed"
)

func newFunnelCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "funnel",
		Short: "Manage and inspect funnel stages",
	}
	cmd.AddCommand(newFunnelAddCmd(a), newFunnelShowCmd(a), newFunnelSeedCmd(a))
	return cmd
}

func newFunnelSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Register the demo five-stage e-commerce funnel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := seed.Stages(cmd.Context(), a.mapper); err != nil {
				return err
			}
			fmt.Println(render.Success(fmt.Sprintf("Seeded %d funnel stages.", len(seed.DemoFunnel))))
			return nil
		},
	}
}

func newFunnelAddCmd(a *app) *cobra.Command {
	var description, entryEvent, exitEvent string

	cmd := &cobra.Command{
		Use:   "add <name> <position>",
		Short: "Add or replace a funnel stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("position must be an integer: %w", err)
			}

			stage, err := a.mapper.DefineStage(cmd.Context(), args[0], position, description, entryEvent, exitEvent)
			if err != nil {
				return err
			}

			fmt.Println(render.Success(fmt.Sprintf("Stage %q (pos %d) created.", stage.Name, stage.Position)))
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "stage description")
	cmd.Flags().StringVar(&entryEvent, "entry-event", "", "event type that marks entry into this stage")
	cmd.Flags().StringVar(&exitEvent, "exit-event", "", "event type that marks exit from this stage")
	return cmd
}

func newFunnelShowCmd(a *app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show funnel analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stages, err := a.mapper.AnalyzeFunnel(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Println(render.Funnel(stages))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "analysis window in days")
	return cmd
}
