package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackroad/journeymap/internal/render"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Full funnel analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stages, err := a.mapper.AnalyzeFunnel(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Println(render.Funnel(stages))
			fmt.Printf("Funnel analysis over last %d days, %d stages.\n", days, len(stages))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "analysis window in days")
	return cmd
}

func newPathsCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Top conversion paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := a.mapper.TopConversionPaths(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Println(render.Paths(groups, limit))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of paths")
	return cmd
}

func newDropoffsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dropoffs <stage_id>",
		Short: "Dropoff breakdown for one stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			breakdown, err := a.mapper.AnalyzeDropoffs(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(render.Dropoffs(breakdown))
			return nil
		},
	}
}

func newChannelsCmd(a *app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "channels",
		Short: "Channel attribution report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := a.mapper.ChannelAttribution(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Println(render.Channels(stats, days))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "analysis window in days")
	return cmd
}

func newLTVCmd(a *app) *cobra.Command {
	var buckets int

	cmd := &cobra.Command{
		Use:   "ltv",
		Short: "Customer lifetime value segments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			segments, err := a.mapper.LTVSegments(cmd.Context(), buckets)
			if err != nil {
				return err
			}
			fmt.Println(render.LTV(segments))
			return nil
		},
	}
	cmd.Flags().IntVar(&buckets, "buckets", 5, "number of equal-width segments")
	return cmd
}

func newHeatmapCmd(a *app) *cobra.Command {
	var hours int

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Journey activity heatmap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			heatmap, err := a.mapper.JourneyHeatmap(cmd.Context(), hours)
			if err != nil {
				return err
			}
			fmt.Println(render.Heatmap(heatmap))
			return nil
		},
	}
	cmd.Flags().IntVar(&hours, "hours", 168, "analysis window in hours")
	return cmd
}
