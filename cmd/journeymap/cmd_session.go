package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackroad/journeymap/internal/journey"
	"github.com/blackroad/journeymap/internal/render"
)

func newSessionCmd(a *app) *cobra.Command {
	var device string

	cmd := &cobra.Command{
		Use:   "session <customer_id> <channel>",
		Short: "Start a customer session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.mapper.StartSession(cmd.Context(), args[0], args[1], device)
			if err != nil {
				return err
			}
			fmt.Println(render.Success("Session started: " + id))
			return nil
		},
	}
	cmd.Flags().StringVar(&device, "device", "unknown", "device type")
	return cmd
}

func newEndCmd(a *app) *cobra.Command {
	var converted bool
	var value float64

	cmd := &cobra.Command{
		Use:   "end <session_id>",
		Short: "Close a session and build its conversion path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.mapper.EndSession(cmd.Context(), args[0], converted, value)
			if err != nil {
				return err
			}
			fmt.Println(render.Success("Session ended: " + path.PathSignature))
			return nil
		},
	}
	cmd.Flags().BoolVar(&converted, "converted", false, "mark the session as converted")
	cmd.Flags().Float64Var(&value, "value", 0, "conversion value")
	return cmd
}

func newTouchpointCmd(a *app) *cobra.Command {
	var durationMS int
	var meta string

	cmd := &cobra.Command{
		Use:   "touchpoint <session_id> <customer_id> <channel> <page> <event_type>",
		Short: "Record a touchpoint",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Malformed metadata JSON silently becomes an empty mapping.
			metadata := map[string]any{}
			if meta != "" {
				_ = json.Unmarshal([]byte(meta), &metadata)
			}

			result, err := a.mapper.RecordTouchpoint(cmd.Context(), journey.TouchpointInput{
				SessionID:  args[0],
				CustomerID: args[1],
				Channel:    args[2],
				Page:       args[3],
				EventType:  args[4],
				DurationMS: durationMS,
				Metadata:   metadata,
			})
			if err != nil {
				return err
			}

			msg := "Touchpoint recorded: " + result.TouchpointID
			if result.StageEntered != "" {
				msg += fmt.Sprintf(" (entered stage %q, pos %d)", result.StageEntered, result.Position)
			}
			fmt.Println(render.Success(msg))
			return nil
		},
	}
	cmd.Flags().IntVar(&durationMS, "duration-ms", 0, "touchpoint duration in milliseconds")
	cmd.Flags().StringVar(&meta, "meta", "{}", "touchpoint metadata as JSON")
	return cmd
}
