package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/evento/pkg/api"
	"github.com/me/evento/pkg/model"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse and manage events",
	}

	cmd.AddCommand(
		newEventsListCmd(),
		newEventsShowCmd(),
		newEventsMineCmd(),
		newEventsCreateCmd(),
		newEventsJoinCmd(),
		newEventsLeaveCmd(),
		newEventsDeleteCmd(),
	)
	return cmd
}

func printEventTable(events []model.Event) {
	if len(events) == 0 {
		fmt.Println("No events found.")
		return
	}

	fmt.Printf("%-6s  %-30s  %-16s  %-10s  %s\n", "ID", "TITLE", "START", "STATUS", "LOCATION")
	fmt.Printf("%-6s  %-30s  %-16s  %-10s  %s\n", "--", "-----", "-----", "------", "--------")
	for _, ev := range events {
		title := ev.Title
		if len(title) > 30 {
			title = title[:27] + "..."
		}
		fmt.Printf("%-6d  %-30s  %-16s  %-10s  %s\n",
			ev.ID, title, ev.StartDate.Format("2006-01-02 15:04"), ev.Status, ev.Location)
	}
}

func newEventsListCmd() *cobra.Command {
	var status, eventType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Gateway.Client().ListEvents(cmd.Context(), api.EventFilter{
				Status:    model.EventStatus(status),
				EventType: eventType,
			})
			if err != nil {
				return err
			}
			printEventTable(events)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, approved, rejected)")
	cmd.Flags().StringVar(&eventType, "type", "", "Filter by event type")
	return cmd
}

func newEventsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show event details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}

			ev, err := app.Gateway.Client().GetEvent(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("Event #%d: %s\n", ev.ID, ev.Title)
			fmt.Printf("  Status:       %s\n", ev.Status)
			fmt.Printf("  When:         %s to %s\n",
				ev.StartDate.Format(time.RFC1123), ev.EndDate.Format(time.RFC1123))
			fmt.Printf("  Where:        %s\n", ev.Location)
			fmt.Printf("  Capacity:     %d\n", ev.MaxParticipants)
			if ev.EventType != "" {
				fmt.Printf("  Type:         %s\n", ev.EventType)
			}
			if ev.Organizer != nil {
				fmt.Printf("  Organizer:    %s\n", ev.Organizer.DisplayName())
			}
			if ev.RejectionReason != "" {
				fmt.Printf("  Rejected:     %s\n", ev.RejectionReason)
			}
			fmt.Printf("\n%s\n", ev.Description)
			return nil
		},
	}
}

func newEventsMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List events you organize or joined",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Gateway.Client().MyEvents(cmd.Context())
			if err != nil {
				return err
			}
			printEventTable(events)
			return nil
		},
	}
}

func newEventsCreateCmd() *cobra.Command {
	var req model.EventCreate
	var start, end string
	var capacity int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event (organizer role required)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			req.StartDate, err = time.Parse("2006-01-02 15:04", start)
			if err != nil {
				return fmt.Errorf("invalid --start (want YYYY-MM-DD HH:MM): %w", err)
			}
			req.EndDate, err = time.Parse("2006-01-02 15:04", end)
			if err != nil {
				return fmt.Errorf("invalid --end (want YYYY-MM-DD HH:MM): %w", err)
			}
			req.MaxParticipants = capacity

			ev, err := app.Gateway.Client().CreateEvent(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Event #%d created (status: %s, awaiting moderation)\n", ev.ID, ev.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "Event title")
	cmd.Flags().StringVar(&req.Description, "description", "", "Event description")
	cmd.Flags().StringVar(&start, "start", "", "Start time (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&req.Location, "location", "", "Event location")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "Maximum participants")
	cmd.Flags().StringVar(&req.EventType, "type", "", "Event type")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

func eventIDArg(args []string) (int, error) {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid event id %q", args[0])
	}
	return id, nil
}

func newEventsJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Join an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := eventIDArg(args)
			if err != nil {
				return err
			}
			if _, err := app.Gateway.Client().Participate(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Joined event #%d\n", id)
			return nil
		},
	}
}

func newEventsLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <id>",
		Short: "Withdraw from an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := eventIDArg(args)
			if err != nil {
				return err
			}
			if err := app.Gateway.Client().CancelParticipation(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Left event #%d\n", id)
			return nil
		},
	}
}

func newEventsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event you organize",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := eventIDArg(args)
			if err != nil {
				return err
			}
			if err := app.Gateway.Client().DeleteEvent(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted event #%d\n", id)
			return nil
		},
	}
}
