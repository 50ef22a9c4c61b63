package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/orchidsoft/taskgate/api"
	"github.com/orchidsoft/taskgate/timeutil"
)

func newLoginCommand(a **app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Authenticate and store the session locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimSpace(line)
			}

			if err := (*a).session.Login(cmd.Context(), username, password); err != nil {
				return err
			}

			profile := (*a).session.Profile()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", profile.Username, profile.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

func newLogoutCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and clear stored tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			(*a).session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newStatusCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if !(*a).session.CheckLoginStatus(cmd.Context()) {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}

			profile := (*a).session.Profile()
			fmt.Fprintf(out, "User:       %s\n", profile.Username)
			fmt.Fprintf(out, "Role:       %s\n", profile.Role)
			if profile.Department != nil {
				fmt.Fprintf(out, "Department: %s\n", profile.Department.Name)
			}

			info, err := (*a).session.TokenInfo()
			if err == nil && !info.ExpiresAt.IsZero() {
				fmt.Fprintf(out, "Token expires: %s\n", timeutil.FormatDateTime(info.ExpiresAt))
			}
			return nil
		},
	}
}

func newTasksCommand(a **app) *cobra.Command {
	tasks := &cobra.Command{
		Use:   "tasks",
		Short: "Task operations",
	}

	var mine bool
	var status string
	var page int

	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := (*a).requireLogin(ctx); err != nil {
				return err
			}

			opts := api.ListOptions{Page: page, Status: status}
			var (
				result *api.Page[api.Task]
				err    error
			)
			if mine {
				result, err = (*a).client.MyTasks(ctx, opts)
			} else {
				result, err = (*a).client.ListTasks(ctx, opts)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d tasks\n", result.Count)
			for _, task := range result.Results {
				deadline := ""
				if task.Deadline != nil {
					deadline = "  due " + timeutil.FormatDate(*task.Deadline)
				}
				fmt.Fprintf(out, "  #%d [%s] %s%s\n", task.ID, task.Status, task.Title, deadline)
			}
			return nil
		},
	}

	list.Flags().BoolVar(&mine, "mine", false, "only tasks where I participate")
	list.Flags().StringVar(&status, "status", "", "filter by status")
	list.Flags().IntVar(&page, "page", 0, "result page")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show task counts by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := (*a).requireLogin(ctx); err != nil {
				return err
			}

			s, err := (*a).client.GetTaskStatistics(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total:       %d\n", s.Total)
			fmt.Fprintf(out, "In progress: %d\n", s.InProgress)
			fmt.Fprintf(out, "Completed:   %d\n", s.Completed)
			fmt.Fprintf(out, "Overdue:     %d\n", s.Overdue)
			return nil
		},
	}

	tasks.AddCommand(list, stats)
	return tasks
}

func newNotificationsCommand(a **app) *cobra.Command {
	notifications := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "Notification operations",
	}

	unread := &cobra.Command{
		Use:   "unread",
		Short: "Show the unread notification count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := (*a).requireLogin(ctx); err != nil {
				return err
			}

			count, err := (*a).client.UnreadCount(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n", count)
			return nil
		},
	}

	markAll := &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := (*a).requireLogin(ctx); err != nil {
				return err
			}
			if err := (*a).client.MarkAllNotificationsRead(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Done")
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recent notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := (*a).requireLogin(ctx); err != nil {
				return err
			}

			page, err := (*a).client.ListNotifications(ctx, api.ListOptions{PageSize: 20})
			if err != nil {
				return err
			}
			if page.Count == 0 {
				return errors.New("no notifications")
			}

			out := cmd.OutOrStdout()
			for _, n := range page.Results {
				marker := " "
				if !n.IsRead {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s  %s\n", marker, timeutil.RelativeTime(n.CreatedAt, time.Now()), n.Title)
			}
			return nil
		},
	}

	notifications.AddCommand(unread, markAll, list)
	return notifications
}
