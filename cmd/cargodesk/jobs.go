package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/cargodesk/cargodesk/internal/app"
	"github.com/cargodesk/cargodesk/jobs"
)

// jobsCLI wraps manual management helpers for Asynq jobs.
type jobsCLI struct {
	client    *asynq.Client
	inspector *asynq.Inspector
}

func newJobsCLI(redisAddr string) *jobsCLI {
	opts := asynq.RedisClientOpt{Addr: redisAddr}
	return &jobsCLI{client: asynq.NewClient(opts), inspector: asynq.NewInspector(opts)}
}

func (c *jobsCLI) Close() error {
	return errors.Join(c.inspector.Close(), c.client.Close())
}

func (c *jobsCLI) trigger(ctx context.Context, name string) (*asynq.TaskInfo, error) {
	task, err := jobs.NewTask(name)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(jobs.QueueDefault))
}

func (c *jobsCLI) stats(out io.Writer) error {
	info, err := c.inspector.GetQueueInfo(jobs.QueueDefault)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "QUEUE\tPENDING\tACTIVE\tSCHEDULED\tRETRY\tFAILED TODAY")
	fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n", info.Queue, info.Pending, info.Active, info.Scheduled, info.Retry, info.Failed)
	return tw.Flush()
}

func (c *jobsCLI) scheduled(out io.Writer, size int) error {
	if size <= 0 {
		size = 10
	}
	tasks, err := c.inspector.ListScheduledTasks(jobs.QueueDefault, asynq.PageSize(size), asynq.Page(1))
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tNEXT RUN")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Type, t.NextProcessAt.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

func newJobsCommand() *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect and trigger background jobs",
	}

	withCLI := func(run func(cmd *cobra.Command, c *jobsCLI, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			c := newJobsCLI(cfg.RedisAddr)
			defer c.Close()
			return run(cmd, c, args)
		}
	}

	trigger := &cobra.Command{
		Use:       "trigger TASK",
		Short:     "Enqueue a task with its default payload",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{jobs.TaskFXRefresh, jobs.TaskAuditPrune},
		RunE: withCLI(func(cmd *cobra.Command, c *jobsCLI, args []string) error {
			info, err := c.trigger(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s as %s\n", info.Type, info.ID)
			return nil
		}),
	}
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show queue counters",
		Args:  cobra.NoArgs,
		RunE: withCLI(func(cmd *cobra.Command, c *jobsCLI, _ []string) error {
			return c.stats(cmd.OutOrStdout())
		}),
	}
	scheduled := &cobra.Command{
		Use:   "scheduled",
		Short: "List scheduled tasks",
		Args:  cobra.NoArgs,
		RunE: withCLI(func(cmd *cobra.Command, c *jobsCLI, _ []string) error {
			return c.scheduled(cmd.OutOrStdout(), size)
		}),
	}
	scheduled.Flags().IntVar(&size, "size", 10, "number of tasks to list")

	cmd.AddCommand(trigger, stats, scheduled)
	return cmd
}
