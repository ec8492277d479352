// Package cli implements manual management helpers for the moodjournal
// binary.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mood-journal/mood-journal/jobs"

	"github.com/hibiken/asynq"
)

// RunJobs handles `moodjournal jobs <subcommand>`. Reclassification is
// deliberately manual: an operator enqueues a run once the classifier is
// known to be healthy again.
func RunJobs(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: moodjournal jobs reclassify [-owner <uuid>]")
		return 2
	}

	switch args[0] {
	case "reclassify":
		return runReclassify(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown jobs subcommand %q\n", args[0])
		return 2
	}
}

func runReclassify(args []string) int {
	fs := flag.NewFlagSet("reclassify", flag.ContinueOnError)
	owner := fs.String("owner", "", "restrict the run to one owner id")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	payload := jobs.ReclassifyPayload{}
	if *owner != "" {
		if _, err := uuid.Parse(*owner); err != nil {
			fmt.Fprintf(os.Stderr, "invalid owner id %q\n", *owner)
			return 2
		}
		payload.OwnerID = *owner
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	client := jobs.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer func() {
		_ = client.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	info, err := client.EnqueueReclassify(ctx, payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "enqueue reclassify: %v\n", err)
		return 1
	}
	fmt.Printf("enqueued %s (queue %s)\n", info.ID, info.Queue)
	return 0
}
