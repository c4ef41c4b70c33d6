package remediation

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/selfheal-infra/remedy/types"
)

const runShellScriptDocument = "AWS-RunShellScript"

// clearCacheCommands flush filesystem buffers and attempt to drop the OS
// page cache; the drop step tolerates failure.
var clearCacheCommands = []string{
	`echo "Clearing memory caches..."`,
	`sync`,
	`echo 1 > /proc/sys/vm/drop_caches || true`,
	`echo "Cache cleared"`,
}

// cleanDiskCommands remove temp files, rotated logs, and journal entries
// older than 7 days. Every step is best-effort.
var cleanDiskCommands = []string{
	`echo "Cleaning disk space..."`,
	`find /tmp -type f -atime +7 -delete || true`,
	`find /var/log -type f -name "*.log.*" -mtime +7 -delete || true`,
	`journalctl --vacuum-time=7d || true`,
	`echo "Disk cleanup completed"`,
}

// clearCache issues the cache-drop sequence to every in-service member and
// sends one summary advisory regardless of individual outcomes.
func (e *Engine) clearCache(ctx context.Context, fleet string) error {
	instances, done, err := e.fleetInstances(ctx, fleet)
	if err != nil || done {
		return err
	}

	count := e.sendCommands(ctx, instances, clearCacheCommands, "Clear memory caches - self-healing")
	e.metrics.RecordInstances(ctx, string(types.ActionClearCache), count)
	e.notifier.Notify(ctx, fmt.Sprintf("Remediation: Cleared memory caches on %d instances due to high memory usage", count))
	return nil
}

// cleanDisk issues the disk-cleanup sequence to every in-service member and
// sends one summary advisory regardless of individual outcomes.
func (e *Engine) cleanDisk(ctx context.Context, fleet string) error {
	instances, done, err := e.fleetInstances(ctx, fleet)
	if err != nil || done {
		return err
	}

	count := e.sendCommands(ctx, instances, cleanDiskCommands, "Disk cleanup - self-healing")
	e.metrics.RecordInstances(ctx, string(types.ActionCleanDisk), count)
	e.notifier.Notify(ctx, fmt.Sprintf("Remediation: Cleaned disk space on %d instances", count))
	return nil
}

// sendCommands issues the sequence to each instance individually.
// Per-instance failures are logged and skipped, never fatal to the batch.
func (e *Engine) sendCommands(ctx context.Context, instances []string, commands []string, comment string) int {
	for _, id := range instances {
		_, err := e.ssm.SendCommand(ctx, &ssm.SendCommandInput{
			InstanceIds:  []string{id},
			DocumentName: aws.String(runShellScriptDocument),
			Parameters:   map[string][]string{"commands": commands},
			Comment:      aws.String(comment),
		})
		if err != nil {
			e.logger.Warn().Err(err).Str("instance_id", id).Msg("failed to send command, skipping instance")
			continue
		}
		e.logger.Debug().Str("instance_id", id).Msg("command sent")
	}
	return len(instances)
}
