package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selfheal-infra/remedy/notify"
	awsprovider "github.com/selfheal-infra/remedy/providers/aws"
	"github.com/selfheal-infra/remedy/remediation"
	"github.com/selfheal-infra/remedy/types"
)

var (
	triggerAlarm  string
	triggerState  string
	triggerReason string

	triggerCmd = &cobra.Command{
		Use:   "trigger",
		Short: "Run the remediation a CloudWatch alarm would trigger",
		RunE:  runTrigger,
	}
)

func init() {
	triggerCmd.Flags().StringVar(&triggerAlarm, "alarm", "", "alarm name (e.g. prod-cpu-utilization-high)")
	triggerCmd.Flags().StringVar(&triggerState, "state", "ALARM", "raw alarm state (ALARM or OK)")
	triggerCmd.Flags().StringVar(&triggerReason, "reason", "manual trigger", "alarm state reason")
	_ = triggerCmd.MarkFlagRequired("alarm")
	rootCmd.AddCommand(triggerCmd)
}

func runTrigger(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := consoleLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.FleetName == "" {
		return fmt.Errorf("fleet name is required (set ASG_NAME or fleet_name)")
	}

	clients, err := awsprovider.NewClients(ctx, cfg.Region)
	if err != nil {
		return err
	}

	alarmEvent := types.AlarmEvent{
		Name:   triggerAlarm,
		State:  types.ParseAlarmState(triggerState),
		Reason: triggerReason,
	}

	action, ok := remediation.Route(alarmEvent, cfg.FleetName)
	if !ok {
		cmd.Printf("alarm %s is not firing, nothing to do\n", triggerAlarm)
		return nil
	}

	notifier := notify.NewAdvisoryNotifier(clients.SNS, cfg.SNSTopicARN, cfg.ProjectName, cfg.Environment, logger)
	engine := remediation.NewEngine(clients.AutoScaling, clients.EC2, clients.SSM, notifier, nil, logger)

	outcome := engine.Run(ctx, action)
	cmd.Printf("action=%s fleet=%s outcome=%s\n", action.Kind, action.Fleet, outcome)
	return nil
}
