package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/selfheal-infra/remedy/notify"
	awsprovider "github.com/selfheal-infra/remedy/providers/aws"
	"github.com/selfheal-infra/remedy/types"
)

var (
	sendTitle    string
	sendMessage  string
	sendSeverity string

	sendCmd = &cobra.Command{
		Use:   "send",
		Short: "Send a notification through every configured channel",
		RunE:  runSend,
	}
)

func init() {
	sendCmd.Flags().StringVar(&sendTitle, "title", "", "notification title")
	sendCmd.Flags().StringVar(&sendMessage, "message", "", "notification message")
	sendCmd.Flags().StringVar(&sendSeverity, "severity", "", "severity (inferred from message when empty)")
	_ = sendCmd.MarkFlagRequired("message")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := consoleLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	clients, err := awsprovider.NewClients(ctx, cfg.Region)
	if err != nil {
		return err
	}

	notification := types.NewNotification()
	notification.Title = sendTitle
	if notification.Title == "" {
		notification.Title = cfg.DefaultTitle()
	}
	notification.Message = sendMessage
	notification.Source = types.SourceDirect
	if sendSeverity != "" {
		notification.Severity = types.ParseSeverity(sendSeverity)
	} else {
		notification.Severity = notify.ClassifySeverity(sendMessage)
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}
	channels := notify.FromConfig(cfg, httpClient, clients.SNS, clients.SES)
	if len(channels) == 0 {
		return fmt.Errorf("no notification channels configured")
	}

	fanout := notify.NewFanout(logger, channels...)
	results := fanout.Send(ctx, notification)

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}
