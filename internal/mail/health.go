package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.io/infrasutra/mailbridge/internal/scripts"
)

const (
	ProbeMailRunning = "mail_running"
	ProbePermission  = "automation_permission"
	ProbeAccounts    = "accounts_configured"
	ProbeListing     = "mailbox_listing"
)

type probe struct {
	name   string
	script string
	// check inspects successful output and returns a detail line or an error.
	check func(output string) (string, error)
	// gate stops the sequence when the probe fails.
	gate bool
}

// HealthCheck runs the probes in order. A failure of any of the first three
// ends the check; the listing probe always runs once they pass.
func (c *Client) HealthCheck(ctx context.Context) HealthReport {
	probes := []probe{
		{
			name:   ProbeMailRunning,
			script: scripts.ProbeRunning(),
			gate:   true,
			check: func(output string) (string, error) {
				if strings.TrimSpace(output) != boolTrue {
					return "", errors.New("mail is not running")
				}
				return "Mail is running", nil
			},
		},
		{
			name:   ProbePermission,
			script: scripts.ProbePermission(),
			gate:   true,
			check: func(string) (string, error) {
				return "automation access granted", nil
			},
		},
		{
			name:   ProbeAccounts,
			script: scripts.ProbeAccounts(),
			gate:   true,
			check: func(output string) (string, error) {
				n := parseInt(output)
				if n == 0 {
					return "", errors.New("no mail accounts configured")
				}
				return fmt.Sprintf("%d account(s)", n), nil
			},
		},
		{
			name:   ProbeListing,
			script: scripts.ProbeListing(),
			check: func(output string) (string, error) {
				return fmt.Sprintf("inbox holds %d message(s)", parseInt(output)), nil
			},
		},
	}

	report := HealthReport{Healthy: true}
	for _, p := range probes {
		result := ProbeResult{Name: p.name}
		output, err := c.run(ctx, "health "+p.name, p.script, false)
		if err == nil {
			result.Detail, err = p.check(output)
		}
		if err != nil {
			result.Detail = err.Error()
			report.Healthy = false
		} else {
			result.OK = true
		}
		report.Probes = append(report.Probes, result)
		if !result.OK && p.gate {
			break
		}
	}
	c.logger.Info("health check", "healthy", report.Healthy, "probes", len(report.Probes))
	return report
}
