// Package report emails a summary of a finished matrix run to the
// people watching the scrape.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"headlinewatch/lib/pipeline"
	"headlinewatch/lib/wordfreq"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/codes"
)

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

type Config struct {
	Smtp       SmtpConfig `json:"smtp"`
	Recipients []string   `json:"recipients"`
}

type Mailer struct {
	config Config
}

func NewMailer(config Config) Mailer {
	return Mailer{config: config}
}

// Enabled reports whether the mailer has enough configuration to send
// anything. Runs work fine without it.
func (m Mailer) Enabled() bool {
	return m.config.Smtp.Server != "" && len(m.config.Recipients) > 0
}

func renderSubject(build string, results []pipeline.Result) string {
	return fmt.Sprintf(
		"El País scrape report: %d/%d passed (%s)",
		pipeline.Passed(results), len(results), build,
	)
}

func renderBody(build string, results []pipeline.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run report for build %s\n\n", build)
	fmt.Fprintf(&b, "%d/%d browser combos passed.\n\n", pipeline.Passed(results), len(results))

	for _, result := range results {
		fmt.Fprintf(&b, "[%s] %s\n", strings.ToUpper(string(result.Status)), result.Label)
		fmt.Fprintf(&b, "    %s\n", result.Reason)
		if !result.StartedAt.IsZero() && !result.FinishedAt.IsZero() {
			fmt.Fprintf(&b, "    took %s\n", result.FinishedAt.Sub(result.StartedAt).Round(time.Second))
		}
		if len(result.Repeated) > 0 {
			words := make([]string, 0, len(result.Repeated))
			for _, wc := range wordfreq.Ranked(result.Repeated) {
				words = append(words, fmt.Sprintf("%s (%d)", wc.Word, wc.Count))
			}
			fmt.Fprintf(&b, "    repeated words: %s\n", strings.Join(words, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Mailer) SendRunReport(ctx context.Context, build string, results []pipeline.Result) error {
	ctx, span := tracer.Start(ctx, "SendRunReport")
	defer span.End()

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Headline Watch <%s>", m.config.Smtp.EmailAddress)
	mail.To = m.config.Recipients
	mail.Subject = renderSubject(build, results)
	mail.Text = []byte(renderBody(build, results))

	addr := fmt.Sprintf("%s:%d", m.config.Smtp.Server, m.config.Smtp.Port)
	err := mail.Send(
		addr,
		smtp.PlainAuth("", m.config.Smtp.EmailAddress, m.config.Smtp.Password, m.config.Smtp.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return err
	}

	slog.InfoContext(
		ctx, "sent run report",
		"build", build,
		"recipients", len(m.config.Recipients),
	)
	return nil
}
