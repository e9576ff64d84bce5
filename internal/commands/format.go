package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/storefront"
)

// rupiah formats an amount as "Rp 2.408.000".
func rupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return "Rp " + sign + b.String()
}

func parseMeals(raw string) ([]domain.MealType, error) {
	var out []domain.MealType
	for _, part := range splitList(raw) {
		m, ok := domain.ParseMealType(part)
		if !ok {
			return nil, fmt.Errorf("unknown meal type %q", part)
		}
		out = append(out, m)
	}
	return out, nil
}

func parseDays(raw string) ([]domain.DeliveryDay, error) {
	if strings.EqualFold(strings.TrimSpace(raw), "all") {
		return domain.DeliveryDays(), nil
	}
	var out []domain.DeliveryDay
	for _, part := range splitList(raw) {
		d, ok := domain.ParseDeliveryDay(part)
		if !ok {
			return nil, fmt.Errorf("unknown delivery day %q", part)
		}
		out = append(out, d)
	}
	return out, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid subscription id %q", arg)
	}
	return id, nil
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
)

func statusColor(s domain.SubscriptionStatus) *color.Color {
	switch s {
	case domain.SubscriptionActive:
		return color.New(color.FgGreen)
	case domain.SubscriptionPending:
		return color.New(color.FgYellow)
	case domain.SubscriptionPaused:
		return color.New(color.FgCyan)
	}
	return color.New(color.FgRed)
}

// reportAttempt prints a finished checkout attempt. An error outcome is
// returned so the command exits non-zero.
func reportAttempt(w io.Writer, res storefront.Result) error {
	switch {
	case res.State == storefront.StateAbandoned:
		yellow.Fprintf(w, "%s\n", res.Message)
		if res.SubscriptionID != 0 {
			fmt.Fprintf(w, "Subscription #%d is still pending. Run `seacatering pay %d` to try again.\n", res.SubscriptionID, res.SubscriptionID)
		}
	case res.Outcome == storefront.OutcomeSuccess:
		green.Fprintf(w, "%s\n", res.Message)
	case res.Outcome == storefront.OutcomePending:
		yellow.Fprintf(w, "%s\n", res.Message)
	default:
		if res.SubscriptionID != 0 {
			fmt.Fprintf(w, "Subscription #%d is pending. Run `seacatering pay %d` to retry the payment.\n", res.SubscriptionID, res.SubscriptionID)
		}
		return errors.New(res.Message)
	}
	return nil
}
