package kitchen

import (
	"fmt"
	"time"
)

// minutesBetween rounds to the nearest minute.
func minutesBetween(from, to time.Time) int {
	return int(to.Sub(from).Round(time.Minute) / time.Minute)
}

// elapsedMinutes truncates, as the live counters do.
func elapsedMinutes(from, now time.Time) int {
	return int(now.Sub(from) / time.Minute)
}

type Comparison struct {
	Text   string `json:"text"`
	OnTime bool   `json:"onTime"`
}

// CompareToEstimate is nil until the order has an actual time.
func CompareToEstimate(order Order) *Comparison {
	if order.ActualTime == nil {
		return nil
	}
	diff := *order.ActualTime - order.EstimatedTime
	switch {
	case diff == 0:
		return &Comparison{Text: "Tepat waktu", OnTime: true}
	case diff > 0:
		return &Comparison{Text: fmt.Sprintf("+%dm dari estimasi", diff)}
	default:
		return &Comparison{Text: fmt.Sprintf("%dm lebih cepat", -diff), OnTime: true}
	}
}

func ProcessingTime(order Order, now time.Time) string {
	if order.ActualTime != nil {
		return fmt.Sprintf("%dm (Estimasi: %dm)", *order.ActualTime, order.EstimatedTime)
	}
	return fmt.Sprintf("Sedang: %dm (Estimasi: %dm)", elapsedMinutes(order.OrderTime, now), order.EstimatedTime)
}

// ItemProcessingMinutes is the item's actual time once ready, otherwise the time since ordering.
func ItemProcessingMinutes(item Item, orderTime, now time.Time) int {
	if item.ActualTime != nil {
		return *item.ActualTime
	}
	return elapsedMinutes(orderTime, now)
}

func Since(t, now time.Time) string {
	mins := elapsedMinutes(t, now)
	switch {
	case mins < 1:
		return "Baru saja"
	case mins < 60:
		return fmt.Sprintf("%dm yang lalu", mins)
	default:
		return fmt.Sprintf("%dj %dm yang lalu", mins/60, mins%60)
	}
}
