package scheduler

import (
	"context"
	"log"
	"time"

	"dayflow/services"
)

// Dispatch cadence, mirroring the operations cron table: holiday
// greetings every morning, the 7-day re-engagement sweep every evening,
// the 30-day sweep once a week.
const (
	holidayHour      = 9
	reengagementHour = 18
	weeklySweepHour  = 10
)

// StartScheduler launches the background dispatch loops. Each campaign
// failure is logged and the loop keeps running; the admin routes remain
// available to re-trigger a missed dispatch by hand.
func StartScheduler(campaigns services.CampaignRunner) {
	go runDaily(holidayHour, func(ctx context.Context, _ time.Time) {
		if _, err := campaigns.SendHolidayGreetings(ctx); err != nil {
			log.Printf("scheduled holiday greeting failed: %v", err)
		}
	})
	go runDaily(reengagementHour, func(ctx context.Context, _ time.Time) {
		if _, err := campaigns.SendReengagementNotifications(ctx, 7); err != nil {
			log.Printf("scheduled 7-day re-engagement failed: %v", err)
		}
	})
	go runDaily(weeklySweepHour, func(ctx context.Context, now time.Time) {
		if now.Weekday() != time.Sunday {
			return
		}
		if _, err := campaigns.SendReengagementNotifications(ctx, 30); err != nil {
			log.Printf("scheduled 30-day re-engagement failed: %v", err)
		}
	})
}

func runDaily(hour int, job func(ctx context.Context, now time.Time)) {
	for {
		now := time.Now()
		time.Sleep(time.Until(nextAt(now, hour)))
		job(context.Background(), time.Now())
	}
}

// nextAt is the next occurrence of hour:00 strictly after now.
func nextAt(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
