package services

import (
	"context"
	"log"
	"math/rand"
	"time"
)

// Holiday is one fixed calendar entry. Lunar-calendar holidays carry the
// current year's Gregorian date and need a manual yearly update; that is
// an external data dependency of this table, not something computed here.
type Holiday struct {
	Name  string
	Month time.Month
	Day   int
	Title string
	Body  string
}

var holidays = []Holiday{
	{
		Name:  "new_year",
		Month: time.January,
		Day:   1,
		Title: "🎉 Happy New Year",
		Body:  "Wishing you a year full of progress. Plan it, one day at a time, with DayFlow.",
	},
	{
		Name:  "yennayer",
		Month: time.January,
		Day:   12,
		Title: "🌾 Happy Yennayer",
		Body:  "Assegas amegaz! May the new Amazigh year bring you abundance.",
	},
	{
		Name: "ramadan_start",
		// changing every year
		Month: time.February,
		Day:   17,
		Title: "🌙 Ramadan Mubarak",
		Body:  "A blessed month ahead. Let DayFlow help you keep your days organized.",
	},
	{
		Name: "eid_fitr",
		// changing every year
		Month: time.March,
		Day:   19,
		Title: "🎊 Eid Mubarak",
		Body:  "Eid Fitr Mubarak! May it be full of joy and rest.",
	},
	{
		Name: "eid_adha",
		// changing every year
		Month: time.May,
		Day:   26,
		Title: "🐑 Eid Adha Mubarak",
		Body:  "Wishing you and your family a blessed and happy Eid.",
	},
	{
		Name:  "independence_day",
		Month: time.July,
		Day:   5,
		Title: "🇩🇿 Independence Day",
		Body:  "A historic day to be proud of. Happy Independence Day!",
	},
	{
		Name: "ashura",
		// changing every year
		Month: time.July,
		Day:   6,
		Title: "🕌 Ashura",
		Body:  "A blessed day of reflection and fasting.",
	},
	{
		Name:  "revolution_day",
		Month: time.November,
		Day:   1,
		Title: "🇩🇿 Revolution Day",
		Body:  "Glory to the martyrs. A great day in our history.",
	},
	{
		Name: "prophet_birthday",
		// changing every year
		Month: time.September,
		Day:   15,
		Title: "🌸 Mawlid",
		Body:  "A blessed day of remembrance.",
	},
	{
		Name:  "year_end",
		Month: time.December,
		Day:   31,
		Title: "✨ Year's End",
		Body:  "A new year is around the corner. Review what you achieved and set your next goals.",
	},
}

var reengagementMessages = []PushMessage{
	{
		Title: "👋 We missed you!",
		Body:  "You've been away for a while. Your tasks are still waiting — let's get back into the routine.",
	},
	{
		Title: "🎯 Ready to get back on track?",
		Body:  "Good habits start with one small step. Open DayFlow and finish a single task today.",
	},
	{
		Title: "💪 Don't break the chain!",
		Body:  "Consistency is the secret. Come back and keep building your habits, one day at a time.",
	},
	{
		Title: "📝 Your goals are still here",
		Body:  "Life gets busy, but your plans deserve a moment. Let's map out the next step!",
	},
}

// HolidayResult reports whether today's dispatch matched a holiday and,
// if so, how the broadcast went.
type HolidayResult struct {
	Sent    bool        `json:"sent"`
	Reason  string      `json:"reason,omitempty"`
	Holiday string      `json:"holiday,omitempty"`
	Result  *SendResult `json:"result,omitempty"`
}

// ReengagementResult counts successful sends against the audience size.
type ReengagementResult struct {
	Sent  int `json:"sent"`
	Total int `json:"total"`
}

// CampaignRunner is what the admin routes and the scheduler drive.
type CampaignRunner interface {
	SendHolidayGreetings(ctx context.Context) (*HolidayResult, error)
	SendReengagementNotifications(ctx context.Context, daysInactive int) (*ReengagementResult, error)
	SendAnnouncement(ctx context.Context, title, body string, data map[string]string) (*SendResult, error)
}

// CampaignService runs the scheduled engagement campaigns. It holds no
// state of its own; each call is driven entirely by the clock and the
// push service.
type CampaignService struct {
	push PushService
	now  func() time.Time
}

var _ CampaignRunner = (*CampaignService)(nil)

func NewCampaignService(push PushService) *CampaignService {
	return &CampaignService{push: push, now: time.Now}
}

func holidayFor(month time.Month, day int) *Holiday {
	for i := range holidays {
		if holidays[i].Month == month && holidays[i].Day == day {
			return &holidays[i]
		}
	}
	return nil
}

// SendHolidayGreetings broadcasts today's holiday greeting, if any, to
// the "holidays" topic. On a non-holiday date no delivery call is made.
func (s *CampaignService) SendHolidayGreetings(ctx context.Context) (*HolidayResult, error) {
	today := s.now()
	holiday := holidayFor(today.Month(), today.Day())
	if holiday == nil {
		return &HolidayResult{Sent: false, Reason: "No holiday today"}, nil
	}

	log.Printf("sending %s greetings", holiday.Name)
	result, err := s.push.SendToTopic(ctx, "holidays", PushMessage{
		Title: holiday.Title,
		Body:  holiday.Body,
		Data: map[string]string{
			"type":    "holiday_greeting",
			"holiday": holiday.Name,
		},
	})
	if err != nil {
		return nil, err
	}
	return &HolidayResult{Sent: true, Holiday: holiday.Name, Result: result}, nil
}

// SendReengagementNotifications picks one message from the pool at
// random and sends it to every user inactive past the cutoff, one user
// at a time. A failed send does not abort the remaining audience.
func (s *CampaignService) SendReengagementNotifications(ctx context.Context, daysInactive int) (*ReengagementResult, error) {
	if daysInactive <= 0 {
		daysInactive = 30
	}
	log.Printf("finding users inactive for %d days", daysInactive)

	inactive, err := s.push.GetInactiveUsers(ctx, daysInactive)
	if err != nil {
		return nil, err
	}
	log.Printf("found %d inactive users", len(inactive))
	if len(inactive) == 0 {
		return &ReengagementResult{Sent: 0, Total: 0}, nil
	}

	msg := reengagementMessages[rand.Intn(len(reengagementMessages))]
	msg.Data = map[string]string{
		"type":   "engagement",
		"reason": "inactive",
	}

	sent := 0
	for _, user := range inactive {
		result, err := s.push.SendToUser(ctx, user.UID, msg)
		if err != nil {
			log.Printf("re-engagement send to %s failed: %v", user.UID, err)
			continue
		}
		if result.Success {
			sent++
		}
	}
	return &ReengagementResult{Sent: sent, Total: len(inactive)}, nil
}

// SendAnnouncement broadcasts caller-supplied content to the
// "announcements" topic.
func (s *CampaignService) SendAnnouncement(ctx context.Context, title, body string, data map[string]string) (*SendResult, error) {
	payload := map[string]string{"type": "announcement"}
	for k, v := range data {
		payload[k] = v
	}
	return s.push.SendToTopic(ctx, "announcements", PushMessage{
		Title: title,
		Body:  body,
		Data:  payload,
	})
}
