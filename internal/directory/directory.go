package directory

import (
	"time"

	"github.com/assistantbot/contactbook/internal/contact"
	"github.com/pkg/errors"
	"github.com/teambition/rrule-go"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrContactNotFound is returned by operations requiring an existing record.
var ErrContactNotFound = errors.New("contact not found")

// upcomingWindow is the forward range, inclusive of today, within which a
// birthday produces a reminder.
const upcomingWindow = 7 * 24 * time.Hour

// Directory holds all contact records, keyed by name. The last Upsert for a
// name wins.
type Directory struct {
	records map[string]*contact.Record
}

func New() *Directory {
	return &Directory{records: make(map[string]*contact.Record)}
}

func (d *Directory) Len() int {
	return len(d.records)
}

// Upsert inserts record, replacing any previous record with the same name.
func (d *Directory) Upsert(record *contact.Record) {
	d.records[record.Name()] = record
}

// Lookup returns the record stored under name, if any.
func (d *Directory) Lookup(name string) (*contact.Record, bool) {
	record, ok := d.records[name]
	return record, ok
}

// Records returns all records sorted by name, for deterministic listing.
func (d *Directory) Records() []*contact.Record {
	names := maps.Keys(d.records)
	slices.Sort(names)

	records := make([]*contact.Record, 0, len(names))
	for _, name := range names {
		records = append(records, d.records[name])
	}

	return records
}

// Reminder is one upcoming birthday: the contact's name and the day to
// congratulate them on, formatted DD.MM.YYYY.
type Reminder struct {
	Name string
	Date string
}

// UpcomingBirthdays returns a reminder for every contact whose next birthday
// falls within the next seven days, today included. Occurrences landing on a
// Saturday or Sunday are shifted forward to the following Monday. The order
// of the returned reminders is unspecified.
func (d *Directory) UpcomingBirthdays(today time.Time) []Reminder {
	today = truncateToDay(today)

	var upcoming []Reminder
	for _, record := range d.records {
		birthday, ok := record.Birthday()
		if !ok {
			continue
		}

		next, err := nextOccurrence(birthday.Date(), today)
		if err != nil || next.IsZero() {
			continue
		}

		if next.Sub(today) > upcomingWindow {
			continue
		}

		upcoming = append(upcoming, Reminder{
			Name: record.Name(),
			Date: shiftOffWeekend(next).Format(contact.BirthdayLayout),
		})
	}

	return upcoming
}

// nextOccurrence computes the first anniversary of birthdate at or after
// today via a yearly recurrence rule. A February 29 birthdate only recurs in
// leap years.
func nextOccurrence(birthdate, today time.Time) (time.Time, error) {
	rule, err := rrule.NewRRule(rrule.ROption{Freq: rrule.YEARLY, Dtstart: birthdate})
	if err != nil {
		return time.Time{}, err
	}

	return rule.After(today, true), nil
}

// shiftOffWeekend moves Saturday occurrences by two days and Sunday
// occurrences by one, both onto the following Monday. Note that Go numbers
// Sunday as weekday 0, not 6.
func shiftOffWeekend(date time.Time) time.Time {
	switch date.Weekday() {
	case time.Saturday:
		return date.AddDate(0, 0, 2)
	case time.Sunday:
		return date.AddDate(0, 0, 1)
	default:
		return date
	}
}

// truncateToDay normalizes t to midnight UTC of its calendar date so it
// compares cleanly against occurrences of parsed birth dates, which are
// midnight UTC as well.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
