package contact

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// BirthdayLayout is the only accepted birthday format: zero-padded day and
// month, four-digit year.
const BirthdayLayout = "02.01.2006"

var (
	ErrPhoneFormat    = errors.New("phone number must be 10 digits")
	ErrBirthdayFormat = errors.New("birthday must be in DD.MM.YYYY format")
	ErrPhoneNotFound  = errors.New("old phone number not found")
)

// Phone is a validated phone number, always exactly ten decimal digits.
type Phone string

func NewPhone(value string) (Phone, error) {
	if len(value) != 10 {
		return "", ErrPhoneFormat
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return "", ErrPhoneFormat
		}
	}

	return Phone(value), nil
}

func (p Phone) String() string {
	return string(p)
}

// Birthday is a validated calendar date. It keeps the original input string
// so that rendering round-trips exactly.
type Birthday struct {
	value string
	date  time.Time
}

func NewBirthday(value string) (Birthday, error) {
	date, err := time.Parse(BirthdayLayout, value)
	if err != nil {
		return Birthday{}, ErrBirthdayFormat
	}

	return Birthday{value: value, date: date}, nil
}

func (b Birthday) String() string {
	return b.value
}

// Date returns the parsed birth date at midnight UTC.
func (b Birthday) Date() time.Time {
	return b.date
}

// Record is a single contact: a name, an ordered list of phone numbers and an
// optional birthday. Phone numbers are not deduplicated, the same number may
// appear more than once.
type Record struct {
	name     string
	phones   []Phone
	birthday *Birthday
}

func NewRecord(name string) *Record {
	return &Record{name: name}
}

func (r *Record) Name() string {
	return r.name
}

// Phones returns the phone numbers in insertion order.
func (r *Record) Phones() []Phone {
	return r.phones
}

// Birthday returns the stored birthday, if one has been set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}

	return *r.birthday, true
}

// AddPhone validates value and appends it to the record's phone numbers.
func (r *Record) AddPhone(value string) error {
	phone, err := NewPhone(value)
	if err != nil {
		return err
	}

	r.phones = append(r.phones, phone)
	return nil
}

// ChangePhone replaces the first phone number equal to old with a validated
// phone built from value. Returns ErrPhoneNotFound if old is not present.
func (r *Record) ChangePhone(old, value string) error {
	for i, phone := range r.phones {
		if phone.String() == old {
			replacement, err := NewPhone(value)
			if err != nil {
				return err
			}

			r.phones[i] = replacement
			return nil
		}
	}

	return ErrPhoneNotFound
}

// SetBirthday validates value and overwrites any previously set birthday.
func (r *Record) SetBirthday(value string) error {
	birthday, err := NewBirthday(value)
	if err != nil {
		return err
	}

	r.birthday = &birthday
	return nil
}

// PhoneList renders the phone numbers as a comma-separated list, or a
// placeholder when the record has none.
func (r *Record) PhoneList() string {
	if len(r.phones) == 0 {
		return "no phones"
	}

	values := make([]string, 0, len(r.phones))
	for _, phone := range r.phones {
		values = append(values, phone.String())
	}

	return strings.Join(values, ", ")
}

func (r *Record) String() string {
	birthday := "no birthday"
	if r.birthday != nil {
		birthday = r.birthday.String()
	}

	return fmt.Sprintf("%s: %s, Birthday: %s", r.name, r.PhoneList(), birthday)
}
