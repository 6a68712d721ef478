package bot

import (
	"fmt"
	"strings"

	"github.com/assistantbot/contactbook/internal/contact"
	"github.com/assistantbot/contactbook/internal/directory"
)

func (b *Bot) addContact(args []string) (string, error) {
	name, phone := args[0], args[1]

	record, ok := b.directory.Lookup(name)
	if !ok {
		record = contact.NewRecord(name)
	}
	if err := record.AddPhone(phone); err != nil {
		return "", err
	}
	b.directory.Upsert(record)

	return fmt.Sprintf("Contact %s updated.", name), nil
}

func (b *Bot) changeContact(args []string) (string, error) {
	name, oldPhone, newPhone := args[0], args[1], args[2]

	record, ok := b.directory.Lookup(name)
	if !ok {
		return "", directory.ErrContactNotFound
	}
	if err := record.ChangePhone(oldPhone, newPhone); err != nil {
		return "", err
	}

	return fmt.Sprintf("Phone number for %s updated.", name), nil
}

func (b *Bot) showPhone(args []string) (string, error) {
	name := args[0]

	record, ok := b.directory.Lookup(name)
	if !ok {
		return "", directory.ErrContactNotFound
	}

	return fmt.Sprintf("%s: %s", name, record.PhoneList()), nil
}

func (b *Bot) showAll([]string) (string, error) {
	if b.directory.Len() == 0 {
		return "No contacts saved.", nil
	}

	lines := make([]string, 0, b.directory.Len())
	for _, record := range b.directory.Records() {
		lines = append(lines, record.String())
	}

	return strings.Join(lines, "\n"), nil
}

func (b *Bot) addBirthday(args []string) (string, error) {
	name, birthday := args[0], args[1]

	record, ok := b.directory.Lookup(name)
	if !ok {
		record = contact.NewRecord(name)
		b.directory.Upsert(record)
	}
	if err := record.SetBirthday(birthday); err != nil {
		return "", err
	}

	return fmt.Sprintf("Birthday added for %s.", name), nil
}

func (b *Bot) showBirthday(args []string) (string, error) {
	name := args[0]

	record, ok := b.directory.Lookup(name)
	if !ok {
		return "", directory.ErrContactNotFound
	}

	birthday, ok := record.Birthday()
	if !ok {
		return fmt.Sprintf("No birthday set for %s.", name), nil
	}

	return fmt.Sprintf("%s's birthday: %s", name, birthday), nil
}

func (b *Bot) upcomingBirthdays([]string) (string, error) {
	upcoming := b.directory.UpcomingBirthdays(b.now())
	if len(upcoming) == 0 {
		return "No upcoming birthdays.", nil
	}

	lines := make([]string, 0, len(upcoming))
	for _, reminder := range upcoming {
		lines = append(lines, fmt.Sprintf("%s: %s", reminder.Name, reminder.Date))
	}

	return strings.Join(lines, "\n"), nil
}
