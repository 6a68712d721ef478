package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/assistantbot/contactbook/internal/contact"
	"github.com/assistantbot/contactbook/internal/directory"
	"github.com/assistantbot/contactbook/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	d := directory.New()

	john := contact.NewRecord("John")
	require.NoError(t, john.AddPhone("1234567890"))
	require.NoError(t, john.AddPhone("0987654321"))
	require.NoError(t, john.SetBirthday("25.12.1990"))
	d.Upsert(john)

	jane := contact.NewRecord("Jane")
	require.NoError(t, jane.AddPhone("5555555555"))
	d.Upsert(jane)

	noPhones := contact.NewRecord("Ghost")
	require.NoError(t, noPhones.SetBirthday("01.01.2000"))
	d.Upsert(noPhones)

	s := NewStore(filepath.Join(t.TempDir(), "addressbook.yml"), testutils.NewTestLogger(t))
	require.NoError(t, s.Save(d))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, d.Len(), loaded.Len())

	for _, want := range d.Records() {
		got, ok := loaded.Lookup(want.Name())
		require.True(t, ok, "record %q should survive the round trip", want.Name())
		assert.Equal(t, want.Phones(), got.Phones())
		assert.Equal(t, want.String(), got.String())
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	s := NewStore(filepath.Join(t.TempDir(), "does-not-exist.yml"), testutils.NewTestLogger(t))
	d, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())
}

func TestSaveOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "addressbook.yml")
	s := NewStore(path, testutils.NewTestLogger(t))

	d := directory.New()
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		record := contact.NewRecord(name)
		require.NoError(t, record.AddPhone("1234567890"))
		d.Upsert(record)
	}
	require.NoError(t, s.Save(d))

	smaller := directory.New()
	smaller.Upsert(contact.NewRecord("Dave"))
	require.NoError(t, s.Save(smaller))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
	_, ok := loaded.Lookup("Dave")
	assert.True(t, ok)
}

func TestLoadRejectsInvalidSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("Garbage", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "addressbook.yml")
		require.NoError(t, os.WriteFile(path, []byte(":\n  - not yaml at all ["), 0o600))

		_, err := NewStore(path, testutils.NewTestLogger(t)).Load()
		assert.Error(t, err)
	})

	t.Run("InvalidPhone", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "addressbook.yml")
		snapshot := "contacts:\n- name: John\n  phones:\n  - \"123\"\n"
		require.NoError(t, os.WriteFile(path, []byte(snapshot), 0o600))

		_, err := NewStore(path, testutils.NewTestLogger(t)).Load()
		assert.ErrorIs(t, err, contact.ErrPhoneFormat)
	})

	t.Run("InvalidBirthday", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "addressbook.yml")
		snapshot := "contacts:\n- name: John\n  birthday: 1990-12-25\n"
		require.NoError(t, os.WriteFile(path, []byte(snapshot), 0o600))

		_, err := NewStore(path, testutils.NewTestLogger(t)).Load()
		assert.ErrorIs(t, err, contact.ErrBirthdayFormat)
	})
}
