package store

import (
	"os"

	"github.com/assistantbot/contactbook/internal/contact"
	"github.com/assistantbot/contactbook/internal/directory"
	"github.com/goccy/go-yaml"
	"github.com/icinga/icingadb/pkg/logging"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Store persists a directory snapshot to a single YAML file. Each Save fully
// overwrites the previous snapshot.
type Store struct {
	path   string
	logger *logging.Logger
}

func NewStore(path string, logger *logging.Logger) *Store {
	return &Store{path: path, logger: logger}
}

type snapshot struct {
	Contacts []snapshotRecord `yaml:"contacts"`
}

type snapshotRecord struct {
	Name     string   `yaml:"name"`
	Phones   []string `yaml:"phones,omitempty"`
	Birthday string   `yaml:"birthday,omitempty"`
}

// Save writes all records of d to the snapshot file.
func (s *Store) Save(d *directory.Directory) error {
	var snap snapshot
	for _, record := range d.Records() {
		sr := snapshotRecord{Name: record.Name()}
		for _, phone := range record.Phones() {
			sr.Phones = append(sr.Phones, phone.String())
		}
		if birthday, ok := record.Birthday(); ok {
			sr.Birthday = birthday.String()
		}
		snap.Contacts = append(snap.Contacts, sr)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return errors.Wrap(err, "cannot create snapshot file")
	}

	e := yaml.NewEncoder(f)
	if err := e.Encode(&snap); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "cannot encode snapshot")
	}
	if err := e.Close(); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "cannot finish snapshot")
	}

	if err := f.Close(); err != nil {
		return errors.Wrap(err, "cannot close snapshot file")
	}

	s.logger.Debugw("Saved directory snapshot",
		zap.String("path", s.path), zap.Int("contacts", d.Len()))
	return nil
}

// Load reads the snapshot file and rebuilds the directory from it. A missing
// file yields a fresh empty directory; anything else that goes wrong is
// returned as an error for the caller to treat as fatal.
func (s *Store) Load() (*directory.Directory, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		s.logger.Debugw("No snapshot file, starting with an empty directory", zap.String("path", s.path))
		return directory.New(), nil
	} else if err != nil {
		return nil, errors.Wrap(err, "cannot open snapshot file")
	}
	defer func() { _ = f.Close() }()

	var snap snapshot
	if err := yaml.NewDecoder(f).Decode(&snap); err != nil {
		return nil, errors.Wrapf(err, "cannot decode snapshot %q", s.path)
	}

	// Rebuild through the validating constructors so that a tampered
	// snapshot cannot smuggle invalid phones or birthdays into memory.
	d := directory.New()
	for _, sr := range snap.Contacts {
		record := contact.NewRecord(sr.Name)
		for _, phone := range sr.Phones {
			if err := record.AddPhone(phone); err != nil {
				return nil, errors.Wrapf(err, "snapshot contact %q has an invalid phone %q", sr.Name, phone)
			}
		}
		if sr.Birthday != "" {
			if err := record.SetBirthday(sr.Birthday); err != nil {
				return nil, errors.Wrapf(err, "snapshot contact %q has an invalid birthday %q", sr.Name, sr.Birthday)
			}
		}
		d.Upsert(record)
	}

	s.logger.Debugw("Loaded directory snapshot",
		zap.String("path", s.path), zap.Int("contacts", d.Len()))
	return d, nil
}
