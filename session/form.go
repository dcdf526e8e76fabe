package session

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/tabwork/gridbase/log"
	"github.com/tabwork/gridbase/record"
	"github.com/tabwork/gridbase/store"
	"github.com/tabwork/gridbase/validate"
)

// RecordForm is the standalone create/edit form for a single record,
// independent of any page. In create mode the store assigns the id on
// submit; in edit mode the uniqueness check excludes the record's own
// stored email.
type RecordForm struct {
	store  *store.Store
	row    *Row
	create bool
}

// NewRecordForm opens a create form with the field defaults: registered
// today, role User, inactive.
func NewRecordForm(s *store.Store) *RecordForm {
	return &RecordForm{
		store: s,
		row: newRow(record.Record{
			RegisteredDate: time.Now().Format("2006-01-02"),
			Role:           record.RoleUser,
		}),
		create: true,
	}
}

// LoadRecordForm opens an edit form seeded from the stored record.
func LoadRecordForm(s *store.Store, id int) (*RecordForm, error) {
	r, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	return &RecordForm{
		store: s,
		row:   newRow(r),
	}, nil
}

// Record returns a copy of the form's current values.
func (f *RecordForm) Record() record.Record {
	return f.row.Buffer()
}

// SetField writes a typed value into the form and revalidates the field.
func (f *RecordForm) SetField(field string, value interface{}) error {
	if err := f.row.setField(field, value); err != nil {
		return err
	}
	f.row.validateField(field, f.store.AllEmails())
	return nil
}

// FieldErrors returns the form's current field error flags.
func (f *RecordForm) FieldErrors() map[string]validate.FieldError {
	return f.row.FieldErrors()
}

// Submit validates every field and commits. Create forms append a new
// record and return it with its assigned id; edit forms merge the full
// field set into the stored record. An invalid form blocks with the
// offending fields reported and nothing committed.
func (f *RecordForm) Submit() (record.Record, error) {
	f.row.validateAll(f.store.AllEmails())
	if !f.row.Valid() {
		var blocked *multierror.Error
		for field, code := range f.row.errs {
			blocked = multierror.Append(blocked, fmt.Errorf("%s: %s", field, code))
		}
		return record.Record{}, fmt.Errorf("%w: %s", ErrBlocked, blocked)
	}

	if f.create {
		created, err := f.store.Create(f.row.buffer)
		if err != nil {
			return record.Record{}, err
		}
		log.Debugf("form: created record %d", created.ID)
		return created, nil
	}

	if err := f.store.Update(f.row.ID(), f.row.fullPatch()); err != nil {
		return record.Record{}, err
	}
	log.Debugf("form: updated record %d", f.row.ID())
	return f.store.FindByID(f.row.ID())
}
