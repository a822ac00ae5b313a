// Package store connects to the data store and manages timers, log
// entries, and todos
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/tl/internal/apperr"
	"github.com/ayoisaiah/tl/internal/models"
	"github.com/ayoisaiah/tl/internal/osutil"
)

const (
	timersBucket  = "timers"
	entriesBucket = "entries"
	todosBucket   = "todos"
	schemaBucket  = "schema"
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// itob converts an id to a fixed-width big-endian key so that bucket
// iteration follows id order.
func itob(id uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, id)

	return b
}

// wrapErr passes sentinel errors through untouched and marks everything
// else as a database failure with the cause attached.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}

	return errDatabase.Wrap(err)
}

func (c *Client) CreateTimer(t *models.Timer) error {
	err := c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(timersBucket))

		id, err := b.NextSequence()
		if err != nil {
			return err
		}

		t.ID = id

		value, err := json.Marshal(t)
		if err != nil {
			return err
		}

		return b.Put(itob(id), value)
	})

	return wrapErr(err)
}

func (c *Client) UpdateTimer(t *models.Timer) error {
	return c.UpdateTimers(t)
}

func (c *Client) UpdateTimers(timers ...*models.Timer) error {
	err := c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(timersBucket))

		for _, t := range timers {
			value, err := json.Marshal(t)
			if err != nil {
				return err
			}

			if err := b.Put(itob(t.ID), value); err != nil {
				return err
			}
		}

		return nil
	})

	return wrapErr(err)
}

func (c *Client) DeleteTimer(id uint64) error {
	err := c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(timersBucket))

		if b.Get(itob(id)) == nil {
			return ErrTimerNotFound.Fmt(id)
		}

		return b.Delete(itob(id))
	})

	return wrapErr(err)
}

func (c *Client) Timer(id uint64) (*models.Timer, error) {
	var t models.Timer

	err := c.View(func(tx *bolt.Tx) error {
		value := tx.Bucket([]byte(timersBucket)).Get(itob(id))
		if value == nil {
			return ErrTimerNotFound.Fmt(id)
		}

		return json.Unmarshal(value, &t)
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	return &t, nil
}

func (c *Client) Timers() ([]*models.Timer, error) {
	var timers []*models.Timer

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(timersBucket)).ForEach(func(_, v []byte) error {
			var t models.Timer

			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}

			timers = append(timers, &t)

			return nil
		})
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	return timers, nil
}

// StopTimer removes a timer and appends its log entry in one transaction
// so that a failure on either side leaves the store unchanged.
func (c *Client) StopTimer(id uint64, entry *models.LogEntry) error {
	err := c.Update(func(tx *bolt.Tx) error {
		tb := tx.Bucket([]byte(timersBucket))

		if tb.Get(itob(id)) == nil {
			return ErrTimerNotFound.Fmt(id)
		}

		if err := tb.Delete(itob(id)); err != nil {
			return err
		}

		return createEntry(tx, entry)
	})

	return wrapErr(err)
}

func createEntry(tx *bolt.Tx, entry *models.LogEntry) error {
	b := tx.Bucket([]byte(entriesBucket))

	id, err := b.NextSequence()
	if err != nil {
		return err
	}

	entry.ID = id

	value, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return b.Put(itob(id), value)
}

func (c *Client) CreateEntry(e *models.LogEntry) error {
	err := c.Update(func(tx *bolt.Tx) error {
		return createEntry(tx, e)
	})

	return wrapErr(err)
}

func (c *Client) Entry(id uint64) (*models.LogEntry, error) {
	var e models.LogEntry

	err := c.View(func(tx *bolt.Tx) error {
		value := tx.Bucket([]byte(entriesBucket)).Get(itob(id))
		if value == nil {
			return ErrEntryNotFound.Fmt(id)
		}

		return json.Unmarshal(value, &e)
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	return &e, nil
}

func (c *Client) Entries(
	startTime, endTime time.Time,
) ([]*models.LogEntry, error) {
	var entries []*models.LogEntry

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(entriesBucket)).
			ForEach(func(_, v []byte) error {
				var e models.LogEntry

				if err := json.Unmarshal(v, &e); err != nil {
					return err
				}

				if e.StartTime.Before(startTime) || e.StartTime.After(endTime) {
					return nil
				}

				entries = append(entries, &e)

				return nil
			})
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	return entries, nil
}

func (c *Client) DeleteEntry(id uint64) error {
	err := c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(entriesBucket))

		if b.Get(itob(id)) == nil {
			return ErrEntryNotFound.Fmt(id)
		}

		return b.Delete(itob(id))
	})

	return wrapErr(err)
}

func (c *Client) CreateTodo(td *models.Todo) error {
	err := c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(todosBucket))

		id, err := b.NextSequence()
		if err != nil {
			return err
		}

		td.ID = id

		value, err := json.Marshal(td)
		if err != nil {
			return err
		}

		return b.Put(itob(id), value)
	})

	return wrapErr(err)
}

func (c *Client) UpdateTodo(td *models.Todo) error {
	err := c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(todosBucket))

		value, err := json.Marshal(td)
		if err != nil {
			return err
		}

		return b.Put(itob(td.ID), value)
	})

	return wrapErr(err)
}

func (c *Client) Todo(id uint64) (*models.Todo, error) {
	var td models.Todo

	err := c.View(func(tx *bolt.Tx) error {
		value := tx.Bucket([]byte(todosBucket)).Get(itob(id))
		if value == nil {
			return ErrTodoNotFound.Fmt(id)
		}

		return json.Unmarshal(value, &td)
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	return &td, nil
}

func (c *Client) Todos() ([]*models.Todo, error) {
	var todos []*models.Todo

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(todosBucket)).ForEach(func(_, v []byte) error {
			var td models.Todo

			if err := json.Unmarshal(v, &td); err != nil {
				return err
			}

			todos = append(todos, &td)

			return nil
		})
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	return todos, nil
}

func (c *Client) DeleteTodo(id uint64) error {
	err := c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(todosBucket))

		if b.Get(itob(id)) == nil {
			return ErrTodoNotFound.Fmt(id)
		}

		return b.Delete(itob(id))
	})

	return wrapErr(err)
}

// openDB creates or opens a database and locks it. The lock makes every
// tl invocation the sole writer for its lifetime, which is what keeps two
// concurrent invocations from both observing no running timer and both
// starting one.
func openDB(pathToDB string) (*bolt.DB, error) {
	err := os.MkdirAll(filepath.Dir(pathToDB), osutil.DirPermission)
	if err != nil {
		return nil, err
	}

	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errDatabaseLocked
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist
	// already, then bring older databases up to the current layout.
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{
			timersBucket,
			entriesBucket,
			todosBucket,
			schemaBucket,
		} {
			_, err := tx.CreateBucketIfNotExists([]byte(name))
			if err != nil {
				return err
			}
		}

		return migrate(tx)
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	return &Client{
		db,
	}, nil
}
