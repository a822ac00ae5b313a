package store

import (
	"encoding/json"
	"strconv"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/tl/internal/models"
)

// schemaVersion is the current database layout version.
const schemaVersion = 2

// legacyTimerBucket held the single active timer in databases created
// before timers became a keyed collection.
const legacyTimerBucket = "timer"

var versionKey = []byte("version")

func migrate(tx *bolt.Tx) error {
	b := tx.Bucket([]byte(schemaBucket))

	current := 0

	if v := b.Get(versionKey); v != nil {
		n, err := strconv.Atoi(string(v))
		if err != nil {
			return err
		}

		current = n
	}

	if current >= schemaVersion {
		return nil
	}

	if current < 2 {
		if err := migrateLegacyTimer(tx); err != nil {
			return err
		}
	}

	return b.Put(versionKey, []byte(strconv.Itoa(schemaVersion)))
}

// migrateLegacyTimer moves the single-record timer layout into the timers
// collection, preserving its content under a freshly assigned id.
func migrateLegacyTimer(tx *bolt.Tx) error {
	legacy := tx.Bucket([]byte(legacyTimerBucket))
	if legacy == nil {
		return nil
	}

	value := legacy.Get([]byte("active"))
	if value != nil {
		b := tx.Bucket([]byte(timersBucket))

		id, err := b.NextSequence()
		if err != nil {
			return err
		}

		var t models.Timer

		if err := json.Unmarshal(value, &t); err != nil {
			return err
		}

		t.ID = id

		newValue, err := json.Marshal(&t)
		if err != nil {
			return err
		}

		if err := b.Put(itob(id), newValue); err != nil {
			return err
		}
	}

	return tx.DeleteBucket([]byte(legacyTimerBucket))
}
