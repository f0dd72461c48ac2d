package storage

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
)

var rosterPrefix = []byte("roster:")

// BadgerRosterRepo хранит журнал состава во встроенной BadgerDB.
// Записи сериализуются в JSON и сжимаются zstd.
type BadgerRosterRepo struct {
	db      *badger.DB
	dbPath  string
	mutex   sync.RWMutex
	isReady bool

	compressor   *zstd.Encoder
	decompressor *zstd.Decoder
}

// NewBadgerRosterRepo открывает журнал в каталоге dataPath/roster.
// Пустой dataPath открывает базу в памяти.
func NewBadgerRosterRepo(dataPath string) (*BadgerRosterRepo, error) {
	var opts badger.Options
	dbPath := ""
	if dataPath == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dbPath = filepath.Join(dataPath, "roster")
		opts = badger.DefaultOptions(dbPath)
	}
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	compressor, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	decompressor, err := zstd.NewReader(nil)
	if err != nil {
		compressor.Close()
		db.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	log.Info("журнал состава открыт (badger, path=%q)", dbPath)
	return &BadgerRosterRepo{
		db:           db,
		dbPath:       dbPath,
		isReady:      true,
		compressor:   compressor,
		decompressor: decompressor,
	}, nil
}

func rosterKey(id uint64) []byte {
	key := make([]byte, len(rosterPrefix)+8)
	copy(key, rosterPrefix)
	binary.BigEndian.PutUint64(key[len(rosterPrefix):], id)
	return key
}

func (r *BadgerRosterRepo) encode(rec Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации записи %d: %w", rec.ID, err)
	}
	return r.compressor.EncodeAll(data, nil), nil
}

func (r *BadgerRosterRepo) decode(blob []byte) (Record, error) {
	data, err := r.decompressor.DecodeAll(blob, nil)
	if err != nil {
		return Record{}, fmt.Errorf("ошибка распаковки записи: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("ошибка десериализации записи: %w", err)
	}
	return rec, nil
}

func (r *BadgerRosterRepo) ready() error {
	if !r.isReady {
		return fmt.Errorf("хранилище не готово")
	}
	return nil
}

// Save сохраняет запись
func (r *BadgerRosterRepo) Save(ctx context.Context, rec Record) error {
	return r.BatchSave(ctx, []Record{rec})
}

// Load загружает запись по ID
func (r *BadgerRosterRepo) Load(ctx context.Context, id uint64) (Record, bool, error) {
	if err := checkContext(ctx); err != nil {
		return Record{}, false, err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if err := r.ready(); err != nil {
		return Record{}, false, err
	}

	var rec Record
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(rosterKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var decodeErr error
			rec, decodeErr = r.decode(val)
			return decodeErr
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// Delete удаляет запись
func (r *BadgerRosterRepo) Delete(ctx context.Context, id uint64) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if err := r.ready(); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(rosterKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %d", ErrNotFound, id)
			}
			return err
		}
		return txn.Delete(rosterKey(id))
	})
}

// BatchSave записывает все записи через WriteBatch
func (r *BadgerRosterRepo) BatchSave(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if err := r.ready(); err != nil {
		return err
	}

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("batch: %w", err)
		}
	}

	wb := r.db.NewWriteBatch()
	for _, rec := range records {
		blob, err := r.encode(rec)
		if err == nil {
			err = wb.Set(rosterKey(rec.ID), blob)
		}
		if err != nil {
			wb.Cancel()
			return fmt.Errorf("ошибка записи %d: %w", rec.ID, err)
		}
	}
	return wb.Flush()
}

// List обходит все записи по префиксу; ключи big-endian, поэтому порядок по ID
func (r *BadgerRosterRepo) List(ctx context.Context) ([]Record, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if err := r.ready(); err != nil {
		return nil, err
	}

	var result []Record
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(rosterPrefix); it.ValidForPrefix(rosterPrefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				rec, err := r.decode(val)
				if err != nil {
					return err
				}
				result = append(result, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Close закрывает базу
func (r *BadgerRosterRepo) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.isReady {
		return nil
	}
	r.isReady = false
	r.compressor.Close()
	r.decompressor.Close()
	return r.db.Close()
}
