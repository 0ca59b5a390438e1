package search

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/rpupo63/blog-api/models"
	"github.com/rs/zerolog"
)

const (
	termKeyPrefix = "term:"
	docKeyPrefix  = "doc:"
)

// BadgerIndex is an embedded inverted index over post titles and bodies.
// Keys are term:<term>\x00<id> with the term frequency as value, plus
// doc:<id> holding the post's distinct terms so that a post can be unindexed.
type BadgerIndex struct {
	db     *badger.DB
	logger zerolog.Logger
}

// OpenBadgerIndex opens the index stored in dir, or an in-memory index when dir is empty.
func OpenBadgerIndex(dir string, logger zerolog.Logger) (*BadgerIndex, error) {
	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger})
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}
	return &BadgerIndex{db: db, logger: logger}, nil
}

func (i *BadgerIndex) Close() error {
	return i.db.Close()
}

func termKey(term string, id uint64) []byte {
	key := make([]byte, 0, len(termKeyPrefix)+len(term)+9)
	key = append(key, termKeyPrefix...)
	key = append(key, term...)
	key = append(key, 0)
	return binary.BigEndian.AppendUint64(key, id)
}

func termPrefix(term string) []byte {
	return append([]byte(termKeyPrefix+term), 0)
}

func docKey(id uint64) []byte {
	return binary.BigEndian.AppendUint64([]byte(docKeyPrefix), id)
}

// Index adds or replaces the given posts.
func (i *BadgerIndex) Index(ctx context.Context, posts ...models.Post) error {
	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := i.db.Update(func(txn *badger.Txn) error {
			if err := removeDoc(txn, post.ID); err != nil {
				return err
			}

			frequencies := make(map[string]uint32)
			for _, term := range Terms(post.PostTitle + " " + post.PostBody) {
				frequencies[term]++
			}

			terms := make([]string, 0, len(frequencies))
			for term, count := range frequencies {
				terms = append(terms, term)
				if err := txn.Set(termKey(term, post.ID), binary.BigEndian.AppendUint32(nil, count)); err != nil {
					return err
				}
			}

			data, err := json.Marshal(terms)
			if err != nil {
				return fmt.Errorf("failed to marshal terms: %v", err)
			}
			return txn.Set(docKey(post.ID), data)
		})
		if err != nil {
			return fmt.Errorf("index post %d: %w", post.ID, err)
		}
	}
	return nil
}

// Remove drops the given posts from the index. Unknown ids are ignored.
func (i *BadgerIndex) Remove(ctx context.Context, ids ...uint64) error {
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := i.db.Update(func(txn *badger.Txn) error { return removeDoc(txn, id) }); err != nil {
			return fmt.Errorf("unindex post %d: %w", id, err)
		}
	}
	return nil
}

func removeDoc(txn *badger.Txn, id uint64) error {
	item, err := txn.Get(docKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var terms []string
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &terms)
	})
	if err != nil {
		return fmt.Errorf("failed to unmarshal terms: %v", err)
	}

	for _, term := range terms {
		if err := txn.Delete(termKey(term, id)); err != nil {
			return err
		}
	}
	return txn.Delete(docKey(id))
}

// Reset empties the index.
func (i *BadgerIndex) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return i.db.DropAll()
}

// Search returns posts containing every term of keyword, scored by total term frequency.
func (i *BadgerIndex) Search(ctx context.Context, keyword string) ([]Result, error) {
	terms := Terms(keyword)
	if len(terms) == 0 {
		return []Result{}, nil
	}

	var scores map[uint64]float64
	err := i.db.View(func(txn *badger.Txn) error {
		for n, term := range terms {
			if err := ctx.Err(); err != nil {
				return err
			}

			matched, err := scanTerm(txn, term)
			if err != nil {
				return err
			}

			if n == 0 {
				scores = matched
				continue
			}
			for id := range scores {
				count, ok := matched[id]
				if !ok {
					delete(scores, id)
					continue
				}
				scores[id] += count
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search index for %q: %w", keyword, err)
	}

	ids := make([]uint64, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool {
		if scores[ids[a]] != scores[ids[b]] {
			return scores[ids[a]] > scores[ids[b]]
		}
		return ids[a] < ids[b]
	})

	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		results = append(results, Result{
			Schema: "badger",
			Table:  models.Post{}.TableName(),
			Column: "post_title,post_body",
			Key:    strconv.FormatUint(id, 10),
			Score:  scores[id],
		})
	}

	i.logger.Debug().Str("keyword", keyword).Int("matches", len(results)).Msg("search index queried")
	return results, nil
}

func scanTerm(txn *badger.Txn, term string) (map[uint64]float64, error) {
	prefix := termPrefix(term)
	matched := make(map[uint64]float64)

	it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, PrefetchValues: true, PrefetchSize: 100})
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		id := binary.BigEndian.Uint64(bytes.TrimPrefix(item.Key(), prefix))

		err := item.Value(func(val []byte) error {
			matched[id] = float64(binary.BigEndian.Uint32(val))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return matched, nil
}

// badgerLogger routes badger's internal logging into zerolog.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(format, args...)
}
