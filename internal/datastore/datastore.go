package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"campus-prep/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Storage keys. The family arrays and the per-user prefix match the layout
// the portal has always used, so existing data stays readable.
const (
	CompaniesKey = "campusprep_companies"
	FAQsKey      = "campusprep_faqs"
	UpdatesKey   = "campusprep_updates"
	UserPrefix   = "user_"
)

type Family string

const (
	FamilyCompanies Family = "companies"
	FamilyFAQs      Family = "faqs"
	FamilyUpdates   Family = "updates"
	FamilyUsers     Family = "users"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrProtected    = errors.New("record is protected")
	// ErrCorruptFamily refuses writes over a family value that is not a JSON
	// array, so unreadable data is never replaced wholesale.
	ErrCorruptFamily = errors.New("record family is corrupt")
)

const maxIDAttempts = 8

// Notifier is told after a family has been mutated.
type Notifier interface {
	RecordsChanged(family Family)
}

type Service struct {
	store    storage.Store
	logger   zerolog.Logger
	notifier Notifier
	newID    func() string

	// mu serializes read-modify-write of a family value within this process.
	mu sync.Mutex
}

type Option func(*Service)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func New(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: zerolog.Nop(),
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// EnsureSeeded writes the default sample records for every family whose key
// is absent. Families that already exist, even empty, are left alone.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := seedLocked(ctx, s, companiesFamily); err != nil {
		return err
	}
	if err := seedLocked(ctx, s, faqsFamily); err != nil {
		return err
	}
	return seedLocked(ctx, s, updatesFamily)
}

func (s *Service) notify(f Family) {
	if s.notifier != nil {
		s.notifier.RecordsChanged(f)
	}
}

type familyDef[T any] struct {
	name     Family
	key      string
	id       func(T) string
	defaults func(newID func() string) []T
}

func list[T any](ctx context.Context, s *Service, f familyDef[T]) ([]T, error) {
	_, ok, err := s.store.Get(ctx, f.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", f.name, err)
	}
	if !ok {
		s.mu.Lock()
		err := seedLocked(ctx, s, f)
		s.mu.Unlock()
		if err != nil {
			return nil, err
		}
	}
	return read(ctx, s, f)
}

func seedLocked[T any](ctx context.Context, s *Service, f familyDef[T]) error {
	_, ok, err := s.store.Get(ctx, f.key)
	if err != nil {
		return fmt.Errorf("load %s: %w", f.name, err)
	}
	if ok {
		return nil
	}
	items := f.defaults(s.newID)
	if err := write(ctx, s, f, items); err != nil {
		return err
	}
	s.logger.Info().Str("family", string(f.name)).Int("count", len(items)).Msg("seeded default records")
	return nil
}

// element is one stored record of a family. raw is kept verbatim so a
// rewrite leaves records this process cannot decode exactly as they were.
type element[T any] struct {
	raw  json.RawMessage
	id   string
	item T
	ok   bool
}

// load splits the family value into its elements. A value that is not a
// JSON array is reported as corrupt; a single undecodable record is not.
func load[T any](ctx context.Context, s *Service, f familyDef[T]) ([]element[T], error) {
	raw, ok, err := s.store.Get(ctx, f.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", f.name, err)
	}
	if !ok {
		return nil, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &raws); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptFamily, f.key, err)
	}

	elems := make([]element[T], 0, len(raws))
	for _, r := range raws {
		e := element[T]{raw: r}
		var probe struct {
			ID string `json:"id"`
		}
		if json.Unmarshal(r, &probe) == nil {
			e.id = probe.ID
		}
		if err := json.Unmarshal(r, &e.item); err != nil {
			s.logger.Warn().Err(err).Str("key", f.key).Str("id", e.id).Msg("skipping unparsable record")
		} else if f.id(e.item) == "" {
			s.logger.Warn().Str("key", f.key).Msg("skipping record without id")
		} else {
			e.ok = true
		}
		elems = append(elems, e)
	}
	return elems, nil
}

// read returns the decodable records of a family. Parse failures, of the
// whole value or of one record, are logged and never returned.
func read[T any](ctx context.Context, s *Service, f familyDef[T]) ([]T, error) {
	elems, err := load(ctx, s, f)
	if errors.Is(err, ErrCorruptFamily) {
		s.logger.Warn().Err(err).Str("key", f.key).Msg("unparsable record family, treating as empty")
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(elems))
	for _, e := range elems {
		if e.ok {
			out = append(out, e.item)
		}
	}
	return out, nil
}

func write[T any](ctx context.Context, s *Service, f familyDef[T], items []T) error {
	elems := make([]element[T], 0, len(items))
	for _, it := range items {
		b, err := json.Marshal(it)
		if err != nil {
			return fmt.Errorf("encode %s: %w", f.name, err)
		}
		elems = append(elems, element[T]{raw: b})
	}
	return writeElements(ctx, s, f, elems)
}

func writeElements[T any](ctx context.Context, s *Service, f familyDef[T], elems []element[T]) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(e.raw)
	}
	buf.WriteByte(']')

	if err := s.store.Set(ctx, f.key, buf.String()); err != nil {
		return fmt.Errorf("save %s: %w", f.name, err)
	}
	return nil
}

func add[T any](ctx context.Context, s *Service, f familyDef[T], build func(id string) T) (T, error) {
	var zero T

	s.mu.Lock()
	if err := seedLocked(ctx, s, f); err != nil {
		s.mu.Unlock()
		return zero, err
	}
	elems, err := load(ctx, s, f)
	if err != nil {
		s.mu.Unlock()
		return zero, err
	}

	id, err := uniqueID(s, elems)
	if err != nil {
		s.mu.Unlock()
		return zero, err
	}
	created := build(id)
	b, err := json.Marshal(created)
	if err != nil {
		s.mu.Unlock()
		return zero, fmt.Errorf("encode %s: %w", f.name, err)
	}
	elems = append(elems, element[T]{raw: b, id: id, item: created, ok: true})
	if err := writeElements(ctx, s, f, elems); err != nil {
		s.mu.Unlock()
		return zero, err
	}
	s.mu.Unlock()

	s.notify(f.name)
	return created, nil
}

// remove drops every element whose id matches and writes the rest back
// byte for byte.
func remove[T any](ctx context.Context, s *Service, f familyDef[T], id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	s.mu.Lock()
	if err := seedLocked(ctx, s, f); err != nil {
		s.mu.Unlock()
		return false, err
	}
	elems, err := load(ctx, s, f)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}

	kept := make([]element[T], 0, len(elems))
	for _, e := range elems {
		if e.id == id {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) == len(elems) {
		s.mu.Unlock()
		return false, nil
	}
	if err := writeElements(ctx, s, f, kept); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.mu.Unlock()

	s.notify(f.name)
	return true, nil
}

// uniqueID draws ids until one is unused in the family.
func uniqueID[T any](s *Service, elems []element[T]) (string, error) {
	seen := make(map[string]struct{}, len(elems))
	for _, e := range elems {
		seen[e.id] = struct{}{}
	}
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id == "" {
			continue
		}
		if _, taken := seen[id]; !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate id: %d collisions in a row", maxIDAttempts)
}
