package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/janata-app/janata-api/internal/domain/entity"
	"github.com/janata-app/janata-api/internal/domain/identity"
	"github.com/janata-app/janata-api/internal/domain/repository"
	"github.com/janata-app/janata-api/pkg/geo"
	"github.com/janata-app/janata-api/pkg/helpers"
	"github.com/janata-app/janata-api/pkg/mailer"
)

var ErrEventNotFound = errors.New("event not found")

// EventService owns event lifecycle, the endorsement and attendance rules,
// and the derived tier. Every mutating operation returns the event with a
// freshly computed tier so callers never observe a stale score.
type EventService struct {
	Events  repository.EventRepository
	Users   repository.UserRepository
	Centers repository.CenterRepository
	Logger  *logrus.Logger
	Pub     *helpers.RabbitPublisher

	ES            *elasticsearch.Client
	ESEventsIndex string
	GCS           *storage.Client
	GCSBucket     string
}

func NewEventService(events repository.EventRepository, users repository.UserRepository, centers repository.CenterRepository, logger *logrus.Logger, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string) *EventService {
	return &EventService{
		Events:        events,
		Users:         users,
		Centers:       centers,
		Logger:        logger,
		Pub:           pub,
		ES:            es,
		ESEventsIndex: esIndex,
		GCS:           gcs,
		GCSBucket:     gcsBucket,
	}
}

type CreateEventInput struct {
	CenterID    string
	Date        time.Time
	Location    geo.Point
	Description string
	LegacyID    bool
}

// Create validates the owning center, assigns a unique event id, and
// persists the record. The conflict path of the insert closes the id race.
func (s *EventService) Create(ctx context.Context, in CreateEventInput) (*entity.Event, error) {
	if _, err := s.Centers.GetByID(ctx, in.CenterID); err != nil {
		return nil, err
	}
	e := entity.NewEvent(in.CenterID, in.Date, in.Location, in.Description)

	gen := identity.NewUUID
	if in.LegacyID {
		gen = identity.NewNumericID
	}
	for {
		id, err := gen(ctx, s.Events.Exists)
		if err != nil {
			return nil, err
		}
		e.ID = id
		err = s.Events.Create(ctx, e)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrAlreadyExists) {
			return nil, err
		}
		// lost the id race, draw again
	}

	s.index(ctx, e)
	return e, nil
}

// Get loads an event and recomputes the derived tier at read time.
func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	e, err := s.Events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.RefreshTier()
	return e, nil
}

// List returns all events, or the events of a single center.
func (s *EventService) List(ctx context.Context, centerID string) ([]*entity.Event, error) {
	var (
		events []*entity.Event
		err    error
	)
	if centerID == "" {
		events, err = s.Events.List(ctx)
	} else {
		events, err = s.Events.ListByCenter(ctx, centerID)
	}
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		e.RefreshTier()
	}
	return events, nil
}

// Endorse appends the acting user as an endorser. The rank gate lives in the
// entity; the refreshed tier is persisted with the event.
func (s *EventService) Endorse(ctx context.Context, username, eventID string) (*entity.Event, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	e, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := e.AddEndorser(u); err != nil {
		return nil, err
	}
	if err := s.Events.Update(ctx, e); err != nil {
		return nil, err
	}
	s.index(ctx, e)
	s.notify(ctx, u, mailer.EventEndorsed, map[string]any{
		"Name":      u.Username,
		"EventDate": e.Date.Format(time.RFC3339),
	})
	return e, nil
}

// Attend registers the user for the event. The user's events set guards
// idempotence; both documents are persisted and the updated tier returned.
func (s *EventService) Attend(ctx context.Context, username, eventID string) (*entity.Event, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	e, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := e.Register(u); err != nil {
		return nil, err
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	if err := s.Events.Update(ctx, e); err != nil {
		return nil, err
	}
	s.index(ctx, e)
	s.notify(ctx, u, mailer.EventRegistered, map[string]any{
		"Name":          u.Username,
		"EventDate":     e.Date.Format(time.RFC3339),
		"EventLocation": e.Description,
	})
	return e, nil
}

// Unregister reverses Attend for the (user, event) pair.
func (s *EventService) Unregister(ctx context.Context, username, eventID string) (*entity.Event, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	e, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := e.Unregister(u); err != nil {
		return nil, err
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	if err := s.Events.Update(ctx, e); err != nil {
		return nil, err
	}
	s.index(ctx, e)
	s.notify(ctx, u, mailer.EventUnregistered, map[string]any{
		"Name":      u.Username,
		"EventDate": e.Date.Format(time.RFC3339),
	})
	return e, nil
}

// SetDescription replaces the event's description text.
func (s *EventService) SetDescription(ctx context.Context, eventID, description string) (*entity.Event, error) {
	e, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	e.Description = description
	e.RefreshTier()
	if err := s.Events.Update(ctx, e); err != nil {
		return nil, err
	}
	s.index(ctx, e)
	return e, nil
}

// Delete removes an event, gated on CapDeleteRecords, and drops it from the
// search index.
func (s *EventService) Delete(ctx context.Context, actorUsername, eventID string) error {
	actor, err := s.Users.GetByUsername(ctx, actorUsername)
	if err != nil || actor == nil {
		return ErrUserNotFound
	}
	if !actor.Role.Has(entity.CapDeleteRecords) {
		return entity.ErrNotAuthorized
	}
	if err := s.Events.Delete(ctx, eventID); err != nil {
		return err
	}
	s.deindex(ctx, eventID)
	return nil
}

// UploadBanner stores the event banner in GCS and records its public URL.
func (s *EventService) UploadBanner(ctx context.Context, eventID string, r io.Reader, filename, contentType string) (*entity.Event, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("object storage not configured")
	}
	e, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("banners", eventID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	e.BannerURL = url
	e.RefreshTier()
	if err := s.Events.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Search runs a multi_match query over event descriptions in Elasticsearch.
func (s *EventService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESEventsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"description^2", "center"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESEventsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *EventService) index(ctx context.Context, e *entity.Event) {
	if s.ES == nil || s.ESEventsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":              e.ID,
		"center":          e.Center,
		"description":     e.Description,
		"date":            e.Date.Format(time.RFC3339),
		"tier":            e.Tier,
		"peopleAttending": e.PeopleAttending,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESEventsIndex, DocumentID: e.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", e.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("event_id", e.ID).Warn("es index response error")
	}
}

func (s *EventService) deindex(ctx context.Context, eventID string) {
	if s.ES == nil || s.ESEventsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESEventsIndex, DocumentID: eventID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", eventID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

func (s *EventService) notify(ctx context.Context, u *entity.User, template string, data map[string]any) {
	if s.Pub == nil || u.Email == "" {
		return
	}
	job := mailer.EmailJob{To: u.Email, Template: template, Data: data}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("template", template).Warn("notification publish failed")
	}
}
