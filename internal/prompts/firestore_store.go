package prompts

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/swot-auditor/swot-backend/internal/platform/logger"
)

const (
	configCollection = "system_configs"
	currentPromptDoc = "current_prompt"
)

// FirestoreStore reads the admin-edited prompts from system_configs/current_prompt.
// Reads fall back to the built-in set when the document is missing or Firestore fails.
type FirestoreStore struct {
	client *firestore.Client
	log    *logger.Logger
}

func NewFirestoreStore(client *firestore.Client, log *logger.Logger) *FirestoreStore {
	if log == nil {
		log = logger.Nop()
	}
	return &FirestoreStore{client: client, log: log.With("component", "prompts")}
}

func (s *FirestoreStore) doc() *firestore.DocumentRef {
	return s.client.Collection(configCollection).Doc(currentPromptDoc)
}

func (s *FirestoreStore) Get(ctx context.Context) (Set, error) {
	set, err := s.read(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			s.log.Warn("prompt fetch failed, using built-in set", "error", err)
		}
		return Defaults(), nil
	}
	return set.fill(), nil
}

func (s *FirestoreStore) read(ctx context.Context) (Set, error) {
	snap, err := s.doc().Get(ctx)
	if err != nil {
		return Set{}, err
	}
	return decodeSet(snap.Data())
}

// Update merges only the non-empty patch fields into the document, so a
// failed read can never write defaults over stored prompts.
func (s *FirestoreStore) Update(ctx context.Context, patch Set) (Set, error) {
	if _, err := s.doc().Set(ctx, patchFields(patch, time.Now()), firestore.MergeAll); err != nil {
		return Set{}, fmt.Errorf("save prompts: %w", err)
	}
	set, err := s.read(ctx)
	if err != nil {
		return Set{}, fmt.Errorf("reload prompts: %w", err)
	}
	return set.fill(), nil
}

// patchFields builds the merge payload. updatedAt is epoch milliseconds,
// the format the admin console writes.
func patchFields(patch Set, now time.Time) map[string]interface{} {
	fields := map[string]interface{}{"updatedAt": now.UnixMilli()}
	for key, val := range map[string]string{
		"auditor":  patch.Auditor,
		"engineer": patch.Engineer,
		"chatbot":  patch.Chatbot,
		"version":  patch.Version,
	} {
		if val != "" {
			fields[key] = val
		}
	}
	return fields
}

// decodeSet reads a prompt document. updatedAt may be a timestamp, epoch
// milliseconds or an RFC 3339 string.
func decodeSet(data map[string]interface{}) (Set, error) {
	var set Set
	for key, dst := range map[string]*string{
		"auditor":  &set.Auditor,
		"engineer": &set.Engineer,
		"chatbot":  &set.Chatbot,
		"version":  &set.Version,
	} {
		switch v := data[key].(type) {
		case nil:
		case string:
			*dst = v
		default:
			return Set{}, fmt.Errorf("prompt field %s: unexpected type %T", key, v)
		}
	}

	switch v := data["updatedAt"].(type) {
	case nil:
	case time.Time:
		set.UpdatedAt = v.UTC()
	case int64:
		set.UpdatedAt = time.UnixMilli(v).UTC()
	case float64:
		set.UpdatedAt = time.UnixMilli(int64(v)).UTC()
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return Set{}, fmt.Errorf("prompt field updatedAt: %w", err)
		}
		set.UpdatedAt = t.UTC()
	default:
		return Set{}, fmt.Errorf("prompt field updatedAt: unexpected type %T", v)
	}
	return set, nil
}
