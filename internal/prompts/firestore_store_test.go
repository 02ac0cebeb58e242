package prompts

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSet_UpdatedAtFormats(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	tests := []struct {
		name string
		raw  interface{}
	}{
		{"timestamp", at},
		{"epoch millis", at.UnixMilli()},
		{"epoch millis float", float64(at.UnixMilli())},
		{"rfc3339", at.Format(time.RFC3339)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := decodeSet(map[string]interface{}{
				"auditor":   "A",
				"chatbot":   "C",
				"updatedAt": tt.raw,
			})
			require.NoError(t, err)
			assert.Equal(t, "A", set.Auditor)
			assert.Equal(t, "C", set.Chatbot)
			assert.Empty(t, set.Engineer)
			assert.True(t, at.Equal(set.UpdatedAt), set.UpdatedAt)
		})
	}
}

func TestDecodeSet_Rejects(t *testing.T) {
	_, err := decodeSet(map[string]interface{}{"auditor": 42})
	assert.Error(t, err)

	_, err = decodeSet(map[string]interface{}{"updatedAt": "yesterday"})
	assert.Error(t, err)

	set, err := decodeSet(nil)
	require.NoError(t, err)
	assert.Equal(t, Set{}, set)
}

func TestPatchFields_OnlyNonEmpty(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	fields := patchFields(Set{Chatbot: "Seja breve.", Version: "v2"}, now)
	assert.Equal(t, map[string]interface{}{
		"chatbot":   "Seja breve.",
		"version":   "v2",
		"updatedAt": now.UnixMilli(),
	}, fields)
}

// Runs against the Firestore emulator when FIRESTORE_EMULATOR_HOST is set.
func TestFirestoreStore_Emulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "swot-test")
	require.NoError(t, err)
	defer client.Close()

	store := NewFirestoreStore(client, nil)
	_, err = store.doc().Delete(ctx)
	require.NoError(t, err)

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, Defaults().Auditor, got.Auditor)

	// a document written by the admin console, updatedAt as epoch millis
	_, err = store.doc().Set(ctx, map[string]interface{}{
		"auditor":   "auditor v1",
		"engineer":  "engineer v1",
		"updatedAt": int64(1767225600000),
	})
	require.NoError(t, err)

	got, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "auditor v1", got.Auditor)

	got, err = store.Update(ctx, Set{Chatbot: "chat v2"})
	require.NoError(t, err)
	assert.Equal(t, "auditor v1", got.Auditor)
	assert.Equal(t, "engineer v1", got.Engineer)
	assert.Equal(t, "chat v2", got.Chatbot)
	assert.WithinDuration(t, time.Now(), got.UpdatedAt, time.Minute)
}
