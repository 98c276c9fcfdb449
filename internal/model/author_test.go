package model

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/author-service/internal/utils"
	"github.com/iliyamo/author-service/internal/validate"
)

var (
	hashOnce sync.Once
	testHash string
)

func validHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		h, err := utils.HashPassword("hunter22")
		require.NoError(t, err)
		testHash = h
	})
	return testHash
}

const testToken = "0123456789abcdef0123456789abcdef"

func newTestAuthor(t *testing.T) *Author {
	t.Helper()
	a, err := NewAuthor(validate.IDValue(uuid.New()), testToken,
		"https://cdn.example.com/avatars/taylor.png", "taylor@example.com", validHash(t), "taylor")
	require.NoError(t, err)
	return a
}

func TestNewAuthor(t *testing.T) {
	id := uuid.New()
	a, err := NewAuthor(validate.IDBytes(id[:]), "  0123456789ABCDEF0123456789ABCDEF ",
		" https://cdn.example.com/a.png ", " Taylor@Example.com ", validHash(t), "  taylor_smith ")
	require.NoError(t, err)

	assert.Equal(t, id, a.ID())
	assert.Equal(t, testToken, a.ActivationToken())
	assert.Equal(t, "https://cdn.example.com/a.png", a.AvatarURL())
	assert.Equal(t, "taylor@example.com", a.Email())
	assert.Equal(t, validHash(t), a.Hash())
	assert.Equal(t, "taylor_smith", a.Username())
	assert.False(t, a.IsActivated())
}

func TestNewAuthor_NoActivationToken(t *testing.T) {
	a, err := NewAuthor(validate.IDValue(uuid.New()), "", "https://cdn.example.com/a.png",
		"t@example.com", validHash(t), "t")
	require.NoError(t, err)
	assert.Empty(t, a.ActivationToken())
	assert.True(t, a.IsActivated())
}

func TestNewAuthor_FailsAtomically(t *testing.T) {
	id := uuid.New()
	good := []string{testToken, "https://cdn.example.com/a.png", "taylor@example.com", validHash(t), "taylor"}

	tests := []struct {
		name    string
		id      validate.IdentifierInput
		field   int
		value   string
		wantErr error
	}{
		{name: "bad id", id: validate.IDString("nope"), field: -1, wantErr: validate.ErrInvalidFormat},
		{name: "v1 id", id: validate.IDString("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), field: -1, wantErr: validate.ErrWrongVersion},
		{name: "token not hex", field: 0, value: strings.Repeat("z", 32), wantErr: validate.ErrInvalidFormat},
		{name: "token too short", field: 0, value: "abc123", wantErr: validate.ErrOutOfRange},
		{name: "avatar empty", field: 1, value: "   ", wantErr: validate.ErrInvalidFormat},
		{name: "avatar not a url", field: 1, value: "not a url", wantErr: validate.ErrInvalidFormat},
		{name: "avatar ftp", field: 1, value: "ftp://example.com/a.png", wantErr: validate.ErrInvalidFormat},
		{name: "avatar too long", field: 1, value: "https://example.com/" + strings.Repeat("a", 120), wantErr: validate.ErrOutOfRange},
		{name: "malformed email", field: 2, value: "taylor-at-example.com", wantErr: validate.ErrInvalidFormat},
		{name: "email too long", field: 2, value: strings.Repeat("a", 120) + "@example.com", wantErr: validate.ErrOutOfRange},
		{name: "hash 98 chars", field: 3, value: validHash(t) + "A", wantErr: validate.ErrOutOfRange},
		{name: "hash 96 chars", field: 3, value: validHash(t)[:96], wantErr: validate.ErrOutOfRange},
		{name: "hash not argon", field: 3, value: strings.Repeat("x", 97), wantErr: validate.ErrInvalidFormat},
		{name: "username empty", field: 4, value: " \t ", wantErr: validate.ErrInvalidFormat},
		{name: "username too long", field: 4, value: strings.Repeat("u", 33), wantErr: validate.ErrOutOfRange},
		{name: "username with space", field: 4, value: "taylor smith", wantErr: validate.ErrInvalidFormat},
		{name: "username markup", field: 4, value: "<b>taylor</b>", wantErr: validate.ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.id
			if in == nil {
				in = validate.IDValue(id)
			}
			vals := append([]string(nil), good...)
			if tt.field >= 0 {
				vals[tt.field] = tt.value
			}

			a, err := NewAuthor(in, vals[0], vals[1], vals[2], vals[3], vals[4])
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, a)
		})
	}
}

func TestSetters_KeepOldValueOnFailure(t *testing.T) {
	a := newTestAuthor(t)

	assert.Error(t, a.SetEmail("broken"))
	assert.Equal(t, "taylor@example.com", a.Email())

	assert.Error(t, a.SetUsername(strings.Repeat("x", 40)))
	assert.Equal(t, "taylor", a.Username())

	assert.Error(t, a.SetAvatarURL(""))
	assert.Equal(t, "https://cdn.example.com/avatars/taylor.png", a.AvatarURL())

	assert.Error(t, a.SetHash("short"))
	assert.Equal(t, validHash(t), a.Hash())

	assert.Error(t, a.SetActivationToken("xyz"))
	assert.Equal(t, testToken, a.ActivationToken())

	id := a.ID()
	assert.Error(t, a.SetID(validate.IDString(uuid.Nil.String())))
	assert.Equal(t, id, a.ID())
}

func TestSetActivationToken_Clear(t *testing.T) {
	a := newTestAuthor(t)
	require.NoError(t, a.SetActivationToken(""))
	assert.True(t, a.IsActivated())
}

func TestAuthor_MarshalJSON(t *testing.T) {
	a := newTestAuthor(t)

	raw, err := json.Marshal(a)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, map[string]any{
		"authorId":              a.ID().String(),
		"authorActivationToken": testToken,
		"authorAvatarUrl":       "https://cdn.example.com/avatars/taylor.png",
		"authorEmail":           "taylor@example.com",
		"authorHash":            validHash(t),
		"authorUsername":        "taylor",
	}, got)
	assert.Len(t, got["authorId"], 36)
}

func TestAuthor_ToMap_ClearedToken(t *testing.T) {
	a := newTestAuthor(t)
	require.NoError(t, a.SetActivationToken(""))

	m := a.ToMap()
	v, ok := m["authorActivationToken"]
	assert.True(t, ok)
	assert.Nil(t, v)
}
