package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/iliyamo/author-service/internal/utils"
	"github.com/iliyamo/author-service/internal/validate"
)

// Column widths of the author table.
const (
	ActivationTokenLength = 32
	MaxAvatarURLLength    = 128
	MaxEmailLength        = 128
	HashLength            = 97
	MaxUsernameLength     = 32
)

var (
	hexRe      = regexp.MustCompile(`^[0-9a-f]+$`)
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

	errNotHTTPURL    = validation.NewError("validation_http_url", "must be an http or https URL")
	errNotMemoryHard = validation.NewError("validation_memory_hard", "must be an argon2i or argon2id hash")
)

// Author represents a row in the `author` table: a profile on the social
// network. Fields are only reachable through the setters below, so an
// *Author always holds validated state.
//
// Fields:
//
//	id              – v4 identifier, primary key (binary(16)).
//	activationToken – 32 lowercase hex chars until the account is activated, then empty (NULL).
//	avatarURL       – http(s) URL of the avatar image.
//	email           – unique email address, stored lower case.
//	hash            – argon2 PHC string, exactly 97 chars.
//	username        – unique handle, letters, digits, '.', '_' and '-'.
type Author struct {
	id              uuid.UUID
	activationToken string
	avatarURL       string
	email           string
	hash            string
	username        string
}

// NewAuthor builds an Author by running every setter in turn. The first
// failing setter aborts construction and its error is returned with a nil
// Author.
func NewAuthor(id validate.IdentifierInput, activationToken, avatarURL, email, hash, username string) (*Author, error) {
	a := &Author{}
	if err := a.SetID(id); err != nil {
		return nil, err
	}
	if err := a.SetActivationToken(activationToken); err != nil {
		return nil, err
	}
	if err := a.SetAvatarURL(avatarURL); err != nil {
		return nil, err
	}
	if err := a.SetEmail(email); err != nil {
		return nil, err
	}
	if err := a.SetHash(hash); err != nil {
		return nil, err
	}
	if err := a.SetUsername(username); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Author) ID() uuid.UUID { return a.id }

// ActivationToken returns the pending activation token, or "" once activated.
func (a *Author) ActivationToken() string { return a.activationToken }

func (a *Author) AvatarURL() string { return a.avatarURL }
func (a *Author) Email() string     { return a.email }
func (a *Author) Hash() string      { return a.hash }
func (a *Author) Username() string  { return a.username }

// IsActivated reports whether the author has no pending activation token.
func (a *Author) IsActivated() bool { return a.activationToken == "" }

// SetID validates and stores the author id.
func (a *Author) SetID(in validate.IdentifierInput) error {
	id, err := validate.ValidateIdentifier(in)
	if err != nil {
		return fmt.Errorf("author id: %w", err)
	}
	a.id = id
	return nil
}

// SetActivationToken stores a 32 character hex token. An empty token clears
// it, which marks the author as activated.
func (a *Author) SetActivationToken(token string) error {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		a.activationToken = ""
		return nil
	}
	if err := check("activation token", token,
		validation.Match(hexRe).Error("must be hexadecimal"),
		validation.Length(ActivationTokenLength, ActivationTokenLength),
	); err != nil {
		return err
	}
	a.activationToken = token
	return nil
}

func (a *Author) SetAvatarURL(avatarURL string) error {
	avatarURL = strings.TrimSpace(avatarURL)
	if err := check("avatar url", avatarURL,
		validation.Required,
		validation.RuneLength(0, MaxAvatarURLLength),
		is.URL,
		validation.By(httpURL),
	); err != nil {
		return err
	}
	a.avatarURL = avatarURL
	return nil
}

func (a *Author) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := check("email", email,
		validation.Required,
		validation.RuneLength(0, MaxEmailLength),
		is.EmailFormat,
	); err != nil {
		return err
	}
	a.email = email
	return nil
}

// SetHash stores a password hash. Only argon2 hashes of exactly HashLength
// characters are accepted; plain passwords never reach this setter.
func (a *Author) SetHash(hash string) error {
	hash = strings.TrimSpace(hash)
	if err := check("hash", hash,
		validation.Required,
		validation.Length(HashLength, HashLength),
		validation.By(memoryHard),
	); err != nil {
		return err
	}
	a.hash = hash
	return nil
}

func (a *Author) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if err := check("username", username,
		validation.Required,
		validation.RuneLength(0, MaxUsernameLength),
		validation.Match(usernameRe).Error("may only contain letters, digits, '.', '_' and '-'"),
	); err != nil {
		return err
	}
	a.username = username
	return nil
}

// ToMap returns every field keyed by its column name. The id is rendered in
// canonical string form and a cleared activation token as nil.
func (a *Author) ToMap() map[string]any {
	var token any
	if a.activationToken != "" {
		token = a.activationToken
	}
	return map[string]any{
		"authorId":              a.id.String(),
		"authorActivationToken": token,
		"authorAvatarUrl":       a.avatarURL,
		"authorEmail":           a.email,
		"authorHash":            a.hash,
		"authorUsername":        a.username,
	}
}

func (a *Author) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToMap())
}

// check runs rules against value and converts an ozzo failure into one of the
// validate error kinds: length violations are ErrOutOfRange, anything else is
// ErrInvalidFormat.
func check(field, value string, rules ...validation.Rule) error {
	err := validation.Validate(value, rules...)
	if err == nil {
		return nil
	}
	kind := validate.ErrInvalidFormat
	var ve validation.Error
	if errors.As(err, &ve) {
		switch ve.Code() {
		case validation.ErrLengthTooLong.Code(),
			validation.ErrLengthTooShort.Code(),
			validation.ErrLengthInvalid.Code(),
			validation.ErrLengthOutOfRange.Code():
			kind = validate.ErrOutOfRange
		}
	}
	return fmt.Errorf("%w: %s %v", kind, field, err)
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errNotHTTPURL
	}
	return nil
}

func memoryHard(value interface{}) error {
	s, _ := value.(string)
	if !utils.IsMemoryHard(s) {
		return errNotMemoryHard
	}
	return nil
}
