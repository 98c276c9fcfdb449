package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2 parameters. With a 16 byte salt and 32 byte key the encoded hash is
// exactly 97 characters, which is the width of the authorHash column.
const (
	argonMemoryKiB uint32 = 64 * 1024
	argonTime      uint32 = 4
	argonThreads   uint8  = 1
	argonSaltLen          = 16
	argonKeyLen    uint32 = 32
)

// Upper bounds accepted from a stored hash. Verification allocates m KiB, so
// an unbounded m lets one bad row exhaust memory.
const (
	maxArgonMemoryKiB uint32 = 256 * 1024
	maxArgonTime      uint32 = 16
	maxArgonKeyLen           = 64
)

var (
	errNotArgon2 = errors.New("not an argon2 hash")

	versionRe = regexp.MustCompile(`^v=(\d{1,3})$`)
	paramsRe  = regexp.MustCompile(`^m=(\d{1,10}),t=(\d{1,10}),p=(\d{1,3})$`)
)

// argonHash is a decoded PHC string: $argon2id$v=19$m=65536,t=4,p=1$salt$key
type argonHash struct {
	variant string
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

// HashPassword returns an argon2id hash of plain in PHC string format.
func HashPassword(plain string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(plain), salt, argonTime, argonMemoryKiB, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemoryKiB, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// VerifyPassword compares plain against an argon2i or argon2id hash in
// constant time.
func VerifyPassword(hash, plain string) bool {
	h, err := decodeArgon2(hash)
	if err != nil {
		return false
	}
	var key []byte
	if h.variant == "argon2id" {
		key = argon2.IDKey([]byte(plain), h.salt, h.time, h.memory, h.threads, uint32(len(h.key)))
	} else {
		key = argon2.Key([]byte(plain), h.salt, h.time, h.memory, h.threads, uint32(len(h.key)))
	}
	return subtle.ConstantTimeCompare(key, h.key) == 1
}

// IsMemoryHard reports whether hash is a well-formed argon2i or argon2id hash.
func IsMemoryHard(hash string) bool {
	_, err := decodeArgon2(hash)
	return err == nil
}

func decodeArgon2(hash string) (argonHash, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return argonHash{}, errNotArgon2
	}
	h := argonHash{variant: parts[1]}
	if h.variant != "argon2id" && h.variant != "argon2i" {
		return argonHash{}, errNotArgon2
	}

	vm := versionRe.FindStringSubmatch(parts[2])
	if vm == nil {
		return argonHash{}, errNotArgon2
	}
	if version, _ := strconv.Atoi(vm[1]); version != argon2.Version {
		return argonHash{}, errNotArgon2
	}
	pm := paramsRe.FindStringSubmatch(parts[3])
	if pm == nil {
		return argonHash{}, errNotArgon2
	}
	memory, errM := strconv.ParseUint(pm[1], 10, 32)
	iterations, errT := strconv.ParseUint(pm[2], 10, 32)
	threads, errP := strconv.ParseUint(pm[3], 10, 8)
	if errM != nil || errT != nil || errP != nil {
		return argonHash{}, errNotArgon2
	}
	h.memory, h.time, h.threads = uint32(memory), uint32(iterations), uint8(threads)
	if h.memory == 0 || h.memory > maxArgonMemoryKiB ||
		h.time == 0 || h.time > maxArgonTime || h.threads == 0 {
		return argonHash{}, errNotArgon2
	}

	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(h.salt) == 0 {
		return argonHash{}, errNotArgon2
	}
	if h.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(h.key) == 0 || len(h.key) > maxArgonKeyLen {
		return argonHash{}, errNotArgon2
	}
	return h, nil
}
