package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/secretbox"
)

// SealedStore keeps the whole session inside the cookie, encrypted and
// authenticated with a secretbox key derived from the configured secret.
// Nothing is held server-side, so it survives restarts and needs no shared
// storage. A cookie that fails to open (tampered, or sealed under a
// rotated secret) resolves to "unauthenticated", never to an error.
type SealedStore struct {
	key  [32]byte
	ttl  time.Duration
	opts CookieOptions

	nowTime func() time.Time
}

var _ Store = (*SealedStore)(nil)

const nonceLength = 24

// sealedEnvelope is the JSON payload inside the box. The expiry rides
// inside the sealed value so a client cannot extend its own session by
// editing cookie attributes.
type sealedEnvelope struct {
	Session   Session   `json:"session"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SealedStoreOption defines a function type to modify the SealedStore.
type SealedStoreOption func(*SealedStore)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) SealedStoreOption {
	return func(ss *SealedStore) {
		ss.nowTime = nowFunc
	}
}

func NewSealedStore(secret string, ttl time.Duration, opts CookieOptions, options ...SealedStoreOption) *SealedStore {
	ss := &SealedStore{
		key:     sha256.Sum256([]byte(secret)),
		ttl:     ttl,
		opts:    opts,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(ss)
	}
	return ss
}

func (ss *SealedStore) Get(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	env, ok := ss.open(cookie.Value)
	if !ok {
		return nil, nil
	}
	if env.ExpiresAt.Before(ss.nowTime()) {
		return nil, nil
	}
	if !env.Session.Valid() {
		return nil, nil
	}

	s := env.Session
	return &s, nil
}

func (ss *SealedStore) Set(w http.ResponseWriter, _ *http.Request, s Session) error {
	value, err := ss.seal(sealedEnvelope{
		Session:   s,
		ExpiresAt: ss.nowTime().Add(ss.ttl),
	})
	if err != nil {
		return errors.Wrap(err, "[SealedStore.Set] seal session")
	}

	SetCookie(w, value, int(ss.ttl.Seconds()), ss.opts)
	return nil
}

func (ss *SealedStore) Clear(w http.ResponseWriter, _ *http.Request) {
	ClearCookie(w, ss.opts)
}

func (ss *SealedStore) seal(env sealedEnvelope) (string, error) {
	payload, err := json.Marshal(env)
	if err != nil {
		return "", err
	}

	var nonce [nonceLength]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", err
	}

	box := secretbox.Seal(nonce[:], payload, &nonce, &ss.key)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

func (ss *SealedStore) open(value string) (sealedEnvelope, bool) {
	box, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil || len(box) < nonceLength {
		return sealedEnvelope{}, false
	}

	var nonce [nonceLength]byte
	copy(nonce[:], box[:nonceLength])

	payload, ok := secretbox.Open(nil, box[nonceLength:], &nonce, &ss.key)
	if !ok {
		return sealedEnvelope{}, false
	}

	var env sealedEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return sealedEnvelope{}, false
	}
	return env, true
}
