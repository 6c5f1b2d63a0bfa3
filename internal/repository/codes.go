package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodePurpose separates the one-time code namespaces.
type CodePurpose string

const (
	CodePurposeSignup CodePurpose = "signup"
	CodePurposeReset  CodePurpose = "reset"
)

// MaxCodeAttempts is how many wrong guesses burn a code.
const MaxCodeAttempts = 5

var (
	ErrCodeNotFound = errors.New("code not found or expired")
	ErrCodeMismatch = errors.New("code mismatch")
)

// CodeStore keeps one-time confirmation codes and reset tokens in Redis.
//
// Keys:
//
//	code:<purpose>:<email>           the code
//	code:<purpose>:<email>:attempts  wrong guesses so far
//	reset_token:<token>              user id the token resets
type CodeStore struct {
	rdb redis.Cmdable
}

func NewCodeStore(rdb redis.Cmdable) *CodeStore {
	return &CodeStore{rdb: rdb}
}

func codeKey(purpose CodePurpose, email string) string {
	return fmt.Sprintf("code:%s:%s", purpose, strings.ToLower(email))
}

func resetTokenKey(token string) string {
	return "reset_token:" + token
}

// SaveCode stores code for email, resetting the attempt counter.
func (s *CodeStore) SaveCode(ctx context.Context, purpose CodePurpose, email, code string, ttl time.Duration) error {
	key := codeKey(purpose, email)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, code, ttl)
		pipe.Del(ctx, key+":attempts")
		return nil
	})
	return err
}

// verifyCodeScript compares and burns a code in one step.
// KEYS: code, attempts. ARGV: guess, max attempts.
// Returns 1 on match, 0 on mismatch, -1 when no code is stored.
var verifyCodeScript = redis.NewScript(`
local stored = redis.call('GET', KEYS[1])
if not stored then
	return -1
end
if stored == ARGV[1] then
	redis.call('DEL', KEYS[1], KEYS[2])
	return 1
end
local attempts = redis.call('INCR', KEYS[2])
if attempts == 1 then
	local ttl = redis.call('PTTL', KEYS[1])
	if ttl > 0 then
		redis.call('PEXPIRE', KEYS[2], ttl)
	end
end
if attempts >= tonumber(ARGV[2]) then
	redis.call('DEL', KEYS[1], KEYS[2])
end
return 0
`)

// VerifyCode checks code and deletes it on success. After MaxCodeAttempts
// wrong guesses the code is deleted and ErrCodeNotFound is returned from
// then on. Of concurrent correct guesses only one succeeds.
func (s *CodeStore) VerifyCode(ctx context.Context, purpose CodePurpose, email, code string) error {
	key := codeKey(purpose, email)

	result, err := verifyCodeScript.Run(ctx, s.rdb, []string{key, key + ":attempts"}, code, MaxCodeAttempts).Int()
	if err != nil {
		return err
	}

	switch result {
	case 1:
		return nil
	case -1:
		return ErrCodeNotFound
	default:
		return ErrCodeMismatch
	}
}

// SaveResetToken binds a one-time reset token to userID.
func (s *CodeStore) SaveResetToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return s.rdb.Set(ctx, resetTokenKey(token), userID, ttl).Err()
}

// ConsumeResetToken returns the user id bound to token and deletes the token.
func (s *CodeStore) ConsumeResetToken(ctx context.Context, token string) (int64, error) {
	raw, err := s.rdb.GetDel(ctx, resetTokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrCodeNotFound
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}
