package retry

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/genai"

	"github.com/shouni/astoria-image-kit/pkg/domain"
)

const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second
)

// Policy は一時的な失敗に対する再試行の方針です。
// 待機時間は BaseDelay から始まり、再試行のたびに倍になります。
type Policy struct {
	MaxRetries uint64
	BaseDelay  time.Duration
	// MaxDelay は1回あたりの待機時間の上限です。0 の場合は backoff の既定値を使います。
	MaxDelay time.Duration
	// OnRetry は再試行の直前に呼ばれます。
	OnRetry func(err error, delay time.Duration)
}

// DefaultPolicy は最大3回、1秒から倍々で待機する方針を返します。
func DefaultPolicy() Policy {
	return Policy{MaxRetries: DefaultMaxRetries, BaseDelay: DefaultBaseDelay}
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.BaseDelay
	eb.RandomizationFactor = 0
	eb.Multiplier = 2
	eb.MaxElapsedTime = 0
	if p.MaxDelay > 0 {
		eb.MaxInterval = p.MaxDelay
	}
	eb.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(eb, p.MaxRetries), ctx)
}

// Do は op を実行し、一時的なエラーの場合のみ方針に従って再試行します。
// それ以外のエラーと再試行を使い切った場合のエラーはそのまま返します。
// 成功時の戻り値には手を加えません。
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	attempt := func() (T, error) {
		v, err := op(ctx)
		if err != nil && !IsTransient(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}

	v, err := backoff.RetryNotifyWithData(attempt, p.backOff(ctx), p.OnRetry)
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Err
	}
	return v, err
}

// IsTransient はエラーが再試行で回復しうるもの（通信エラーやサーバー側の 5xx）かを判定します。
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	switch domain.KindOf(err) {
	case domain.KindNetwork:
		return true
	case domain.KindUnknown:
	default:
		return false
	}

	if code, ok := StatusCode(err); ok {
		return code >= 500 && code <= 599
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED)
}

// StatusCode はエラーチェーンに含まれる HTTP ステータスを取り出します。
func StatusCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	var coded interface{ StatusCode() int }
	if errors.As(err, &coded) {
		return coded.StatusCode(), true
	}
	return 0, false
}
