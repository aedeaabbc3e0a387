package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/shouni/astoria-image-kit/pkg/domain"
)

type statusErr int

func (s statusErr) Error() string   { return fmt.Sprintf("status %d", int(s)) }
func (s statusErr) StatusCode() int { return int(s) }

func fastPolicy(delays *[]time.Duration) Policy {
	return Policy{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		OnRetry: func(err error, d time.Duration) {
			*delays = append(*delays, d)
		},
	}
}

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("2回一時的に失敗した後の成功は2回の再試行で返るのだ", func(t *testing.T) {
		var delays []time.Duration
		calls := 0

		got, err := Do(ctx, fastPolicy(&delays), func(ctx context.Context) (string, error) {
			calls++
			if calls <= 2 {
				return "", statusErr(503)
			}
			return "ok", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 3, calls)
		require.Len(t, delays, 2)
		assert.LessOrEqual(t, delays[0], delays[1])
		assert.Equal(t, time.Millisecond, delays[0])
		assert.Equal(t, 2*time.Millisecond, delays[1])
	})

	t.Run("恒久的なエラーは再試行せずそのまま返るのだ", func(t *testing.T) {
		var delays []time.Duration
		calls := 0
		terminal := statusErr(400)

		_, err := Do(ctx, fastPolicy(&delays), func(ctx context.Context) (int, error) {
			calls++
			return 0, terminal
		})

		assert.Equal(t, 1, calls)
		assert.Empty(t, delays)
		assert.Equal(t, error(terminal), err)
	})

	t.Run("再試行を使い切ると最後のエラーを返すのだ", func(t *testing.T) {
		var delays []time.Duration
		calls := 0

		_, err := Do(ctx, fastPolicy(&delays), func(ctx context.Context) (int, error) {
			calls++
			return 0, statusErr(500)
		})

		assert.Equal(t, 4, calls)
		assert.Len(t, delays, 3)
		assert.Equal(t, error(statusErr(500)), err)
	})

	t.Run("空レスポンスは一時的エラーとして扱わないのだ", func(t *testing.T) {
		calls := 0
		_, err := Do(ctx, Policy{MaxRetries: 3, BaseDelay: time.Millisecond}, func(ctx context.Context) (int, error) {
			calls++
			return 0, domain.NewError(domain.KindEmptyResponse, "test", nil)
		})

		assert.Equal(t, 1, calls)
		assert.Equal(t, domain.KindEmptyResponse, domain.KindOf(err))
	})

	t.Run("キャンセル済みのコンテキストでは再試行しないのだ", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		calls := 0

		_, err := Do(cctx, Policy{MaxRetries: 3, BaseDelay: time.Millisecond}, func(ctx context.Context) (int, error) {
			calls++
			return 0, ctx.Err()
		})

		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"500", statusErr(500), true},
		{"503 wrapped", fmt.Errorf("call: %w", statusErr(503)), true},
		{"429", statusErr(429), false},
		{"400", statusErr(400), false},
		{"genai 500", genai.APIError{Code: 500, Message: "internal"}, true},
		{"genai 403", genai.APIError{Code: 403, Message: "denied"}, false},
		{"net.OpError", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, true},
		{"DNS error", &net.DNSError{Err: "no such host", Name: "example.invalid"}, true},
		{"domain network", domain.NewError(domain.KindNetwork, "op", nil), true},
		{"domain rejected", domain.NewError(domain.KindServiceRejected, "op", statusErr(500)), false},
		{"context canceled", context.Canceled, false},
		{"plain error", errors.New("bad prompt"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
