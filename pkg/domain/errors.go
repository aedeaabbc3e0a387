package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput は入力値が不足または不正な場合のエラーです。
	ErrInvalidInput = errors.New("invalid input")
	// ErrBusy は別の生成処理が実行中の場合のエラーです。
	ErrBusy = errors.New("generation already in progress")
	// ErrCharacterNotFound は参照先のキャラクターが存在しない場合のエラーです。
	ErrCharacterNotFound = errors.New("character not found")
	// ErrResultNotFound は履歴にもお気に入りにも存在しない生成結果を指定した場合のエラーです。
	ErrResultNotFound = errors.New("generation result not found")
)

// ErrorKind はエラーの分類です。
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindServiceRejected
	KindEmptyResponse
	KindStorageQuota
	KindDecodeFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServiceRejected:
		return "service_rejected"
	case KindEmptyResponse:
		return "empty_response"
	case KindStorageQuota:
		return "storage_quota"
	case KindDecodeFailure:
		return "decode_failure"
	default:
		return "unknown"
	}
}

// Error は分類付きのエラーです。
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewError は分類付きエラーを生成します。
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is は Kind だけを指定した *Error をターゲットにした比較を可能にします。
//
//	errors.Is(err, &domain.Error{Kind: domain.KindEmptyResponse})
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

// KindOf はエラーチェーンから最初に見つかった分類を返します。
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
