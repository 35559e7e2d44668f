/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package grpcx

import "context"

// Stage names one guarded step of a unary call.
type Stage uint8

const (
	// StageMessage validates the decoded request.
	StageMessage Stage = iota + 1
	// StageReady runs before the handler.
	StageReady
	// StageHalfClose runs the handler.
	StageHalfClose
	// StageCancel runs when the caller cancels.
	StageCancel
	// StageComplete runs after a successful handler.
	StageComplete
)

func (s Stage) String() string {
	switch s {
	case StageMessage:
		return "message"
	case StageReady:
		return "ready"
	case StageHalfClose:
		return "half_close"
	case StageCancel:
		return "cancel"
	case StageComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Services opt into lifecycle stages by implementing these interfaces on the
// value passed to RegisterService. Every hook runs with panic recovery and
// any failure it returns is mapped like a handler failure.

// MessageHook inspects a decoded request after struct-tag validation.
type MessageHook interface {
	OnMessage(ctx context.Context, method string, req any) error
}

// ReadyHook runs right before the handler.
type ReadyHook interface {
	OnReady(ctx context.Context, method string) error
}

// CancelHook runs asynchronously when the inbound context is cancelled while
// the call is in flight. ctx is detached from that cancellation. The call
// does not close before a started hook returns, so it must return promptly.
type CancelHook interface {
	OnCancel(ctx context.Context, method string) error
}

// CompleteHook runs after a successful handler, before the response is sent.
type CompleteHook interface {
	OnComplete(ctx context.Context, method string, resp any) error
}
