// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package todoapp

import (
	"io"

	"go.uber.org/zap"

	"code.hybscloud.com/rill"
	"code.hybscloud.com/rill/internal/dom"
)

// Env is the capability bundle threaded through the application effects:
// resolved once at program start, never mutated thereafter. Every effect in
// this package reaches its collaborators through Env, so a runnable program
// cannot exist without all of them supplied.
type Env struct {
	Logger *zap.Logger
	Doc    *dom.Document
	Client Client
	Store  *rill.Store[State]
	Input  rill.EventSource[string]
	Out    io.Writer
}
